package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pekotaker/student-management-be/core/school"
)

func Test_studentAPI_registerStudent(t *testing.T) {
	ta := setup(t)
	usr := ta.createUser(t, "student@test.cd", "Student")
	cls, err := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class A"})
	assert.NoError(t, err)
	token := userToken(t, usr)

	reqMsg := "this field is required"
	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"user_id": reqMsg, "class_id": reqMsg}),
		},
		{
			name: "unknown class", token: token, wantCode: http.StatusNotFound,
			body:     marchallObj(t, school.NewStudent{UserID: usr.ID, ClassID: 999}),
			wantData: marchallObj(t, httpErr{Error: "User or Class not found"}),
		},
		{
			name: "registered", token: token, wantCode: http.StatusCreated,
			body:     marchallObj(t, school.NewStudent{UserID: usr.ID, ClassID: cls.ID}),
			wantData: marchallObj(t, school.Student{ID: 1, UserID: usr.ID, ClassID: cls.ID}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/students/register-student"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentAPI_getScores(t *testing.T) {
	ta := setup(t)
	tch, sub := seedTeacher(t, ta, "teacher@test.cd", "Math")
	stdUsr := ta.createUser(t, "student@test.cd", "Student")
	cls, _ := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class A"})
	std, err := ta.schoolSvc.RegisterStudent(context.Background(), school.NewStudent{UserID: stdUsr.ID, ClassID: cls.ID})
	assert.NoError(t, err)
	token := userToken(t, stdUsr)

	_, err = ta.schoolSvc.AddScore(context.Background(), school.NewScore{StudentID: std.ID, SubjectID: sub.ID, TeacherID: tch.ID, Value: "6.25"})
	assert.NoError(t, err)

	tests := []httpTest{
		{
			name: "invalid id", path: "/students/scores/lol", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid user_id"}),
		},
		{
			// the path takes the account's user ID, not the student row ID
			name: "unknown student", path: "/students/scores/999", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Student not found"}),
		},
		{
			name: "found", path: fmt.Sprintf("/students/scores/%d", stdUsr.ID), wantCode: http.StatusOK,
			wantData: marchallList(t, school.SubjectScore{Subject: "Math", Score: "6.25"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentAPI_getSchedule(t *testing.T) {
	ta := setup(t)
	stdUsr := ta.createUser(t, "student@test.cd", "Student")
	cls, _ := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class A"})
	otherCls, _ := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class B"})
	_, err := ta.schoolSvc.RegisterStudent(context.Background(), school.NewStudent{UserID: stdUsr.ID, ClassID: cls.ID})
	assert.NoError(t, err)
	token := userToken(t, stdUsr)

	_, err = ta.schoolSvc.CreateSchedule(context.Background(), school.NewSchedule{ClassID: cls.ID, TimeSlot: 1, Subject: "Math"})
	assert.NoError(t, err)
	_, err = ta.schoolSvc.CreateSchedule(context.Background(), school.NewSchedule{ClassID: cls.ID, TimeSlot: 2, Subject: "Physics"})
	assert.NoError(t, err)
	// another class's schedule must not leak in
	_, err = ta.schoolSvc.CreateSchedule(context.Background(), school.NewSchedule{ClassID: otherCls.ID, TimeSlot: 1, Subject: "Chemistry"})
	assert.NoError(t, err)

	tests := []httpTest{
		{
			name: "unknown student", path: "/students/schedule/999", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Student not found"}),
		},
		{
			name: "found", path: fmt.Sprintf("/students/schedule/%d", stdUsr.ID), wantCode: http.StatusOK,
			wantData: marchallList(t,
				school.ScheduleEntry{TimeSlot: 1, Subject: "Math"},
				school.ScheduleEntry{TimeSlot: 2, Subject: "Physics"},
			),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
