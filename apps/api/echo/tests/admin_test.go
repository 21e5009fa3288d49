package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pekotaker/student-management-be/apps/api/echo"
	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
)

func Test_adminAPI_register(t *testing.T) {
	ta := setup(t)
	boss := ta.createAdmin(t, "boss@test.cd", "Boss")
	hero := ta.createUser(t, "hero@test.cd", "Hero")

	reqMsg := "this field is required"
	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": reqMsg, "password": reqMsg, "name": reqMsg}),
		},
		{
			name: "duplicate admin email", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, user.NewAdmin{Email: boss.Email, Password: testPassword, Name: "Boss 2"}),
			wantData: marchallObj(t, map[string]string{"email": "email already registered"}),
		},
		{
			// the admin table is checked, not the user table
			name: "user email may become an admin email", wantCode: http.StatusCreated,
			body: marchallObj(t, user.NewAdmin{Email: hero.Email, Password: testPassword, Name: "Hero Admin"}),
		},
		{
			name: "registered", wantCode: http.StatusCreated,
			body: marchallObj(t, user.NewAdmin{Email: "chief@test.cd", Password: testPassword, Name: "Chief"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/admin/register"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, tt.wantCode, rec.Code)

				var adm user.Admin
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adm))
				assert.NotZero(t, adm.ID)
				assert.NotContains(t, rec.Body.String(), "password")
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminAPI_login(t *testing.T) {
	ta := setup(t)
	boss := ta.createAdmin(t, "boss@test.cd", "Boss")
	ta.createUser(t, "hero@test.cd", "Hero")

	invalidCreds := marchallObj(t, httpErr{Error: "invalid email or password"})
	tests := []httpTest{
		{
			name: "wrong password", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, user.Credentials{Email: boss.Email, Password: "lol"}),
			wantData: invalidCreds,
		},
		{
			name: "user credentials are not admin credentials", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, user.Credentials{Email: "hero@test.cd", Password: testPassword}),
			wantData: invalidCreds,
		},
		{
			name: "logged in", wantCode: http.StatusOK,
			body: marchallObj(t, user.Credentials{Email: boss.Email, Password: testPassword}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/admin/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantCode, rec.Code)

				var respData echoapi.LoginResponse
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respData))
				assert.Equal(t, "bearer", respData.TokenType)

				claims, err := echoapi.VerifyToken(respData.AccessToken, testConf)
				assert.NoError(t, err)
				assert.Equal(t, user.RoleAdmin, claims.Role)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminAPI_createClassAndSubject(t *testing.T) {
	ta := setup(t)
	boss := ta.createAdmin(t, "boss@test.cd", "Boss")
	token := adminToken(t, boss)

	tests := []httpTest{
		{
			name: "class name required", path: "/admin/create-class", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "class created", path: "/admin/create-class", wantCode: http.StatusCreated,
			body:     marchallObj(t, school.NewClass{Name: "Class A"}),
			wantData: marchallObj(t, school.Class{ID: 1, Name: "Class A"}),
		},
		{
			name: "subject created", path: "/admin/create-subject", wantCode: http.StatusCreated,
			body:     marchallObj(t, school.NewSubject{Name: "Math"}),
			wantData: marchallObj(t, school.Subject{ID: 1, Name: "Math"}),
		},
		{
			// leading/trailing whitespace is stripped before saving
			name: "subject name is cleaned", path: "/admin/create-subject", wantCode: http.StatusCreated,
			body:     marchallObj(t, school.NewSubject{Name: "  Physics "}),
			wantData: marchallObj(t, school.Subject{ID: 2, Name: "Physics"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminAPI_assignTeacherToClass(t *testing.T) {
	ta := setup(t)
	boss := ta.createAdmin(t, "boss@test.cd", "Boss")
	token := adminToken(t, boss)

	tchUsr := ta.createUser(t, "teacher@test.cd", "Teacher")
	sub, err := ta.schoolSvc.CreateSubject(context.Background(), school.NewSubject{Name: "Math"})
	assert.NoError(t, err)
	cls, err := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class A"})
	assert.NoError(t, err)
	tch, err := ta.schoolSvc.RegisterTeacher(context.Background(), school.NewTeacher{UserID: tchUsr.ID, SubjectID: sub.ID})
	assert.NoError(t, err)

	assigned := marchallObj(t, map[string]string{"message": "Teacher assigned to class successfully"})
	tests := []httpTest{
		{
			name: "unknown teacher", wantCode: http.StatusNotFound,
			body:     marchallObj(t, school.AssignTeacherClass{TeacherID: 999, ClassID: cls.ID}),
			wantData: marchallObj(t, httpErr{Error: "Teacher or Class not found"}),
		},
		{
			name: "unknown class", wantCode: http.StatusNotFound,
			body:     marchallObj(t, school.AssignTeacherClass{TeacherID: tch.ID, ClassID: 999}),
			wantData: marchallObj(t, httpErr{Error: "Teacher or Class not found"}),
		},
		{
			name: "assigned", wantCode: http.StatusOK,
			body:     marchallObj(t, school.AssignTeacherClass{TeacherID: tch.ID, ClassID: cls.ID}),
			wantData: assigned,
		},
		{
			// no uniqueness; a second identical assignment also succeeds
			name: "assigned again", wantCode: http.StatusOK,
			body:     marchallObj(t, school.AssignTeacherClass{TeacherID: tch.ID, ClassID: cls.ID}),
			wantData: assigned,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/admin/assign-teacher-to-class"
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	assignments, err := ta.schRepo.QueryTeacherAssignments(context.Background(), tch.ID)
	assert.NoError(t, err)
	assert.Len(t, assignments, 2)
}

func Test_adminAPI_createSchedule(t *testing.T) {
	ta := setup(t)
	boss := ta.createAdmin(t, "boss@test.cd", "Boss")
	token := adminToken(t, boss)

	cls, err := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class A"})
	assert.NoError(t, err)

	tests := []httpTest{
		{
			name: "unknown class", wantCode: http.StatusNotFound,
			body:     marchallObj(t, school.NewSchedule{ClassID: 999, TimeSlot: 1, Subject: "Math"}),
			wantData: marchallObj(t, httpErr{Error: "Class not found"}),
		},
		{
			name: "created without date", wantCode: http.StatusCreated,
			body:     marchallObj(t, school.NewSchedule{ClassID: cls.ID, TimeSlot: 1, Subject: "Math"}),
			wantData: marchallObj(t, school.Schedule{ID: 1, ClassID: cls.ID, TimeSlot: 1, Subject: "Math"}),
		},
		{
			name: "created with date", wantCode: http.StatusCreated,
			body:     marchallObj(t, school.NewSchedule{ClassID: cls.ID, TimeSlot: 2, Subject: "Physics", Date: "Monday"}),
			wantData: marchallObj(t, school.Schedule{ID: 2, ClassID: cls.ID, TimeSlot: 2, Subject: "Physics", Date: "Monday"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/admin/create-schedule"
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminAPI_listings(t *testing.T) {
	ta := setup(t)
	boss := ta.createAdmin(t, "boss@test.cd", "Boss")
	token := adminToken(t, boss)

	tchUsr := ta.createUser(t, "teacher@test.cd", "Teacher")
	sub, _ := ta.schoolSvc.CreateSubject(context.Background(), school.NewSubject{Name: "Math"})
	clsA, _ := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class A"})
	clsB, _ := ta.schoolSvc.CreateClass(context.Background(), school.NewClass{Name: "Class B"})
	tch, err := ta.schoolSvc.RegisterTeacher(context.Background(), school.NewTeacher{UserID: tchUsr.ID, SubjectID: sub.ID})
	assert.NoError(t, err)

	tests := []httpTest{
		{
			name: "teachers", path: "/admin/teachers",
			wantData: marchallList(t, school.TeacherInfo{TeacherID: tch.ID, UserID: tchUsr.ID, Name: "Teacher", Subject: "Math"}),
		},
		{name: "classes", path: "/admin/classes", wantData: marchallList(t, clsA, clsB)},
		{name: "subjects", path: "/admin/subjects", wantData: marchallList(t, sub)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.token = token
		tt.wantCode = http.StatusOK

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
