package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/Pekotaker/student-management-be/apps/api/echo"
	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
	"github.com/Pekotaker/student-management-be/services/email"
	"github.com/Pekotaker/student-management-be/storage/database/dummy"
)

const testPassword = "Str0ngPwd!"

var (
	testConf = &core.Config{
		Env:                "TEST",
		Debug:              true,
		TestMode:           true,
		AppName:            "StudentManagement",
		SecretKey:          "sekrit",
		FrontendOrigin:     "http://localhost:3000",
		JWTExpirationDelta: time.Hour,
	}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

type testApp struct {
	app Server

	usrRepo user.Repository
	admRepo user.AdminRepository
	schRepo school.Repository

	usrSvc    *user.Service
	schoolSvc *school.Service
}

func setup(t *testing.T) *testApp {
	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo := dummydb.NewUserRepository(db)
	admRepo := dummydb.NewAdminRepository(db)
	schRepo := dummydb.NewSchoolRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(testConf)
	usrSvc := user.NewService(usrRepo, admRepo, mailSvc)
	schoolSvc := school.NewService(schRepo, usrRepo)

	// set up server
	app := NewServer(
		&Options{
			Conf:           testConf,
			Logger:         core.NewStdLogger(log.New(io.Discard, "", 0)),
			DisableReqLogs: true,
			UserSvc:        usrSvc,
			SchoolSvc:      schoolSvc,
		},
	)
	return &testApp{
		app:       app,
		usrRepo:   usrRepo,
		admRepo:   admRepo,
		schRepo:   schRepo,
		usrSvc:    usrSvc,
		schoolSvc: schoolSvc,
	}
}

func (ta *testApp) createUser(t *testing.T, email, name string) user.User {
	usr := user.User{Email: email, Name: name, CreatedAt: time.Now().UTC()}
	if err := usr.SetPassword(testPassword); err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	usr, err := ta.usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func (ta *testApp) createAdmin(t *testing.T, email, name string) user.Admin {
	adm := user.Admin{Email: email, Name: name, CreatedAt: time.Now().UTC()}
	if err := adm.SetPassword(testPassword); err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	adm, err := ta.admRepo.CreateAdmin(context.Background(), adm)
	if err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	return adm
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, accountID int, role string) string {
	token, err := GenerateToken(GetClaims(accountID, role, testConf), testConf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func userToken(t *testing.T, usr user.User) string   { return getToken(t, usr.ID, user.RoleUser) }
func adminToken(t *testing.T, adm user.Admin) string { return getToken(t, adm.ID, user.RoleAdmin) }

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
