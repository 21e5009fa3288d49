package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pekotaker/student-management-be/apps/api/echo"
	"github.com/Pekotaker/student-management-be/core/user"
)

func Test_userAPI_register(t *testing.T) {
	ta := setup(t)
	taken := ta.createUser(t, "taken@test.cd", "Taken")

	reqMsg := "this field is required"
	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": reqMsg, "password": reqMsg}),
		},
		{
			name: "invalid email", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, user.NewUser{Email: "lol", Password: testPassword}),
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "invalid gender", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, user.NewUser{Email: "new@test.cd", Password: testPassword, Gender: "lol"}),
			wantData: marchallObj(t, map[string]string{"gender": "gender must be one of [male female other]"}),
		},
		{
			name: "duplicate email", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, user.NewUser{Email: taken.Email, Password: testPassword}),
			wantData: marchallObj(t, map[string]string{"email": "email already registered"}),
		},
		{
			name: "email is lowercased", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, user.NewUser{Email: strings.ToUpper(taken.Email), Password: testPassword}),
			wantData: marchallObj(t, map[string]string{"email": "email already registered"}),
		},
		{
			name: "registered", wantCode: http.StatusCreated,
			body: marchallObj(t, user.NewUser{
				Email:       "hero@test.cd",
				Password:    testPassword,
				Name:        "Hero",
				Gender:      "female",
				DateOfBirth: "2001-05-12",
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/users/register"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, tt.wantCode, rec.Code)

				var usr user.User
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
				assert.NotZero(t, usr.ID)
				assert.Equal(t, "hero@test.cd", usr.Email)
				assert.Equal(t, "Hero", usr.Name)
				assert.Equal(t, "female", usr.Gender)
				// the hash must never appear in a response
				assert.NotContains(t, rec.Body.String(), "password")

				// the account is usable right away
				_, err := ta.usrSvc.AuthenticateUser(req.Context(), user.Credentials{Email: usr.Email, Password: testPassword})
				assert.NoError(t, err)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userAPI_login(t *testing.T) {
	ta := setup(t)
	usr := ta.createUser(t, "hero@test.cd", "Hero")

	reqMsg := "this field is required"
	invalidCreds := marchallObj(t, httpErr{Error: "invalid email or password"})
	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": reqMsg, "password": reqMsg}),
		},
		{
			name: "unknown email", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, user.Credentials{Email: "lol@test.cd", Password: testPassword}),
			wantData: invalidCreds,
		},
		{
			name: "wrong password", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, user.Credentials{Email: usr.Email, Password: "lol"}),
			wantData: invalidCreds,
		},
		{
			name: "admin credentials are not user credentials", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, user.Credentials{Email: "boss@test.cd", Password: testPassword}),
			wantData: invalidCreds,
		},
		{
			name: "logged in", wantCode: http.StatusOK,
			body: marchallObj(t, user.Credentials{Email: usr.Email, Password: testPassword}),
		},
	}
	ta.createAdmin(t, "boss@test.cd", "Boss")

	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/users/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)

			// cannot guess the token.. just check that it parses back
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantCode, rec.Code)

				var respData echoapi.LoginResponse
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respData))
				assert.Equal(t, "bearer", respData.TokenType)

				claims, err := echoapi.VerifyToken(respData.AccessToken, testConf)
				assert.NoError(t, err)
				assert.Equal(t, user.RoleUser, claims.Role)
				id, err := claims.AccountID()
				assert.NoError(t, err)
				assert.Equal(t, usr.ID, id)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
