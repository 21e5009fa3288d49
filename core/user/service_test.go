package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/user"
	"github.com/Pekotaker/student-management-be/storage/database/dummy"
)

func setup(t *testing.T) *user.Service {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return user.NewService(dummydb.NewUserRepository(db), dummydb.NewAdminRepository(db), nil)
}

func TestService_RegisterUser_duplicateEmail(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	nu := user.NewUser{Email: "a@x.com", Password: "pw", Name: "A"}
	assert.NoError(t, nu.Validate(ctx, svc))
	_, err := svc.RegisterUser(ctx, nu)
	assert.NoError(t, err)

	// second registration with the same email fails validation
	nu2 := user.NewUser{Email: "a@x.com", Password: "other", Name: "B"}
	err = nu2.Validate(ctx, svc)
	assert.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	if assert.True(t, ok) {
		assert.Equal(t, "email", vErr.Fields[0].Field)
	}
}

func TestService_RegisterAdmin_duplicateEmail(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	na := user.NewAdmin{Email: "adm@x.com", Password: "pw", Name: "Adm"}
	assert.NoError(t, na.Validate(ctx, svc))
	_, err := svc.RegisterAdmin(ctx, na)
	assert.NoError(t, err)

	na2 := user.NewAdmin{Email: "adm@x.com", Password: "pw", Name: "Adm2"}
	assert.Error(t, na2.Validate(ctx, svc))
}

// The users and admin_users tables are checked independently: registering the
// same email once per account class succeeds.
func TestService_Register_emailMayExistInBothTables(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	nu := user.NewUser{Email: "both@x.com", Password: "pw"}
	assert.NoError(t, nu.Validate(ctx, svc))
	_, err := svc.RegisterUser(ctx, nu)
	assert.NoError(t, err)

	na := user.NewAdmin{Email: "both@x.com", Password: "pw", Name: "Adm"}
	assert.NoError(t, na.Validate(ctx, svc))
	_, err = svc.RegisterAdmin(ctx, na)
	assert.NoError(t, err)
}

func TestService_AuthenticateUser(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, user.NewUser{Email: "a@x.com", Password: "pw"})
	assert.NoError(t, err)

	usr, err := svc.AuthenticateUser(ctx, user.Credentials{Email: "a@x.com", Password: "pw"})
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", usr.Email)

	// wrong password and unknown email fail with the same error
	_, badPwdErr := svc.AuthenticateUser(ctx, user.Credentials{Email: "a@x.com", Password: "nope"})
	_, noUserErr := svc.AuthenticateUser(ctx, user.Credentials{Email: "ghost@x.com", Password: "pw"})
	assert.Equal(t, user.ErrInvalidCredentials, badPwdErr)
	assert.Equal(t, user.ErrInvalidCredentials, noUserErr)
}

func TestService_AuthenticateAdmin(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.RegisterAdmin(ctx, user.NewAdmin{Email: "adm@x.com", Password: "pw", Name: "Adm"})
	assert.NoError(t, err)

	adm, err := svc.AuthenticateAdmin(ctx, user.Credentials{Email: "adm@x.com", Password: "pw"})
	assert.NoError(t, err)
	assert.Equal(t, "adm@x.com", adm.Email)

	_, err = svc.AuthenticateAdmin(ctx, user.Credentials{Email: "adm@x.com", Password: "nope"})
	assert.Equal(t, user.ErrInvalidCredentials, err)
}
