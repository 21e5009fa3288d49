package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pekotaker/student-management-be/core/user"
)

func TestUser_SetCheckPassword(t *testing.T) {
	var usr user.User
	assert.NoError(t, usr.SetPassword("s3cr3t"))
	assert.NotContains(t, string(usr.PasswordHash), "s3cr3t")

	assert.NoError(t, usr.CheckPassword("s3cr3t"))
	assert.Error(t, usr.CheckPassword("nope"))
	assert.Error(t, usr.CheckPassword(""))
}

func TestUser_SetPassword_salted(t *testing.T) {
	var usr1, usr2 user.User
	assert.NoError(t, usr1.SetPassword("s3cr3t"))
	assert.NoError(t, usr2.SetPassword("s3cr3t"))

	// same plaintext, different digests
	assert.NotEqual(t, usr1.PasswordHash, usr2.PasswordHash)
	assert.NoError(t, usr1.CheckPassword("s3cr3t"))
	assert.NoError(t, usr2.CheckPassword("s3cr3t"))
}

func TestUser_CheckPassword_malformedHash(t *testing.T) {
	usr := user.User{PasswordHash: []byte("not-a-bcrypt-hash")}
	assert.Error(t, usr.CheckPassword("whatever"))

	empty := user.User{}
	assert.Error(t, empty.CheckPassword("whatever"))
}

func TestAdmin_SetCheckPassword(t *testing.T) {
	var adm user.Admin
	assert.NoError(t, adm.SetPassword("s3cr3t"))
	assert.NoError(t, adm.CheckPassword("s3cr3t"))
	assert.Error(t, adm.CheckPassword("nope"))
}
