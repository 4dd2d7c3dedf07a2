package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sikkerchat/config"
	"sikkerchat/models"
	"sikkerchat/repository"
	"sikkerchat/storage"
	"sikkerchat/utils"
)

func newAuthService(t *testing.T) (*AuthService, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(t.TempDir())
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: 3600}
	return NewAuthService(repository.NewFileUserRepo(store), &cfg), store
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("", "pw")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Register("alice", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRegisterDuplicateKeepsOneRecord(t *testing.T) {
	svc, store := newAuthService(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register("alice", "pw2")
	assert.ErrorIs(t, err, repository.ErrUserExists)

	users := []models.User{}
	require.NoError(t, store.Load("users", &users))
	assert.Len(t, users, 1)
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	svc, store := newAuthService(t)

	_, err := svc.Register("alice", "hunter2")
	require.NoError(t, err)

	users := []models.User{}
	require.NoError(t, store.Load("users", &users))
	require.Len(t, users, 1)
	assert.NotEqual(t, "hunter2", users[0].PasswordHash)
	assert.NotContains(t, users[0].PasswordHash, "hunter2")
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	token, err := svc.Login("alice", "pw1")
	require.NoError(t, err)

	username, err := utils.ParseJWT("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	// wrong password and unknown user must be indistinguishable
	_, wrongPw := svc.Login("alice", "nope")
	_, noUser := svc.Login("bob", "pw1")
	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login("", "pw")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Login("alice", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthService(t)

	token, err := svc.IssueToken("alice")
	require.NoError(t, err)

	username, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = svc.VerifyToken(token + "x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
