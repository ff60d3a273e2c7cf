package services

import (
	"testing"

	"github.com/miyako/todoweb/internal/models"
	"github.com/miyako/todoweb/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db)), db
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	svc, _ := setupAuthService(t)

	created, err := svc.Signup(SignupInput{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotEqual(t, "pw123", created.PasswordHash, "password must not be stored in plaintext")

	user, err := svc.Login(LoginInput{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "alice", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "ghost", Password: "pw123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_DuplicateUsername(t *testing.T) {
	svc, db := setupAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "alice", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Signup(SignupInput{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAuthService_UsernameIsCaseSensitive(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "Alice", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "pw123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignupValidation(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "   ", Password: "pw123"})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Signup(SignupInput{Username: "alice", Password: ""})
	require.ErrorIs(t, err, ErrPasswordRequired)
}
