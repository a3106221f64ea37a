package service

import (
	"context"
	"testing"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *model.User) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        "admin@campusgo.app",
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}

	studentHash, err := bcrypt.GenerateFromPassword([]byte("student-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	student := &model.User{
		ID:           uuid.New(),
		Email:        "student@campusgo.app",
		PasswordHash: string(studentHash),
		Role:         model.RoleStudent,
	}

	return NewAuthService(newFakeUserRepo(admin, student)), admin
}

func TestLogin(t *testing.T) {
	svc, admin := newAuthFixture(t)

	res, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "admin@campusgo.app",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, admin.ID, res.User.ID)
	assert.Empty(t, res.User.PasswordHash)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "admin@campusgo.app",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "nobody@campusgo.app",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "student@campusgo.app",
		Password: "student-pass",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
