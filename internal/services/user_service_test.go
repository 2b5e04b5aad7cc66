package services

import (
	"context"
	"testing"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestRegisterUser_Validation(t *testing.T) {
	svc := NewUserService(nil)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterInput{Email: "a@b.com", Password: "secret1"})
	assert.True(t, apperrors.IsValidation(err), "missing name")

	_, err = svc.RegisterUser(ctx, RegisterInput{Name: "Ada", Email: "not-an-email", Password: "secret1"})
	assert.True(t, apperrors.IsValidation(err), "bad email")

	_, err = svc.RegisterUser(ctx, RegisterInput{Name: "Ada", Email: "a@b.com", Password: "12345"})
	assert.True(t, apperrors.IsValidation(err), "short password")

	_, err = svc.RegisterUser(ctx, RegisterInput{Name: "Ada", Email: "a@b.com", Password: "secret1", Role: "ADMIN"})
	assert.True(t, apperrors.IsValidation(err), "unknown role")

	_, err = svc.RegisterUser(ctx, RegisterInput{Name: "Ada", Email: "a@b.com", Password: "secret1", Role: "COMPANY"})
	assert.True(t, apperrors.IsValidation(err), "company without company name")
}

func TestVerifyEmail_EmptyToken(t *testing.T) {
	svc := NewUserService(nil)

	err := svc.VerifyEmail(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetUser_BadID(t *testing.T) {
	svc := NewUserService(nil)

	_, err := svc.GetUser(context.Background(), "not-hex")
	assert.True(t, apperrors.IsNotFound(err))
}
