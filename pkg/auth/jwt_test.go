package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
)

func testUser() *model.User {
	return &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "doc@example.com",
		Role:  model.RoleDoctor,
		Name:  "Dr. Example",
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := testUser()

	token, err := svc.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleDoctor, claims.Role)
	assert.Equal(t, user.Name, claims.Name)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	user := testUser()
	user.Role = "superuser"
	token, err := svc.Generate(user)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultExpiry(t *testing.T) {
	// A non-positive expiry falls back to the 24h default.
	svc := NewTokenService("test-secret", 0)

	token, err := svc.Generate(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.NoError(t, err)
}
