package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffhub/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  model.RoleEmployee,
	}
}

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := NewJWTService("test-secret", 7*24*time.Hour)
	user := testUser()

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleEmployee, claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_Parse_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_Parse_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := verifier.Parse(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_Parse_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.Parse(token)
		assert.Error(t, err, "token %q", token)
		assert.Nil(t, claims)
	}
}
