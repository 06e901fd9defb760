package utils

import (
	"testing"

	"Backend-FieldSurvey-001/src/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Run("TestRoundTrip", func(t *testing.T) {
		token, err := GenerateJWT("64f000000000000000000001", "agent@example.com", models.RoleFieldAgent)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseJWT(token)
		assert.NoError(t, err)
		assert.Equal(t, "64f000000000000000000001", claims.UserID)
		assert.Equal(t, "agent@example.com", claims.Email)
		assert.Equal(t, models.RoleFieldAgent, claims.Role)
	})

	// role นอก enum ห้ามออก token ได้ตั้งแต่ต้นทาง
	t.Run("TestUnknownRoleRejectedOnIssue", func(t *testing.T) {
		_, err := GenerateJWT("64f000000000000000000001", "x@example.com", "superuser")
		assert.Error(t, err)
	})

	t.Run("TestGarbageTokenRejected", func(t *testing.T) {
		_, err := ParseJWT("not.a.token")
		assert.Error(t, err)
	})

	t.Run("TestEmptyTokenRejected", func(t *testing.T) {
		_, err := ParseJWT("")
		assert.Error(t, err)
	})
}

func TestNewRefreshToken(t *testing.T) {
	a := NewRefreshToken()
	b := NewRefreshToken()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
