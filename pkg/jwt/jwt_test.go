package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "feed-test-secret"

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestGenerateToken_CarriesViewerClaims(t *testing.T) {
	service := NewService(testSecret)

	token, err := service.GenerateToken("viewer-42", "admin")
	require.NoError(t, err)

	// The auth middleware reads these exact claim names.
	raw := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, raw, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "viewer-42", raw["user_id"])
	assert.Equal(t, "admin", raw["role"])

	exp, err := raw.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), exp.Time, time.Minute)
}

func TestValidateToken_ResolvesViewer(t *testing.T) {
	service := NewService(testSecret)
	token, err := service.GenerateToken("viewer-42", "creator")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "viewer-42", claims.UserID)
	assert.Equal(t, "creator", claims.Role)
}

func TestValidateToken_Rejects(t *testing.T) {
	service := NewService(testSecret)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{
			"expired",
			signed(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{
				UserID:           "viewer-42",
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(past)},
			}),
		},
		{
			"other secret",
			signed(t, jwt.SigningMethodHS256, []byte("someone-else"), &Claims{
				UserID:           "viewer-42",
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			}),
		},
		{
			"unsigned",
			signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &Claims{UserID: "viewer-42"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
