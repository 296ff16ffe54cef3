package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/teammatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJWTService(leeway time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: testSecret, Leeway: leeway})
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func claimsFor(userID uuid.UUID, expiresIn time.Duration) *Claims {
	return &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestJWTService_ValidateToken_Success(t *testing.T) {
	service := setupTestJWTService(0)
	userID := uuid.New()
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(userID, time.Hour))

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := setupTestJWTService(0)
	token := sign(t, jwt.SigningMethodHS256, []byte("another-secret-entirely"), claimsFor(uuid.New(), time.Hour))

	_, err := service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestJWTService_ValidateToken_WrongAlgorithm(t *testing.T) {
	service := setupTestJWTService(0)
	token := sign(t, jwt.SigningMethodHS512, []byte(testSecret), claimsFor(uuid.New(), time.Hour))

	_, err := service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := setupTestJWTService(0)
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(uuid.New(), -time.Minute))

	_, err := service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_ValidateToken_Leeway(t *testing.T) {
	service := setupTestJWTService(time.Minute)
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(uuid.New(), -10*time.Second))

	_, err := service.ValidateToken(token)
	assert.NoError(t, err, "expiry within leeway is accepted")
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(0)

	noExpiry := sign(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{UserID: uuid.New()})
	noUser := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(uuid.Nil, time.Hour))

	tests := map[string]string{
		"empty":       "",
		"malformed":   "not.a.jwt",
		"garbage":     "abc",
		"no expiry":   noExpiry,
		"nil user id": noUser,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := service.ValidateToken(token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(0)
	userID := uuid.New()
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(userID, time.Hour))

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())

	_, err = service.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
