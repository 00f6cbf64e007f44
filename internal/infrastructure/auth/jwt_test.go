package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dairyledger/internal/domain"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("super-secret-key-0123", time.Minute)

	token, err := manager.Generate("CUST001", domain.RoleCustomer)
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "CUST001", claims.UserID)
	assert.Equal(t, "CUST001", claims.Subject)
	assert.Equal(t, domain.RoleCustomer, claims.Role)

	_, err = ulid.Parse(claims.ID)
	assert.NoError(t, err, "token id should be a ULID")
}

func TestJWTManagerTokensAreUnique(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("super-secret-key-0123", time.Minute)

	a, err := manager.Generate("admin", domain.RoleAdmin)
	require.NoError(t, err)
	b, err := manager.Generate("admin", domain.RoleAdmin)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Minute)

	expiredClaims := Claims{
		UserID: "CUST001",
		Role:   domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = manager.Verify(expiredToken)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)

	otherManager := NewJWTManager("other-secret", time.Minute)
	_, err = otherManager.Verify(expiredToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = manager.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManagerRejectsForeignIssuerAndRole(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Minute)
	sign := func(c Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}

	foreign := valid
	foreign.Issuer = "someone-else"
	_, err := manager.Verify(sign(Claims{UserID: "CUST001", Role: domain.RoleCustomer, RegisteredClaims: foreign}))
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = manager.Verify(sign(Claims{UserID: "CUST001", Role: "superuser", RegisteredClaims: valid}))
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManagerUsesInjectedClock(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Hour)
	issued := time.Date(2026, 1, 16, 6, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.Generate("admin", domain.RoleAdmin)
	require.NoError(t, err)

	manager.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}
