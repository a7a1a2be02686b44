package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primemotors/inventory-service/internal/clock"
	"github.com/primemotors/inventory-service/internal/domain"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func testIdentity() domain.Identity {
	return domain.Identity{UserID: "user-1", Username: "jdelacruz", Role: domain.RoleAccounting}
}

func TestTokenManager_IssueThenVerify(t *testing.T) {
	clk := &testClock{now: time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)}
	tm := NewTokenManager("signing-key", 24*time.Hour, clk)

	token, exp, err := tm.Issue(testIdentity())
	require.NoError(t, err)
	assert.Equal(t, clk.now.Add(24*time.Hour), exp)

	identity, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "jdelacruz", identity.Username)
	assert.Equal(t, domain.RoleAccounting, identity.Role)
	assert.True(t, identity.IssuedAt.Equal(clk.now))
	assert.True(t, identity.ExpiresAt.Equal(exp))
}

func TestTokenManager_RejectsAfterExpiry(t *testing.T) {
	clk := &testClock{now: time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)}
	tm := NewTokenManager("signing-key", 24*time.Hour, clk)

	token, _, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	clk.now = clk.now.Add(23*time.Hour + 59*time.Minute)
	_, err = tm.Verify(token)
	require.NoError(t, err)

	clk.now = clk.now.Add(2 * time.Minute)
	_, err = tm.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsTampering(t *testing.T) {
	tm := NewTokenManager("signing-key", time.Hour, clock.Fixed(time.Now()))
	token, _, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := tm.Verify(tampered)
		assert.ErrorIsf(t, err, ErrInvalidToken, "byte %d accepted after tampering", i)
	}
}

func TestTokenManager_RejectsForeignKey(t *testing.T) {
	now := clock.Fixed(time.Now())
	issuer := NewTokenManager("other-key", time.Hour, now)
	verifier := NewTokenManager("signing-key", time.Hour, now)

	token, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMalformed(t *testing.T) {
	tm := NewTokenManager("signing-key", time.Hour, nil)

	for _, raw := range []string{"", "not-a-token", "a.b.c", strings.Repeat("x", 300)} {
		_, err := tm.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		Username: "jdelacruz",
		Role:     domain.RoleNSM,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tm := NewTokenManager("signing-key", time.Hour, nil)
	_, err = tm.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RequiresRole(t *testing.T) {
	tm := NewTokenManager("signing-key", time.Hour, nil)
	token, _, err := tm.Issue(domain.Identity{UserID: "user-1", Username: "norole"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("signing-key", time.Hour, nil)
	token, _, err := tm.Issue(domain.Identity{UserID: "user-1", Username: "root", Role: domain.Role("superadmin")})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
