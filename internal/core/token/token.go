// Package token mints and verifies the signed bearer tokens used as the
// system's only credential: there is no server-side session, so a token's
// validity is decided purely from its signature and expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/secureapp/identity-service/internal/core/domain"
)

// Verification failures. All three collapse to a single unauthorized outcome
// at the API boundary; the split exists for logging and tests only.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = time.Hour

// Claims is the claim set embedded in every token. Roles preserves the
// assignment order for display; authorization treats it as a set.
type Claims struct {
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens. It is a pure transform around the
// signing key with no shared mutable state; a single instance is safe for
// unlimited concurrent use.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewIssuer builds an Issuer. The secret is supplied externally and never
// logged; ttl <= 0 falls back to DefaultTTL.
func NewIssuer(secret, issuer, audience string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue mints a token for the user with one role claim per granted role.
// The structured claims are returned alongside the serialized token so the
// caller can build a login response without a second parse.
func (i *Issuer) Issue(user *domain.User, roles []string) (string, *Claims, error) {
	now := i.now().UTC()
	claims := &Claims{
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify parses and checks a serialized token. Issuer and audience mismatches
// are reported as ErrTokenSignatureInvalid, indistinguishable from tampering,
// so a caller can never learn which check failed. The underlying HMAC
// comparison is constant-time.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}
	return claims, nil
}

// classify maps library errors onto the package taxonomy. Anything that is
// neither a parse failure nor an expiry is treated as a signature problem.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenSignatureInvalid
	}
}
