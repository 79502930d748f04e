// Package access holds the request-time authorization decision. The gate is
// a pure function of (raw token, required roles); HTTP middleware wraps it
// without adding logic of its own.
package access

import (
	"github.com/secureapp/identity-service/internal/core/token"
)

// DenyReason explains a denial without leaking which token check failed.
type DenyReason string

const (
	// DenyUnauthenticated covers absent, malformed, expired, and
	// badly-signed tokens alike.
	DenyUnauthenticated DenyReason = "unauthenticated"
	// DenyForbidden means the token is valid but grants none of the
	// required roles.
	DenyForbidden DenyReason = "forbidden"
)

// Decision is the outcome of an authorization check. Claims is set whenever
// the token verified, including on a forbidden decision.
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Claims  *token.Claims
}

// Verifier is the part of the token issuer the gate depends on.
type Verifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Gate decides whether a bearer token grants access to a role-protected
// resource. Stateless; safe for concurrent use.
type Gate struct {
	verifier Verifier
}

func NewGate(verifier Verifier) *Gate {
	return &Gate{verifier: verifier}
}

// Authorize checks rawToken against the required role set.
//
//   - Absent token or any verification failure denies as unauthenticated.
//   - An empty required set admits any authenticated subject.
//   - Otherwise the token's roles must intersect the required set.
func (g *Gate) Authorize(rawToken string, required []string) Decision {
	if rawToken == "" {
		return Decision{Reason: DenyUnauthenticated}
	}

	claims, err := g.verifier.Verify(rawToken)
	if err != nil {
		return Decision{Reason: DenyUnauthenticated}
	}

	if len(required) == 0 {
		return Decision{Allowed: true, Claims: claims}
	}

	for _, want := range required {
		for _, have := range claims.Roles {
			if have == want {
				return Decision{Allowed: true, Claims: claims}
			}
		}
	}

	return Decision{Reason: DenyForbidden, Claims: claims}
}

// Allow returns the unconditional pass decision used for public routes that
// bypass the gate but still flow through the same middleware chain.
func Allow() Decision {
	return Decision{Allowed: true}
}
