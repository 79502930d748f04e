package access

import (
	"strings"
	"testing"
	"time"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/token"
)

func newTestGate(t *testing.T, roles []string) (*Gate, string, *token.Issuer) {
	t.Helper()
	iss := token.NewIssuer("gate-secret", "identity-service", "identity-clients", time.Hour)
	signed, _, err := iss.Issue(&domain.User{ID: "u1", Username: "alice"}, roles)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return NewGate(iss), signed, iss
}

func TestAuthorize_NoToken(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)
	d := gate.Authorize("", nil)
	if d.Allowed || d.Reason != DenyUnauthenticated {
		t.Fatalf("expected unauthenticated deny, got %+v", d)
	}
}

func TestAuthorize_MalformedToken(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)
	d := gate.Authorize("garbage", []string{domain.RoleAdmin})
	if d.Allowed || d.Reason != DenyUnauthenticated {
		t.Fatalf("expected unauthenticated deny, got %+v", d)
	}
}

func TestAuthorize_TamperedToken(t *testing.T) {
	gate, signed, _ := newTestGate(t, []string{domain.RoleAdmin})
	dot := strings.LastIndex(signed, ".")
	tampered := signed[:dot+1] + strings.Repeat("x", len(signed)-dot-1)
	d := gate.Authorize(tampered, []string{domain.RoleAdmin})
	if d.Allowed || d.Reason != DenyUnauthenticated {
		t.Fatalf("expected unauthenticated deny, got %+v", d)
	}
}

func TestAuthorize_InsufficientRole(t *testing.T) {
	gate, signed, _ := newTestGate(t, []string{domain.RoleUser})
	d := gate.Authorize(signed, []string{domain.RoleAdmin})
	if d.Allowed {
		t.Fatalf("expected deny for missing role")
	}
	if d.Reason != DenyForbidden {
		t.Fatalf("expected forbidden, got %s", d.Reason)
	}
	if d.Claims == nil || d.Claims.Username != "alice" {
		t.Fatalf("expected claims on forbidden decision, got %+v", d.Claims)
	}
}

func TestAuthorize_RoleIntersection(t *testing.T) {
	gate, signed, _ := newTestGate(t, []string{domain.RoleUser})
	d := gate.Authorize(signed, []string{domain.RoleAdmin, domain.RoleUser})
	if !d.Allowed {
		t.Fatalf("expected allow when role sets intersect, got %+v", d)
	}
}

func TestAuthorize_EmptyRequiredSet(t *testing.T) {
	// Empty required set means "any authenticated subject".
	gate, signed, _ := newTestGate(t, nil)
	d := gate.Authorize(signed, nil)
	if !d.Allowed {
		t.Fatalf("expected allow for valid token with no required roles, got %+v", d)
	}
	if d.Claims == nil || d.Claims.Subject != "u1" {
		t.Fatalf("expected claims, got %+v", d.Claims)
	}
}

func TestAllow(t *testing.T) {
	if d := Allow(); !d.Allowed {
		t.Fatalf("expected unconditional allow")
	}
}
