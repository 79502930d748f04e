package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/secureapp/identity-service/internal/core/domain"
)

type stubRoleService struct {
	assignFn func(ctx context.Context, userID, role string) (bool, error)
	removeFn func(ctx context.Context, userID, role string) (bool, error)
	listFn   func(ctx context.Context, userID string) ([]string, error)
}

func (s *stubRoleService) Assign(ctx context.Context, userID, role string) (bool, error) {
	return s.assignFn(ctx, userID, role)
}

func (s *stubRoleService) Remove(ctx context.Context, userID, role string) (bool, error) {
	return s.removeFn(ctx, userID, role)
}

func (s *stubRoleService) ListRoles(ctx context.Context, userID string) ([]string, error) {
	return s.listFn(ctx, userID)
}

func (s *stubRoleService) EnsureWellKnownRoles(ctx context.Context) error { return nil }

func TestAssignRole_Success(t *testing.T) {
	svc := &stubRoleService{
		assignFn: func(ctx context.Context, userID, role string) (bool, error) {
			if userID != "u1" || role != domain.RoleAdmin {
				t.Fatalf("unexpected args: %q %q", userID, role)
			}
			return true, nil
		},
	}
	h := NewAdminHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/admin/roles/assign",
		`{"user_id":"u1","role":"Admin"}`)
	if err := h.AssignRole(c); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp roleChangeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Message, "Admin") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestAssignRole_UnknownRole(t *testing.T) {
	svc := &stubRoleService{
		assignFn: func(ctx context.Context, userID, role string) (bool, error) {
			t.Fatal("service should not be called")
			return false, nil
		},
	}
	h := NewAdminHandler(svc)

	c, _ := newJSONContext(t, http.MethodPost, "/api/admin/roles/assign",
		`{"user_id":"u1","role":"SuperAdmin"}`)
	err := h.AssignRole(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

// An unknown user is a soft failure in the service; the route reports it as 400.
func TestAssignRole_UnknownUser(t *testing.T) {
	svc := &stubRoleService{
		assignFn: func(ctx context.Context, userID, role string) (bool, error) {
			return false, nil
		},
	}
	h := NewAdminHandler(svc)

	c, _ := newJSONContext(t, http.MethodPost, "/api/admin/roles/assign",
		`{"user_id":"missing","role":"User"}`)
	err := h.AssignRole(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRemoveRole_Success(t *testing.T) {
	svc := &stubRoleService{
		removeFn: func(ctx context.Context, userID, role string) (bool, error) {
			return true, nil
		},
	}
	h := NewAdminHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/admin/roles/remove",
		`{"user_id":"u1","role":"User"}`)
	if err := h.RemoveRole(c); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRemoveRole_MissingFields(t *testing.T) {
	svc := &stubRoleService{
		removeFn: func(ctx context.Context, userID, role string) (bool, error) {
			t.Fatal("service should not be called")
			return false, nil
		},
	}
	h := NewAdminHandler(svc)

	c, _ := newJSONContext(t, http.MethodPost, "/api/admin/roles/remove", `{"role":"User"}`)
	err := h.RemoveRole(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserRoles(t *testing.T) {
	svc := &stubRoleService{
		listFn: func(ctx context.Context, userID string) ([]string, error) {
			if userID == "u1" {
				return []string{domain.RoleUser, domain.RoleAdmin}, nil
			}
			return nil, nil
		},
	}
	h := NewAdminHandler(svc)

	t.Run("known user", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/users/u1/roles", "")
		c.SetParamNames("id")
		c.SetParamValues("u1")
		if err := h.UserRoles(c); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		var resp userRolesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Roles) != 2 || resp.Roles[0] != domain.RoleUser {
			t.Errorf("roles = %v", resp.Roles)
		}
	})

	t.Run("unknown user yields empty list", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodGet, "/api/admin/users/ghost/roles", "")
		c.SetParamNames("id")
		c.SetParamValues("ghost")
		if err := h.UserRoles(c); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		var resp userRolesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Roles == nil || len(resp.Roles) != 0 {
			t.Errorf("expected empty roles, got %v", resp.Roles)
		}
	})
}
