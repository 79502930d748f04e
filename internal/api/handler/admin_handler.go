package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secureapp/identity-service/internal/api/metrics"
	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
)

// AdminHandler exposes role administration. Every route is wired behind
// Auth + RBAC(Admin) in the router.
type AdminHandler struct {
	roleService ports.RoleService
}

func NewAdminHandler(roleService ports.RoleService) *AdminHandler {
	return &AdminHandler{roleService: roleService}
}

type roleChangeRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role"    validate:"required"`
}

type roleChangeResponse struct {
	Message string `json:"message"`
}

type userRolesResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// AssignRole grants a role to a user.
//
// @Summary      Assign a role to a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleChangeRequest  true  "Role assignment"
// @Success      200   {object}  roleChangeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/roles/assign [post]
func (h *AdminHandler) AssignRole(c echo.Context) error {
	req, err := bindRoleChange(c)
	if err != nil {
		return err
	}

	ok, err := h.roleService.Assign(c.Request().Context(), req.UserID, req.Role)
	if err != nil {
		metrics.RoleChangesTotal.WithLabelValues("assign", "failure").Inc()
		return err
	}
	if !ok {
		metrics.RoleChangesTotal.WithLabelValues("assign", "failure").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "failed to assign role")
	}

	metrics.RoleChangesTotal.WithLabelValues("assign", "success").Inc()
	return c.JSON(http.StatusOK, roleChangeResponse{Message: "role " + req.Role + " assigned successfully"})
}

// RemoveRole revokes a role from a user.
//
// @Summary      Remove a role from a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleChangeRequest  true  "Role removal"
// @Success      200   {object}  roleChangeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/roles/remove [post]
func (h *AdminHandler) RemoveRole(c echo.Context) error {
	req, err := bindRoleChange(c)
	if err != nil {
		return err
	}

	ok, err := h.roleService.Remove(c.Request().Context(), req.UserID, req.Role)
	if err != nil {
		metrics.RoleChangesTotal.WithLabelValues("remove", "failure").Inc()
		return err
	}
	if !ok {
		metrics.RoleChangesTotal.WithLabelValues("remove", "failure").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "failed to remove role")
	}

	metrics.RoleChangesTotal.WithLabelValues("remove", "success").Inc()
	return c.JSON(http.StatusOK, roleChangeResponse{Message: "role " + req.Role + " removed successfully"})
}

// UserRoles lists a user's roles in assignment order.
//
// @Summary      List a user's roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userRolesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users/{id}/roles [get]
func (h *AdminHandler) UserRoles(c echo.Context) error {
	userID := c.Param("id")
	roles, err := h.roleService.ListRoles(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []string{}
	}
	return c.JSON(http.StatusOK, userRolesResponse{UserID: userID, Roles: roles})
}

// bindRoleChange parses a role change request and rejects role names outside
// the well-known set before they reach the role manager.
func bindRoleChange(c echo.Context) (*roleChangeRequest, error) {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !domain.IsKnownRole(req.Role) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, domain.ErrRoleUnknown.Error())
	}
	return &req, nil
}
