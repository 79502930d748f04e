package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
	"github.com/secureapp/identity-service/internal/core/validation"
)

// UserHandler serves user lookup and profile routes.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type profileResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

// Search finds users whose username or email contains the given term.
// The term is run through the denylist sanitizer before it reaches the
// repository; the repository itself only performs parameterized,
// literal-substring matching.
//
// @Summary      Search users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        term  query     string  true  "Search term"
// @Success      200   {array}   userSummary
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	term := c.QueryParam("term")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search term cannot be empty")
	}

	sanitized := validation.StripDangerous(term)
	users, err := h.users.Search(c.Request().Context(), sanitized)
	if err != nil {
		return err
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toSummary(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Profile returns the calling user's own identity as carried by the token.
// Any authenticated subject may call it.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		Roles:    claims.Roles,
	})
}

// Sensitive is restricted to the Admin and User roles via RBAC wiring.
//
// @Summary      Role-restricted sample data
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users/sensitive [get]
func (h *UserHandler) Sensitive(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"data": "sensitive data"})
}

func toSummary(u *domain.User) userSummary {
	return userSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
