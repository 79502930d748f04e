package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secureapp/identity-service/internal/api/metrics"
	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
	"github.com/secureapp/identity-service/internal/core/validation"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Sanitize before anything else sees the username: injection attempts
	// are rejected here and never reach the credential store.
	username := validation.ValidateUsername(req.Username)
	if !username.IsValid {
		metrics.ValidationFailuresTotal.WithLabelValues("username").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, username.ErrorMessage)
	}

	result, err := h.authService.Login(c.Request().Context(), username.SanitizedValue, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("locked_out").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:      result.Token,
		Username:   result.Username,
		Roles:      result.Roles,
		Expiration: result.Expiration,
	})
}

// Register creates a new user account with the default User role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username := validation.ValidateUsername(req.Username)
	if !username.IsValid {
		metrics.ValidationFailuresTotal.WithLabelValues("username").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, username.ErrorMessage)
	}
	email := validation.ValidateEmail(req.Email)
	if !email.IsValid {
		metrics.ValidationFailuresTotal.WithLabelValues("email").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, email.ErrorMessage)
	}
	password := validation.ValidatePassword(req.Password)
	if !password.IsValid {
		metrics.ValidationFailuresTotal.WithLabelValues("password").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, password.ErrorMessage)
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: username.SanitizedValue,
		Email:    email.SanitizedValue,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
