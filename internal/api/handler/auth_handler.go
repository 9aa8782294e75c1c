package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royalestate/realty-platform/internal/api/metrics"
	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// AuthHandler exposes account registration, sign-in and session inspection.
// A nil provider means no backend is configured: only the guest path works.
type AuthHandler struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
}

func NewAuthHandler(provider ports.AuthProvider, sessions ports.SessionStore) *AuthHandler {
	return &AuthHandler{provider: provider, sessions: sessions}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type sessionResponse struct {
	Token    string           `json:"token,omitempty"`
	Identity *domain.Identity `json:"identity"`
}

// Register creates a new account and signs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Account credentials"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	if h.provider == nil {
		return domain.ErrBackendUnavailable
	}

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.provider.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.sessions.EstablishSession(c.Request().Context())
	metrics.SessionLoginsTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, sessionResponse{Token: session.Token, Identity: h.sessions.Current()})
}

// Login authenticates an account and returns a session token.
//
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Account credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if h.provider == nil {
		return domain.ErrBackendUnavailable
	}

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.provider.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.sessions.EstablishSession(c.Request().Context())
	metrics.SessionLoginsTotal.WithLabelValues("password").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Token: session.Token, Identity: h.sessions.Current()})
}

// Guest installs the fixed guest identity. No backend call is involved.
//
// @Summary      Continue as guest
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/auth/guest [post]
func (h *AuthHandler) Guest(c echo.Context) error {
	identity := h.sessions.LoginAsGuest()
	metrics.SessionLoginsTotal.WithLabelValues("guest").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Identity: identity})
}

// Logout terminates the remote session and clears the local identity. The
// local identity is cleared even when the remote call fails.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session returns the identity currently held by this instance, or a null
// identity when nobody is signed in.
//
// @Summary      Inspect the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{Identity: h.sessions.Current()})
}
