package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/delivery/http/middleware"
	"invitationgallery/internal/domain"
)

// CredentialsRequest is the request body for POST /admin/login and POST /admin/register.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// SessionStatusResponse is the response body for GET /admin/session.
type SessionStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

type AdminController struct {
	Logger       *slog.Logger
	Service      domain.AdminAuthService
	SecureCookie bool
}

func NewAdminController(logger *slog.Logger, svc domain.AdminAuthService, secureCookie bool) *AdminController {
	return &AdminController{
		Logger:       logger,
		Service:      svc,
		SecureCookie: secureCookie,
	}
}

// Login godoc
// @Summary Log in as admin
// @Description Checks the credentials and sets the HTTP-only admin session cookie for 7 days.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Credentials"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse "Invalid credentials"
// @Failure 429 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, expiresAt, err := c.Service.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.MsgInvalidCredentials)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	http.SetCookie(w, c.sessionCookie(token, expiresAt))
	helpers.WriteSuccess(w, http.StatusOK)
}

// Logout godoc
// @Summary Log out
// @Description Destroys the server-side session and clears the cookie. Succeeds without a session too.
// @Tags admin
// @Produce json
// @Success 200 {object} helpers.SuccessResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /admin/logout [post]
func (c *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	http.SetCookie(w, c.clearedCookie())
	helpers.WriteSuccess(w, http.StatusOK)
}

// Session godoc
// @Summary Check the admin session
// @Description Reports whether the request carries a valid admin session. Never reveals which admin.
// @Tags admin
// @Produce json
// @Success 200 {object} SessionStatusResponse
// @Router /admin/session [get]
func (c *AdminController) Session(w http.ResponseWriter, r *http.Request) {
	_, err := c.Service.Authenticate(r.Context(), middleware.SessionToken(r))
	if err != nil && !errors.Is(err, domain.ErrUnauthorized) {
		c.Logger.ErrorContext(r.Context(), "session lookup failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSON(w, http.StatusOK, SessionStatusResponse{Authenticated: err == nil})
}

// Register godoc
// @Summary Register an admin
// @Description Creates an admin account. Does not log the new admin in.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Credentials"
// @Success 201 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse "Username already exists"
// @Failure 429 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /admin/register [post]
func (c *AdminController) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.MsgUsernameRequired)
		return
	}
	if _, err := c.Service.Register(r.Context(), username, req.Password); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.MsgUsernameTaken)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	helpers.WriteSuccess(w, http.StatusCreated)
}

func (c *AdminController) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *AdminController) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
