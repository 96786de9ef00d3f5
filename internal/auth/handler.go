package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/radif/mediadrop/internal/logger"
	"github.com/radif/mediadrop/internal/metrics"
	"github.com/radif/mediadrop/internal/response"
)

// CookieName carries the session token between browser and server.
const CookieName = "upload_session"

// Handler holds HTTP handlers for the /api/auth endpoints.
type Handler struct {
	svc          *Service
	secureCookie bool
}

// NewHandler creates a new auth Handler. secureCookie should be true in production.
func NewHandler(svc *Service, secureCookie bool) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie}
}

type loginRequest struct {
	Password interface{} `json:"password" swaggertype:"string" example:"correct horse battery staple"`
}

type statusBody struct {
	Authenticated bool `json:"authenticated" example:"true"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Check the shared password and start a session. The token is returned only as an HttpOnly cookie.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Password"
//	@Success		200		{object}	response.SuccessBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		401		{object}	response.ErrorBody
//	@Failure		429		{object}	response.ErrorBody
//	@Router			/auth [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	password, ok := req.Password.(string)
	if !ok || password == "" {
		response.BadRequest(w, "Password is required")
		return
	}

	if !h.svc.ValidatePassword(password) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		logger.Warn().Str("remote", r.RemoteAddr).Msg("login rejected")
		response.Unauthorized(w, "Invalid password")
		return
	}

	token, err := h.svc.CreateSession()
	if err != nil {
		logger.Error().Err(err).Msg("create session")
		response.InternalError(w, "Failed to create session")
		return
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()

	h.setCookie(w, token, int(h.svc.TTL()/time.Second))
	response.Success(w, "Authenticated")
}

// Status godoc
//
//	@Summary		Session status
//	@Description	Report whether the request carries a live session cookie.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	statusBody
//	@Failure		401	{object}	statusBody
//	@Router			/auth [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	token := TokenFromRequest(r)
	if token == "" || !h.svc.IsValidSession(token) {
		response.JSON(w, http.StatusUnauthorized, statusBody{Authenticated: false})
		return
	}
	response.OK(w, statusBody{Authenticated: true})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Destroy the presented session, if any, and clear the cookie. Always succeeds.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	response.SuccessBody
//	@Router			/auth [delete]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := TokenFromRequest(r); token != "" {
		h.svc.DestroySession(token)
	}
	h.setCookie(w, "", -1)
	response.Success(w, "Logged out")
}

// TokenFromRequest returns the session cookie value, or "" when absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// setCookie writes the session cookie. maxAge < 0 expires it immediately
// (emitted as Max-Age=0).
func (h *Handler) setCookie(w http.ResponseWriter, value string, maxAge int) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0).UTC()
	}
	http.SetCookie(w, c)
}
