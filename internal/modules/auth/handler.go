package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"publicsquare/internal/config"
	"publicsquare/internal/middleware"
	"publicsquare/internal/pkg/response"
	"publicsquare/internal/pkg/validator"
)

const RefreshCookieName = "refresh_token"

// Handler exposes the auth flows over HTTP and owns the refresh cookie.
type Handler struct {
	service *Service
	cookie  config.AuthConfig
}

func NewHandler(service *Service, cookie config.AuthConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// Register creates an account and opens the first session.
// @Summary		Register
// @Description	Creates a user, returns an access token and sets the refresh_token cookie.
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	TokenResponse
// @Failure		400	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	session, err := h.service.Register(c.Request.Context(), req, clientInfo(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	response.Success(c, http.StatusCreated, h.tokenResponse(session.AccessToken))
}

// Login opens a new session; earlier sessions stay active.
// @Summary		Login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	TokenResponse
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req, clientInfo(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	response.Success(c, http.StatusOK, h.tokenResponse(session.AccessToken))
}

// Refresh issues a new access token from the refresh_token cookie.
// @Summary		Refresh access token
// @Tags		Auth
// @Produce		json
// @Success		200	{object}	TokenResponse
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(RefreshCookieName)
	if err != nil || raw == "" {
		response.FromError(c, ErrRefreshTokenMissing)
		return
	}

	access, err := h.service.Refresh(c.Request.Context(), raw)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.tokenResponse(access))
}

// Logout revokes the cookie's refresh token and clears the cookie. It does
// not fail on a missing or unknown token.
// @Summary		Logout
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	raw, _ := c.Cookie(RefreshCookieName)
	if err := h.service.Logout(c.Request.Context(), middleware.UserID(c), raw); err != nil {
		// the client is logged out regardless; keep the failure for the logs
		_ = c.Error(err)
	}

	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// LogoutAll revokes every refresh token of the caller.
// @Summary		Logout from all devices
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/logout-all [post]
func (h *Handler) LogoutAll(c *gin.Context) {
	n, err := h.service.LogoutAll(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Logged out from %d device(s)", n),
		"revoked": n,
	})
}

// Sessions lists the caller's active refresh sessions.
// @Summary		Active sessions
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{array}	SessionResponse
// @Router		/auth/sessions [get]
func (h *Handler) Sessions(c *gin.Context) {
	sessions, err := h.service.Sessions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sessions)
}

func (h *Handler) tokenResponse(access string) TokenResponse {
	return TokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   h.service.AccessTTLSeconds(),
	}
}

func (h *Handler) setRefreshCookie(c *gin.Context, raw string) {
	c.SetSameSite(h.cookie.SameSite())
	c.SetCookie(RefreshCookieName, raw, int(h.cookie.RefreshTTL.Seconds()), h.cookie.CookiePath, h.cookie.CookieDomain, h.cookie.CookieSecure, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite())
	c.SetCookie(RefreshCookieName, "", -1, h.cookie.CookiePath, h.cookie.CookieDomain, h.cookie.CookieSecure, true)
}

func clientInfo(c *gin.Context) ClientInfo {
	return ClientInfo{UserAgent: c.Request.UserAgent(), IP: c.ClientIP()}
}
