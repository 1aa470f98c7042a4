package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publicsquare/internal/config"
	"publicsquare/internal/database/dbtest"
	"publicsquare/internal/middleware"
	"publicsquare/internal/pkg/jwt"
	"publicsquare/internal/pkg/validator"
	"publicsquare/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	router *gin.Engine
	tokens *repository.RefreshTokenRepository
	users  *repository.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterGinRules()

	db := dbtest.Open(t, repository.Models()...)
	users := repository.NewUserRepository(db)
	tokens := repository.NewRefreshTokenRepository(db, "pepper")
	issuer := jwt.NewIssuer("secret", 15*time.Minute, 7*24*time.Hour)
	svc := NewService(users, tokens, issuer)

	cookie := config.AuthConfig{
		RefreshTTL:     7 * 24 * time.Hour,
		CookieSameSite: "Lax",
		CookiePath:     "/api/v1/auth",
	}
	h := NewHandler(svc, cookie)

	router := gin.New()
	v1 := router.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	protected := v1.Group("")
	protected.Use(middleware.NewAuthenticator(svc).RequireUser())
	h.RegisterProtectedRoutes(protected)

	return &testServer{router: router, tokens: tokens, users: users}
}

func (s *testServer) do(t *testing.T, method, path string, body any, access string, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handler-test")
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == RefreshCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", RefreshCookieName)
	return nil
}

func decodeTokens(t *testing.T, env envelope) TokenResponse {
	t.Helper()
	var tr TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tr))
	return tr
}

func TestRegisterSetsCookieAndRejectsDuplicateUsername(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "reader", "email": "reader@example.com", "password": "ValidPass123!",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tr := decodeTokens(t, env)
	assert.NotEmpty(t, tr.AccessToken)
	assert.Equal(t, "bearer", tr.TokenType)
	assert.Equal(t, 900, tr.ExpiresIn)
	assert.NotContains(t, string(env.Data), "refresh")

	cookie := refreshCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7*24*3600, cookie.MaxAge)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	stored, err := s.tokens.FindByRawToken(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, stored.DeviceInfo)
	assert.Equal(t, "handler-test", *stored.DeviceInfo)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "reader", "email": "other@example.com", "password": "ValidPass123!",
	}, "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already registered", env.Error.Message)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "ab", "email": "not-an-email", "password": "short",
	}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestRegisterRejectsPaddedShortUsernames(t *testing.T) {
	s := newTestServer(t)

	for i, name := range []string{"    ", "  ab"} {
		w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
			"username": name, "email": fmt.Sprintf("ws%d@example.com", i), "password": "ValidPass123!",
		}, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "username %q", name)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	}

	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "  reader  ", "email": "padded@example.com", "password": "ValidPass123!",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	stored, err := s.users.GetByEmail(context.Background(), "padded@example.com")
	require.NoError(t, err)
	assert.Equal(t, "reader", stored.Username)
}

func TestLoginDoesNotLeakWhichCheckFailed(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "reader", "email": "reader@example.com", "password": "ValidPass123!",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, wrongPw := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "reader@example.com", "password": "nope-nope"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password", wrongPw.Error.Message)

	w, unknown := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ghost@example.com", "password": "nope-nope"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrongPw.Error, unknown.Error)

	w, env := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "READER@example.com", "password": "ValidPass123!"}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeTokens(t, env).AccessToken)
}

func TestRefreshFlow(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "reader", "email": "reader@example.com", "password": "ValidPass123!",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	access := decodeTokens(t, env).AccessToken
	cookie := refreshCookie(t, w)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Refresh token missing", env.Error.Message)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", &http.Cookie{Name: RefreshCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid refresh token", env.Error.Message)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeTokens(t, env).AccessToken)

	// logout revokes the cookie's token
	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", nil, access, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := refreshCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Refresh token revoked or expired", env.Error.Message)

	// logging out again with a dead token still succeeds
	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", nil, access, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "reader", "email": "reader@example.com", "password": "ValidPass123!",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	first := refreshCookie(t, w)

	cookies := []*http.Cookie{first}
	var access string
	for i := 0; i < 2; i++ {
		w, env := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "reader@example.com", "password": "ValidPass123!"}, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		cookies = append(cookies, refreshCookie(t, w))
		access = decodeTokens(t, env).AccessToken
	}

	w, env := s.do(t, http.MethodGet, "/api/v1/auth/sessions", nil, access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sessions []SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sessions))
	assert.Len(t, sessions, 3)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/logout-all", nil, access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Message string `json:"message"`
		Revoked int64  `json:"revoked"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.EqualValues(t, 3, out.Revoked)
	assert.Equal(t, "Logged out from 3 device(s)", out.Message)

	for _, c := range cookies {
		w, _ := s.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/auth/logout-all", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_HEADER_MISSING", env.Error.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}
