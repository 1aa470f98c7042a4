package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/apperror"
	"publicsquare/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxUser   = "user"
)

// UserResolver turns a bearer access token into the active user it names.
type UserResolver interface {
	ResolveUser(ctx context.Context, accessToken string) (*domain.User, error)
}

// Authenticator guards protected routes.
type Authenticator struct {
	resolver UserResolver
}

func NewAuthenticator(resolver UserResolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

// RequireUser resolves the Authorization header and stores the caller in the context.
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return a.require(false)
}

// RequireUserOrQueryToken also accepts ?token= for clients that cannot set
// headers, such as browser websockets.
func (a *Authenticator) RequireUserOrQueryToken() gin.HandlerFunc {
	return a.require(true)
}

func (a *Authenticator) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c, allowQuery)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		user, err := a.resolver.ResolveUser(c.Request.Context(), token)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUser, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if allowQuery {
			if token := c.Query("token"); token != "" {
				return token, nil
			}
		}
		return "", apperror.Unauthorized("AUTH_HEADER_MISSING", "Not authenticated")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.Unauthorized("INVALID_AUTH_FORMAT", "Invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

// UserID returns the caller id, or 0 outside protected routes.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
