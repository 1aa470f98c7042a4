// Package server assembles the HTTP router from the configured modules.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"publicsquare/internal/config"
	"publicsquare/internal/middleware"
	"publicsquare/internal/modules/auth"
	"publicsquare/internal/modules/clubs"
	"publicsquare/internal/modules/library"
	"publicsquare/internal/modules/users"
	"publicsquare/internal/pkg/jwt"
	"publicsquare/internal/pkg/openlibrary"
	"publicsquare/internal/pkg/validator"
	"publicsquare/internal/repository"
)

type options struct {
	lookup library.ISBNLookup
	issuer *jwt.Issuer
	hub    *clubs.Hub
}

type Option func(*options)

// WithISBNLookup replaces the Open Library client.
func WithISBNLookup(l library.ISBNLookup) Option {
	return func(o *options) { o.lookup = l }
}

// WithIssuer replaces the token issuer built from cfg.Auth.
func WithIssuer(i *jwt.Issuer) Option {
	return func(o *options) { o.issuer = i }
}

// WithHub shares an existing club event hub.
func WithHub(h *clubs.Hub) Option {
	return func(o *options) { o.hub = h }
}

// New wires repositories, services and handlers into a gin engine. Every API
// route lives under /api/v1; / and /health stay at the root.
func New(cfg *config.Config, db *gorm.DB, opts ...Option) *gin.Engine {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lookup == nil {
		o.lookup = openlibrary.NewClient(cfg.OpenLibraryBaseURL, cfg.OpenLibraryTimeout)
	}
	if o.issuer == nil {
		o.issuer = jwt.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	}

	if o.hub == nil {
		o.hub = clubs.NewHub()
	}

	validator.RegisterGinRules()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db, cfg.Auth.RefreshTokenPepper)
	clubRepo := repository.NewClubRepository(db)
	bookRepo := repository.NewBookRepository(db)
	userBookRepo := repository.NewUserBookRepository(db)
	listRepo := repository.NewReadingListRepository(db)

	authService := auth.NewService(userRepo, tokenRepo, o.issuer)
	authHandler := auth.NewHandler(authService, cfg.Auth)

	usersHandler := users.NewHandler(users.NewService(userRepo, tokenRepo))

	clubsHandler := clubs.NewHandler(clubs.NewService(clubRepo, o.hub), o.hub)

	libraryHandler := library.NewHandler(library.NewService(bookRepo, userBookRepo, listRepo, o.lookup))

	authenticator := middleware.NewAuthenticator(authService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": cfg.AppName, "version": cfg.Version})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		clubsHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(authenticator.RequireUser())
		{
			authHandler.RegisterProtectedRoutes(protected)
			usersHandler.RegisterProtectedRoutes(protected)
			clubsHandler.RegisterProtectedRoutes(protected)
			libraryHandler.RegisterProtectedRoutes(protected)
		}

		ws := v1.Group("")
		ws.Use(authenticator.RequireUserOrQueryToken())
		clubsHandler.RegisterEventRoutes(ws)
	}

	return r
}
