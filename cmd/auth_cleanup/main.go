package main

import (
	"context"
	"log"
	"time"

	"publicsquare/internal/config"
	"publicsquare/internal/database"
	"publicsquare/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tokens := repository.NewRefreshTokenRepository(db, cfg.Auth.RefreshTokenPepper)
	deleted, err := tokens.CleanupExpired(ctx, time.Now().UTC(), cfg.Auth.ExpiredGrace, cfg.Auth.RevokedRetention)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d grace=%s retention=%s", deleted, cfg.Auth.ExpiredGrace, cfg.Auth.RevokedRetention)
}
