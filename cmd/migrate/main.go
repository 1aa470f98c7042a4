package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"publicsquare/internal/config"
	"publicsquare/internal/database"
)

const usage = `usage: migrate [-steps N] up|down|version

  up       apply all pending migrations
  down     roll back N migrations (default 1)
  version  print the current schema version`

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if !database.IsPostgres(cfg.DatabaseURL) {
		log.Fatal("DATABASE_URL must point at PostgreSQL; SQLite schemas are created by AutoMigrate on startup")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	m, err := database.NewMigrator(db)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-*steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Println("no migrations applied")
			return
		}
		if verr != nil {
			log.Fatal(verr)
		}
		log.Printf("version=%d dirty=%t", version, dirty)
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate %s failed: %v", flag.Arg(0), err)
	}
	version, dirty, _ := m.Version()
	log.Printf("migrate %s done: version=%d dirty=%t", flag.Arg(0), version, dirty)
}
