package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"publicsquare/internal/config"
	"publicsquare/internal/database"
	"publicsquare/internal/domain"
	"publicsquare/internal/pkg/password"
	"publicsquare/internal/repository"
)

const demoPassword = "password123"

func main() {
	numUsers := flag.Int("users", 5, "demo users to create")
	numBooks := flag.Int("books", 30, "catalog books to create")
	numClubs := flag.Int("clubs", 4, "clubs to create")
	seed := flag.Int64("seed", 42, "gofakeit seed")
	flag.Parse()

	gofakeit.Seed(*seed)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		log.Fatal("migrate failed:", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	userBookRepo := repository.NewUserBookRepository(db)
	listRepo := repository.NewReadingListRepository(db)
	clubRepo := repository.NewClubRepository(db)

	hash, err := password.Hash(demoPassword)
	if err != nil {
		log.Fatal(err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	users := make([]*domain.User, 0, *numUsers)
	for i := 1; i <= *numUsers; i++ {
		name := gofakeit.Name()
		u := &domain.User{
			Username: fmt.Sprintf("reader%d", i),
			Email:    fmt.Sprintf("reader%d@example.com", i),
			FullName: &name,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, u, hash); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				log.Printf("user %s already exists, skipping", u.Username)
				if existing, err := userRepo.GetByEmail(ctx, u.Email); err == nil {
					users = append(users, existing)
				}
				continue
			}
			log.Fatalf("create user: %v", err)
		}
		users = append(users, u)
		log.Printf("User created: %s / %s", u.Email, demoPassword)
	}
	if len(users) == 0 {
		log.Fatal("no users available to seed with")
	}

	// ================== BOOKS ==================
	log.Println("Creating books...")
	books := make([]*domain.Book, 0, *numBooks)
	for i := 0; i < *numBooks; i++ {
		genre := gofakeit.BookGenre()
		description := gofakeit.Paragraph(1, 3, 12, " ")
		published := gofakeit.DateRange(
			time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		).Truncate(24 * time.Hour)
		b := &domain.Book{
			Title:              gofakeit.BookTitle(),
			Author:             gofakeit.BookAuthor(),
			Genre:              &genre,
			Description:        &description,
			DateOfFirstPublish: &published,
		}
		if err := bookRepo.Create(ctx, b); err != nil {
			log.Fatalf("create book: %v", err)
		}
		books = append(books, b)
	}

	// ================== LIBRARIES ==================
	log.Println("Filling personal libraries...")
	statuses := []domain.ReadingStatus{domain.StatusUnread, domain.StatusReading, domain.StatusFinished}
	indexes := make([]int, len(books))
	for i := range indexes {
		indexes[i] = i
	}
	for _, u := range users {
		list := &domain.ReadingList{UserID: u.ID, Name: "Want to read", IsDefault: true}
		if err := listRepo.Create(ctx, list); err != nil {
			log.Fatalf("create reading list: %v", err)
		}

		gofakeit.ShuffleInts(indexes)
		for _, idx := range indexes[:min(8, len(indexes))] {
			status := statuses[gofakeit.Number(0, len(statuses)-1)]
			ub := &domain.UserBook{
				UserID:        u.ID,
				BookID:        books[idx].ID,
				ReadingStatus: status,
				IsFavorite:    gofakeit.Bool(),
			}
			if status == domain.StatusFinished {
				readAt := gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()).UTC()
				rating := float64(gofakeit.Number(1, 5))
				ub.IsRead = true
				ub.ReadDate = &readAt
				ub.Rating = &rating
			}
			if err := userBookRepo.Create(ctx, ub); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					continue
				}
				log.Fatalf("add to library: %v", err)
			}
			if status == domain.StatusUnread {
				if _, err := listRepo.AddItem(ctx, list.ID, ub.ID, nil); err != nil {
					log.Fatalf("add reading list item: %v", err)
				}
			}
		}
	}

	// ================== CLUBS ==================
	log.Println("Creating clubs...")
	for i := 0; i < *numClubs; i++ {
		owner := users[i%len(users)]
		topic := gofakeit.BookGenre()
		description := gofakeit.Sentence(10)
		maxMembers := gofakeit.Number(5, 25)
		club := &domain.Club{
			Name:        fmt.Sprintf("%s Circle", gofakeit.Adjective()),
			Description: &description,
			Topic:       &topic,
			CreatedBy:   owner.ID,
			IsActive:    true,
			MaxMembers:  &maxMembers,
		}
		if err := clubRepo.Create(ctx, club); err != nil {
			log.Fatalf("create club: %v", err)
		}
		for _, u := range users {
			if u.ID == owner.ID || !gofakeit.Bool() {
				continue
			}
			if _, err := clubRepo.AddMember(ctx, club.ID, u.ID, domain.ClubRoleMember); err != nil {
				log.Fatalf("add club member: %v", err)
			}
		}
		log.Printf("Club created: %s (owner=%s)", club.Name, owner.Username)
	}

	log.Println("Seed completed")
}
