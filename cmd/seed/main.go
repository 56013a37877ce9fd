// seed inserts development sample users for local testing and e2e runs.
// Idempotent: exits early when the user table is not empty.
//
// The fixed ids double as bearer subjects, so tooling that holds a trusted
// signing key can mint tokens for these users without querying the database.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/huddlehq/huddle/internal/teams/app"
	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/store/drivers/sqlite"
	"github.com/huddlehq/huddle/pkg/cryptox"
)

const devPassword = "password123"

var devUsers = []domain.User{
	{ID: "dev-user-001", Name: "Alice Anderson", Email: "alice@example.com", EmailVerified: true},
	{ID: "dev-user-002", Name: "Bob Brown", Email: "bob@example.com", EmailVerified: true},
	{ID: "dev-user-003", Name: "Carol Chen", Email: "carol@example.com", EmailVerified: true},
	{ID: "dev-user-004", Name: "Dave Daniels", Email: "dave@example.com", EmailVerified: true},
}

func main() {
	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	ctx := context.Background()

	empty, err := db.Users().IsEmpty(ctx)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if !empty {
		log.Println("Seed already applied (users exist). Skipping.")
		os.Exit(0)
	}

	passwordHash, err := cryptox.HashPassword(devPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	for _, u := range devUsers {
		u.PasswordHash = passwordHash
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := db.Users().CreateUser(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", u.Email, err)
		}
	}

	log.Println("Seed completed successfully.")
	for _, u := range devUsers {
		fmt.Printf("%-12s  %-20s  password: %s\n", u.ID, u.Email, devPassword)
	}
}
