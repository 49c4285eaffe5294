package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"timekeep/internal/config"
	"timekeep/internal/repository/postgres"
	"timekeep/pkg/password"
)

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("=== Setting Up Database ===")
	fmt.Println()

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	schema, err := os.ReadFile("db/schema.sql")
	if err != nil {
		log.Fatalf("❌ Failed to read schema file: %v", err)
	}

	ctx := context.Background()

	fmt.Println("Executing schema...")
	if _, err := db.Pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("❌ Failed to execute schema: %v", err)
	}

	fmt.Println("✅ Schema executed successfully")
	fmt.Println()

	fmt.Println("=== Verifying Tables ===")
	tables := []string{"users", "clients", "projects", "time_entries", "pay_periods", "links", "scripts", "audit_events"}

	for _, table := range tables {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)`
		if err := db.Pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
			fmt.Printf("❌ Error checking table '%s': %v\n", table, err)
			continue
		}

		if exists {
			fmt.Printf("✅ Table '%s' created\n", table)
		} else {
			fmt.Printf("❌ Table '%s' NOT created\n", table)
		}
	}

	fmt.Println()
	seedAdmin(ctx, db)

	fmt.Println()
	fmt.Println("=== Database Setup Complete ===")
	fmt.Println()
	fmt.Println("Next: Run 'go run ./cmd/timekeep' to start the server")
}

// seedAdmin creates the initial admin account if no users exist. The
// password must be changed on first login.
func seedAdmin(ctx context.Context, db *postgres.DB) {
	var count int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		log.Fatalf("❌ Failed to count users: %v", err)
	}

	if count > 0 {
		fmt.Println("Users already exist, skipping admin seed")
		return
	}

	hash, err := password.Hash(seedAdminPassword)
	if err != nil {
		log.Fatalf("❌ Failed to hash seed password: %v", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, display_name, is_admin) VALUES ($1, $2, $3, TRUE)`,
		seedAdminUsername, hash, "Administrator",
	)
	if err != nil {
		log.Fatalf("❌ Failed to seed admin user: %v", err)
	}

	fmt.Printf("✅ Seeded admin user '%s' (change the password immediately)\n", seedAdminUsername)
}
