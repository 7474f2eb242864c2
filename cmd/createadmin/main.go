// Command createadmin provisions a staff account directly in the database.
// Run it once after deployment to bootstrap the first administrator:
//
//	createadmin -email admin@example.com -password secret -first Ada -last Lovelace
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"eduground/internal/middleware/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	email := flag.String("email", "", "email address of the admin account")
	password := flag.String("password", "", "password for the admin account")
	first := flag.String("first", "", "first name")
	last := flag.String("last", "", "last name")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *email == "" || *password == "" {
		logger.Fatal().Msg("-email and -password are required")
	}

	if err := godotenv.Load(".env"); err != nil {
		logger.Debug().Err(err).Msg(".env file not found, using system environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close(ctx)

	hashedPassword, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to hash password")
	}

	tag, err := conn.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, is_staff, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, true, true, now())
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), *email, hashedPassword, *first, *last,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to insert admin user")
	}
	if tag.RowsAffected() == 0 {
		logger.Fatal().Str("email", *email).Msg("a user with this email already exists")
	}

	logger.Info().Str("email", *email).Msg("admin user created")
}
