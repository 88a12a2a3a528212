package database

import (
	"fmt"
)

func RunMigrations() error {
	usersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(usersTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}

	moviesTableSQL := `
	CREATE TABLE IF NOT EXISTS movies (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		year INTEGER NOT NULL,
		genres TEXT NOT NULL DEFAULT '',
		rating DOUBLE PRECISION,
		poster_url TEXT NOT NULL DEFAULT '',
		owner_id BIGINT NOT NULL REFERENCES users(id),
		likes INTEGER NOT NULL DEFAULT 0,
		comments JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_movies_owner_id ON movies(owner_id);
	CREATE INDEX IF NOT EXISTS idx_movies_name_lower ON movies(LOWER(name));
	`

	_, err = DB.Exec(moviesTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run movies migration: %w", err)
	}

	sessionsTableSQL := `
	CREATE TABLE IF NOT EXISTS sessions (
		token VARCHAR(64) PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		username VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	`

	_, err = DB.Exec(sessionsTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run sessions migration: %w", err)
	}

	// Expired sessions are ignored at lookup; clear leftovers at boot
	_, err = DB.Exec("DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP")
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	return nil
}
