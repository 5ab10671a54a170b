package app

import (
	"database/sql"
	"fmt"
)

// Схема создаётся при старте (как в исходном сервисе). Уникальные индексы на
// login/email в обеих таблицах — источник истины для DuplicateIdentity;
// проверки в сервисах поверх них — только быстрый путь.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       SERIAL PRIMARY KEY,
		user_login    TEXT NOT NULL UNIQUE,
		user_mail     TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pending_registrations (
		id                SERIAL PRIMARY KEY,
		user_login        TEXT NOT NULL UNIQUE,
		user_mail         TEXT NOT NULL UNIQUE,
		password_hash     TEXT NOT NULL,
		confirmation_code TEXT NOT NULL,
		expires_at        TIMESTAMPTZ NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL,
		last_sent_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pending_mail_code
		ON pending_registrations (user_mail, confirmation_code)`,
	`CREATE TABLE IF NOT EXISTS records (
		record_id          SERIAL PRIMARY KEY,
		record_name        TEXT NOT NULL,
		record_description TEXT NOT NULL,
		user_id_fk         INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE
	)`,
}

func ensureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
