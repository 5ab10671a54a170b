package models

import "time"

// PendingRegistration — неподтверждённая регистрация, ждёт код из письма.
// Код действует только до ExpiresAt; LastSentAt нужен для троттлинга resend.
type PendingRegistration struct {
	ID               int64     `json:"id"`
	Login            string    `json:"user_login"`
	Email            string    `json:"user_mail"`
	PasswordHash     string    `json:"-"`
	ConfirmationCode string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSentAt       time.Time `json:"-"`
}
