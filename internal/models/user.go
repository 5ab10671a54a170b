package models

import "time"

type User struct {
	ID           int       `json:"user_id"`
	Login        string    `json:"user_login"`
	Email        string    `json:"user_mail"`
	PasswordHash string    `json:"-"` // не отдаём наружу
	CreatedAt    time.Time `json:"-"`
}

type LoginRequest struct {
	Login    string `json:"user_login" binding:"required"`
	Password string `json:"user_password" binding:"required"`
}
