package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accountd/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, db DBTX, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	ExistsByLoginOrEmail(ctx context.Context, db DBTX, login, email string) (bool, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

// Create — вставка подтверждённого аккаунта. Принимает DBTX, чтобы confirm
// мог вставить аккаунт в той же транзакции, где удаляется pending-строка.
func (r *userRepository) Create(ctx context.Context, db DBTX, user *models.User) error {
	if db == nil {
		db = r.DB
	}
	const q = `
		INSERT INTO users (user_login, user_mail, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at
	`
	err := db.QueryRowContext(ctx, q, user.Login, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	const q = `
		SELECT user_id, user_login, user_mail, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, id))
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	const q = `
		SELECT user_id, user_login, user_mail, password_hash, created_at
		FROM users
		WHERE user_login = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, login))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT user_id, user_login, user_mail, password_hash, created_at
		FROM users
		ORDER BY user_id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user list rows: %w", err)
	}
	return users, nil
}

// ExistsByLoginOrEmail — быстрая проверка занятости среди подтверждённых
// аккаунтов. Настоящую гарантию даёт уникальный индекс, это только fast-path.
func (r *userRepository) ExistsByLoginOrEmail(ctx context.Context, db DBTX, login, email string) (bool, error) {
	if db == nil {
		db = r.DB
	}
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE user_login = $1 OR user_mail = $2
		)
	`
	var exists bool
	if err := db.QueryRowContext(ctx, q, login, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}
