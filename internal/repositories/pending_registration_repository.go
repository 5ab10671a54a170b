package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"accountd/internal/models"
)

type PendingRegistrationRepository interface {
	Create(ctx context.Context, db DBTX, p *models.PendingRegistration) error
	GetLiveByEmail(ctx context.Context, email string, now time.Time) (*models.PendingRegistration, error)
	ExistsLiveByLoginOrEmail(ctx context.Context, db DBTX, login, email string, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, db DBTX, login, email string, now time.Time) error
	ConsumeByEmailAndCode(ctx context.Context, tx DBTX, email, code string, now time.Time) (*models.PendingRegistration, error)
	UpdateCode(ctx context.Context, id int64, code string, expiresAt, sentAt time.Time) error
}

type pendingRegistrationRepository struct {
	DB *sql.DB
}

func NewPendingRegistrationRepository(db *sql.DB) PendingRegistrationRepository {
	return &pendingRegistrationRepository{DB: db}
}

func (r *pendingRegistrationRepository) Create(ctx context.Context, db DBTX, p *models.PendingRegistration) error {
	if db == nil {
		db = r.DB
	}
	const q = `
		INSERT INTO pending_registrations
			(user_login, user_mail, password_hash, confirmation_code, expires_at, created_at, last_sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`
	err := db.QueryRowContext(ctx, q,
		p.Login, p.Email, p.PasswordHash, p.ConfirmationCode, p.ExpiresAt, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("pending create: %w", err)
	}
	p.LastSentAt = p.CreatedAt
	return nil
}

// GetLiveByEmail — живая (неистёкшая) заявка по адресу; nil, если её нет.
func (r *pendingRegistrationRepository) GetLiveByEmail(ctx context.Context, email string, now time.Time) (*models.PendingRegistration, error) {
	const q = `
		SELECT id, user_login, user_mail, password_hash, confirmation_code, expires_at, created_at, last_sent_at
		FROM pending_registrations
		WHERE user_mail = $1 AND expires_at > $2
	`
	p := &models.PendingRegistration{}
	err := r.DB.QueryRowContext(ctx, q, email, now).Scan(
		&p.ID, &p.Login, &p.Email, &p.PasswordHash, &p.ConfirmationCode,
		&p.ExpiresAt, &p.CreatedAt, &p.LastSentAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pending by email: %w", err)
	}
	return p, nil
}

func (r *pendingRegistrationRepository) ExistsLiveByLoginOrEmail(ctx context.Context, db DBTX, login, email string, now time.Time) (bool, error) {
	if db == nil {
		db = r.DB
	}
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM pending_registrations
			WHERE (user_login = $1 OR user_mail = $2) AND expires_at > $3
		)
	`
	var exists bool
	if err := db.QueryRowContext(ctx, q, login, email, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("pending exists: %w", err)
	}
	return exists, nil
}

// DeleteExpired — ленивая уборка: протухшие заявки с тем же логином или адресом
// удаляются по пути init, чтобы не блокировать повторную регистрацию.
// Фонового reaper'а нет.
func (r *pendingRegistrationRepository) DeleteExpired(ctx context.Context, db DBTX, login, email string, now time.Time) error {
	if db == nil {
		db = r.DB
	}
	const q = `
		DELETE FROM pending_registrations
		WHERE (user_login = $1 OR user_mail = $2) AND expires_at <= $3
	`
	if _, err := db.ExecContext(ctx, q, login, email, now); err != nil {
		return fmt.Errorf("pending delete expired: %w", err)
	}
	return nil
}

// ConsumeByEmailAndCode — атомарное изъятие заявки по точной паре (email, code)
// с ещё не истёкшим сроком. Вызывается только внутри транзакции confirm:
// удалённая строка и вставка аккаунта коммитятся вместе, повтор кода невозможен.
func (r *pendingRegistrationRepository) ConsumeByEmailAndCode(ctx context.Context, tx DBTX, email, code string, now time.Time) (*models.PendingRegistration, error) {
	const q = `
		DELETE FROM pending_registrations
		WHERE user_mail = $1 AND confirmation_code = $2 AND expires_at > $3
		RETURNING id, user_login, user_mail, password_hash, confirmation_code, expires_at, created_at, last_sent_at
	`
	p := &models.PendingRegistration{}
	err := tx.QueryRowContext(ctx, q, email, code, now).Scan(
		&p.ID, &p.Login, &p.Email, &p.PasswordHash, &p.ConfirmationCode,
		&p.ExpiresAt, &p.CreatedAt, &p.LastSentAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pending consume: %w", err)
	}
	return p, nil
}

// UpdateCode — resend: новый код, продлённый срок, отметка времени отправки.
func (r *pendingRegistrationRepository) UpdateCode(ctx context.Context, id int64, code string, expiresAt, sentAt time.Time) error {
	const q = `
		UPDATE pending_registrations
		SET confirmation_code = $2, expires_at = $3, last_sent_at = $4
		WHERE id = $1
	`
	if _, err := r.DB.ExecContext(ctx, q, id, code, expiresAt, sentAt); err != nil {
		return fmt.Errorf("pending update code: %w", err)
	}
	return nil
}
