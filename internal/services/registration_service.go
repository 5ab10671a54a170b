package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"accountd/internal/models"
	"accountd/internal/repositories"
	"accountd/internal/utils"
)

var (
	ErrDuplicateIdentity = errors.New("login or email already in use")
	ErrNotFoundOrExpired = errors.New("confirmation not found or expired")
	ErrResendThrottled   = errors.New("resend throttled")
)

const (
	confirmationTTL = 10 * time.Minute
	resendInterval  = 1 * time.Minute
)

// CodeDispatcher — асинхронная доставка кода. Реализация — MailDispatcher;
// интерфейс нужен, чтобы подсовывать фейк в тестах.
type CodeDispatcher interface {
	Enqueue(email, code string)
}

type RegistrationService interface {
	InitRegistration(ctx context.Context, login, password, email string) error
	Confirm(ctx context.Context, email, code string) (*models.User, error)
	Resend(ctx context.Context, email string) error
	Register(ctx context.Context, login, password, email string) (*models.User, error)
}

type registrationService struct {
	db         *sql.DB
	users      repositories.UserRepository
	pending    repositories.PendingRegistrationRepository
	auth       AuthService
	dispatcher CodeDispatcher
}

func NewRegistrationService(
	db *sql.DB,
	users repositories.UserRepository,
	pending repositories.PendingRegistrationRepository,
	auth AuthService,
	dispatcher CodeDispatcher,
) RegistrationService {
	return &registrationService{
		db:         db,
		users:      users,
		pending:    pending,
		auth:       auth,
		dispatcher: dispatcher,
	}
}

// InitRegistration — первый шаг двухфазной регистрации.
// Проверка занятости идёт и по аккаунтам, и по живым pending-строкам, в одной
// транзакции; протухшие заявки с тем же логином/адресом по пути удаляются.
// Письмо уходит через диспетчер уже после коммита — ответ клиенту его не ждёт.
func (s *registrationService) InitRegistration(ctx context.Context, login, password, email string) error {
	login = strings.TrimSpace(login)
	email = normalizeEmail(email)

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	code, err := utils.NewConfirmationCode()
	if err != nil {
		return err
	}

	now := time.Now()
	p := &models.PendingRegistration{
		Login:            login,
		Email:            email,
		PasswordHash:     hash,
		ConfirmationCode: code,
		ExpiresAt:        now.Add(confirmationTTL),
		CreatedAt:        now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.pending.DeleteExpired(ctx, tx, login, email, now); err != nil {
		return err
	}
	taken, err := s.users.ExistsByLoginOrEmail(ctx, tx, login, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateIdentity
	}
	livePending, err := s.pending.ExistsLiveByLoginOrEmail(ctx, tx, login, email, now)
	if err != nil {
		return err
	}
	if livePending {
		return ErrDuplicateIdentity
	}
	if err := s.pending.Create(ctx, tx, p); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrDuplicateIdentity
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init commit: %w", err)
	}

	s.dispatcher.Enqueue(email, code)
	log.Printf("[register][init] pending created: login=%q", login)
	return nil
}

// Confirm — второй шаг: изъятие заявки по точной паре (email, code) и вставка
// аккаунта в одной транзакции. Повторный confirm с тем же кодом находит
// пустоту и отвечает так же, как «никогда не существовало».
func (s *registrationService) Confirm(ctx context.Context, email, code string) (*models.User, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("confirm begin tx: %w", err)
	}
	defer tx.Rollback()

	p, err := s.pending.ConsumeByEmailAndCode(ctx, tx, email, code, time.Now())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFoundOrExpired
	}

	user := &models.User{
		Login:        p.Login,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
	}
	if err := s.users.Create(ctx, tx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// за время ожидания кода логин/адрес успел занять кто-то другой
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("confirm commit: %w", err)
	}

	log.Printf("[register][confirm] OK user_id=%d login=%q", user.ID, user.Login)
	return user, nil
}

// Resend — новый код по живой заявке, не чаще раза в минуту.
// Для неизвестного адреса отвечаем молчаливым успехом — существование заявки
// наружу не раскрываем.
func (s *registrationService) Resend(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	now := time.Now()

	p, err := s.pending.GetLiveByEmail(ctx, email, now)
	if err != nil {
		return err
	}
	if p == nil {
		log.Printf("[register][resend] no live pending for requested email")
		return nil
	}
	if now.Sub(p.LastSentAt) < resendInterval {
		return ErrResendThrottled
	}

	code, err := utils.NewConfirmationCode()
	if err != nil {
		return err
	}
	if err := s.pending.UpdateCode(ctx, p.ID, code, now.Add(confirmationTTL), now); err != nil {
		return err
	}

	s.dispatcher.Enqueue(email, code)
	log.Printf("[register][resend] code reissued: pending_id=%d", p.ID)
	return nil
}

// Register — одношаговый вариант без подтверждения. Дубликаты проверяются
// только по подтверждённым аккаунтам; гонку закрывает уникальный индекс.
func (s *registrationService) Register(ctx context.Context, login, password, email string) (*models.User, error) {
	login = strings.TrimSpace(login)
	email = normalizeEmail(email)

	taken, err := s.users.ExistsByLoginOrEmail(ctx, nil, login, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateIdentity
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Login:        login,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, nil, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	log.Printf("[register][direct] OK user_id=%d login=%q", user.ID, user.Login)
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
