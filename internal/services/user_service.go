package services

import (
	"context"
	"errors"
	"log"

	"accountd/internal/models"
	"accountd/internal/repositories"
)

// ErrInvalidCredentials — единый ответ на «нет такого логина» и «пароль не
// подошёл»: клиент не должен узнать, какая половина была неверной.
var ErrInvalidCredentials = errors.New("invalid login or password")

type UserService interface {
	Login(ctx context.Context, login, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{
		repo: repo,
		auth: auth,
	}
}

func (s *userService) Login(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Printf("[auth][login] unknown login")
		return nil, ErrInvalidCredentials
	}
	if !s.auth.CheckPassword(password, user.PasswordHash) {
		log.Printf("[auth][login] password mismatch for user_id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	log.Printf("[auth][login] success user_id=%d", user.ID)
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
