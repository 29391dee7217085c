package app

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dwikikusuma/storefront/internal/user/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo UserRepo
	cost int
}

func NewService(repo UserRepo, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		repo: repo,
		cost: bcryptCost,
	}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || password == "" || !strings.Contains(email, "@") {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, err
	}

	return s.repo.Insert(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Login matches the credential against the stored user by username or email.
// Both an unknown user and a wrong password come back as
// ErrInvalidCredentials; the caller cannot probe which of the two it was.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (domain.User, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}
