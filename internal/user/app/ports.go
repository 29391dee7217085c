package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/user/domain"
)

type UserRepo interface {
	// Insert stores a new user. A duplicate email maps to ErrEmailTaken.
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	// FindByUsernameOrEmail matches either field; absence maps to ErrUserNotFound.
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (domain.User, error)
}
