package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// UserFilter narrows user listings. Inactive users are never listed.
type UserFilter struct {
	Role         *entity.UserRole
	OnlyVerified bool
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	// GetUserByID retrieves an active user.
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetAnyUserByID retrieves a user regardless of the active flag.
	GetAnyUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves an active user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	// UpdateUser updates an existing user and returns the updated user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// UpdateUserPassword stores a new hash and the change timestamp.
	UpdateUserPassword(ctx context.Context, id string, hashedPassword string, changedAt time.Time) error
	SetVerified(ctx context.Context, id string, verified bool) error
	SetActive(ctx context.Context, id string, active bool) error
}
