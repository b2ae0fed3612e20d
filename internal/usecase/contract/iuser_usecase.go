package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// Session is the outcome of a successful authentication.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// GuideApplication holds the fields of a guide signup. Experience is a
// pointer so that a missing value can be told apart from zero years.
type GuideApplication struct {
	Name           string   `validate:"required"`
	Email          string   `validate:"required,email"`
	Password       string   `validate:"required"`
	PhoneNumber    string   `validate:"required"`
	Experience     *int     `validate:"required,min=0"`
	Languages      []string `validate:"omitempty,dive,required"`
	Specialization string   `validate:"required"`
}

// IUserUseCase covers accounts and sessions.
type IUserUseCase interface {
	Signup(ctx context.Context, name, email, password string, role entity.UserRole) (*entity.User, error)
	SignupGuide(ctx context.Context, app GuideApplication) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	ForgotPassword(ctx context.Context, email, resetBaseURL string) error
	ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) (*Session, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*Session, error)
	LoginWithOAuth(ctx context.Context, name, email string) (*Session, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	PromoteUser(ctx context.Context, userID string) (*entity.User, error)
	DemoteUser(ctx context.Context, userID string) (*entity.User, error)
}
