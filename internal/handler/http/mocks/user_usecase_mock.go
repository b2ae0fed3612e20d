package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailSignup         bool
	ShouldFailSignupGuide    bool
	ShouldFailLogin          bool
	ShouldFailAuthenticate   bool
	ShouldFailForgotPassword bool
	ShouldFailResetPassword  bool
	ShouldFailUpdatePassword bool
	ShouldFailLoginWithOAuth bool
	ShouldFailGetByID        bool
	ShouldFailListUsers      bool
	ShouldFailPromoteUser    bool
	ShouldFailDemoteUser     bool

	// Return values
	MockUser      entity.User
	MockToken     string
	MockExpiresAt time.Time

	// Recorded arguments
	LastSignupRole  entity.UserRole
	LastResetURL    string
	LastAuthToken   string
	LastApplication usecasecontract.GuideApplication
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:    "mock-user-id",
			Name:  "Test Traveler",
			Email: "test@example.com",
			Role:  entity.UserRoleUser,
		},
		MockToken:     "mock_session_token",
		MockExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func (m *MockUserUsecase) session() *usecasecontract.Session {
	u := m.MockUser
	return &usecasecontract.Session{User: &u, Token: m.MockToken, ExpiresAt: m.MockExpiresAt}
}

func (m *MockUserUsecase) Signup(ctx context.Context, name, email, password string, role entity.UserRole) (*entity.User, error) {
	m.LastSignupRole = role
	if m.ShouldFailSignup {
		return nil, apperror.Conflict("Email already in use. Please use another email")
	}
	u := m.MockUser
	return &u, nil
}

func (m *MockUserUsecase) SignupGuide(ctx context.Context, app usecasecontract.GuideApplication) (*entity.User, error) {
	m.LastApplication = app
	if m.ShouldFailSignupGuide {
		return nil, apperror.Validation("Invalid input data", "phone_number is required", "experience is required")
	}
	u := m.MockUser
	u.Role = entity.UserRoleGuide
	return &u, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*usecasecontract.Session, error) {
	if m.ShouldFailLogin {
		return nil, apperror.Auth("Incorrect email or password")
	}
	return m.session(), nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	m.LastAuthToken = token
	if m.ShouldFailAuthenticate || token == "" {
		return nil, apperror.Auth("Invalid token. Please log in again!")
	}
	u := m.MockUser
	return &u, nil
}

func (m *MockUserUsecase) ForgotPassword(ctx context.Context, email, resetBaseURL string) error {
	m.LastResetURL = resetBaseURL
	if m.ShouldFailForgotPassword {
		return apperror.NotFound("There is no user with that email address.")
	}
	return nil
}

func (m *MockUserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) (*usecasecontract.Session, error) {
	if m.ShouldFailResetPassword {
		return nil, apperror.Validation("Token is invalid or has expired")
	}
	return m.session(), nil
}

func (m *MockUserUsecase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*usecasecontract.Session, error) {
	if m.ShouldFailUpdatePassword {
		return nil, apperror.Auth("Your current password is wrong.")
	}
	return m.session(), nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, name, email string) (*usecasecontract.Session, error) {
	if m.ShouldFailLoginWithOAuth {
		return nil, apperror.Unexpected("internal server error", nil)
	}
	return m.session(), nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, apperror.NotFound("No user found with that ID")
	}
	u := m.MockUser
	return &u, nil
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	if m.ShouldFailListUsers {
		return nil, apperror.Unexpected("internal server error", nil)
	}
	u := m.MockUser
	return []*entity.User{&u}, nil
}

func (m *MockUserUsecase) PromoteUser(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailPromoteUser {
		return nil, apperror.Validation("user is already an admin")
	}
	u := m.MockUser
	u.ID = userID
	u.Role = entity.UserRoleAdmin
	return &u, nil
}

func (m *MockUserUsecase) DemoteUser(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailDemoteUser {
		return nil, apperror.Forbidden("a superadmin cannot be demoted")
	}
	u := m.MockUser
	u.ID = userID
	u.Role = entity.UserRoleUser
	return &u, nil
}
