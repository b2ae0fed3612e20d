package mocks

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
	"github.com/shopspring/decimal"
)

// MockPackageUsecase is a mock implementation of the package catalog.
type MockPackageUsecase struct {
	ShouldFailCreate bool
	ShouldFailGet    bool
	ShouldFailDelete bool

	MockPackage entity.Package

	LastFilter entity.PackageFilter
	LastInput  usecasecontract.PackageInput
	LastUpdate entity.PackageUpdate
}

var _ usecasecontract.IPackageUseCase = (*MockPackageUsecase)(nil)

func NewMockPackageUsecase() *MockPackageUsecase {
	return &MockPackageUsecase{
		MockPackage: entity.Package{
			ID:          "mock-package-id",
			Name:        "EBC Trek",
			Description: "Fifteen days to Everest Base Camp",
			Origin:      "Kathmandu",
			Destination: "Everest Base Camp",
			Price:       decimal.RequireFromString("1499.99"),
			Duration:    15,
			Includes:    []string{"permits"},
			Difficulty:  entity.DifficultyDifficult,
			IsActive:    true,
		},
	}
}

func (m *MockPackageUsecase) ListActive(ctx context.Context, filter entity.PackageFilter) ([]*entity.Package, error) {
	m.LastFilter = filter
	p := m.MockPackage
	return []*entity.Package{&p}, nil
}

func (m *MockPackageUsecase) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	if m.ShouldFailGet {
		return nil, apperror.NotFound("No package found with that ID")
	}
	p := m.MockPackage
	return &p, nil
}

func (m *MockPackageUsecase) Create(ctx context.Context, input usecasecontract.PackageInput) (*entity.Package, error) {
	m.LastInput = input
	if m.ShouldFailCreate {
		return nil, apperror.Validation("Invalid input data", "name must have at least 3 characters", "price must be greater than 0")
	}
	p := m.MockPackage
	p.Name = input.Name
	p.Price = input.Price
	return &p, nil
}

func (m *MockPackageUsecase) Update(ctx context.Context, id string, update entity.PackageUpdate) (*entity.Package, error) {
	m.LastUpdate = update
	if m.ShouldFailGet {
		return nil, apperror.NotFound("No package found with that ID")
	}
	p := m.MockPackage
	update.Apply(&p)
	return &p, nil
}

func (m *MockPackageUsecase) SoftDelete(ctx context.Context, id string) error {
	if m.ShouldFailDelete {
		return apperror.NotFound("No package found with that ID")
	}
	return nil
}

func (m *MockPackageUsecase) HardDelete(ctx context.Context, id string) error {
	if m.ShouldFailDelete {
		return apperror.NotFound("No package found with that ID")
	}
	return nil
}

// MockGuideUsecase is a mock implementation of the guide directory.
type MockGuideUsecase struct {
	ShouldFailApprove bool
	ShouldFailReject  bool

	MockGuide        entity.User
	LastOnlyVerified bool
}

var _ usecasecontract.IGuideUseCase = (*MockGuideUsecase)(nil)

func NewMockGuideUsecase() *MockGuideUsecase {
	phone := "+977 1234"
	return &MockGuideUsecase{
		MockGuide: entity.User{
			ID:          "mock-guide-id",
			Name:        "Pemba",
			Email:       "pemba@example.com",
			Role:        entity.UserRoleGuide,
			Verified:    true,
			PhoneNumber: &phone,
			Languages:   []string{"English", "Nepali"},
		},
	}
}

func (m *MockGuideUsecase) ListGuides(ctx context.Context, onlyVerified bool) ([]*entity.User, error) {
	m.LastOnlyVerified = onlyVerified
	g := m.MockGuide
	return []*entity.User{&g}, nil
}

func (m *MockGuideUsecase) ApproveGuide(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailApprove {
		return nil, apperror.NotFound("No guide found with that ID")
	}
	g := m.MockGuide
	return &g, nil
}

func (m *MockGuideUsecase) RejectGuide(ctx context.Context, userID string) error {
	if m.ShouldFailReject {
		return apperror.NotFound("No guide found with that ID")
	}
	return nil
}

// MockContactUsecase is a mock implementation of the contact inbox.
type MockContactUsecase struct {
	ShouldFailSubmit bool
}

var _ usecasecontract.IContactUseCase = (*MockContactUsecase)(nil)

func (m *MockContactUsecase) Submit(ctx context.Context, name, email, message string) (*entity.Contact, error) {
	if m.ShouldFailSubmit {
		return nil, apperror.Validation("Invalid input data", "email must be a valid email")
	}
	return &entity.Contact{ID: "mock-contact-id", Name: name, Email: email, Message: message}, nil
}

func (m *MockContactUsecase) List(ctx context.Context) ([]*entity.Contact, error) {
	return []*entity.Contact{{ID: "mock-contact-id", Name: "Asha", Email: "asha@example.com", Message: "Hello"}}, nil
}

// MockEmailVerificationUsecase is a mock implementation of email verification.
type MockEmailVerificationUsecase struct {
	ShouldFailVerify bool
	Requested        int
}

var _ usecasecontract.IEmailVerificationUC = (*MockEmailVerificationUsecase)(nil)

func (m *MockEmailVerificationUsecase) RequestVerificationEmail(ctx context.Context, user *entity.User) error {
	m.Requested++
	return nil
}

func (m *MockEmailVerificationUsecase) VerifyEmailToken(ctx context.Context, verifier, plainToken string) (*entity.User, error) {
	if m.ShouldFailVerify {
		return nil, apperror.Validation("Token is invalid or has expired")
	}
	return &entity.User{ID: "mock-user-id", Name: "Test Traveler", Email: "test@example.com", Role: entity.UserRoleUser, EmailVerified: true}, nil
}
