package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
	"github.com/shopspring/decimal"
)

// MockBookingUsecase is a mock implementation of the booking workflow.
type MockBookingUsecase struct {
	ShouldFailCreate       bool
	ShouldFailGet          bool
	ShouldFailAssignGuide  bool
	ShouldFailUpdateStatus bool
	ShouldFailList         bool

	MockBooking entity.BookingDetail

	// Recorded arguments
	LastUserID    string
	LastGuideID   string
	LastStartDate time.Time
	LastPage      int
	LastPageSize  int
}

var _ usecasecontract.IBookingUseCase = (*MockBookingUsecase)(nil)

func NewMockBookingUsecase() *MockBookingUsecase {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return &MockBookingUsecase{
		MockBooking: entity.BookingDetail{
			Booking: entity.Booking{
				ID:         "mock-booking-id",
				PackageID:  "mock-package-id",
				UserID:     "mock-user-id",
				StartDate:  start,
				EndDate:    start.AddDate(0, 0, 15),
				TotalPrice: decimal.RequireFromString("1499.99"),
				Status:     entity.BookingStatusPending,
			},
			Package: &entity.PackageSummary{ID: "mock-package-id", Name: "EBC Trek", Price: decimal.RequireFromString("1499.99"), Duration: 15},
			User:    &entity.PartySummary{ID: "mock-user-id", Name: "Test Traveler", Email: "test@example.com"},
		},
	}
}

func (m *MockBookingUsecase) booking() *entity.BookingDetail {
	b := m.MockBooking
	return &b
}

func (m *MockBookingUsecase) CreateBooking(ctx context.Context, packageID, userID string, startDate time.Time) (*entity.BookingDetail, error) {
	m.LastUserID = userID
	m.LastStartDate = startDate
	if m.ShouldFailCreate {
		return nil, apperror.Validation("package is no longer available")
	}
	b := m.booking()
	b.UserID = userID
	return b, nil
}

func (m *MockBookingUsecase) GetBooking(ctx context.Context, bookingID string) (*entity.BookingDetail, error) {
	if m.ShouldFailGet {
		return nil, apperror.NotFound("No booking found with that ID")
	}
	return m.booking(), nil
}

func (m *MockBookingUsecase) AssignGuide(ctx context.Context, bookingID, guideID string) (*entity.BookingDetail, error) {
	m.LastGuideID = guideID
	if m.ShouldFailAssignGuide {
		return nil, apperror.InvalidTransition("cannot assign a guide to a cancelled booking")
	}
	b := m.booking()
	b.GuideID = &guideID
	b.Guide = &entity.PartySummary{ID: guideID, Name: "Pemba", Email: "pemba@example.com"}
	b.Status = entity.BookingStatusConfirmed
	return b, nil
}

func (m *MockBookingUsecase) UpdateStatus(ctx context.Context, bookingID string, status entity.BookingStatus) (*entity.BookingDetail, error) {
	if m.ShouldFailUpdateStatus {
		return nil, apperror.InvalidTransition("cannot move booking from cancelled to " + string(status))
	}
	b := m.booking()
	b.Status = status
	return b, nil
}

func (m *MockBookingUsecase) ListForUser(ctx context.Context, userID string) ([]*entity.BookingDetail, error) {
	m.LastUserID = userID
	if m.ShouldFailList {
		return nil, apperror.Unexpected("internal server error", nil)
	}
	return []*entity.BookingDetail{m.booking()}, nil
}

func (m *MockBookingUsecase) ListForGuide(ctx context.Context, guideID string) ([]*entity.BookingDetail, error) {
	m.LastGuideID = guideID
	if m.ShouldFailList {
		return nil, apperror.Unexpected("internal server error", nil)
	}
	return []*entity.BookingDetail{m.booking()}, nil
}

func (m *MockBookingUsecase) ListAll(ctx context.Context, page, pageSize int) (*entity.BookingPage, error) {
	m.LastPage, m.LastPageSize = page, pageSize
	if m.ShouldFailList {
		return nil, apperror.Unexpected("internal server error", nil)
	}
	return &entity.BookingPage{Bookings: []*entity.BookingDetail{m.booking()}, Total: 1, Page: 1, PageSize: 10}, nil
}

func (m *MockBookingUsecase) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (m *MockBookingUsecase) GuideAnalytics(ctx context.Context, guideID string, now time.Time) (*entity.GuideAnalytics, error) {
	m.LastGuideID = guideID
	return &entity.GuideAnalytics{
		ToursThisMonth: 2,
		UpcomingTours:  1,
		ToursPerMonth:  []entity.MonthlyTourCount{{Year: 2025, Month: time.June, Count: 2}},
		Reminders: []entity.TourReminder{{
			BookingID: "mock-booking-id",
			TourName:  "EBC Trek",
			StartDate: now.Add(12 * time.Hour),
			Reminder:  "Contact clients for meeting point confirmation",
		}},
	}, nil
}
