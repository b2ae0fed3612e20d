package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// BookingQuery selects bookings for listing. Empty fields do not filter.
type BookingQuery struct {
	UserID   string
	GuideID  string
	Page     int
	PageSize int
}

// IBookingRepository provides persistence for bookings. Reads return bookings
// with package, traveler and guide expanded.
type IBookingRepository interface {
	CreateBooking(ctx context.Context, booking *entity.Booking) error
	GetBookingByID(ctx context.Context, id string) (*entity.Booking, error)
	GetBookingDetail(ctx context.Context, id string) (*entity.BookingDetail, error)
	ListBookings(ctx context.Context, query BookingQuery) ([]*entity.BookingDetail, int64, error)
	// UpdateStatus overwrites the status without a version check.
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error
	// AssignGuide sets the guide and the confirmed status in a single write.
	AssignGuide(ctx context.Context, id, guideID string) error
	// CompleteElapsed flips confirmed bookings that ended before now to completed.
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}
