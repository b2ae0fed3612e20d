package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// IBookingUseCase is the booking workflow engine.
type IBookingUseCase interface {
	CreateBooking(ctx context.Context, packageID, userID string, startDate time.Time) (*entity.BookingDetail, error)
	GetBooking(ctx context.Context, bookingID string) (*entity.BookingDetail, error)
	AssignGuide(ctx context.Context, bookingID, guideID string) (*entity.BookingDetail, error)
	UpdateStatus(ctx context.Context, bookingID string, status entity.BookingStatus) (*entity.BookingDetail, error)
	ListForUser(ctx context.Context, userID string) ([]*entity.BookingDetail, error)
	ListForGuide(ctx context.Context, guideID string) ([]*entity.BookingDetail, error)
	ListAll(ctx context.Context, page, pageSize int) (*entity.BookingPage, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
	GuideAnalytics(ctx context.Context, guideID string, now time.Time) (*entity.GuideAnalytics, error)
}
