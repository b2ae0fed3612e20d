package usecase

import (
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	GenerateToken(userID string, role entity.UserRole) (string, time.Time, error)
	ParseToken(token string) (*entity.Claims, error)
}

// BookingMetrics records booking workflow events.
type BookingMetrics interface {
	BookingCreated()
	StatusChanged(from, to entity.BookingStatus)
	GuideAssigned()
}

// AuthMetrics records authentication events.
type AuthMetrics interface {
	LoginFailed()
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time
