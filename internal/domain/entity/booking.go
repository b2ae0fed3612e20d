package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// bookingTransitions lists the legal next states for every state.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(bookingTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is legal. Staying in
// the same state is always allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal targets from s.
func (s BookingStatus) NextStatuses() []BookingStatus {
	return append([]BookingStatus(nil), bookingTransitions[s]...)
}

// Booking links one traveler, one package and an optional guide.
type Booking struct {
	ID        string
	PackageID string
	UserID    string
	GuideID   *string
	StartDate time.Time
	// EndDate is fixed at creation and never follows later package edits.
	EndDate    time.Time
	TotalPrice decimal.Decimal
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBooking builds a pending booking for pkg starting at start, snapshotting
// the package's price and duration.
func NewBooking(id string, pkg *Package, userID string, start time.Time, now time.Time) *Booking {
	return &Booking{
		ID:         id,
		PackageID:  pkg.ID,
		UserID:     userID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, pkg.Duration),
		TotalPrice: pkg.Price,
		Status:     BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// PackageSummary is the package projection shown next to a booking.
type PackageSummary struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Duration    int
	ImageBase64 string
}

// PartySummary is the user or guide projection shown next to a booking.
type PartySummary struct {
	ID    string
	Name  string
	Email string
}

// BookingDetail is a booking with its package, traveler and guide expanded.
type BookingDetail struct {
	Booking
	Package *PackageSummary
	User    *PartySummary
	Guide   *PartySummary
}

// BookingPage is one page of the admin booking listing.
type BookingPage struct {
	Bookings []*BookingDetail
	Total    int64
	Page     int
	PageSize int
}
