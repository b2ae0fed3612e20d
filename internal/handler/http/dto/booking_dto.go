package dto

import (
	"strings"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateBookingRequest books a package. UserID is honored only for admins.
type CreateBookingRequest struct {
	PackageID string `json:"package_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseStartDate accepts an RFC 3339 timestamp or a plain date. An empty
// value yields the zero time.
func (r CreateBookingRequest) ParseStartDate() (time.Time, bool) {
	raw := strings.TrimSpace(r.StartDate)
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignGuideRequest struct {
	GuideID string `json:"guide_id" binding:"required"`
}

// OwnerRequest names the user or guide whose bookings are listed.
type OwnerRequest struct {
	UserID  string `json:"user_id"`
	GuideID string `json:"guide_id"`
}

type BookingPackage struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	ImageBase64 string          `json:"image_base64,omitempty"`
}

type BookingParty struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID         string          `json:"id"`
	Package    *BookingPackage `json:"package"`
	User       *BookingParty   `json:"user"`
	Guide      *BookingParty   `json:"guide"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	// NextStatuses lists the statuses an admin may move the booking to.
	NextStatuses []string `json:"next_statuses"`
	CreatedAt    string   `json:"created_at"`
}

func toParty(p *entity.PartySummary) *BookingParty {
	if p == nil {
		return nil
	}
	return &BookingParty{ID: p.ID, Name: p.Name, Email: p.Email}
}

func ToBookingResponse(b entity.BookingDetail) BookingResponse {
	resp := BookingResponse{
		ID:         b.ID,
		User:       toParty(b.User),
		Guide:      toParty(b.Guide),
		StartDate:  b.StartDate.Format(time.RFC3339),
		EndDate:    b.EndDate.Format(time.RFC3339),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	resp.NextStatuses = make([]string, 0, 2)
	for _, next := range b.Status.NextStatuses() {
		resp.NextStatuses = append(resp.NextStatuses, string(next))
	}
	if b.Package != nil {
		resp.Package = &BookingPackage{
			ID:          b.Package.ID,
			Name:        b.Package.Name,
			Price:       b.Package.Price,
			Duration:    b.Package.Duration,
			ImageBase64: b.Package.ImageBase64,
		}
	}
	return resp
}

func ToBookingResponses(bookings []*entity.BookingDetail) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(*b))
	}
	return out
}

type BookingPageResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func ToBookingPageResponse(p entity.BookingPage) BookingPageResponse {
	return BookingPageResponse{
		Bookings: ToBookingResponses(p.Bookings),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}

type MonthlyTours struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type TourReminder struct {
	BookingID string `json:"booking_id"`
	TourName  string `json:"tour_name"`
	StartDate string `json:"start_date"`
	Reminder  string `json:"reminder"`
}

type GuideAnalyticsResponse struct {
	ToursThisMonth int            `json:"tours_this_month"`
	UpcomingTours  int            `json:"upcoming_tours"`
	ToursPerMonth  []MonthlyTours `json:"tours_per_month"`
	Reminders      []TourReminder `json:"reminders"`
}

func ToGuideAnalyticsResponse(a entity.GuideAnalytics) GuideAnalyticsResponse {
	resp := GuideAnalyticsResponse{
		ToursThisMonth: a.ToursThisMonth,
		UpcomingTours:  a.UpcomingTours,
		ToursPerMonth:  make([]MonthlyTours, 0, len(a.ToursPerMonth)),
		Reminders:      make([]TourReminder, 0, len(a.Reminders)),
	}
	for _, m := range a.ToursPerMonth {
		resp.ToursPerMonth = append(resp.ToursPerMonth, MonthlyTours{
			Month: time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Count: m.Count,
		})
	}
	for _, r := range a.Reminders {
		resp.Reminders = append(resp.Reminders, TourReminder{
			BookingID: r.BookingID,
			TourName:  r.TourName,
			StartDate: r.StartDate.Format(time.RFC3339),
			Reminder:  r.Reminder,
		})
	}
	return resp
}
