package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

const (
	defaultPageSize  = 10
	maxPageSize      = 100
	analyticsMonths  = 6
	maxTourReminders = 5
)

// BookingUsecase drives bookings through their lifecycle.
type BookingUsecase struct {
	bookingRepo   contract.IBookingRepository
	packageRepo   contract.IPackageRepository
	userRepo      contract.IUserRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	metrics       BookingMetrics
	now           func() time.Time
}

var _ usecasecontract.IBookingUseCase = (*BookingUsecase)(nil)

func NewBookingUsecase(
	bookingRepo contract.IBookingRepository,
	packageRepo contract.IPackageRepository,
	userRepo contract.IUserRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:   bookingRepo,
		packageRepo:   packageRepo,
		userRepo:      userRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

// SetMetrics attaches an optional booking metrics sink.
func (uc *BookingUsecase) SetMetrics(m BookingMetrics) {
	uc.metrics = m
}

// SetClock replaces the time source.
func (uc *BookingUsecase) SetClock(now Clock) {
	uc.now = now
}

// CreateBooking books an active package for userID. End date and price are
// fixed from the package at this moment.
func (uc *BookingUsecase) CreateBooking(ctx context.Context, packageID, userID string, startDate time.Time) (*entity.BookingDetail, error) {
	var missing []string
	if strings.TrimSpace(packageID) == "" {
		missing = append(missing, "package_id is required")
	}
	if strings.TrimSpace(userID) == "" {
		missing = append(missing, "user_id is required")
	}
	if startDate.IsZero() {
		missing = append(missing, "start_date is required")
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("Invalid input data", missing...)
	}

	pkg, err := uc.packageRepo.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, passThrough(uc.logger, "load package for booking", err)
	}
	if !pkg.IsActive {
		return nil, apperror.Validation("package is no longer available")
	}
	if _, err := uc.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, passThrough(uc.logger, "load user for booking", err)
	}

	booking := entity.NewBooking(uc.uuidGenerator.NewUUID(), pkg, userID, startDate, uc.now())
	if err := uc.bookingRepo.CreateBooking(ctx, booking); err != nil {
		return nil, passThrough(uc.logger, "create booking", err)
	}
	if uc.metrics != nil {
		uc.metrics.BookingCreated()
	}
	return uc.detail(ctx, booking.ID)
}

func (uc *BookingUsecase) detail(ctx context.Context, id string) (*entity.BookingDetail, error) {
	d, err := uc.bookingRepo.GetBookingDetail(ctx, id)
	if err != nil {
		return nil, passThrough(uc.logger, "load booking", err)
	}
	return d, nil
}

func (uc *BookingUsecase) GetBooking(ctx context.Context, bookingID string) (*entity.BookingDetail, error) {
	return uc.detail(ctx, bookingID)
}

// AssignGuide attaches a verified guide and confirms a pending booking.
// Repeating the same assignment changes nothing.
func (uc *BookingUsecase) AssignGuide(ctx context.Context, bookingID, guideID string) (*entity.BookingDetail, error) {
	if strings.TrimSpace(guideID) == "" {
		return nil, apperror.Validation("Invalid input data", "guide_id is required")
	}
	booking, err := uc.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, passThrough(uc.logger, "load booking for assignment", err)
	}

	guide, err := uc.userRepo.GetAnyUserByID(ctx, guideID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Validation("No guide found with that ID")
		}
		return nil, passThrough(uc.logger, "load guide for assignment", err)
	}
	if !guide.Assignable() {
		return nil, apperror.Validation("user is not an active, verified guide")
	}

	if booking.Status.IsTerminal() {
		return nil, apperror.InvalidTransition(fmt.Sprintf("cannot assign a guide to a %s booking", booking.Status))
	}

	sameGuide := booking.GuideID != nil && *booking.GuideID == guideID
	if sameGuide && booking.Status == entity.BookingStatusConfirmed {
		return uc.detail(ctx, bookingID)
	}
	if err := uc.bookingRepo.AssignGuide(ctx, bookingID, guideID); err != nil {
		return nil, passThrough(uc.logger, "assign guide", err)
	}
	if !sameGuide && uc.metrics != nil {
		uc.metrics.GuideAssigned()
	}
	if booking.Status != entity.BookingStatusConfirmed {
		uc.recordTransition(booking.Status, entity.BookingStatusConfirmed)
	}
	return uc.detail(ctx, bookingID)
}

// UpdateStatus moves a booking along the transition table. The write is not
// conditioned on the status read, so concurrent updates resolve to the last
// write.
func (uc *BookingUsecase) UpdateStatus(ctx context.Context, bookingID string, status entity.BookingStatus) (*entity.BookingDetail, error) {
	if !status.IsValid() {
		return nil, apperror.Validation("Invalid input data",
			"status must be one of: pending, confirmed, cancelled, completed")
	}
	booking, err := uc.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, passThrough(uc.logger, "load booking for status update", err)
	}
	if booking.Status.IsTerminal() && booking.Status != status {
		return nil, apperror.InvalidTransition(fmt.Sprintf("booking is already %s", booking.Status))
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, apperror.InvalidTransition(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, status))
	}
	if booking.Status != status {
		if err := uc.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
			return nil, passThrough(uc.logger, "update booking status", err)
		}
		uc.recordTransition(booking.Status, status)
	}
	return uc.detail(ctx, bookingID)
}

func (uc *BookingUsecase) recordTransition(from, to entity.BookingStatus) {
	if uc.metrics != nil {
		uc.metrics.StatusChanged(from, to)
	}
}

func (uc *BookingUsecase) list(ctx context.Context, q contract.BookingQuery) ([]*entity.BookingDetail, int64, error) {
	bookings, total, err := uc.bookingRepo.ListBookings(ctx, q)
	if err != nil {
		return nil, 0, passThrough(uc.logger, "list bookings", err)
	}
	return bookings, total, nil
}

func (uc *BookingUsecase) ListForUser(ctx context.Context, userID string) ([]*entity.BookingDetail, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.Validation("Invalid input data", "user_id is required")
	}
	bookings, _, err := uc.list(ctx, contract.BookingQuery{UserID: userID})
	return bookings, err
}

func (uc *BookingUsecase) ListForGuide(ctx context.Context, guideID string) ([]*entity.BookingDetail, error) {
	if strings.TrimSpace(guideID) == "" {
		return nil, apperror.Validation("Invalid input data", "guide_id is required")
	}
	bookings, _, err := uc.list(ctx, contract.BookingQuery{GuideID: guideID})
	return bookings, err
}

// ListAll pages through every booking, newest first.
func (uc *BookingUsecase) ListAll(ctx context.Context, page, pageSize int) (*entity.BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	bookings, total, err := uc.list(ctx, contract.BookingQuery{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}
	return &entity.BookingPage{Bookings: bookings, Total: total, Page: page, PageSize: pageSize}, nil
}

// CompleteElapsed completes confirmed bookings whose end date is before now.
func (uc *BookingUsecase) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	n, err := uc.bookingRepo.CompleteElapsed(ctx, now)
	if err != nil {
		return 0, passThrough(uc.logger, "complete elapsed bookings", err)
	}
	return n, nil
}

// GuideAnalytics summarizes the confirmed tours of a guide as seen at now.
func (uc *BookingUsecase) GuideAnalytics(ctx context.Context, guideID string, now time.Time) (*entity.GuideAnalytics, error) {
	bookings, err := uc.ListForGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	return buildGuideAnalytics(bookings, now), nil
}

func buildGuideAnalytics(bookings []*entity.BookingDetail, now time.Time) *entity.GuideAnalytics {
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	nextMonth := monthStart.AddDate(0, 1, 0)
	windowStart := monthStart.AddDate(0, -(analyticsMonths - 1), 0)

	perMonth := make([]entity.MonthlyTourCount, analyticsMonths)
	for i := range perMonth {
		m := windowStart.AddDate(0, i, 0)
		perMonth[i] = entity.MonthlyTourCount{Year: m.Year(), Month: m.Month()}
	}

	result := &entity.GuideAnalytics{ToursPerMonth: perMonth, Reminders: []entity.TourReminder{}}
	var upcoming []*entity.BookingDetail
	for _, b := range bookings {
		if b.Status != entity.BookingStatusConfirmed {
			continue
		}
		start := b.StartDate.In(loc)
		// Tours from the first of the month onward, later months included.
		if !start.Before(monthStart) {
			result.ToursThisMonth++
		}
		if !start.Before(now) {
			result.UpcomingTours++
			upcoming = append(upcoming, b)
		}
		if !start.Before(windowStart) && start.Before(nextMonth) {
			idx := (start.Year()-windowStart.Year())*12 + int(start.Month()) - int(windowStart.Month())
			perMonth[idx].Count++
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	for i, b := range upcoming {
		if i == maxTourReminders {
			break
		}
		name := ""
		if b.Package != nil {
			name = b.Package.Name
		}
		result.Reminders = append(result.Reminders, entity.TourReminder{
			BookingID: b.ID,
			TourName:  name,
			StartDate: b.StartDate,
			Reminder:  reminderFor(b.StartDate, now),
		})
	}
	return result
}

// reminderFor picks a preparation hint by whole days left, rounded up.
func reminderFor(start, now time.Time) string {
	days := math.Ceil(start.Sub(now).Hours() / 24)
	switch {
	case days <= 1:
		return "Contact clients for meeting point confirmation"
	case days <= 7:
		return "Check weather conditions and prepare equipment"
	default:
		return "Review tour details and requirements"
	}
}
