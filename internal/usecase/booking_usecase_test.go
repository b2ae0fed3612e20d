package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPackage(h *harness, id, name string, duration int, active bool) *entity.Package {
	p := &entity.Package{
		ID:          id,
		Name:        name,
		Description: "Trek to the foot of the world's highest mountain",
		Origin:      "Kathmandu",
		Destination: "Everest Base Camp",
		Price:       decimal.RequireFromString("1499.99"),
		Duration:    duration,
		Includes:    []string{"permits", "lodging"},
		Difficulty:  entity.DifficultyDifficult,
		IsActive:    active,
	}
	h.store.packages[id] = p
	return p
}

func seedUser(h *harness, id string, role entity.UserRole, verified bool) *entity.User {
	u := &entity.User{
		ID:       id,
		Name:     "user " + id,
		Email:    id + "@example.com",
		Role:     role,
		Verified: verified,
		Active:   true,
	}
	h.store.users[id] = u
	return u
}

func bookingFixture(t *testing.T) (*harness, *entity.BookingDetail) {
	t.Helper()
	h := newHarness()
	seedPackage(h, "pkg-ebc", "EBC Trek", 15, true)
	seedUser(h, "u1", entity.UserRoleUser, false)
	seedUser(h, "g1", entity.UserRoleGuide, true)
	b, err := h.bookings.CreateBooking(context.Background(), "pkg-ebc", "u1", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return h, b
}

func TestCreateBookingSnapshotsPackage(t *testing.T) {
	h, b := bookingFixture(t)

	assert.Equal(t, entity.BookingStatusPending, b.Status)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), b.EndDate)
	assert.True(t, decimal.RequireFromString("1499.99").Equal(b.TotalPrice))
	assert.Nil(t, b.GuideID)
	require.NotNil(t, b.Package)
	assert.Equal(t, "EBC Trek", b.Package.Name)
	require.NotNil(t, b.User)
	assert.Equal(t, "u1", b.User.ID)
	assert.Equal(t, 1, h.metrics.created)

	// Later package edits do not move the booking.
	dur := 20
	_, err := h.packages.Update(context.Background(), "pkg-ebc", entity.PackageUpdate{Duration: &dur})
	require.NoError(t, err)
	again, err := h.bookings.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.EndDate, again.EndDate)
}

func TestCreateBookingValidation(t *testing.T) {
	h := newHarness()
	seedPackage(h, "pkg-old", "Old Route", 5, false)
	seedUser(h, "u1", entity.UserRoleUser, false)

	_, err := h.bookings.CreateBooking(context.Background(), "", "", time.Time{})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.ElementsMatch(t, []string{"package_id is required", "user_id is required", "start_date is required"}, appErr.Fields)

	_, err = h.bookings.CreateBooking(context.Background(), "pkg-old", "u1", time.Now())
	assert.Equal(t, "package is no longer available", requireKind(t, err, apperror.KindValidation).Message)

	_, err = h.bookings.CreateBooking(context.Background(), "missing", "u1", time.Now())
	requireKind(t, err, apperror.KindNotFound)

	seedPackage(h, "pkg-ok", "Annapurna Circuit", 12, true)
	_, err = h.bookings.CreateBooking(context.Background(), "pkg-ok", "ghost", time.Now())
	requireKind(t, err, apperror.KindNotFound)

	assert.Empty(t, h.store.bookings)
}

func TestAssignGuideConfirmsPendingBooking(t *testing.T) {
	h, b := bookingFixture(t)

	got, err := h.bookings.AssignGuide(context.Background(), b.ID, "g1")

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, got.Status)
	require.NotNil(t, got.GuideID)
	assert.Equal(t, "g1", *got.GuideID)
	require.NotNil(t, got.Guide)
	assert.Equal(t, "g1@example.com", got.Guide.Email)
	assert.Equal(t, []string{"pending->confirmed"}, h.metrics.transitions)
	assert.Equal(t, 1, h.metrics.assigned)
}

func TestAssignGuideTwiceIsIdempotent(t *testing.T) {
	h, b := bookingFixture(t)

	_, err := h.bookings.AssignGuide(context.Background(), b.ID, "g1")
	require.NoError(t, err)
	got, err := h.bookings.AssignGuide(context.Background(), b.ID, "g1")
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, got.Status)
	assert.Equal(t, 1, h.metrics.assigned)
	assert.Len(t, h.metrics.transitions, 1)
	assert.Len(t, h.store.statusWrites, 1)
}

func TestAssignGuideRejectsInvalidGuides(t *testing.T) {
	h, b := bookingFixture(t)
	seedUser(h, "g-unverified", entity.UserRoleGuide, false)
	seedUser(h, "traveler", entity.UserRoleUser, true)
	inactive := seedUser(h, "g-inactive", entity.UserRoleGuide, true)
	inactive.Active = false

	for _, id := range []string{"g-unverified", "traveler", "g-inactive", "ghost"} {
		_, err := h.bookings.AssignGuide(context.Background(), b.ID, id)
		requireKind(t, err, apperror.KindValidation)
	}
	_, err := h.bookings.AssignGuide(context.Background(), b.ID, "")
	requireKind(t, err, apperror.KindValidation)

	assert.Equal(t, entity.BookingStatusPending, h.store.bookingStatus(b.ID))
	assert.Nil(t, h.store.bookings[b.ID].GuideID)
}

func TestAssignGuideToTerminalBooking(t *testing.T) {
	h, b := bookingFixture(t)
	_, err := h.bookings.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCancelled)
	require.NoError(t, err)

	_, err = h.bookings.AssignGuide(context.Background(), b.ID, "g1")

	requireKind(t, err, apperror.KindInvalidTransition)
	assert.Nil(t, h.store.bookings[b.ID].GuideID)
}

func TestUpdateStatusOnTerminalBooking(t *testing.T) {
	h, b := bookingFixture(t)
	_, err := h.bookings.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCancelled)
	require.NoError(t, err)

	_, err = h.bookings.UpdateStatus(context.Background(), b.ID, entity.BookingStatusConfirmed)
	appErr := requireKind(t, err, apperror.KindInvalidTransition)
	assert.Equal(t, "booking is already cancelled", appErr.Message)

	got, err := h.bookings.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, got.Status)
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		path    []entity.BookingStatus
		wantErr apperror.Kind
		ok      bool
	}{
		{name: "confirm then complete", path: []entity.BookingStatus{"confirmed", "completed"}, ok: true},
		{name: "cancel pending", path: []entity.BookingStatus{"cancelled"}, ok: true},
		{name: "cancel confirmed", path: []entity.BookingStatus{"confirmed", "cancelled"}, ok: true},
		{name: "complete pending", path: []entity.BookingStatus{"completed"}, wantErr: apperror.KindInvalidTransition},
		{name: "reopen cancelled", path: []entity.BookingStatus{"cancelled", "pending"}, wantErr: apperror.KindInvalidTransition},
		{name: "revive completed", path: []entity.BookingStatus{"confirmed", "completed", "cancelled"}, wantErr: apperror.KindInvalidTransition},
		{name: "unknown status", path: []entity.BookingStatus{"archived"}, wantErr: apperror.KindValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, b := bookingFixture(t)
			var err error
			var got *entity.BookingDetail
			for _, s := range tc.path {
				got, err = h.bookings.UpdateStatus(context.Background(), b.ID, s)
				if err != nil {
					break
				}
			}
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.path[len(tc.path)-1], got.Status)
				return
			}
			requireKind(t, err, tc.wantErr)
		})
	}
}

func TestUpdateStatusSameStateWritesNothing(t *testing.T) {
	h, b := bookingFixture(t)

	got, err := h.bookings.UpdateStatus(context.Background(), b.ID, entity.BookingStatusPending)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, got.Status)
	assert.Empty(t, h.store.statusWrites)
	assert.Empty(t, h.metrics.transitions)
}

func TestUpdateStatusConcurrentLastWriteWins(t *testing.T) {
	h, b := bookingFixture(t)

	// Both callers observe "pending" before either writes.
	var read sync.WaitGroup
	read.Add(2)
	h.store.afterBookingRead = func() {
		read.Done()
		read.Wait()
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	targets := []entity.BookingStatus{entity.BookingStatusConfirmed, entity.BookingStatusCancelled}
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target entity.BookingStatus) {
			defer wg.Done()
			_, errs[i] = h.bookings.UpdateStatus(context.Background(), b.ID, target)
		}(i, target)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Len(t, h.store.statusWrites, 2)
	assert.Equal(t, h.store.statusWrites[1], h.store.bookingStatus(b.ID))
}

func TestListForUserAndGuide(t *testing.T) {
	h, b := bookingFixture(t)
	seedUser(h, "u2", entity.UserRoleUser, false)
	other, err := h.bookings.CreateBooking(context.Background(), "pkg-ebc", "u2", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = h.bookings.AssignGuide(context.Background(), other.ID, "g1")
	require.NoError(t, err)

	mine, err := h.bookings.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	tours, err := h.bookings.ListForGuide(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, other.ID, tours[0].ID)

	_, err = h.bookings.ListForUser(context.Background(), "")
	requireKind(t, err, apperror.KindValidation)
}

func TestListAllPaging(t *testing.T) {
	h := newHarness()
	seedPackage(h, "pkg-ebc", "EBC Trek", 15, true)
	seedUser(h, "u1", entity.UserRoleUser, false)
	for i := 0; i < 12; i++ {
		h.clock.Advance(time.Minute)
		_, err := h.bookings.CreateBooking(context.Background(), "pkg-ebc", "u1", time.Date(2025, 10, i+1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	first, err := h.bookings.ListAll(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), first.Total)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 10, first.PageSize)
	require.Len(t, first.Bookings, 10)
	assert.Equal(t, 12, first.Bookings[0].StartDate.Day(), "newest first")

	second, err := h.bookings.ListAll(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Bookings, 2)

	capped, err := h.bookings.ListAll(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, capped.PageSize)
}

func TestCompleteElapsed(t *testing.T) {
	h, b := bookingFixture(t)
	_, err := h.bookings.AssignGuide(context.Background(), b.ID, "g1")
	require.NoError(t, err)
	pending, err := h.bookings.CreateBooking(context.Background(), "pkg-ebc", "u1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	n, err := h.bookings.CompleteElapsed(context.Background(), time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = h.bookings.CompleteElapsed(context.Background(), time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, entity.BookingStatusCompleted, h.store.bookingStatus(b.ID))
	assert.Equal(t, entity.BookingStatusPending, h.store.bookingStatus(pending.ID))
}

func TestGuideAnalytics(t *testing.T) {
	h := newHarness()
	seedPackage(h, "pkg-ebc", "EBC Trek", 15, true)
	seedUser(h, "u1", entity.UserRoleUser, false)
	seedUser(h, "g1", entity.UserRoleGuide, true)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	book := func(start time.Time, confirm bool) string {
		b, err := h.bookings.CreateBooking(context.Background(), "pkg-ebc", "u1", start)
		require.NoError(t, err)
		g := "g1"
		h.store.bookings[b.ID].GuideID = &g
		if confirm {
			h.store.bookings[b.ID].Status = entity.BookingStatusConfirmed
		}
		return b.ID
	}

	book(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), true)  // this month, past
	tomorrow := book(now.Add(20*time.Hour), true)             // this month, ≤1 day
	book(now.Add(5*24*time.Hour), true)                       // this month, ≤7 days
	book(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), true)   // future month
	book(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), true)  // oldest month of the window
	book(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), true)  // outside the window
	book(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), false) // pending, ignored
	for i := 0; i < 3; i++ {
		book(time.Date(2025, 9, 1+i, 0, 0, 0, 0, time.UTC), true)
	}

	a, err := h.bookings.GuideAnalytics(context.Background(), "g1", now)
	require.NoError(t, err)

	assert.Equal(t, 7, a.ToursThisMonth, "counts every confirmed tour from the start of the month")
	assert.Equal(t, 6, a.UpcomingTours)

	require.Len(t, a.ToursPerMonth, 6)
	assert.Equal(t, time.January, a.ToursPerMonth[0].Month)
	assert.Equal(t, time.June, a.ToursPerMonth[5].Month)
	counts := make([]int, 0, 6)
	for _, m := range a.ToursPerMonth {
		counts = append(counts, m.Count)
	}
	assert.Equal(t, []int{0, 1, 0, 0, 0, 3}, counts)

	require.Len(t, a.Reminders, 5)
	assert.Equal(t, tomorrow, a.Reminders[0].BookingID)
	assert.Equal(t, "EBC Trek", a.Reminders[0].TourName)
	assert.Equal(t, "Contact clients for meeting point confirmation", a.Reminders[0].Reminder)
	assert.Equal(t, "Check weather conditions and prepare equipment", a.Reminders[1].Reminder)
	assert.Equal(t, "Review tour details and requirements", a.Reminders[2].Reminder)
	for i := 1; i < len(a.Reminders); i++ {
		assert.False(t, a.Reminders[i].StartDate.Before(a.Reminders[i-1].StartDate), fmt.Sprintf("reminder %d out of order", i))
	}
}

func TestGuideAnalyticsWithoutTours(t *testing.T) {
	h := newHarness()

	a, err := h.bookings.GuideAnalytics(context.Background(), "g-new", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Zero(t, a.ToursThisMonth)
	assert.Zero(t, a.UpcomingTours)
	assert.Len(t, a.ToursPerMonth, 6)
	assert.NotNil(t, a.Reminders)
	assert.Empty(t, a.Reminders)
}
