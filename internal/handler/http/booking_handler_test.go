package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	handler "github.com/mikiasgoitom/TakeTravel/internal/handler/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingForSelf(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodPost, "/bookings", map[string]string{
		"package_id": "mock-package-id",
		"start_date": "2025-10-01",
	}, "token")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "mock-user-id", app.bookings.LastUserID)
	assert.True(t, app.bookings.LastStartDate.Equal(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))
	booking := decode(t, w)["data"].(map[string]interface{})["booking"].(map[string]interface{})
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, "1499.99", booking["total_price"])
	assert.Equal(t, []interface{}{"confirmed", "cancelled"}, booking["next_statuses"])
}

func TestCreateBookingForSomeoneElseIsForbidden(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodPost, "/bookings", map[string]string{
		"package_id": "mock-package-id",
		"user_id":    "another-user",
		"start_date": "2025-10-01",
	}, "token")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, app.bookings.LastUserID)
}

func TestAdminBooksOnBehalfOfTraveler(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodPost, "/bookings", map[string]string{
		"package_id": "mock-package-id",
		"user_id":    "another-user",
		"start_date": "2025-10-01T00:00:00Z",
	}, "token")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "another-user", app.bookings.LastUserID)
}

func TestCreateBookingInvalidDate(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodPost, "/bookings", map[string]string{
		"package_id": "mock-package-id",
		"start_date": "next tuesday",
	}, "token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "start_date must be a valid date")
}

func TestCreateBookingInactivePackage(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.bookings.ShouldFailCreate = true

	w := app.do(http.MethodPost, "/bookings", map[string]string{
		"package_id": "mock-package-id",
		"start_date": "2025-10-01",
	}, "token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "package is no longer available", decode(t, w)["message"])
}

func TestBookingsRequireLogin(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodGet, "/bookings/my-bookings", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyBookings(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodGet, "/bookings/my-bookings", nil, "token")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["results"])
	assert.Equal(t, "mock-user-id", app.bookings.LastUserID)
}

func TestUserBookingsOwnership(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodPost, "/bookings/user-bookings", map[string]string{"user_id": "another-user"}, "token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/bookings/user-bookings", map[string]string{"user_id": "mock-user-id"}, "token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuideBookingsDefaultsToCaller(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleGuide)

	w := app.do(http.MethodPost, "/bookings/guide-bookings", map[string]string{}, "token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mock-user-id", app.bookings.LastGuideID)
}

func TestGuideAnalytics(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleGuide)

	w := app.do(http.MethodGet, "/bookings/guide-analytics", nil, "token")

	require.Equal(t, http.StatusOK, w.Code)
	analytics := decode(t, w)["data"].(map[string]interface{})["analytics"].(map[string]interface{})
	assert.EqualValues(t, 2, analytics["tours_this_month"])
	assert.EqualValues(t, 1, analytics["upcoming_tours"])
	months := analytics["tours_per_month"].([]interface{})
	require.Len(t, months, 1)
	assert.Equal(t, "Jun 2025", months[0].(map[string]interface{})["month"])
	reminders := analytics["reminders"].([]interface{})
	require.Len(t, reminders, 1)
	assert.Equal(t, "Contact clients for meeting point confirmation", reminders[0].(map[string]interface{})["reminder"])
}

func TestGuideAnalyticsIsGuideOnly(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodGet, "/bookings/guide-analytics", nil, "token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListAllBookingsPaging(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodGet, "/bookings/getAllBookings?page=2&page_size=5", nil, "token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, app.bookings.LastPage)
	assert.Equal(t, 5, app.bookings.LastPageSize)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["total"])
}

func TestListAllBookingsRejectsBadPage(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodGet, "/bookings/getAllBookings?page=abc", nil, "token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingNotFound(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)
	app.bookings.ShouldFailGet = true

	w := app.do(http.MethodGet, "/bookings/missing", nil, "token")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodPatch, "/bookings/mock-booking-id", map[string]string{"status": "cancelled"}, "token")

	assert.Equal(t, http.StatusOK, w.Code)
	booking := decode(t, w)["data"].(map[string]interface{})["booking"].(map[string]interface{})
	assert.Equal(t, "cancelled", booking["status"])
	assert.Equal(t, []interface{}{}, booking["next_statuses"])
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)
	app.bookings.ShouldFailUpdateStatus = true

	w := app.do(http.MethodPatch, "/bookings/mock-booking-id", map[string]string{"status": "confirmed"}, "token")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "fail", decode(t, w)["status"])
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)

	w := app.do(http.MethodPatch, "/bookings/mock-booking-id", map[string]string{"status": "cancelled"}, "token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssignGuide(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodPatch, "/bookings/mock-booking-id/assign-guide", map[string]string{"guide_id": "g1"}, "token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g1", app.bookings.LastGuideID)
	booking := decode(t, w)["data"].(map[string]interface{})["booking"].(map[string]interface{})
	assert.Equal(t, "confirmed", booking["status"])
	assert.Equal(t, "g1", booking["guide"].(map[string]interface{})["id"])
}

func TestAssignGuideMissingGuideID(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodPatch, "/bookings/mock-booking-id/assign-guide", map[string]string{}, "token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "guide_id is required")
}

func TestAvailableGuidesAreVerifiedOnly(t *testing.T) {
	app := newTestApp(t, handler.Options{}, nil)
	app.as(entity.UserRoleAdmin)

	w := app.do(http.MethodGet, "/bookings/available-guides", nil, "token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, app.guides.LastOnlyVerified)
}
