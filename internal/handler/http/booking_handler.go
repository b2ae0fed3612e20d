package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

type BookingHandler struct {
	bookingUsecase usecasecontract.IBookingUseCase
	now            func() time.Time
}

func NewBookingHandler(bookingUsecase usecasecontract.IBookingUseCase) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase, now: time.Now}
}

// ownID resolves the id a caller asks about. Admins may name anyone; everyone
// else only themselves.
func ownID(c *gin.Context, user *entity.User, requested string) (string, bool) {
	if requested == "" || requested == user.ID {
		return user.ID, true
	}
	if entity.HasCapability(user.Role, entity.CapManageBookings) {
		return requested, true
	}
	ErrorHandler(c, apperror.Forbidden("You do not have permission to perform this action"))
	return "", false
}

// CreateBooking books a package for the caller, or for user_id when an admin
// books on someone's behalf.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !BindAndValidate(c, &req) {
		return
	}
	userID, ok := ownID(c, user, req.UserID)
	if !ok {
		return
	}
	start, ok := req.ParseStartDate()
	if !ok {
		ErrorHandler(c, apperror.Validation("Invalid input data", "start_date must be a valid date"))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(c.Request.Context(), req.PackageID, userID, start)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, gin.H{"booking": dto.ToBookingResponse(*booking)})
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.listForUser(c, user.ID)
}

// UserBookings lists the bookings of the user named in the body.
func (h *BookingHandler) UserBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.OwnerRequest
	if !BindAndValidate(c, &req) {
		return
	}
	userID, ok := ownID(c, user, req.UserID)
	if !ok {
		return
	}
	h.listForUser(c, userID)
}

func (h *BookingHandler) listForUser(c *gin.Context, userID string) {
	bookings, err := h.bookingUsecase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(bookings), gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

// GuideBookings lists the tours of the guide named in the body.
func (h *BookingHandler) GuideBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.OwnerRequest
	if !BindAndValidate(c, &req) {
		return
	}
	guideID, ok := ownID(c, user, req.GuideID)
	if !ok {
		return
	}
	bookings, err := h.bookingUsecase.ListForGuide(c.Request.Context(), guideID)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(bookings), gin.H{"bookings": dto.ToBookingResponses(bookings)})
}

func (h *BookingHandler) GuideAnalytics(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	analytics, err := h.bookingUsecase.GuideAnalytics(c.Request.Context(), user.ID, h.now())
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"analytics": dto.ToGuideAnalyticsResponse(*analytics)})
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		ErrorHandler(c, apperror.Validation("Invalid input data", name+" must be a positive integer"))
		return 0, false
	}
	return n, true
}

// ListAllBookings pages through every booking (?page=, ?page_size=).
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "page_size")
	if !ok {
		return
	}
	result, err := h.bookingUsecase.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(result.Bookings), dto.ToBookingPageResponse(*result))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingUsecase.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"booking": dto.ToBookingResponse(*booking)})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !BindAndValidate(c, &req) {
		return
	}
	booking, err := h.bookingUsecase.UpdateStatus(c.Request.Context(), c.Param("id"), entity.BookingStatus(req.Status))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"booking": dto.ToBookingResponse(*booking)})
}

func (h *BookingHandler) AssignGuide(c *gin.Context) {
	var req dto.AssignGuideRequest
	if !BindAndValidate(c, &req) {
		return
	}
	booking, err := h.bookingUsecase.AssignGuide(c.Request.Context(), c.Param("id"), req.GuideID)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"booking": dto.ToBookingResponse(*booking)})
}
