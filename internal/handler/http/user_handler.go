package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	Signup(*gin.Context)
	SignupGuide(*gin.Context)
	Login(*gin.Context)
	Logout(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateMyPassword(*gin.Context)
	ForgotPassword(*gin.Context)
	ResetPassword(*gin.Context)
	ListUsers(*gin.Context)
	PromoteUser(*gin.Context)
	DemoteUser(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Secure bool
	Domain string
}

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
	cookie      CookieConfig
	now         func() time.Time
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, cookie CookieConfig) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		cookie:      cookie,
		now:         time.Now,
	}
}

// setSessionCookie stores the token in an HTTP-only cookie that expires with it.
func (h *UserHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *UserHandler) sendSession(c *gin.Context, status int, session *usecasecontract.Session) {
	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(status, dto.Envelope{
		Status: "success",
		Token:  session.Token,
		Data:   gin.H{"user": dto.ToSessionUser(*session.User)},
	})
}

// Signup registers a traveler account.
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !BindAndValidate(c, &req) {
		return
	}
	user, err := h.userUsecase.Signup(c.Request.Context(), req.Name, req.Email, req.Password, entity.UserRole(req.Role))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, gin.H{"user": dto.ToUserResponse(*user)})
}

// SignupGuide registers a guide awaiting approval.
func (h *UserHandler) SignupGuide(c *gin.Context) {
	var req dto.GuideSignupRequest
	if !BindAndValidate(c, &req) {
		return
	}
	guide, err := h.userUsecase.SignupGuide(c.Request.Context(), req.ToApplication())
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Envelope{
		Status:  "success",
		Message: "Guide application received. An administrator will review it.",
		Data:    gin.H{"user": dto.ToUserResponse(*guide)},
	})
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !BindAndValidate(c, &req) {
		return
	}
	session, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	h.sendSession(c, http.StatusOK, session)
}

// Logout overwrites the session cookie with a short-lived placeholder.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "loggedout", 10, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.JSON(http.StatusOK, dto.Envelope{Status: "success"})
}

// GetCurrentUser returns the caller and what their role allows.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{
		"user":         dto.ToUserResponse(*user),
		"capabilities": entity.CapabilitiesFor(user.Role),
	})
}

func (h *UserHandler) UpdateMyPassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdatePasswordRequest
	if !BindAndValidate(c, &req) {
		return
	}
	session, err := h.userUsecase.UpdatePassword(c.Request.Context(), user.ID, req.PasswordCurrent, req.Password)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	h.sendSession(c, http.StatusOK, session)
}

// ForgotPassword mails a reset link. The link points back at this API unless
// the client supplies its own page through ?redirect=.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !BindAndValidate(c, &req) {
		return
	}
	if err := h.userUsecase.ForgotPassword(c.Request.Context(), req.Email, c.Query("redirect")); err != nil {
		ErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Token sent to email!")
}

// ResetPassword consumes the verifier and token from the mailed link.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !BindAndValidate(c, &req) {
		return
	}
	session, err := h.userUsecase.ResetPassword(c.Request.Context(), c.Query("verifier"), c.Query("token"), req.Password)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	h.sendSession(c, http.StatusOK, session)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context())
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(users), gin.H{"users": dto.ToUserResponses(users)})
}

func (h *UserHandler) PromoteUser(c *gin.Context) {
	user, err := h.userUsecase.PromoteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"user": dto.ToUserResponse(*user)})
}

func (h *UserHandler) DemoteUser(c *gin.Context) {
	user, err := h.userUsecase.DemoteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"user": dto.ToUserResponse(*user)})
}
