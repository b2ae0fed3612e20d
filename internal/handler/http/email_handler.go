package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

type EmailHandler struct {
	emailVerificationUC usecasecontract.IEmailVerificationUC
}

func NewEmailHandler(eu usecasecontract.IEmailVerificationUC) *EmailHandler {
	return &EmailHandler{emailVerificationUC: eu}
}

// HandleRequestEmailVerification mails a fresh link to the logged-in user.
func (h *EmailHandler) HandleRequestEmailVerification(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.EmailVerified {
		ErrorHandler(c, apperror.Validation("Email is already verified"))
		return
	}
	if err := h.emailVerificationUC.RequestVerificationEmail(c.Request.Context(), user); err != nil {
		ErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Verification email sent")
}

func (h *EmailHandler) HandleVerifyEmailToken(c *gin.Context) {
	verifier := c.Query("verifier")
	plainToken := c.Query("token")
	if verifier == "" || plainToken == "" {
		ErrorHandler(c, apperror.Validation("Token is invalid or has expired"))
		return
	}

	user, err := h.emailVerificationUC.VerifyEmailToken(c.Request.Context(), verifier, plainToken)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Status:  "success",
		Message: "Email verified successfully",
		Data:    gin.H{"user": dto.ToUserResponse(*user)},
	})
}
