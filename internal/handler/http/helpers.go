package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/middleware"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/validator"
)

// ErrorHandler hands err to the error boundary and stops the chain.
func ErrorHandler(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, dto.Success(data))
}

// ListHandler writes a listing together with its size.
func ListHandler(c *gin.Context, n int, data interface{}) {
	c.JSON(http.StatusOK, dto.SuccessList(n, data))
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.SuccessMessage(message))
}

// BindAndValidate binds a JSON body. On failure the error has already been
// reported and false is returned.
func BindAndValidate(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if messages := validator.Messages(err); messages != nil {
		ErrorHandler(c, apperror.Validation("Invalid input data", messages...))
		return false
	}
	if errors.Is(err, io.EOF) {
		ErrorHandler(c, apperror.Validation("Request body is required"))
		return false
	}
	ErrorHandler(c, apperror.Validation("Invalid request body", err.Error()))
	return false
}

// currentUser returns the authenticated caller or reports an auth error.
func currentUser(c *gin.Context) (*entity.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		ErrorHandler(c, apperror.Auth("You are not logged in! Please log in to get access."))
	}
	return user, ok
}
