package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

const genericFailure = "Something went very wrong!"

// ErrorBody is the error envelope.
type ErrorBody struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponder renders the last error attached to the context. Unexpected
// errors are logged and, outside development, answered with a generic message.
func ErrorResponder(logger usecasecontract.IAppLogger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := render(err, development)
		if status >= http.StatusInternalServerError {
			logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

func render(err error, development bool) (int, ErrorBody) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Unexpected(genericFailure, err)
	}
	status := appErr.Kind.HTTPStatus()
	body := ErrorBody{Status: "fail", Message: appErr.Message, Errors: appErr.Fields}
	if status >= http.StatusInternalServerError {
		body.Status = "error"
		if development {
			body.Message = appErr.Error()
		} else if appErr.Message == "" || appErr.Message == "internal server error" {
			body.Message = genericFailure
		}
	}
	return status, body
}

// Recovery turns a panic into the error envelope.
func Recovery(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Status: "error", Message: genericFailure})
	})
}
