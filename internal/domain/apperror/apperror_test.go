package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[apperror.Kind]int{
		apperror.KindValidation:        http.StatusBadRequest,
		apperror.KindConflict:          http.StatusBadRequest,
		apperror.KindAuth:              http.StatusUnauthorized,
		apperror.KindForbidden:         http.StatusForbidden,
		apperror.KindNotFound:          http.StatusNotFound,
		apperror.KindInvalidTransition: http.StatusConflict,
		apperror.KindUnexpected:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("create booking: %w", apperror.NotFound("No package found with that ID"))

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.False(t, apperror.Is(nil, apperror.KindNotFound))
	assert.Equal(t, apperror.KindUnexpected, apperror.KindOf(errors.New("boom")))
}

func TestValidationErrorListsFields(t *testing.T) {
	err := apperror.Validation("Invalid input data", "price must be greater than 0", "includes must not be empty")

	assert.Equal(t, "Invalid input data: price must be greater than 0; includes must not be empty", err.Error())
}

func TestUnexpectedUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.Unexpected("internal server error", cause)

	assert.ErrorIs(t, err, cause)
}
