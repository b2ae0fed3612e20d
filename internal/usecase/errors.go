package usecase

import (
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

const errInternalServer = "internal server error"

// passThrough returns classified errors unchanged and turns anything else
// into a logged, sanitized Unexpected error.
func passThrough(logger usecasecontract.IAppLogger, op string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.KindUnexpected {
		return err
	}
	logger.Errorf("%s: %v", op, err)
	return apperror.Unexpected(errInternalServer, err)
}
