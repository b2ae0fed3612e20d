package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// IGuideUseCase is the guide directory: listing and admin approval.
type IGuideUseCase interface {
	ListGuides(ctx context.Context, onlyVerified bool) ([]*entity.User, error)
	ApproveGuide(ctx context.Context, userID string) (*entity.User, error)
	RejectGuide(ctx context.Context, userID string) error
}
