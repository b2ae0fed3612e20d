package usecase

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// GuideUsecase lists guides and lets admins approve or reject them.
type GuideUsecase struct {
	userRepo contract.IUserRepository
	logger   usecasecontract.IAppLogger
}

var _ usecasecontract.IGuideUseCase = (*GuideUsecase)(nil)

func NewGuideUsecase(userRepo contract.IUserRepository, logger usecasecontract.IAppLogger) *GuideUsecase {
	return &GuideUsecase{userRepo: userRepo, logger: logger}
}

func (uc *GuideUsecase) ListGuides(ctx context.Context, onlyVerified bool) ([]*entity.User, error) {
	role := entity.UserRoleGuide
	guides, err := uc.userRepo.ListUsers(ctx, contract.UserFilter{Role: &role, OnlyVerified: onlyVerified})
	if err != nil {
		return nil, passThrough(uc.logger, "list guides", err)
	}
	return guides, nil
}

// loadGuide bypasses the active filter so rejected guides can still be found.
func (uc *GuideUsecase) loadGuide(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetAnyUserByID(ctx, userID)
	if err != nil {
		return nil, passThrough(uc.logger, "load guide", err)
	}
	if !user.IsGuide() {
		return nil, apperror.NotFound("No guide found with that ID")
	}
	return user, nil
}

// ApproveGuide marks a guide verified. Approving twice is harmless.
func (uc *GuideUsecase) ApproveGuide(ctx context.Context, userID string) (*entity.User, error) {
	guide, err := uc.loadGuide(ctx, userID)
	if err != nil {
		return nil, err
	}
	if guide.Verified {
		return guide, nil
	}
	if err := uc.userRepo.SetVerified(ctx, userID, true); err != nil {
		return nil, passThrough(uc.logger, "approve guide", err)
	}
	guide.Verified = true
	return guide, nil
}

// RejectGuide deactivates the guide account.
func (uc *GuideUsecase) RejectGuide(ctx context.Context, userID string) error {
	if _, err := uc.loadGuide(ctx, userID); err != nil {
		return err
	}
	if err := uc.userRepo.SetActive(ctx, userID, false); err != nil {
		return passThrough(uc.logger, "reject guide", err)
	}
	return nil
}
