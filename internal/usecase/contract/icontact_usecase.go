package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

type IContactUseCase interface {
	Submit(ctx context.Context, name, email, message string) (*entity.Contact, error)
	List(ctx context.Context) ([]*entity.Contact, error)
}
