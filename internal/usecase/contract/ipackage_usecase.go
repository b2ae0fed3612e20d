package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PackageInput is the full set of fields of a package. Every constraint is
// checked together so that callers see all violations at once.
type PackageInput struct {
	Name        string          `validate:"required,min=3,max=40"`
	Description string          `validate:"required"`
	Origin      string          `validate:"required"`
	Destination string          `validate:"required"`
	Price       decimal.Decimal `validate:"-"`
	Duration    int             `validate:"gt=0"`
	Includes    []string        `validate:"required,min=1,dive,required"`
	Difficulty  string          `validate:"required,oneof=easy moderate challenging difficult"`
	ImageBase64 string          `validate:"omitempty,base64image"`
}

type IPackageUseCase interface {
	ListActive(ctx context.Context, filter entity.PackageFilter) ([]*entity.Package, error)
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	Create(ctx context.Context, input PackageInput) (*entity.Package, error)
	Update(ctx context.Context, id string, update entity.PackageUpdate) (*entity.Package, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}
