package contract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// IPackageCache caches the unfiltered active catalog listing.
type IPackageCache interface {
	GetActivePackages(ctx context.Context) ([]*entity.Package, bool, error)
	SetActivePackages(ctx context.Context, packages []*entity.Package) error
	InvalidateActivePackages(ctx context.Context) error
}
