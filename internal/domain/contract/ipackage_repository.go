package contract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// IPackageRepository provides persistence for tour packages.
type IPackageRepository interface {
	CreatePackage(ctx context.Context, pkg *entity.Package) error
	// GetPackageByID resolves active and inactive packages alike.
	GetPackageByID(ctx context.Context, id string) (*entity.Package, error)
	ListActivePackages(ctx context.Context, filter entity.PackageFilter) ([]*entity.Package, error)
	// ReplacePackage overwrites every mutable field of an existing package.
	ReplacePackage(ctx context.Context, pkg *entity.Package) error
	SetPackageActive(ctx context.Context, id string, active bool) error
	DeletePackage(ctx context.Context, id string) error
}
