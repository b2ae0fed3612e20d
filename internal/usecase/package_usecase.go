package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// PackageUsecase manages the tour catalog.
type PackageUsecase struct {
	repo          contract.IPackageRepository
	cache         contract.IPackageCache
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	now           func() time.Time
}

var _ usecasecontract.IPackageUseCase = (*PackageUsecase)(nil)

func NewPackageUsecase(
	repo contract.IPackageRepository,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *PackageUsecase {
	return &PackageUsecase{
		repo:          repo,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

// SetPackageCache enables caching of the unfiltered active listing.
func (uc *PackageUsecase) SetPackageCache(cache contract.IPackageCache) {
	uc.cache = cache
}

func (uc *PackageUsecase) ListActive(ctx context.Context, filter entity.PackageFilter) ([]*entity.Package, error) {
	cacheable := filter.IsZero() && uc.cache != nil
	if cacheable {
		packages, hit, err := uc.cache.GetActivePackages(ctx)
		if err != nil {
			uc.logger.Warnf("package cache read failed: %v", err)
		} else if hit {
			return packages, nil
		}
	}

	packages, err := uc.repo.ListActivePackages(ctx, filter)
	if err != nil {
		return nil, passThrough(uc.logger, "list packages", err)
	}
	if cacheable {
		if err := uc.cache.SetActivePackages(ctx, packages); err != nil {
			uc.logger.Warnf("package cache write failed: %v", err)
		}
	}
	return packages, nil
}

func (uc *PackageUsecase) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	pkg, err := uc.repo.GetPackageByID(ctx, id)
	if err != nil {
		return nil, passThrough(uc.logger, "load package", err)
	}
	return pkg, nil
}

// validate checks every constraint and reports all violations together.
func (uc *PackageUsecase) validate(in usecasecontract.PackageInput) error {
	var fields []string
	if err := uc.validator.ValidateStruct(in); err != nil {
		appErr, ok := apperror.As(err)
		if !ok || appErr.Kind != apperror.KindValidation {
			return err
		}
		fields = append(fields, appErr.Fields...)
	}
	if !in.Price.IsPositive() {
		fields = append(fields, "price must be greater than 0")
	}
	if len(fields) > 0 {
		return apperror.Validation("Invalid input data", fields...)
	}
	return nil
}

func inputFromPackage(p *entity.Package) usecasecontract.PackageInput {
	return usecasecontract.PackageInput{
		Name:        p.Name,
		Description: p.Description,
		Origin:      p.Origin,
		Destination: p.Destination,
		Price:       p.Price,
		Duration:    p.Duration,
		Includes:    p.Includes,
		Difficulty:  string(p.Difficulty),
		ImageBase64: p.ImageBase64,
	}
}

func duplicateName(err error, name string) error {
	if apperror.Is(err, apperror.KindConflict) {
		return apperror.Conflict(fmt.Sprintf("Duplicate package name %q. Please use another value!", name))
	}
	return err
}

func (uc *PackageUsecase) Create(ctx context.Context, in usecasecontract.PackageInput) (*entity.Package, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	pkg := &entity.Package{
		ID:          uc.uuidGenerator.NewUUID(),
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Origin:      strings.TrimSpace(in.Origin),
		Destination: strings.TrimSpace(in.Destination),
		Price:       in.Price,
		Duration:    in.Duration,
		Includes:    in.Includes,
		Difficulty:  entity.Difficulty(in.Difficulty),
		ImageBase64: in.ImageBase64,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreatePackage(ctx, pkg); err != nil {
		return nil, passThrough(uc.logger, "create package", duplicateName(err, pkg.Name))
	}
	uc.invalidate(ctx)
	return pkg, nil
}

// Update merges the given fields into the package and re-validates the result.
func (uc *PackageUsecase) Update(ctx context.Context, id string, update entity.PackageUpdate) (*entity.Package, error) {
	pkg, err := uc.repo.GetPackageByID(ctx, id)
	if err != nil {
		return nil, passThrough(uc.logger, "load package for update", err)
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	update.Apply(pkg)
	if err := uc.validate(inputFromPackage(pkg)); err != nil {
		return nil, err
	}
	pkg.UpdatedAt = uc.now()
	if err := uc.repo.ReplacePackage(ctx, pkg); err != nil {
		return nil, passThrough(uc.logger, "update package", duplicateName(err, pkg.Name))
	}
	uc.invalidate(ctx)
	return pkg, nil
}

// SoftDelete hides the package from the catalog. Existing bookings keep it.
func (uc *PackageUsecase) SoftDelete(ctx context.Context, id string) error {
	if err := uc.repo.SetPackageActive(ctx, id, false); err != nil {
		return passThrough(uc.logger, "deactivate package", err)
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *PackageUsecase) HardDelete(ctx context.Context, id string) error {
	if err := uc.repo.DeletePackage(ctx, id); err != nil {
		return passThrough(uc.logger, "delete package", err)
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *PackageUsecase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateActivePackages(ctx); err != nil {
		uc.logger.Warnf("package cache invalidation failed: %v", err)
	}
}
