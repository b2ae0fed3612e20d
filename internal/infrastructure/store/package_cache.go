package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

const activePackagesKey = "packages:active"

// PackageCacheStore keeps the unfiltered active catalog in redis.
type PackageCacheStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.IPackageCache = (*PackageCacheStore)(nil)

func NewPackageCacheStore(rdb *redis.Client, ttl time.Duration) *PackageCacheStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PackageCacheStore{rdb: rdb, ttl: ttl}
}

func (c *PackageCacheStore) GetActivePackages(ctx context.Context) ([]*entity.Package, bool, error) {
	b, err := c.rdb.Get(ctx, activePackagesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	packages, ok := decodePackages(b)
	return packages, ok, nil
}

func (c *PackageCacheStore) SetActivePackages(ctx context.Context, packages []*entity.Package) error {
	data, err := encodePackages(packages)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, activePackagesKey, data, c.ttl).Err()
}

func (c *PackageCacheStore) InvalidateActivePackages(ctx context.Context) error {
	return c.rdb.Del(ctx, activePackagesKey).Err()
}

func encodePackages(packages []*entity.Package) ([]byte, error) {
	if packages == nil {
		packages = []*entity.Package{}
	}
	return json.Marshal(packages)
}

// decodePackages treats a corrupt entry as a miss.
func decodePackages(b []byte) ([]*entity.Package, bool) {
	var packages []*entity.Package
	if err := json.Unmarshal(b, &packages); err != nil {
		return nil, false
	}
	return packages, true
}
