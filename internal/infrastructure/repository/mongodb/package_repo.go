package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type packageDTO struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Origin      string               `bson:"origin"`
	Destination string               `bson:"destination"`
	Price       primitive.Decimal128 `bson:"price"`
	Duration    int                  `bson:"duration"`
	Includes    []string             `bson:"includes"`
	Difficulty  string               `bson:"difficulty"`
	ImageBase64 string               `bson:"image_base64,omitempty"`
	IsActive    bool                 `bson:"is_active"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (p *packageDTO) ToEntity() (*entity.Package, error) {
	price, err := fromDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Package{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Origin:      p.Origin,
		Destination: p.Destination,
		Price:       price,
		Duration:    p.Duration,
		Includes:    p.Includes,
		Difficulty:  entity.Difficulty(p.Difficulty),
		ImageBase64: p.ImageBase64,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func FromPackageEntityToDTO(p *entity.Package) (*packageDTO, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	includes := p.Includes
	if includes == nil {
		includes = []string{}
	}
	return &packageDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Origin:      p.Origin,
		Destination: p.Destination,
		Price:       price,
		Duration:    p.Duration,
		Includes:    includes,
		Difficulty:  string(p.Difficulty),
		ImageBase64: p.ImageBase64,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

type PackageRepository struct {
	collection *mongo.Collection
}

var _ contract.IPackageRepository = (*PackageRepository)(nil)

func NewPackageRepository(collection *mongo.Collection) *PackageRepository {
	return &PackageRepository{collection: collection}
}

func (r *PackageRepository) CreatePackage(ctx context.Context, pkg *entity.Package) error {
	dto, err := FromPackageEntityToDTO(pkg)
	if err != nil {
		return err
	}
	_, err = r.collection.InsertOne(ctx, dto)
	return translate(err, "package")
}

func (r *PackageRepository) GetPackageByID(ctx context.Context, id string) (*entity.Package, error) {
	var dto packageDTO
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dto); err != nil {
		return nil, translate(err, "package")
	}
	return dto.ToEntity()
}

// activePackageFilter builds the catalog query. Destination matches as a
// case-insensitive substring.
func activePackageFilter(f entity.PackageFilter) bson.M {
	filter := bson.M{"is_active": true}
	if f.Difficulty != nil {
		filter["difficulty"] = string(*f.Difficulty)
	}
	if f.Destination != nil && *f.Destination != "" {
		filter["destination"] = bson.M{"$regex": regexp.QuoteMeta(*f.Destination), "$options": "i"}
	}
	return filter
}

func (r *PackageRepository) ListActivePackages(ctx context.Context, f entity.PackageFilter) ([]*entity.Package, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, activePackageFilter(f), opts)
	if err != nil {
		return nil, translate(err, "package")
	}
	defer cursor.Close(ctx)

	var dtos []packageDTO
	if err := cursor.All(ctx, &dtos); err != nil {
		return nil, translate(err, "package")
	}
	packages := make([]*entity.Package, 0, len(dtos))
	for i := range dtos {
		p, err := dtos[i].ToEntity()
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

func (r *PackageRepository) ReplacePackage(ctx context.Context, pkg *entity.Package) error {
	dto, err := FromPackageEntityToDTO(pkg)
	if err != nil {
		return err
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pkg.ID}, dto)
	if err != nil {
		return translate(err, "package")
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "package")
	}
	return nil
}

func (r *PackageRepository) SetPackageActive(ctx context.Context, id string, active bool) error {
	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err, "package")
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "package")
	}
	return nil
}

func (r *PackageRepository) DeletePackage(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "package")
	}
	if result.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "package")
	}
	return nil
}
