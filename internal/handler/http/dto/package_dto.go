package dto

import (
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
	"github.com/shopspring/decimal"
)

// PackageRequest is the body of a package creation. Price is accepted as a
// JSON number or string and kept exact.
type PackageRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	Includes    []string        `json:"includes"`
	Difficulty  string          `json:"difficulty"`
	ImageBase64 string          `json:"image_base64"`
}

func (r PackageRequest) ToInput() usecasecontract.PackageInput {
	return usecasecontract.PackageInput{
		Name:        r.Name,
		Description: r.Description,
		Origin:      r.Origin,
		Destination: r.Destination,
		Price:       r.Price,
		Duration:    r.Duration,
		Includes:    r.Includes,
		Difficulty:  r.Difficulty,
		ImageBase64: r.ImageBase64,
	}
}

// PackageUpdateRequest is a partial update; absent fields stay unchanged.
type PackageUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Origin      *string          `json:"origin"`
	Destination *string          `json:"destination"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration"`
	Includes    []string         `json:"includes"`
	Difficulty  *string          `json:"difficulty"`
	ImageBase64 *string          `json:"image_base64"`
	IsActive    *bool            `json:"is_active"`
}

func (r PackageUpdateRequest) ToEntity() entity.PackageUpdate {
	u := entity.PackageUpdate{
		Name:        r.Name,
		Description: r.Description,
		Origin:      r.Origin,
		Destination: r.Destination,
		Price:       r.Price,
		Duration:    r.Duration,
		Includes:    r.Includes,
		ImageBase64: r.ImageBase64,
		IsActive:    r.IsActive,
	}
	if r.Difficulty != nil {
		d := entity.Difficulty(*r.Difficulty)
		u.Difficulty = &d
	}
	return u
}

type PackageResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	Includes    []string        `json:"includes"`
	Difficulty  string          `json:"difficulty"`
	ImageBase64 string          `json:"image_base64,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   string          `json:"created_at"`
}

func ToPackageResponse(p entity.Package) PackageResponse {
	includes := p.Includes
	if includes == nil {
		includes = []string{}
	}
	return PackageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Origin:      p.Origin,
		Destination: p.Destination,
		Price:       p.Price,
		Duration:    p.Duration,
		Includes:    includes,
		Difficulty:  string(p.Difficulty),
		ImageBase64: p.ImageBase64,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func ToPackageResponses(packages []*entity.Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, ToPackageResponse(*p))
	}
	return out
}
