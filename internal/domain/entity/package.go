package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Difficulty grades how demanding a tour package is.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyDifficult   Difficulty = "difficult"
)

// Difficulties lists the accepted difficulty levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyChallenging, DifficultyDifficult}

func (d Difficulty) IsValid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// Package is a sellable tour itinerary.
type Package struct {
	ID          string
	Name        string
	Description string
	Origin      string
	Destination string
	Price       decimal.Decimal
	// Duration is the trip length in days.
	Duration    int
	Includes    []string
	Difficulty  Difficulty
	ImageBase64 string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PackageFilter narrows the active catalog listing.
type PackageFilter struct {
	Difficulty  *Difficulty
	Destination *string
}

// IsZero reports whether the filter selects the whole active catalog.
func (f PackageFilter) IsZero() bool {
	return f.Difficulty == nil && f.Destination == nil
}

// PackageUpdate carries the fields of a partial package update. Nil means unchanged.
type PackageUpdate struct {
	Name        *string
	Description *string
	Origin      *string
	Destination *string
	Price       *decimal.Decimal
	Duration    *int
	Includes    []string
	Difficulty  *Difficulty
	ImageBase64 *string
	IsActive    *bool
}

// Apply merges u into p.
func (u PackageUpdate) Apply(p *Package) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Origin != nil {
		p.Origin = *u.Origin
	}
	if u.Destination != nil {
		p.Destination = *u.Destination
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Duration != nil {
		p.Duration = *u.Duration
	}
	if u.Includes != nil {
		p.Includes = u.Includes
	}
	if u.Difficulty != nil {
		p.Difficulty = *u.Difficulty
	}
	if u.ImageBase64 != nil {
		p.ImageBase64 = *u.ImageBase64
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
}
