package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
)

// Generator issues document IDs.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewUUID generates a new UUID.
func (g *Generator) NewUUID() string {
	return uuid.New().String()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
