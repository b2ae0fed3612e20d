package mongodb

import (
	"errors"
	"fmt"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// translate maps driver errors onto the application taxonomy. what names the
// document kind in messages, e.g. "package".
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(fmt.Sprintf("No %s found with that ID", what))
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict(fmt.Sprintf("a %s with that value already exists", what))
	}
	return fmt.Errorf("%s store: %w", what, err)
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode decimal %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %s: %w", v.String(), err)
	}
	return d, nil
}
