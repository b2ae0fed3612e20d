package mongodb

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactRepository struct {
	collection *mongo.Collection
}

var _ contract.IContactRepository = (*ContactRepository)(nil)

func NewContactRepository(collection *mongo.Collection) *ContactRepository {
	return &ContactRepository{collection: collection}
}

func (r *ContactRepository) CreateContact(ctx context.Context, c *entity.Contact) error {
	_, err := r.collection.InsertOne(ctx, c)
	return translate(err, "contact")
}

// ListContacts returns messages newest first.
func (r *ContactRepository) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "contact")
	}
	defer cursor.Close(ctx)

	contacts := []*entity.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, translate(err, "contact")
	}
	return contacts, nil
}
