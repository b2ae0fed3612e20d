package mongodb

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	if user.Languages == nil && user.IsGuide() {
		user.Languages = []string{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return translate(err, "user")
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "active": true})
}

func (r *MongoUserRepository) GetAnyUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "active": true})
}

// userListFilter builds the query for ListUsers.
func userListFilter(f contract.UserFilter) bson.M {
	filter := bson.M{"active": true}
	if f.Role != nil {
		filter["role"] = string(*f.Role)
	}
	if f.OnlyVerified {
		filter["verified"] = true
	}
	return filter
}

func (r *MongoUserRepository) ListUsers(ctx context.Context, f contract.UserFilter) ([]*entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, userListFilter(f), opts)
	if err != nil {
		return nil, translate(err, "user")
	}
	defer cursor.Close(ctx)

	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translate(err, "user")
	}
	return users, nil
}

// UpdateUser updates an existing user and returns the updated user
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.UpdatedAt = time.Now()
	user.ClearGuideFields()

	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": user}
	if !user.IsGuide() {
		update["$unset"] = bson.M{"phone_number": "", "experience": "", "languages": "", "specialization": ""}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, translate(err, "user")
	}
	return &updated, nil
}

func (r *MongoUserRepository) UpdateUserPassword(ctx context.Context, id string, hashedPassword string, changedAt time.Time) error {
	return r.set(ctx, id, bson.M{"password_hash": hashedPassword, "password_changed_at": changedAt})
}

func (r *MongoUserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.set(ctx, id, bson.M{"verified": verified})
}

func (r *MongoUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.set(ctx, id, bson.M{"active": active})
}

func (r *MongoUserRepository) set(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return translate(err, "user")
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "user")
	}
	return nil
}
