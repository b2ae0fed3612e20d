package mongodb

import (
	"context"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// tokenDocument is the stored form of a mailed token. expires_at carries a
// TTL index, so Mongo drops stale tokens on its own.
type tokenDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Type      string    `bson:"token_type"`
	Hash      string    `bson:"token_hash"`
	Verifier  string    `bson:"verifier"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoked   bool      `bson:"revoked"`
}

func (d *tokenDocument) toEntity() *entity.Token {
	return &entity.Token{
		ID:        d.ID,
		UserID:    d.UserID,
		TokenType: entity.TokenType(d.Type),
		TokenHash: d.Hash,
		Verifier:  d.Verifier,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		Revoked:   d.Revoked,
	}
}

func newTokenDocument(t *entity.Token) *tokenDocument {
	return &tokenDocument{
		ID:        t.ID,
		UserID:    t.UserID,
		Type:      string(t.TokenType),
		Hash:      t.TokenHash,
		Verifier:  t.Verifier,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
	}
}

type TokenRepository struct {
	collection *mongo.Collection
}

var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(collection *mongo.Collection) *TokenRepository {
	return &TokenRepository{collection: collection}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	_, err := r.collection.InsertOne(ctx, newTokenDocument(token))
	return translate(err, "token")
}

func (r *TokenRepository) GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error) {
	var doc tokenDocument
	if err := r.collection.FindOne(ctx, bson.M{"verifier": verifier}).Decode(&doc); err != nil {
		return nil, translate(err, "token")
	}
	return doc.toEntity(), nil
}

// ConsumeToken flips revoked only on a live token, which makes redemption a
// single conditional write.
func (r *TokenRepository) ConsumeToken(ctx context.Context, id string) error {
	return r.revoke(ctx, bson.M{"_id": id, "revoked": false})
}

func (r *TokenRepository) RevokeToken(ctx context.Context, id string) error {
	return r.revoke(ctx, bson.M{"_id": id})
}

func (r *TokenRepository) revoke(ctx context.Context, filter bson.M) error {
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"revoked": true}})
	if err != nil {
		return translate(err, "token")
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "token")
	}
	return nil
}

// RevokeAllTokensForUser revokes every live token of tokenType held by userID.
func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	filter := bson.M{"user_id": userID, "token_type": string(tokenType), "revoked": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"revoked": true}})
	return translate(err, "token")
}
