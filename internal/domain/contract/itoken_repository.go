package contract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// ITokenRepository stores the single-use tokens mailed for password resets
// and email verification.
type ITokenRepository interface {
	CreateToken(ctx context.Context, token *entity.Token) error
	GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error)
	// ConsumeToken revokes a live token. A token that is already revoked or
	// missing yields a NotFound error, so each token is redeemed at most once.
	ConsumeToken(ctx context.Context, id string) error
	RevokeToken(ctx context.Context, id string) error
	RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error
}
