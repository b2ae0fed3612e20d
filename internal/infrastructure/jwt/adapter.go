package jwt

import (
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

var _ usecase.JWTService = (*JWTServiceAdapter)(nil)

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) *JWTServiceAdapter {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateToken issues a session token for a user.
func (a *JWTServiceAdapter) GenerateToken(userID string, role entity.UserRole) (string, time.Time, error) {
	return a.mgr.GenerateSessionToken(userID, string(role))
}

// ParseToken validates a session token and returns Claims.
func (a *JWTServiceAdapter) ParseToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return &entity.Claims{
		UserID:           customClaims.Subject,
		Role:             entity.UserRole(customClaims.Role),
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}
