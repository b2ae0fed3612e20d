package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

// Keys under which RequireAuth stores the caller in the gin context.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "jwt"

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// RequireAuth accepts a bearer token or the session cookie and attaches the
// resolved user to the context.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), sessionToken(c))
		if err != nil {
			if !apperror.Is(err, apperror.KindUnexpected) {
				err = apperror.Auth(authMessage(err))
			}
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextUser, user)
		c.Next()
	}
}

func authMessage(err error) string {
	if appErr, ok := apperror.As(err); ok {
		return appErr.Message
	}
	return "Invalid token. Please log in again!"
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "loggedout" {
		return cookie
	}
	return ""
}

// RequireRole lets the request through only for the given roles. It must run
// after RequireAuth.
func RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			_ = c.Error(apperror.Auth("You are not logged in! Please log in to get access."))
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		_ = c.Error(apperror.Forbidden("You do not have permission to perform this action"))
		c.Abort()
	}
}

// CurrentUser returns the user attached by RequireAuth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}
