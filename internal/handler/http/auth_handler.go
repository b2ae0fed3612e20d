package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie  = "oauthState"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleOAuthConfig holds the client credentials of the Google app.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
}

// AuthHandler signs travelers in with Google.
type AuthHandler struct {
	userHandler *UserHandler
	oauth       *oauth2.Config
	userInfoURL string
}

func NewAuthHandler(userHandler *UserHandler, baseURL string, cfg GoogleOAuthConfig) *AuthHandler {
	return &AuthHandler{
		userHandler: userHandler,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  baseURL + "/users/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *AuthHandler) enabled(c *gin.Context) bool {
	if h.oauth.ClientID == "" {
		ErrorHandler(c, apperror.NotFound("Google sign-in is not configured"))
		return false
	}
	return true
}

func (h *AuthHandler) HandleGoogleLogin(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		ErrorHandler(c, apperror.Unexpected("internal server error", err))
		return
	}
	state := base64.URLEncoding.EncodeToString(b)
	c.SetCookie(oauthStateCookie, state, 300, "/", h.userHandler.cookie.Domain, h.userHandler.cookie.Secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

func (h *AuthHandler) HandleGoogleCallback(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || cookieState == "" || c.Query("state") != cookieState {
		ErrorHandler(c, apperror.Auth("invalid OAuth state"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", h.userHandler.cookie.Domain, h.userHandler.cookie.Secure, true)

	code := c.Query("code")
	if code == "" {
		ErrorHandler(c, apperror.Validation("authorization code not provided"))
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		ErrorHandler(c, apperror.Auth("failed to exchange authorization code"))
		return
	}
	resp, err := h.oauth.Client(ctx, token).Get(h.userInfoURL)
	if err != nil {
		ErrorHandler(c, apperror.Unexpected("internal server error", fmt.Errorf("google user info: %w", err)))
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		ErrorHandler(c, apperror.Unexpected("internal server error", fmt.Errorf("decode google user info: %w", err)))
		return
	}

	session, err := h.userHandler.userUsecase.LoginWithOAuth(ctx, info.Name, info.Email)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	h.userHandler.sendSession(c, http.StatusOK, session)
}

