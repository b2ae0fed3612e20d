package dto

import (
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// SignupRequest is the body of a traveler signup.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// GuideSignupRequest is the body of a guide application.
type GuideSignupRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	PhoneNumber    string   `json:"phone_number"`
	Experience     *int     `json:"experience"`
	Languages      []string `json:"languages"`
	Specialization string   `json:"specialization"`
}

// ToApplication maps the request onto the usecase input. Validation of every
// field happens there so that all missing fields are reported together.
func (r GuideSignupRequest) ToApplication() usecasecontract.GuideApplication {
	return usecasecontract.GuideApplication{
		Name:           r.Name,
		Email:          r.Email,
		Password:       r.Password,
		PhoneNumber:    r.PhoneNumber,
		Experience:     r.Experience,
		Languages:      r.Languages,
		Specialization: r.Specialization,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"password_current" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

// UserResponse is the account projection returned to clients. The password
// hash never leaves the server.
type UserResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Photo          string   `json:"photo,omitempty"`
	Verified       bool     `json:"verified"`
	EmailVerified  bool     `json:"email_verified"`
	PhoneNumber    *string  `json:"phone_number,omitempty"`
	Experience     *int     `json:"experience,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Specialization *string  `json:"specialization,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		Photo:          user.Photo,
		Verified:       user.Verified,
		EmailVerified:  user.EmailVerified,
		PhoneNumber:    user.PhoneNumber,
		Experience:     user.Experience,
		Languages:      user.Languages,
		Specialization: user.Specialization,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(*u))
	}
	return out
}

// SessionUser is the minimal projection sent with a session.
type SessionUser struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	Capabilities []entity.Capability `json:"capabilities"`
}

func ToSessionUser(user entity.User) SessionUser {
	return SessionUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		Capabilities: entity.CapabilitiesFor(user.Role),
	}
}

// PublicGuide is the guide card shown on the public site.
type PublicGuide struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Photo          string   `json:"photo,omitempty"`
	Experience     *int     `json:"experience,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Specialization *string  `json:"specialization,omitempty"`
}

func ToPublicGuides(guides []*entity.User) []PublicGuide {
	out := make([]PublicGuide, 0, len(guides))
	for _, g := range guides {
		out = append(out, PublicGuide{
			ID:             g.ID,
			Name:           g.Name,
			Photo:          g.Photo,
			Experience:     g.Experience,
			Languages:      g.Languages,
			Specialization: g.Specialization,
		})
	}
	return out
}
