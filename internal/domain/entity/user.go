package entity

import (
	"time"
)

// User represents an account: a traveler, a guide or a member of staff.
type User struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Email         string     `bson:"email" json:"email"`
	PasswordHash  string     `bson:"password_hash" json:"-"`
	Photo         string     `bson:"photo,omitempty" json:"photo,omitempty"`
	Role          UserRole   `bson:"role" json:"role"`
	Verified      bool       `bson:"verified" json:"verified"`
	EmailVerified bool       `bson:"email_verified" json:"email_verified"`
	Active        bool       `bson:"active" json:"-"`
	Visited       int        `bson:"visited" json:"visited"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
	// PasswordChangedAt invalidates tokens issued before it.
	PasswordChangedAt *time.Time `bson:"password_changed_at,omitempty" json:"-"`

	// guide-only attributes
	PhoneNumber    *string  `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Experience     *int     `bson:"experience,omitempty" json:"experience,omitempty"`
	Languages      []string `bson:"languages,omitempty" json:"languages,omitempty"`
	Specialization *string  `bson:"specialization,omitempty" json:"specialization,omitempty"`
}

// DefaultPhoto is assigned to accounts created without one.
const DefaultPhoto = "https://upload.wikimedia.org/wikipedia/commons/thumb/9/9e/Male_Avatar.jpg/800px-Male_Avatar.jpg"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleGuide      UserRole = "guide"
	UserRolePremium    UserRole = "premium"
	UserRoleEmployee   UserRole = "employee"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "superadmin"
)

// AdminRoles may use the operational endpoints.
var AdminRoles = []UserRole{UserRoleAdmin, UserRoleSuperAdmin}

func DefaultRole() UserRole {
	return UserRoleUser
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleGuide, UserRolePremium, UserRoleEmployee, UserRoleAdmin, UserRoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r is admin or superadmin.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// SelfServiceRole reports whether r may be chosen at public signup.
func (r UserRole) SelfServiceRole() bool {
	return r == UserRoleUser || r == UserRolePremium
}

// IsGuide reports whether the user holds the guide role.
func (u *User) IsGuide() bool {
	return u.Role == UserRoleGuide
}

// Assignable reports whether the user may be attached to a booking as its guide.
func (u *User) Assignable() bool {
	return u.IsGuide() && u.Verified && u.Active
}

// ChangedPasswordAfter reports whether the password changed after a token
// issued at issuedAt. Comparison is at second precision, like JWT iat.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

// ClearGuideFields drops guide-only attributes for non-guide roles.
func (u *User) ClearGuideFields() {
	if u.IsGuide() {
		return
	}
	u.PhoneNumber = nil
	u.Experience = nil
	u.Languages = nil
	u.Specialization = nil
}
