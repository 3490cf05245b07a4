package users

import (
	"github.com/jrsteele09/nuur-client/internal/utils"
)

// User is the identity of the signed-in account as returned by GET /users/me.
type User struct {
	ID                string  `json:"id"`                   // Backend UUID
	Email             string  `json:"email"`                // Login email
	PhoneNumber       string  `json:"phone_number"`         // E.164 or local format, used for SMS alerts
	FirstName         *string `json:"first_name,omitempty"` // Optional
	LastName          *string `json:"last_name,omitempty"`  // Optional
	PreferredLanguage string  `json:"preferred_language"`   // e.g. "en", "am"
	IsActive          bool    `json:"is_active"`
	IsVerified        bool    `json:"is_verified"`
}

// Patch holds a partial update of a User. Nil fields are left untouched.
type Patch struct {
	Email             *string `json:"email,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
	IsVerified        *bool   `json:"is_verified,omitempty"`
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.FirstName = utils.ClonePtr(u.FirstName)
	c.LastName = utils.ClonePtr(u.LastName)
	return &c
}

// Apply returns a copy of u with every non-nil field of p replaced.
func (u User) Apply(p Patch) User {
	u.Email = utils.Merge(u.Email, p.Email)
	u.PhoneNumber = utils.Merge(u.PhoneNumber, p.PhoneNumber)
	u.PreferredLanguage = utils.Merge(u.PreferredLanguage, p.PreferredLanguage)
	u.IsActive = utils.Merge(u.IsActive, p.IsActive)
	u.IsVerified = utils.Merge(u.IsVerified, p.IsVerified)
	if p.FirstName != nil {
		u.FirstName = utils.Ptr(*p.FirstName)
	} else {
		u.FirstName = utils.ClonePtr(u.FirstName)
	}
	if p.LastName != nil {
		u.LastName = utils.Ptr(*p.LastName)
	} else {
		u.LastName = utils.ClonePtr(u.LastName)
	}
	return u
}

// AsPatch returns a patch carrying every field of u, for syncing a stored
// copy with the backend's version of the account.
func (u *User) AsPatch() Patch {
	return Patch{
		Email:             utils.Ptr(u.Email),
		PhoneNumber:       utils.Ptr(u.PhoneNumber),
		FirstName:         utils.ClonePtr(u.FirstName),
		LastName:          utils.ClonePtr(u.LastName),
		PreferredLanguage: utils.Ptr(u.PreferredLanguage),
		IsActive:          utils.Ptr(u.IsActive),
		IsVerified:        utils.Ptr(u.IsVerified),
	}
}

// DisplayName returns "First Last" when known, falling back to the email.
func (u *User) DisplayName() string {
	name := utils.Value(u.FirstName)
	if last := utils.Value(u.LastName); last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	if name == "" {
		return u.Email
	}
	return name
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phone_number"`
	Password          string  `json:"password"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	PreferredLanguage string  `json:"preferred_language,omitempty"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT /users/me.
type ProfileUpdate struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
}

// AsPatch converts the update into a session patch.
func (p ProfileUpdate) AsPatch() Patch {
	return Patch{
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		PreferredLanguage: p.PreferredLanguage,
		PhoneNumber:       p.PhoneNumber,
	}
}

// LoginResult is the payload of a successful login. User is only present when
// the backend chooses to embed it.
type LoginResult struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}
