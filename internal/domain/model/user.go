//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/validation"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	maxNameLen     = 100
	maxEmailLen    = 254
	// MinPasswordLen is the shortest accepted password.
	MinPasswordLen = 6
)

// Messages shared by server-side request validation and client forms.
const (
	MsgUsernameRequired = "Username is required"
	MsgUsernameTooShort = "Username must be at least 3 characters"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email address"
	MsgNameRequired     = "Name is required"
	MsgRoleRequired     = "Role is required"
	MsgRoleInvalid      = "Role must be one of admin, editor, viewer"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgStatusInvalid    = "Status must be active or inactive"
)

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Valid reports whether the user status is supported.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return true
	default:
		return false
	}
}

func normalizeUserStatus(v UserStatus) UserStatus {
	normalized := UserStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return UserStatusActive
	}
	return normalized
}

// User is an account that can sign in to the panel.
type User struct {
	ID           string          `json:"id"        db:"id"`
	Username     string          `json:"username"  db:"username"`
	Email        string          `json:"email"     db:"email"`
	Name         string          `json:"name"      db:"name"`
	Role         domainauth.Role `json:"role"      db:"role"`
	Avatar       string          `json:"avatar"    db:"avatar"`
	Status       UserStatus      `json:"status"    db:"status"`
	PasswordHash string          `json:"-"         db:"password_hash"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the user may sign in.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }

// CreateUserRequest represents parameters to create a User.
type CreateUserRequest struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	Role     domainauth.Role `json:"role,omitempty"`
	Avatar   string          `json:"avatar,omitempty"`
	Status   UserStatus      `json:"status,omitempty"`
}

// Validate validates CreateUserRequest and applies defaults for role and status.
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Avatar = strings.TrimSpace(r.Avatar)
	if r.Role == "" {
		r.Role = domainauth.RoleEditor
	}
	r.Status = normalizeUserStatus(r.Status)

	fv := validation.New().
		Validate("username", r.Username,
			validation.Required(MsgUsernameRequired),
			validation.MinLength(minUsernameLen, MsgUsernameTooShort),
			validation.MaxLength("Username", maxUsernameLen)).
		Validate("email", r.Email,
			validation.Required(MsgEmailRequired),
			validation.Email(MsgEmailInvalid),
			validation.MaxLength("Email", maxEmailLen)).
		Validate("password", r.Password,
			validation.Required(MsgPasswordRequired),
			validation.MinLength(MinPasswordLen, MsgPasswordTooShort)).
		Validate("name", r.Name,
			validation.Required(MsgNameRequired),
			validation.MaxLength("Name", maxNameLen)).
		Validate("avatar", r.Avatar, validation.HTTPURL("Avatar"))
	if role, ok := domainauth.ParseRole(string(r.Role)); ok {
		r.Role = role
	} else {
		fv.Add("role", MsgRoleInvalid)
	}
	if !r.Status.Valid() {
		fv.Add("status", MsgStatusInvalid)
	}
	return fv.Err()
}

// UpdateUserRequest represents parameters to update a User.
// An empty password is treated as "leave unchanged".
type UpdateUserRequest struct {
	Username *string          `json:"username,omitempty"`
	Email    *string          `json:"email,omitempty"`
	Password *string          `json:"password,omitempty"`
	Name     *string          `json:"name,omitempty"`
	Role     *domainauth.Role `json:"role,omitempty"`
	Avatar   *string          `json:"avatar,omitempty"`
	Status   *UserStatus      `json:"status,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Username != nil || r.Email != nil || r.Password != nil || r.Name != nil ||
		r.Role != nil || r.Avatar != nil || r.Status != nil
}

// Validate validates UpdateUserRequest, normalizing provided values in place.
func (r *UpdateUserRequest) Validate() error {
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
	if !r.HasUpdates() {
		return validation.FieldErrors{"": "at least one field must be updated"}
	}

	fv := validation.New()
	if r.Username != nil {
		*r.Username = strings.TrimSpace(*r.Username)
		fv.Validate("username", *r.Username,
			validation.Required(MsgUsernameRequired),
			validation.MinLength(minUsernameLen, MsgUsernameTooShort),
			validation.MaxLength("Username", maxUsernameLen))
	}
	if r.Email != nil {
		*r.Email = strings.TrimSpace(*r.Email)
		fv.Validate("email", *r.Email,
			validation.Required(MsgEmailRequired),
			validation.Email(MsgEmailInvalid),
			validation.MaxLength("Email", maxEmailLen))
	}
	if r.Password != nil {
		fv.Validate("password", *r.Password, validation.MinLength(MinPasswordLen, MsgPasswordTooShort))
	}
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		fv.Validate("name", *r.Name,
			validation.Required(MsgNameRequired),
			validation.MaxLength("Name", maxNameLen))
	}
	if r.Avatar != nil {
		*r.Avatar = strings.TrimSpace(*r.Avatar)
		fv.Validate("avatar", *r.Avatar, validation.HTTPURL("Avatar"))
	}
	if r.Role != nil {
		role, ok := domainauth.ParseRole(string(*r.Role))
		if ok {
			*r.Role = role
		} else {
			fv.Add("role", MsgRoleInvalid)
		}
	}
	if r.Status != nil {
		status := UserStatus(strings.ToLower(strings.TrimSpace(string(*r.Status))))
		if status.Valid() {
			*r.Status = status
		} else {
			fv.Add("status", MsgStatusInvalid)
		}
	}
	return fv.Err()
}

// UpdateProfileRequest lets a signed-in user edit their own display fields.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// ToUserUpdate converts the profile patch into a user update without privileged fields.
func (r UpdateProfileRequest) ToUserUpdate() UpdateUserRequest {
	return UpdateUserRequest{Name: r.Name, Email: r.Email, Avatar: r.Avatar}
}

// ChangePasswordRequest carries a password rotation for the signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Password change messages.
const (
	MsgCurrentPasswordRequired  = "Current password is required"
	MsgNewPasswordRequired      = "New password is required"
	MsgConfirmPasswordRequired  = "Please confirm your password"
	MsgPasswordsMustMatch       = "Passwords must match"
	MsgNewPasswordsDoNotMatch   = "New passwords do not match"
	MsgCurrentPasswordIncorrect = "Current password is incorrect"
)

// Validate validates ChangePasswordRequest.
func (r *ChangePasswordRequest) Validate() error {
	fv := validation.New().
		Validate("currentPassword", r.CurrentPassword, validation.Required(MsgCurrentPasswordRequired)).
		Validate("newPassword", r.NewPassword,
			validation.Required(MsgNewPasswordRequired),
			validation.MinLength(MinPasswordLen, MsgPasswordTooShort))
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.NewPassword {
		fv.Add("confirmPassword", MsgNewPasswordsDoNotMatch)
	}
	return fv.Err()
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validation.New().
		Validate("username", r.Username, validation.Required(MsgUsernameRequired)).
		Validate("password", r.Password, validation.Required(MsgPasswordRequired)).
		Err()
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}
