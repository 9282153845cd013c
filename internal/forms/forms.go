// Package forms validates client-side input before any request is sent.
// Every function is pure and returns an empty FieldErrors when the input is valid.
package forms

import (
	"strings"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/validation"
)

const minUsernameLen = 3

// Login validates the sign-in form.
func Login(username, password string) validation.FieldErrors {
	return validation.New().
		Validate("username", username, validation.Required(model.MsgUsernameRequired)).
		Validate("password", password, validation.Required(model.MsgPasswordRequired)).
		Errors()
}

// User is the add/edit user form.
type User struct {
	Username        string
	Email           string
	Name            string
	Role            string
	Avatar          string
	Status          string
	Password        string
	ConfirmPassword string
}

// Validate checks the form. The password is required only when creating;
// a confirmation is required whenever a password is entered.
func (f User) Validate(creating bool) validation.FieldErrors {
	fv := validation.New().
		Validate("username", f.Username,
			validation.Required(model.MsgUsernameRequired),
			validation.MinLength(minUsernameLen, model.MsgUsernameTooShort)).
		Validate("email", f.Email,
			validation.Required(model.MsgEmailRequired),
			validation.Email(model.MsgEmailInvalid)).
		Validate("name", f.Name, validation.Required(model.MsgNameRequired)).
		Validate("role", f.Role,
			validation.Required(model.MsgRoleRequired),
			validation.OneOf(model.MsgRoleInvalid,
				string(domainauth.RoleAdmin), string(domainauth.RoleEditor), string(domainauth.RoleViewer))).
		Validate("avatar", f.Avatar, validation.HTTPURL("Avatar"))
	if creating {
		fv.Validate("password", f.Password, validation.Required(model.MsgPasswordRequired))
	}
	fv.Validate("password", f.Password, validation.MinLength(model.MinPasswordLen, model.MsgPasswordTooShort))
	if f.Password != "" {
		fv.Validate("confirmPassword", f.ConfirmPassword,
			validation.Required(model.MsgConfirmPasswordRequired),
			validation.Matches(f.Password, model.MsgPasswordsMustMatch))
	}
	if f.Status != "" {
		fv.Validate("status", f.Status, validation.OneOf(model.MsgStatusInvalid,
			string(model.UserStatusActive), string(model.UserStatusInactive)))
	}
	return fv.Errors()
}

// CreateRequest converts the form into a create body.
func (f User) CreateRequest() model.CreateUserRequest {
	return model.CreateUserRequest{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Name:     strings.TrimSpace(f.Name),
		Role:     domainauth.Role(strings.ToLower(strings.TrimSpace(f.Role))),
		Avatar:   strings.TrimSpace(f.Avatar),
		Status:   model.UserStatus(strings.ToLower(strings.TrimSpace(f.Status))),
	}
}

// UpdateRequest converts the form into a patch. An empty password is left out.
func (f User) UpdateRequest() model.UpdateUserRequest {
	c := f.CreateRequest()
	req := model.UpdateUserRequest{
		Username: &c.Username,
		Email:    &c.Email,
		Name:     &c.Name,
		Role:     &c.Role,
		Avatar:   &c.Avatar,
	}
	if c.Status != "" {
		req.Status = &c.Status
	}
	if c.Password != "" {
		req.Password = &c.Password
	}
	return req
}

// ChangePassword is the change password form.
type ChangePassword struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Validate checks the form.
func (f ChangePassword) Validate() validation.FieldErrors {
	return validation.New().
		Validate("currentPassword", f.CurrentPassword, validation.Required(model.MsgCurrentPasswordRequired)).
		Validate("newPassword", f.NewPassword,
			validation.Required(model.MsgNewPasswordRequired),
			validation.MinLength(model.MinPasswordLen, model.MsgPasswordTooShort)).
		Validate("confirmPassword", f.ConfirmPassword,
			validation.Required(model.MsgConfirmPasswordRequired),
			validation.Matches(f.NewPassword, model.MsgPasswordsMustMatch)).
		Errors()
}

// Request converts the form into the API body.
func (f ChangePassword) Request() model.ChangePasswordRequest {
	return model.ChangePasswordRequest{
		CurrentPassword: f.CurrentPassword,
		NewPassword:     f.NewPassword,
		ConfirmPassword: f.ConfirmPassword,
	}
}
