// Package testutil provides testing utilities and helpers for the admin panel.
package testutil

import (
	"fmt"
	"sync/atomic"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
)

var seq atomic.Int64

// next returns a process-unique suffix so builders never collide on unique columns.
func next() int64 { return seq.Add(1) }

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req *model.CreateUserRequest
}

// NewUserRequest creates a new UserRequestBuilder with unique username and email.
func NewUserRequest() *UserRequestBuilder {
	n := next()
	return &UserRequestBuilder{
		req: &model.CreateUserRequest{
			Username: fmt.Sprintf("user%d", n),
			Email:    fmt.Sprintf("user%d@example.com", n),
			Password: "secret123",
			Name:     fmt.Sprintf("Test User %d", n),
			Role:     domainauth.RoleEditor,
			Status:   model.UserStatusActive,
		},
	}
}

// WithUsername sets the username.
func (b *UserRequestBuilder) WithUsername(username string) *UserRequestBuilder {
	b.req.Username = username
	return b
}

// WithEmail sets the email.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// WithPassword sets the plaintext password.
func (b *UserRequestBuilder) WithPassword(password string) *UserRequestBuilder {
	b.req.Password = password
	return b
}

// WithRole sets the role.
func (b *UserRequestBuilder) WithRole(role domainauth.Role) *UserRequestBuilder {
	b.req.Role = role
	return b
}

// WithStatus sets the status.
func (b *UserRequestBuilder) WithStatus(status model.UserStatus) *UserRequestBuilder {
	b.req.Status = status
	return b
}

// Build returns the built request.
func (b *UserRequestBuilder) Build() *model.CreateUserRequest {
	return b.req
}

// TemplateRequestBuilder builds CreateTemplateRequest objects for testing.
type TemplateRequestBuilder struct {
	req *model.CreateTemplateRequest
}

// NewTemplateRequest creates a builder with a unique title and slug.
func NewTemplateRequest() *TemplateRequestBuilder {
	n := next()
	return &TemplateRequestBuilder{
		req: &model.CreateTemplateRequest{
			Title: fmt.Sprintf("Page %d", n),
			Slug:  fmt.Sprintf("page-%d", n),
			Type:  model.TemplateTypeStatic,
		},
	}
}

// WithSlug sets the slug.
func (b *TemplateRequestBuilder) WithSlug(slug string) *TemplateRequestBuilder {
	b.req.Slug = slug
	return b
}

// WithType sets the template type.
func (b *TemplateRequestBuilder) WithType(t model.TemplateType) *TemplateRequestBuilder {
	b.req.Type = t
	return b
}

// WithContent sets the content body.
func (b *TemplateRequestBuilder) WithContent(content string) *TemplateRequestBuilder {
	b.req.Content = &content
	return b
}

// Build returns the built request.
func (b *TemplateRequestBuilder) Build() *model.CreateTemplateRequest {
	return b.req
}

// NewMenuRequest returns a valid CreateMenuRequest with a unique title.
func NewMenuRequest() *model.CreateMenuRequest {
	return &model.CreateMenuRequest{
		Title:  fmt.Sprintf("Menu %d", next()),
		Type:   model.MenuTypeList,
		Status: model.MenuStatusActive,
	}
}

// NewFormRequest returns a valid CreateFormRequest with one text and one email field.
func NewFormRequest() *model.CreateFormRequest {
	n := next()
	return &model.CreateFormRequest{
		Name:    fmt.Sprintf("Visitor %d", n),
		Email:   fmt.Sprintf("visitor%d@example.com", n),
		Message: "Hello there",
		Status:  model.FormStatusNew,
		Fields: []model.FormField{
			{ID: "subject", Type: model.FieldTypeText, Label: "Subject", Required: true, Value: "Hi"},
			{ID: "reply_to", Type: model.FieldTypeEmail, Label: "Reply to", Value: "me@example.com"},
		},
	}
}
