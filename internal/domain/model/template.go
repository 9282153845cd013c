//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/target/admin-panel/internal/validation"
)

const (
	maxTitleLen = 200
	maxSlugLen  = 200
)

// Template validation messages.
const (
	MsgTitleRequired       = "Title is required"
	MsgSlugRequired        = "Slug is required"
	MsgSlugInvalid         = "Slug may only contain lowercase letters, numbers and hyphens"
	MsgTemplateTypeInvalid = "Type must be static or dynamic"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// TemplateType distinguishes static pages from dynamically rendered ones.
type TemplateType string

const (
	TemplateTypeStatic  TemplateType = "static"
	TemplateTypeDynamic TemplateType = "dynamic"
)

// Valid reports whether the template type is supported.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateTypeStatic, TemplateTypeDynamic:
		return true
	default:
		return false
	}
}

// ParseTemplateType normalizes a template type string and reports whether it is supported.
func ParseTemplateType(value string) (TemplateType, bool) {
	t := TemplateType(strings.ToLower(strings.TrimSpace(value)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// Template is a content page definition.
type Template struct {
	ID        string       `json:"id"                db:"id"`
	Title     string       `json:"title"             db:"title"`
	Slug      string       `json:"slug"              db:"slug"`
	Type      TemplateType `json:"type"              db:"type"`
	Content   *string      `json:"content,omitempty" db:"content"`
	Banner    *string      `json:"banner,omitempty"  db:"banner"`
	CreatedAt time.Time    `json:"createdAt"         db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt"         db:"updated_at"`
}

// Slugify derives a slug from a title: lowercase ASCII letters and digits joined by hyphens.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CreateTemplateRequest represents parameters to create a Template.
type CreateTemplateRequest struct {
	Title   string       `json:"title"`
	Slug    string       `json:"slug"`
	Type    TemplateType `json:"type,omitempty"`
	Content *string      `json:"content,omitempty"`
	Banner  *string      `json:"banner,omitempty"`
}

// Validate validates CreateTemplateRequest and applies defaults.
// A missing slug is derived from the title.
func (r *CreateTemplateRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
	if r.Slug == "" {
		r.Slug = Slugify(r.Title)
	}
	if r.Type == "" {
		r.Type = TemplateTypeStatic
	}

	fv := validation.New().
		Validate("title", r.Title, validation.Required(MsgTitleRequired), validation.MaxLength("Title", maxTitleLen)).
		Validate("slug", r.Slug,
			validation.Required(MsgSlugRequired),
			validation.Pattern(slugRe, MsgSlugInvalid),
			validation.MaxLength("Slug", maxSlugLen))
	if t, ok := ParseTemplateType(string(r.Type)); ok {
		r.Type = t
	} else {
		fv.Add("type", MsgTemplateTypeInvalid)
	}
	if r.Banner != nil {
		fv.Validate("banner", *r.Banner, validation.HTTPURL("Banner"))
	}
	return fv.Err()
}

// UpdateTemplateRequest represents parameters to update a Template.
type UpdateTemplateRequest struct {
	Title   *string       `json:"title,omitempty"`
	Slug    *string       `json:"slug,omitempty"`
	Type    *TemplateType `json:"type,omitempty"`
	Content *string       `json:"content,omitempty"`
	Banner  *string       `json:"banner,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateTemplateRequest.
func (r *UpdateTemplateRequest) HasUpdates() bool {
	return r.Title != nil || r.Slug != nil || r.Type != nil || r.Content != nil || r.Banner != nil
}

// Validate validates UpdateTemplateRequest.
func (r *UpdateTemplateRequest) Validate() error {
	if !r.HasUpdates() {
		return validation.FieldErrors{"": "at least one field must be updated"}
	}
	fv := validation.New()
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		fv.Validate("title", *r.Title, validation.Required(MsgTitleRequired), validation.MaxLength("Title", maxTitleLen))
	}
	if r.Slug != nil {
		*r.Slug = strings.TrimSpace(*r.Slug)
		fv.Validate("slug", *r.Slug,
			validation.Required(MsgSlugRequired),
			validation.Pattern(slugRe, MsgSlugInvalid),
			validation.MaxLength("Slug", maxSlugLen))
	}
	if r.Type != nil {
		if t, ok := ParseTemplateType(string(*r.Type)); ok {
			*r.Type = t
		} else {
			fv.Add("type", MsgTemplateTypeInvalid)
		}
	}
	if r.Banner != nil {
		fv.Validate("banner", *r.Banner, validation.HTTPURL("Banner"))
	}
	return fv.Err()
}
