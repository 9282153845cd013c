//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	"github.com/target/admin-panel/internal/validation"
)

// Menu validation messages.
const (
	MsgMenuTypeInvalid   = "Type must be one of list, single, grid"
	MsgMenuStatusInvalid = "Status must be active or inactive"
)

// MenuType controls how a menu renders its entries.
type MenuType string

const (
	MenuTypeList   MenuType = "list"
	MenuTypeSingle MenuType = "single"
	MenuTypeGrid   MenuType = "grid"
)

// Valid reports whether the menu type is supported.
func (t MenuType) Valid() bool {
	switch t {
	case MenuTypeList, MenuTypeSingle, MenuTypeGrid:
		return true
	default:
		return false
	}
}

// MenuStatus toggles menu visibility.
type MenuStatus string

const (
	MenuStatusActive   MenuStatus = "active"
	MenuStatusInactive MenuStatus = "inactive"
)

// Valid reports whether the menu status is supported.
func (s MenuStatus) Valid() bool {
	switch s {
	case MenuStatusActive, MenuStatusInactive:
		return true
	default:
		return false
	}
}

// Menu is a navigation entry pointing at a template.
// TemplateID is not checked against the templates table.
type Menu struct {
	ID         string     `json:"id"         db:"id"`
	Title      string     `json:"title"      db:"title"`
	Type       MenuType   `json:"type"       db:"type"`
	Status     MenuStatus `json:"status"     db:"status"`
	TemplateID string     `json:"templateId" db:"template_id"`
	CreatedAt  time.Time  `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt"  db:"updated_at"`
}

// CreateMenuRequest represents parameters to create a Menu.
type CreateMenuRequest struct {
	Title      string     `json:"title"`
	Type       MenuType   `json:"type,omitempty"`
	Status     MenuStatus `json:"status,omitempty"`
	TemplateID string     `json:"templateId,omitempty"`
}

// Validate validates CreateMenuRequest and applies defaults.
func (r *CreateMenuRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.TemplateID = strings.TrimSpace(r.TemplateID)
	r.Type = MenuType(strings.ToLower(strings.TrimSpace(string(r.Type))))
	if r.Type == "" {
		r.Type = MenuTypeList
	}
	r.Status = MenuStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if r.Status == "" {
		r.Status = MenuStatusActive
	}

	fv := validation.New().
		Validate("title", r.Title, validation.Required(MsgTitleRequired), validation.MaxLength("Title", maxTitleLen))
	if !r.Type.Valid() {
		fv.Add("type", MsgMenuTypeInvalid)
	}
	if !r.Status.Valid() {
		fv.Add("status", MsgMenuStatusInvalid)
	}
	return fv.Err()
}

// UpdateMenuRequest represents parameters to update a Menu.
type UpdateMenuRequest struct {
	Title      *string     `json:"title,omitempty"`
	Type       *MenuType   `json:"type,omitempty"`
	Status     *MenuStatus `json:"status,omitempty"`
	TemplateID *string     `json:"templateId,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateMenuRequest.
func (r *UpdateMenuRequest) HasUpdates() bool {
	return r.Title != nil || r.Type != nil || r.Status != nil || r.TemplateID != nil
}

// Validate validates UpdateMenuRequest.
func (r *UpdateMenuRequest) Validate() error {
	if !r.HasUpdates() {
		return validation.FieldErrors{"": "at least one field must be updated"}
	}
	fv := validation.New()
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		fv.Validate("title", *r.Title, validation.Required(MsgTitleRequired), validation.MaxLength("Title", maxTitleLen))
	}
	if r.Type != nil {
		*r.Type = MenuType(strings.ToLower(strings.TrimSpace(string(*r.Type))))
		if !r.Type.Valid() {
			fv.Add("type", MsgMenuTypeInvalid)
		}
	}
	if r.Status != nil {
		*r.Status = MenuStatus(strings.ToLower(strings.TrimSpace(string(*r.Status))))
		if !r.Status.Valid() {
			fv.Add("status", MsgMenuStatusInvalid)
		}
	}
	if r.TemplateID != nil {
		*r.TemplateID = strings.TrimSpace(*r.TemplateID)
	}
	return fv.Err()
}
