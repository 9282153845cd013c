//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/target/admin-panel/internal/validation"
)

const maxMessageLen = 5000

// Form validation messages.
const (
	MsgFormStatusInvalid   = "Status must be one of new, read, archived"
	MsgFieldEmailInvalid   = "Please enter a valid email address"
	MsgFieldNumberInvalid  = "Please enter a valid number"
	MsgFieldTypeInvalid    = "Field type is not supported"
	MsgFieldIDRequired     = "Field id is required"
	MsgFieldIDDuplicate    = "Field id must be unique"
	MsgFieldLabelRequired  = "Field label is required"
	MsgFieldOptionRequired = "Select fields need at least one option"
)

// FormStatus tracks how far a submission has been processed.
type FormStatus string

const (
	FormStatusNew      FormStatus = "new"
	FormStatusRead     FormStatus = "read"
	FormStatusArchived FormStatus = "archived"
)

// Valid reports whether the form status is supported.
func (s FormStatus) Valid() bool {
	switch s {
	case FormStatusNew, FormStatusRead, FormStatusArchived:
		return true
	default:
		return false
	}
}

// FieldType is the input kind of a form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
)

// Valid reports whether the field type is supported.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeTextarea, FieldTypeCheckbox, FieldTypeSelect:
		return true
	default:
		return false
	}
}

// FieldOption is one choice of a select field.
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormField describes one input of a built form and optionally its submitted value.
type FormField struct {
	ID       string        `json:"id"`
	Type     FieldType     `json:"type"`
	Label    string        `json:"label"`
	Required bool          `json:"required"`
	Options  []FieldOption `json:"options,omitempty"`
	Value    string        `json:"value,omitempty"`
}

// ValidateValue checks a submitted value against the field definition and returns a message, or "".
// Checkbox values are "true"/"false"; a required checkbox must be checked.
func (f FormField) ValidateValue(v string) string {
	required := func(s string) string {
		if f.Required && strings.TrimSpace(s) == "" {
			return f.Label + " is required"
		}
		return ""
	}
	switch f.Type {
	case FieldTypeEmail:
		if msg := required(v); msg != "" {
			return msg
		}
		return validation.Email(MsgFieldEmailInvalid)(v)
	case FieldTypeNumber:
		if msg := required(v); msg != "" {
			return msg
		}
		return validation.Number(MsgFieldNumberInvalid)(v)
	case FieldTypeCheckbox:
		if f.Required && v != "true" {
			return f.Label + " is required"
		}
		return ""
	case FieldTypeSelect:
		if msg := required(v); msg != "" {
			return msg
		}
		if v == "" || len(f.Options) == 0 {
			return ""
		}
		for _, o := range f.Options {
			if o.Value == v {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of the listed options", f.Label)
	default:
		return required(v)
	}
}

// ValidateFields checks field definitions and their current values.
func ValidateFields(fields []FormField) validation.FieldErrors {
	errs := validation.FieldErrors{}
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		key := fmt.Sprintf("fields[%d]", i)
		switch {
		case strings.TrimSpace(f.ID) == "":
			errs[key] = MsgFieldIDRequired
			continue
		case strings.TrimSpace(f.Label) == "":
			errs[key] = MsgFieldLabelRequired
			continue
		case !f.Type.Valid():
			errs[key] = MsgFieldTypeInvalid
			continue
		case f.Type == FieldTypeSelect && len(f.Options) == 0:
			errs[key] = MsgFieldOptionRequired
			continue
		}
		if _, dup := seen[f.ID]; dup {
			errs[key] = MsgFieldIDDuplicate
			continue
		}
		seen[f.ID] = struct{}{}
		if f.Value != "" {
			if msg := f.ValidateValue(f.Value); msg != "" {
				errs[f.ID] = msg
			}
		}
	}
	return errs
}

// FormSubmission is a message received through a site form.
type FormSubmission struct {
	ID        string      `json:"id"        db:"id"`
	Name      string      `json:"name"      db:"name"`
	Email     string      `json:"email"     db:"email"`
	Message   string      `json:"message"   db:"message"`
	Status    FormStatus  `json:"status"    db:"status"`
	Fields    []FormField `json:"fields"    db:"fields"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// CreateFormRequest represents parameters to create a FormSubmission.
type CreateFormRequest struct {
	Name    string      `json:"name"`
	Email   string      `json:"email,omitempty"`
	Message string      `json:"message,omitempty"`
	Status  FormStatus  `json:"status,omitempty"`
	Fields  []FormField `json:"fields,omitempty"`
}

// Validate validates CreateFormRequest and applies defaults.
func (r *CreateFormRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Status = FormStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if r.Status == "" {
		r.Status = FormStatusNew
	}
	if r.Fields == nil {
		r.Fields = []FormField{}
	}

	fv := validation.New().
		Validate("name", r.Name, validation.Required(MsgNameRequired), validation.MaxLength("Name", maxNameLen)).
		Validate("email", r.Email, validation.Email(MsgEmailInvalid)).
		Validate("message", r.Message, validation.MaxLength("Message", maxMessageLen))
	if !r.Status.Valid() {
		fv.Add("status", MsgFormStatusInvalid)
	}
	for k, msg := range ValidateFields(r.Fields) {
		fv.Add(k, msg)
	}
	return fv.Err()
}

// UpdateFormRequest represents parameters to update a FormSubmission.
type UpdateFormRequest struct {
	Name    *string      `json:"name,omitempty"`
	Email   *string      `json:"email,omitempty"`
	Message *string      `json:"message,omitempty"`
	Status  *FormStatus  `json:"status,omitempty"`
	Fields  *[]FormField `json:"fields,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateFormRequest.
func (r *UpdateFormRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Message != nil || r.Status != nil || r.Fields != nil
}

// Validate validates UpdateFormRequest.
func (r *UpdateFormRequest) Validate() error {
	if !r.HasUpdates() {
		return validation.FieldErrors{"": "at least one field must be updated"}
	}
	fv := validation.New()
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		fv.Validate("name", *r.Name, validation.Required(MsgNameRequired), validation.MaxLength("Name", maxNameLen))
	}
	if r.Email != nil {
		*r.Email = strings.TrimSpace(*r.Email)
		fv.Validate("email", *r.Email, validation.Email(MsgEmailInvalid))
	}
	if r.Message != nil {
		fv.Validate("message", *r.Message, validation.MaxLength("Message", maxMessageLen))
	}
	if r.Status != nil {
		*r.Status = FormStatus(strings.ToLower(strings.TrimSpace(string(*r.Status))))
		if !r.Status.Valid() {
			fv.Add("status", MsgFormStatusInvalid)
		}
	}
	if r.Fields != nil {
		for k, msg := range ValidateFields(*r.Fields) {
			fv.Add(k, msg)
		}
	}
	return fv.Err()
}
