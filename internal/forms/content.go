package forms

import (
	"regexp"
	"strings"

	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/validation"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Template is the add/edit template form.
type Template struct {
	Title   string
	Slug    string
	Type    string
	Content string
	Banner  string
}

// Validate checks the form.
func (f Template) Validate() validation.FieldErrors {
	return validation.New().
		Validate("title", f.Title, validation.Required(model.MsgTitleRequired)).
		Validate("slug", f.Slug,
			validation.Required(model.MsgSlugRequired),
			validation.Pattern(slugRe, model.MsgSlugInvalid)).
		Validate("type", f.Type, validation.OneOf(model.MsgTemplateTypeInvalid,
			string(model.TemplateTypeStatic), string(model.TemplateTypeDynamic))).
		Validate("banner", f.Banner, validation.HTTPURL("Banner")).
		Errors()
}

// Request converts the form into a create or replace body.
func (f Template) Request() model.CreateTemplateRequest {
	req := model.CreateTemplateRequest{
		Title: strings.TrimSpace(f.Title),
		Slug:  strings.TrimSpace(f.Slug),
		Type:  model.TemplateType(strings.ToLower(strings.TrimSpace(f.Type))),
	}
	if f.Content != "" {
		req.Content = &f.Content
	}
	if b := strings.TrimSpace(f.Banner); b != "" {
		req.Banner = &b
	}
	return req
}

// Menu is the add/edit menu form.
type Menu struct {
	Title      string
	Type       string
	Status     string
	TemplateID string
}

// Validate checks the form.
func (f Menu) Validate() validation.FieldErrors {
	return validation.New().
		Validate("title", f.Title, validation.Required(model.MsgTitleRequired)).
		Validate("type", f.Type, validation.OneOf(model.MsgMenuTypeInvalid,
			string(model.MenuTypeList), string(model.MenuTypeSingle), string(model.MenuTypeGrid))).
		Validate("status", f.Status, validation.OneOf(model.MsgMenuStatusInvalid,
			string(model.MenuStatusActive), string(model.MenuStatusInactive))).
		Errors()
}

// Request converts the form into a create or replace body.
func (f Menu) Request() model.CreateMenuRequest {
	return model.CreateMenuRequest{
		Title:      strings.TrimSpace(f.Title),
		Type:       model.MenuType(strings.ToLower(strings.TrimSpace(f.Type))),
		Status:     model.MenuStatus(strings.ToLower(strings.TrimSpace(f.Status))),
		TemplateID: strings.TrimSpace(f.TemplateID),
	}
}

// Dynamic validates submitted values against built form fields.
// Errors are keyed by field id.
func Dynamic(fields []model.FormField, values map[string]string) validation.FieldErrors {
	fv := validation.New()
	for _, f := range fields {
		fv.Add(f.ID, f.ValidateValue(values[f.ID]))
	}
	return fv.Errors()
}

// Settings validates the appearance form.
func Settings(theme, font string) validation.FieldErrors {
	return validation.New().
		Validate("theme", theme, validation.OneOf(model.MsgThemeInvalid, model.Themes...)).
		Validate("font", font, validation.OneOf(model.MsgFontInvalid, model.Fonts...)).
		Errors()
}
