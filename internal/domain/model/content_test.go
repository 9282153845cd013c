package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "about-us", Slugify("About Us"))
	assert.Equal(t, "hello-world-2", Slugify("  Hello,  World! 2 "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestCreateTemplateRequest_Validate(t *testing.T) {
	req := CreateTemplateRequest{Title: "About Us"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "about-us", req.Slug)
	assert.Equal(t, TemplateTypeStatic, req.Type)

	bad := CreateTemplateRequest{Title: "X", Slug: "Not A Slug", Type: "weird"}
	fe := fieldErrors(t, bad.Validate())
	assert.Equal(t, MsgSlugInvalid, fe["slug"])
	assert.Equal(t, MsgTemplateTypeInvalid, fe["type"])

	empty := CreateTemplateRequest{}
	fe = fieldErrors(t, empty.Validate())
	assert.Equal(t, MsgTitleRequired, fe["title"])
	assert.Equal(t, MsgSlugRequired, fe["slug"])
}

func TestParseTemplateType(t *testing.T) {
	tt, ok := ParseTemplateType(" Dynamic ")
	assert.True(t, ok)
	assert.Equal(t, TemplateTypeDynamic, tt)
	_, ok = ParseTemplateType("page")
	assert.False(t, ok)
}

func TestUpdateTemplateRequest_Validate(t *testing.T) {
	none := UpdateTemplateRequest{}
	require.Error(t, none.Validate())

	dyn := TemplateType("DYNAMIC")
	req := UpdateTemplateRequest{Type: &dyn}
	require.NoError(t, req.Validate())
	assert.Equal(t, TemplateTypeDynamic, *req.Type)
}

func TestCreateMenuRequest_Validate(t *testing.T) {
	req := CreateMenuRequest{Title: "Main"}
	require.NoError(t, req.Validate())
	assert.Equal(t, MenuTypeList, req.Type)
	assert.Equal(t, MenuStatusActive, req.Status)

	grid := CreateMenuRequest{Title: "Gallery", Type: "Grid", Status: "inactive", TemplateID: "missing-template"}
	require.NoError(t, grid.Validate(), "template references are not checked")

	bad := CreateMenuRequest{Type: "tree", Status: "hidden"}
	fe := fieldErrors(t, bad.Validate())
	assert.Equal(t, MsgTitleRequired, fe["title"])
	assert.Equal(t, MsgMenuTypeInvalid, fe["type"])
	assert.Equal(t, MsgMenuStatusInvalid, fe["status"])
}

func TestFormField_ValidateValue(t *testing.T) {
	email := FormField{ID: "email", Type: FieldTypeEmail, Label: "Email", Required: true}
	assert.Equal(t, "Email is required", email.ValidateValue(""))
	assert.Equal(t, MsgFieldEmailInvalid, email.ValidateValue("nope"))
	assert.Empty(t, email.ValidateValue("a@b.co"))

	age := FormField{ID: "age", Type: FieldTypeNumber, Label: "Age"}
	assert.Empty(t, age.ValidateValue(""))
	assert.Equal(t, MsgFieldNumberInvalid, age.ValidateValue("abc"))

	agree := FormField{ID: "agree", Type: FieldTypeCheckbox, Label: "Terms", Required: true}
	assert.Equal(t, "Terms is required", agree.ValidateValue("false"))
	assert.Empty(t, agree.ValidateValue("true"))

	color := FormField{ID: "color", Type: FieldTypeSelect, Label: "Color", Options: []FieldOption{{Value: "red", Label: "Red"}}}
	assert.Empty(t, color.ValidateValue("red"))
	assert.Equal(t, "Color must be one of the listed options", color.ValidateValue("blue"))
}

func TestValidateFields(t *testing.T) {
	errs := ValidateFields([]FormField{
		{ID: "a", Type: FieldTypeText, Label: "A"},
		{ID: "a", Type: FieldTypeText, Label: "Again"},
		{ID: "b", Type: "radio", Label: "B"},
		{ID: "", Type: FieldTypeText, Label: "C"},
		{ID: "d", Type: FieldTypeSelect, Label: "D"},
		{ID: "e", Type: FieldTypeEmail, Label: "E", Value: "bad"},
	})
	assert.Equal(t, MsgFieldIDDuplicate, errs["fields[1]"])
	assert.Equal(t, MsgFieldTypeInvalid, errs["fields[2]"])
	assert.Equal(t, MsgFieldIDRequired, errs["fields[3]"])
	assert.Equal(t, MsgFieldOptionRequired, errs["fields[4]"])
	assert.Equal(t, MsgFieldEmailInvalid, errs["e"])
	assert.NotContains(t, errs, "fields[0]")
}

func TestCreateFormRequest_Validate(t *testing.T) {
	req := CreateFormRequest{Name: "Contact", Email: "x@example.com", Message: "hi"}
	require.NoError(t, req.Validate())
	assert.Equal(t, FormStatusNew, req.Status)
	assert.NotNil(t, req.Fields)

	bad := CreateFormRequest{Email: "x", Status: "spam"}
	fe := fieldErrors(t, bad.Validate())
	assert.Equal(t, MsgNameRequired, fe["name"])
	assert.Equal(t, MsgEmailInvalid, fe["email"])
	assert.Equal(t, MsgFormStatusInvalid, fe["status"])
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	req := UpdateSettingsRequest{Theme: "DARK", Font: "open sans"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "dark", req.Theme)
	assert.Equal(t, "Open Sans", req.Font)

	defaults := UpdateSettingsRequest{}
	require.NoError(t, defaults.Validate())
	assert.Equal(t, DefaultTheme, defaults.Theme)
	assert.Equal(t, DefaultFont, defaults.Font)

	bad := UpdateSettingsRequest{Theme: "neon", Font: "Comic Sans", Logo: "file:///etc/passwd"}
	fe := fieldErrors(t, bad.Validate())
	assert.Equal(t, MsgThemeInvalid, fe["theme"])
	assert.Equal(t, MsgFontInvalid, fe["font"])
	assert.Equal(t, "Logo must be a valid http(s) URL", fe["logo"])
}
