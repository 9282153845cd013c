//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	"github.com/target/admin-panel/internal/validation"
)

// Settings validation messages.
const (
	MsgThemeInvalid = "Theme must be one of light, dark, blue"
	MsgFontInvalid  = "Font must be one of Roboto, Poppins, Open Sans, Lato"
)

// Supported appearance values.
var (
	Themes = []string{"light", "dark", "blue"}
	Fonts  = []string{"Roboto", "Poppins", "Open Sans", "Lato"}
)

const (
	DefaultTheme = "light"
	DefaultFont  = "Roboto"
)

// Settings is the panel-wide appearance configuration.
type Settings struct {
	Theme     string    `json:"theme"     db:"theme"`
	Font      string    `json:"font"      db:"font"`
	Logo      string    `json:"logo"      db:"logo"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{Theme: DefaultTheme, Font: DefaultFont}
}

// UpdateSettingsRequest replaces the settings singleton.
type UpdateSettingsRequest struct {
	Theme string `json:"theme"`
	Font  string `json:"font"`
	Logo  string `json:"logo"`
}

// Validate validates UpdateSettingsRequest, canonicalizing case and filling defaults.
func (r *UpdateSettingsRequest) Validate() error {
	r.Theme = canonical(strings.TrimSpace(r.Theme), Themes)
	r.Font = canonical(strings.TrimSpace(r.Font), Fonts)
	r.Logo = strings.TrimSpace(r.Logo)
	if r.Theme == "" {
		r.Theme = DefaultTheme
	}
	if r.Font == "" {
		r.Font = DefaultFont
	}
	return validation.New().
		Validate("theme", r.Theme, validation.OneOf(MsgThemeInvalid, Themes...)).
		Validate("font", r.Font, validation.OneOf(MsgFontInvalid, Fonts...)).
		Validate("logo", r.Logo, validation.HTTPURL("Logo")).
		Err()
}

func canonical(v string, options []string) string {
	for _, opt := range options {
		if strings.EqualFold(v, opt) {
			return opt
		}
	}
	return v
}
