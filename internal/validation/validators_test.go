package validation

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errUsernameRequired = "Username is required"

func TestRequired(t *testing.T) {
	v := Required(errUsernameRequired)
	assert.Empty(t, v("admin"))
	assert.Equal(t, errUsernameRequired, v(""))
	assert.Equal(t, errUsernameRequired, v("   "))
}

func TestMinLength(t *testing.T) {
	v := MinLength(3, "Username must be at least 3 characters")
	assert.Empty(t, v(""), "empty is left to Required")
	assert.Equal(t, "Username must be at least 3 characters", v("ab"))
	assert.Empty(t, v("abc"))
	assert.Empty(t, v("äöü"), "counts runes, not bytes")
}

func TestMaxLength(t *testing.T) {
	v := MaxLength("Title", 5)
	assert.Empty(t, v("exact"))
	assert.Equal(t, "Title cannot exceed 5 characters", v("toolong"))
	assert.Empty(t, v("日本語です"))
}

func TestEmail(t *testing.T) {
	v := Email("Invalid email address")
	tests := []struct {
		in    string
		valid bool
	}{
		{"", true},
		{"admin@example.com", true},
		{"  admin@example.com ", true},
		{"admin@example", false},
		{"admin.example.com", false},
		{"a b@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if tt.valid {
				assert.Empty(t, v(tt.in))
			} else {
				assert.Equal(t, "Invalid email address", v(tt.in))
			}
		})
	}
}

func TestNumber(t *testing.T) {
	v := Number("Please enter a valid number")
	assert.Empty(t, v(""))
	assert.Empty(t, v("42"))
	assert.Empty(t, v("-3.5"))
	assert.Equal(t, "Please enter a valid number", v("forty"))
}

func TestOneOf(t *testing.T) {
	v := OneOf("Type must be static or dynamic", "static", "dynamic")
	assert.Empty(t, v("static"))
	assert.Empty(t, v("DYNAMIC"))
	assert.Empty(t, v(""))
	assert.Equal(t, "Type must be static or dynamic", v("other"))
}

func TestPattern(t *testing.T) {
	v := Pattern(regexp.MustCompile(`^[a-z0-9-]+$`), "bad slug")
	assert.Empty(t, v("about-us"))
	assert.Empty(t, v(""))
	assert.Equal(t, "bad slug", v("About Us"))
}

func TestMatches(t *testing.T) {
	v := Matches("secret1", "Passwords must match")
	assert.Empty(t, v("secret1"))
	assert.Equal(t, "Passwords must match", v("secret2"))
}

func TestHTTPURL(t *testing.T) {
	v := HTTPURL("Logo")
	assert.Empty(t, v(""))
	assert.Empty(t, v("https://cdn.example.com/logo.png"))
	assert.Equal(t, "Logo must be a valid http(s) URL", v("ftp://example.com/x"))
	assert.Equal(t, "Logo must be a valid http(s) URL", v("not a url"))
}

func TestFieldValidator(t *testing.T) {
	fv := New().
		Validate("username", "", Required(errUsernameRequired), MinLength(3, "short")).
		Validate("email", "bad", Required("Email is required"), Email("Invalid email address")).
		Validate("name", "Ada", Required("Name is required"))

	errs := fv.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, errUsernameRequired, errs["username"])
	assert.Equal(t, "Invalid email address", errs["email"])

	err := fv.Err()
	require.Error(t, err)
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Invalid email address; Username is required", err.Error())
}

func TestFieldValidator_FirstErrorWins(t *testing.T) {
	fv := New().
		Add("password", "Password is required").
		Validate("password", "x", MinLength(6, "Password must be at least 6 characters"))
	assert.Equal(t, "Password is required", fv.Errors()["password"])
}

func TestFieldErrors_ErrNilWhenEmpty(t *testing.T) {
	assert.NoError(t, New().Err())
	assert.NoError(t, FieldErrors{}.Err())
}
