package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required reports msg when the trimmed value is empty.
func Required(msg string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

// MinLength reports msg when a non-empty value is shorter than n runes.
// Empty values pass so that Required can own that message.
func MinLength(n int, msg string) Validator {
	return func(v string) string {
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) < n {
			return msg
		}
		return ""
	}
}

// MaxLength reports a length error when the trimmed value exceeds n runes.
func MaxLength(fieldName string, n int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > n {
			return fmt.Sprintf("%s cannot exceed %d characters", fieldName, n)
		}
		return ""
	}
}

// Email reports msg when a non-empty value is not an email address.
func Email(msg string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !emailRe.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Number reports msg when a non-empty value does not parse as a number.
func Number(msg string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return msg
		}
		return ""
	}
}

// OneOf reports msg when a non-empty value is not one of options (case-insensitive).
func OneOf(msg string, options ...string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if slices.ContainsFunc(options, func(opt string) bool { return strings.EqualFold(v, opt) }) {
			return ""
		}
		return msg
	}
}

// Pattern reports msg when a non-empty value does not match re.
func Pattern(re *regexp.Regexp, msg string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Matches reports msg when v differs from other.
func Matches(other, msg string) Validator {
	return func(v string) string {
		if v != other {
			return msg
		}
		return ""
	}
}

// HTTPURL validates that an optional field, when present, is an absolute http(s) URL.
func HTTPURL(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		p, err := url.Parse(v)
		if err != nil || (p.Scheme != "http" && p.Scheme != "https") || p.Host == "" {
			return fieldName + " must be a valid http(s) URL"
		}
		return ""
	}
}

// FieldErrors maps a field name to its first validation message.
type FieldErrors map[string]string

// Error implements error with fields sorted for stable output.
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e[k])
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors FieldErrors
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(FieldErrors)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	if _, seen := fv.errors[field]; seen {
		return fv
	}
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Add records msg for field unless the field already has an error.
func (fv *FieldValidator) Add(field, msg string) *FieldValidator {
	if _, seen := fv.errors[field]; !seen && msg != "" {
		fv.errors[field] = msg
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() FieldErrors {
	return fv.errors
}

// Err returns the accumulated errors as an error, or nil when valid.
func (fv *FieldValidator) Err() error {
	return fv.errors.Err()
}
