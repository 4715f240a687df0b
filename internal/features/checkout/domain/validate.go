package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Form field identifiers. Payment and delivery selections live in their
// own choice stores, not in the form.
const (
	FieldFullName = "fullName"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldAddress  = "address"
	FieldCity     = "city"
	FieldNotes    = "notes"
)

// RequiredFields are the form fields the submission gate demands.
// Notes are optional: their validator only caps length.
var RequiredFields = []string{FieldFullName, FieldPhone, FieldEmail, FieldAddress, FieldCity}

// FormFieldIDs are all seeded form fields, in display order.
var FormFieldIDs = []string{FieldFullName, FieldPhone, FieldEmail, FieldAddress, FieldCity, FieldNotes}

var (
	fullNameRe = regexp.MustCompile(`^[\p{L}][\p{L}'\- ]*$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	phoneStrip = regexp.MustCompile(`[\s\-().]`)
)

// ValidateField runs the predicate for the given field id against value.
// It returns whether the value passes and, when it does not, the i18n key
// of the error message. Unknown field ids pass: dynamic theme fields
// carry no engine-side rules.
func ValidateField(id, value string) (bool, string) {
	switch id {
	case FieldFullName:
		return validateFullName(value)
	case FieldPhone:
		return validatePhone(value)
	case FieldEmail:
		return validateEmail(value)
	case FieldAddress:
		return validateAddress(value)
	case FieldCity:
		return validateCity(value)
	case FieldNotes:
		return validateNotes(value)
	default:
		return true, ""
	}
}

func validateFullName(value string) (bool, string) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) < 3 || !fullNameRe.MatchString(trimmed) {
		return false, "error.full_name"
	}
	if len(strings.Fields(trimmed)) < 2 {
		return false, "error.full_name"
	}
	return true, ""
}

func validatePhone(value string) (bool, string) {
	stripped := phoneStrip.ReplaceAllString(value, "")
	if !phoneRe.MatchString(stripped) {
		return false, "error.phone"
	}
	return true, ""
}

func validateEmail(value string) (bool, string) {
	if !emailRe.MatchString(strings.TrimSpace(value)) {
		return false, "error.email"
	}
	return true, ""
}

func validateAddress(value string) (bool, string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < 5 {
		return false, "error.address"
	}
	return true, ""
}

func validateCity(value string) (bool, string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < 2 {
		return false, "error.city"
	}
	return true, ""
}

func validateNotes(value string) (bool, string) {
	if utf8.RuneCountInString(value) > 1000 {
		return false, "error.notes"
	}
	return true, ""
}
