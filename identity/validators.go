package identity

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Imran-2020331101/evalia/apperr"
)

// validatePassword enforces the registration password policy: at least 8
// characters with one upper case letter, one lower case letter and one digit.
func validatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// bindingError translates validator failures into a field-keyed payload so
// clients get one message per offending field instead of a raw error dump.
func bindingError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.WithMessage(apperr.ErrValidation, err.Error())
	}
	fields := make(map[string]any, len(verrs))
	for _, v := range verrs {
		fields[v.Field()] = errorToString(v)
	}
	return apperr.WithFields(apperr.ErrValidation, fields)
}

func errorToString(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return "value is below the minimum length of " + err.Param()
	case "max":
		return "value exceeds the maximum length of " + err.Param()
	default:
		return "value is not acceptable"
	}
}
