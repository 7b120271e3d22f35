package entity

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

// Field limits.
const (
	MaxNameLength     = 50
	MaxTitleLength    = 100
	MaxEmailLength    = 120
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt input limit
	MinRating         = 1
	MaxRating         = 5
	MinLatitude       = -90.0
	MaxLatitude       = 90.0
	MinLongitude      = -180.0
	MaxLongitude      = 180.0
)

var validate = validator.New()

// NormalizeEmail lower-cases and trims an address so uniqueness holds
// regardless of casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateLength(field, value string, max int) error {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return apperrors.NewValidation(field, "is required")
	}
	if n > max {
		return apperrors.NewValidation(field, fmt.Sprintf("must be at most %d characters long", max))
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidation(FieldEmail, "is required")
	}
	if err := validate.Var(email, fmt.Sprintf("email,max=%d", MaxEmailLength)); err != nil {
		return apperrors.NewValidation(FieldEmail, "must be a valid email")
	}
	return nil
}

func validatePassword(plain string) error {
	if utf8.RuneCountInString(plain) < MinPasswordLength {
		return apperrors.NewValidation(FieldPassword, fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}
	if len(plain) > MaxPasswordBytes {
		return apperrors.NewValidation(FieldPassword, fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes))
	}
	return nil
}

func validateRange(field string, v, min, max float64) error {
	if math.IsNaN(v) || v < min || v > max {
		return apperrors.NewValidation(field, fmt.Sprintf("must be between %g and %g", min, max))
	}
	return nil
}

func validatePrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return apperrors.NewValidation(FieldPrice, "must be greater than 0")
	}
	return nil
}

func validateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return apperrors.NewValidation(FieldRating, fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

func validateRef(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidation(field, "is required")
	}
	return nil
}

// validateIDSet rejects blank and repeated identifiers.
func validateIDSet(field string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return apperrors.NewValidation(field, "must not contain blank ids")
		}
		if _, dup := seen[id]; dup {
			return apperrors.NewValidation(field, "must not contain duplicates")
		}
		seen[id] = struct{}{}
	}
	return nil
}
