package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/backend"
)

// ShippingError reports per-field form failures.
type ShippingError struct {
	Fields map[string]string
}

func (e *ShippingError) Error() string {
	return fmt.Sprintf("invalid shipping details (%d fields)", len(e.Fields))
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// ValidateShipping applies the pre-submit form checks: every field required,
// plus format and minimum-length rules. Returns a field->message map, empty
// when the form is fine.
func ValidateShipping(s backend.OrderShipping) map[string]string {
	errs := make(map[string]string)

	check := func(field, value string, minLen int) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			errs[field] = field + " is required"
			return
		}
		if len(trimmed) < minLen {
			errs[field] = fmt.Sprintf("%s must be at least %d characters", field, minLen)
		}
	}

	check("firstName", s.FirstName, 2)
	check("lastName", s.LastName, 2)
	check("address", s.Address, 5)
	check("city", s.City, 2)
	check("country", s.Country, 2)
	check("postalCode", s.PostalCode, 3)

	email := strings.TrimSpace(s.Email)
	switch {
	case email == "":
		errs["email"] = "email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "please enter a valid email address"
	}

	phone := strings.TrimSpace(s.Phone)
	switch {
	case phone == "":
		errs["phone"] = "phone is required"
	case !phonePattern.MatchString(phone) || len(phone) < 8:
		errs["phone"] = "please enter a valid phone number"
	}

	return errs
}
