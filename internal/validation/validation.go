package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Error represents a rejected-input error. Callers never retry these.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form
func ValidateDate(s string) error {
	if s == "" {
		return Error{Field: "date", Message: "date is required"}
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return Error{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	return nil
}

// ValidateMonth checks that s strictly matches YYYY-MM
func ValidateMonth(s string) error {
	if s == "" {
		return Error{Field: "month", Message: "month is required"}
	}
	if !monthRegex.MatchString(s) {
		return Error{Field: "month", Message: "month must be YYYY-MM"}
	}
	return nil
}

// ValidateName checks that a member or group name is usable
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Error{Field: "name", Message: "name is required"}
	}
	if len(name) > 100 {
		return Error{Field: "name", Message: "name must be at most 100 characters"}
	}
	return nil
}

// ValidatePasscode checks that a group passcode meets requirements
func ValidatePasscode(passcode string) error {
	if passcode == "" {
		return Error{Field: "passcode", Message: "passcode is required"}
	}
	if len(passcode) < 6 {
		return Error{Field: "passcode", Message: "passcode must be at least 6 characters"}
	}
	return nil
}
