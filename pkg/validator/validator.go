package validator

import (
	"fmt"
	"regexp"
	"time"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 6
	maxPasswordLength = 128
	maxNameLength     = 255
	minYear           = 2000
	maxYear           = 2100

	dateLayout = "2006-01-02"

	errUsernameEmptyFmt     = "username cannot be empty"
	errUsernameLengthFmt    = "username must be between %d and %d characters"
	errUsernameInvalidFmt   = "username may only contain letters, digits, dots, hyphens, and underscores"
	errPasswordMinLengthFmt = "password must be at least %d characters"
	errPasswordMaxLengthFmt = "password must not exceed %d characters"
	errNameEmptyFmt         = "%s name cannot be empty"
	errNameMaxLengthFmt     = "%s name must not exceed %d characters"
	errDateEmptyFmt         = "date cannot be empty"
	errDateInvalidFmt       = "date must be in YYYY-MM-DD format"
	errTimeInvalidFmt       = "time must be in HH:MM format"
	errYearRangeFmt         = "valid year required (%d-%d)"
)

var (
	usernameRegex  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func Username(username string) error {
	if username == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf(errUsernameLengthFmt, minUsernameLength, maxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf(errUsernameInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// Name validates a human-readable entity name (client, project, ...).
// The kind is used only for the error message.
func Name(kind, name string) error {
	if name == "" {
		return fmt.Errorf(errNameEmptyFmt, kind)
	}

	if len(name) > maxNameLength {
		return fmt.Errorf(errNameMaxLengthFmt, kind, maxNameLength)
	}

	return nil
}

// Date validates an ISO calendar date (YYYY-MM-DD). Parsing with the
// reference layout also rejects impossible dates like 2024-02-30.
func Date(date string) error {
	if date == "" {
		return fmt.Errorf(errDateEmptyFmt)
	}

	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf(errDateInvalidFmt)
	}

	return nil
}

// TimeOfDay validates a 24h wall-clock time with minute precision (HH:MM).
func TimeOfDay(value string) error {
	if !timeOfDayRegex.MatchString(value) {
		return fmt.Errorf(errTimeInvalidFmt)
	}

	return nil
}

func Year(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf(errYearRangeFmt, minYear, maxYear)
	}

	return nil
}
