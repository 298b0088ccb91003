// Package validation holds the explicit input validators AccountService runs
// before it touches the store. Every failure wraps common.ErrValidation.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// Login length limits.
const (
	MinLoginLength       = 3
	MaxLoginLength       = 50
	MaxDisplayNameLength = 100
)

var (
	alnumRegex       = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	displayNameRegex = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ]+$`)
)

// Fields collects per-field results; nil entries are dropped by Check.
type Fields = validation.Errors

// Check returns nil when every field passed, otherwise an error wrapping
// common.ErrValidation that lists the failing fields.
func Check(fields Fields) error {
	err := fields.Filter()
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

// Login validates a login identifier.
func Login(login string) error {
	return validation.Validate(login,
		validation.Required.Error("login is required"),
		validation.RuneLength(MinLoginLength, MaxLoginLength).
			Error(fmt.Sprintf("login must be between %d and %d characters", MinLoginLength, MaxLoginLength)),
		validation.Match(alnumRegex).Error("login may contain only latin letters and digits"),
	)
}

// Password validates a plaintext password.
func Password(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Match(alnumRegex).Error("password may contain only latin letters and digits"),
	)
}

// DisplayName validates a display name. An empty name passes unless required.
func DisplayName(name string, required bool) error {
	rules := []validation.Rule{
		validation.RuneLength(0, MaxDisplayNameLength).
			Error(fmt.Sprintf("name must be at most %d characters", MaxDisplayNameLength)),
		validation.Match(displayNameRegex).Error("name may contain only latin and cyrillic letters"),
	}
	if required {
		rules = append([]validation.Rule{validation.Required.Error("name is required")}, rules...)
	}
	return validation.Validate(name, rules...)
}

// Gender validates the gender enum.
func Gender(g models.Gender) error {
	if !g.Valid() {
		return errors.New("gender must be 0 (unspecified), 1 (male) or 2 (female)")
	}
	return nil
}

// Birthday validates an optional birthday against now: not in the future
// and an implied age of at most models.MaxAge years.
func Birthday(b *time.Time, now time.Time) error {
	if b == nil {
		return nil
	}
	if models.DateOf(*b).After(models.DateOf(now)) {
		return errors.New("birthday cannot be in the future")
	}
	if models.AgeOn(*b, now) > models.MaxAge {
		return fmt.Errorf("age cannot exceed %d years", models.MaxAge)
	}
	return nil
}

// Age validates an age filter bound.
func Age(age int) error {
	return validation.Validate(age,
		validation.Min(0).Error(fmt.Sprintf("age must be between 0 and %d", models.MaxAge)),
		validation.Max(models.MaxAge).Error(fmt.Sprintf("age must be between 0 and %d", models.MaxAge)),
	)
}
