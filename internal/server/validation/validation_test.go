package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		login string
		ok    bool
	}{
		{"alice", true},
		{"Alice2", true},
		{"ab", false},
		{"", false},
		{"al ice", false},
		{"alice_1", false},
		{strings.Repeat("a", MaxLoginLength), true},
		{strings.Repeat("a", MaxLoginLength+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			err := Login(tt.login)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("pw1"))
	assert.Error(t, Password(""))
	assert.Error(t, Password("pass word"))
	assert.Error(t, Password("p@ss"))
}

func TestDisplayName(t *testing.T) {
	assert.NoError(t, DisplayName("Alice", true))
	assert.NoError(t, DisplayName("Алиса", true))
	assert.NoError(t, DisplayName("", false))
	assert.Error(t, DisplayName("", true))
	assert.Error(t, DisplayName("Alice1", false))
	assert.Error(t, DisplayName(strings.Repeat("я", MaxDisplayNameLength+1), false))
}

func TestGender(t *testing.T) {
	assert.NoError(t, Gender(models.GenderMale))
	assert.Error(t, Gender(models.Gender(7)))
}

func TestBirthday(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	day := func(y, m, d int) *time.Time {
		v := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	assert.NoError(t, Birthday(nil, now))
	assert.NoError(t, Birthday(day(1990, 1, 1), now))
	assert.NoError(t, Birthday(day(2026, 10, 16), now), "born today is age 0")
	assert.Error(t, Birthday(day(2026, 10, 17), now), "future")
	assert.NoError(t, Birthday(day(1906, 10, 16), now), "exactly 120")
	assert.NoError(t, Birthday(day(1906, 10, 15), now), "still 120")
	assert.Error(t, Birthday(day(1905, 10, 16), now), "121")
}

func TestAge(t *testing.T) {
	assert.NoError(t, Age(0))
	assert.NoError(t, Age(18))
	assert.NoError(t, Age(120))
	assert.Error(t, Age(-1))
	assert.Error(t, Age(121))
}

func TestCheck_WrapsValidation(t *testing.T) {
	require.NoError(t, Check(Fields{"login": nil, "password": nil}))

	err := Check(Fields{
		"login":    Login("x"),
		"password": nil,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "login")
}
