// Package models defines server-side data models persisted by the account store.
package models

import (
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// Gender is the enumerated gender of an account holder.
type Gender int

const (
	GenderUnspecified Gender = 0
	GenderMale        Gender = 1
	GenderFemale      Gender = 2
)

// Valid reports whether g is one of the known values.
func (g Gender) Valid() bool {
	return g >= GenderUnspecified && g <= GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unspecified"
	}
}

// Account is the sole persisted entity.
//
// RevokedOn == nil means the account is active. PasswordHash never leaves
// the service layer; transports only ever see AccountView.
type Account struct {
	ID           string
	Login        string
	DisplayName  string
	Gender       Gender
	Birthday     *time.Time
	IsAdmin      bool
	PasswordHash string

	CreatedOn  time.Time
	CreatedBy  string
	ModifiedOn time.Time
	ModifiedBy string

	RevokedOn *time.Time
	RevokedBy *string
}

// IsActive reports whether the account is not soft-deleted.
func (a *Account) IsActive() bool {
	return a.RevokedOn == nil
}

// Roles returns the role claims carried in tokens issued for the account.
func (a *Account) Roles() []string {
	if a.IsAdmin {
		return []string{common.RoleAdmin, common.RoleUser}
	}
	return []string{common.RoleUser}
}

// Clone returns a deep copy, so that stores never share pointers with callers.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Birthday != nil {
		b := *a.Birthday
		c.Birthday = &b
	}
	if a.RevokedOn != nil {
		r := *a.RevokedOn
		c.RevokedOn = &r
	}
	if a.RevokedBy != nil {
		r := *a.RevokedBy
		c.RevokedBy = &r
	}
	return &c
}

// View projects the account onto its externally visible shape.
func (a *Account) View() AccountView {
	v := AccountView{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Gender:      a.Gender,
		IsActive:    a.IsActive(),
	}
	if a.Birthday != nil {
		b := *a.Birthday
		v.Birthday = &b
	}
	return v
}

// AccountView is the only projection of an account exposed to clients.
// ID is included because profile, password and login changes are addressed by it.
type AccountView struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Gender      Gender     `json:"gender"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	IsActive    bool       `json:"is_active"`
}
