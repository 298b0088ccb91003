// Package accounts holds the AccountStore contract and its implementations.
package accounts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// Repository persists accounts. Login uniqueness is case-insensitive and is
// enforced atomically by Insert and Update, never by callers.
type Repository interface {
	FindByLogin(ctx context.Context, login string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)

	// Insert fails with common.ErrConflict if the login is taken.
	Insert(ctx context.Context, acc *models.Account) (*models.Account, error)

	// Update replaces the stored record if its ModifiedOn still equals
	// prevModifiedOn; otherwise it fails with common.ErrStaleAccount.
	// A login taken by another account fails with common.ErrConflict.
	Update(ctx context.Context, acc *models.Account, prevModifiedOn time.Time) (*models.Account, error)

	Delete(ctx context.Context, id string) error

	// ListActive returns non-revoked accounts ordered by CreatedOn ascending.
	ListActive(ctx context.Context) ([]*models.Account, error)

	// ListOlderThan returns accounts, revoked or not, whose birthday implies
	// an age of at least age years on now. Accounts without a birthday are
	// excluded.
	ListOlderThan(ctx context.Context, age int, now time.Time) ([]*models.Account, error)
}
