package accounts

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

func notFoundByID(id string) error {
	return oops.Code("ACCOUNT_NOT_FOUND").With("id", id).Wrap(common.ErrorNotFound)
}

func notFoundByLogin(login string) error {
	return oops.Code("ACCOUNT_NOT_FOUND").With("login", login).Wrap(common.ErrorNotFound)
}

func loginTaken(login string) error {
	return oops.Code("ACCOUNT_LOGIN_TAKEN").With("login", login).Wrap(common.ErrLoginTaken)
}

func staleAccount(id string) error {
	return oops.Code("ACCOUNT_STALE").With("id", id).Wrap(common.ErrStaleAccount)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
