package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

const accountColumns = `id, login, display_name, gender, birthday, is_admin, password_hash,
		created_on, created_by, modified_on, modified_by, revoked_on, revoked_by`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		acc       models.Account
		gender    int16
		birthday  sql.NullTime
		revokedOn sql.NullTime
		revokedBy sql.NullString
	)

	err := row.Scan(&acc.ID, &acc.Login, &acc.DisplayName, &gender, &birthday, &acc.IsAdmin, &acc.PasswordHash,
		&acc.CreatedOn, &acc.CreatedBy, &acc.ModifiedOn, &acc.ModifiedBy, &revokedOn, &revokedBy)
	if err != nil {
		return nil, err
	}

	acc.Gender = models.Gender(gender)
	if birthday.Valid {
		b := models.DateOf(birthday.Time)
		acc.Birthday = &b
	}
	if revokedOn.Valid {
		t := revokedOn.Time
		acc.RevokedOn = &t
	}
	if revokedBy.Valid {
		s := revokedBy.String
		acc.RevokedBy = &s
	}
	return &acc, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *PostgresRepository) FindByLogin(ctx context.Context, login string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		 WHERE lower(login) = lower($1)
		 `

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundByLogin(login)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return acc, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		 WHERE id = $1
		 `

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundByID(id)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return acc, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, acc *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (` + accountColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 `

	_, err := r.db.ExecContext(ctx, query,
		acc.ID, acc.Login, acc.DisplayName, int16(acc.Gender), nullTime(acc.Birthday), acc.IsAdmin, acc.PasswordHash,
		acc.CreatedOn, acc.CreatedBy, acc.ModifiedOn, acc.ModifiedBy, nullTime(acc.RevokedOn), nullString(acc.RevokedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, loginTaken(acc.Login)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return acc.Clone(), nil
}

// Update locks the row, compares its modified_on with prevModifiedOn and
// writes the new state in the same transaction.
func (r *PostgresRepository) Update(ctx context.Context, acc *models.Account, prevModifiedOn time.Time) (*models.Account, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var current time.Time
		err := tx.QueryRowContext(ctx, `SELECT modified_on FROM accounts WHERE id = $1 FOR UPDATE`, acc.ID).Scan(&current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFoundByID(acc.ID)
			}
			return fmt.Errorf("db error: %w", err)
		}
		if !current.Equal(prevModifiedOn) {
			return staleAccount(acc.ID)
		}

		query :=
			`UPDATE accounts SET login = $2, display_name = $3, gender = $4, birthday = $5, is_admin = $6,
			 password_hash = $7, modified_on = $8, modified_by = $9, revoked_on = $10, revoked_by = $11
			 WHERE id = $1
			 `
		_, err = tx.ExecContext(ctx, query,
			acc.ID, acc.Login, acc.DisplayName, int16(acc.Gender), nullTime(acc.Birthday), acc.IsAdmin,
			acc.PasswordHash, acc.ModifiedOn, acc.ModifiedBy, nullTime(acc.RevokedOn), nullString(acc.RevokedBy))
		if err != nil {
			if isUniqueViolation(err) {
				return loginTaken(acc.Login)
			}
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return acc.Clone(), nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFoundByID(id)
	}

	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		 WHERE revoked_on IS NULL
		 ORDER BY created_on, id
		 `
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListOlderThan(ctx context.Context, age int, now time.Time) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		 WHERE birthday IS NOT NULL AND birthday <= $1
		 ORDER BY created_on, id
		 `
	return r.list(ctx, query, models.BirthdayThreshold(age, now))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
