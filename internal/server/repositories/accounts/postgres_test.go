package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

var columns = []string{"id", "login", "display_name", "gender", "birthday", "is_admin", "password_hash",
	"created_on", "created_by", "modified_on", "modified_by", "revoked_on", "revoked_by"}

var (
	t0       = time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)
	birthday = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleAccount() *models.Account {
	b := birthday
	return &models.Account{
		ID: "a-1", Login: "alice", DisplayName: "Alice", Gender: models.GenderFemale, Birthday: &b,
		PasswordHash: "$argon2id$x", CreatedOn: t0, CreatedBy: "System", ModifiedOn: t0, ModifiedBy: "System",
	}
}

func accountRow(rows *sqlmock.Rows, a *models.Account) *sqlmock.Rows {
	var bday, revokedOn, revokedBy any
	if a.Birthday != nil {
		bday = *a.Birthday
	}
	if a.RevokedOn != nil {
		revokedOn = *a.RevokedOn
	}
	if a.RevokedBy != nil {
		revokedBy = *a.RevokedBy
	}
	return rows.AddRow(a.ID, a.Login, a.DisplayName, int64(a.Gender), bday, a.IsAdmin, a.PasswordHash,
		a.CreatedOn, a.CreatedBy, a.ModifiedOn, a.ModifiedBy, revokedOn, revokedBy)
}

func TestFindByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+accounts\s+WHERE\s+lower\(login\)\s*=\s*lower\(\$1\)\s*$`
	mock.ExpectQuery(q).
		WithArgs("ALICE").
		WillReturnRows(accountRow(sqlmock.NewRows(columns), sampleAccount()))

	got, err := repo.FindByLogin(context.Background(), "ALICE")
	if err != nil {
		t.Fatalf("FindByLogin error: %v", err)
	}
	if got.ID != "a-1" || got.Login != "alice" || got.Gender != models.GenderFemale {
		t.Fatalf("unexpected account: %+v", got)
	}
	if got.Birthday == nil || !got.Birthday.Equal(birthday) {
		t.Fatalf("unexpected birthday: %v", got.Birthday)
	}
	if !got.IsActive() {
		t.Fatalf("expected active account")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+accounts`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByID_RevokedFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccount()
	a.Birthday = nil
	rev := t0.Add(time.Hour)
	by := "admin"
	a.RevokedOn, a.RevokedBy = &rev, &by

	q := `(?s)^SELECT\s+id,.*FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).
		WithArgs("a-1").
		WillReturnRows(accountRow(sqlmock.NewRows(columns), a))

	got, err := repo.FindByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Birthday != nil {
		t.Fatalf("expected nil birthday, got %v", got.Birthday)
	}
	if got.IsActive() || *got.RevokedBy != "admin" || !got.RevokedOn.Equal(rev) {
		t.Fatalf("unexpected revocation: %+v", got)
	}
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+accounts`).
		WithArgs("a-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByID(context.Background(), "a-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccount()
	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(id,.*revoked_by\)\s*VALUES\s*\(\$1,.*\$13\)\s*$`
	mock.ExpectExec(q).
		WithArgs("a-1", "alice", "Alice", int16(models.GenderFemale), birthday, false, "$argon2id$x",
			t0, "System", t0, "System", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Insert(context.Background(), a)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if got == a || got.ID != a.ID {
		t.Fatalf("expected a copy of the inserted account, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accounts`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Insert(context.Background(), sampleAccount())
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want common.ErrConflict, got %v", err)
	}
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accounts`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Insert(context.Background(), sampleAccount())
	if errors.Is(err, common.ErrConflict) {
		t.Fatalf("generic db error must not be a conflict: %v", err)
	}
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const lockQuery = `^SELECT modified_on FROM accounts WHERE id = \$1 FOR UPDATE$`

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccount()
	a.DisplayName = "Alicia"
	a.ModifiedOn = t0.Add(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"modified_on"}).AddRow(t0))
	mock.ExpectExec(`(?s)^UPDATE\s+accounts\s+SET\s+login\s*=\s*\$2,.*WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("a-1", "alice", "Alicia", int16(models.GenderFemale), birthday, false, "$argon2id$x",
			a.ModifiedOn, "System", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.Update(context.Background(), a, t0)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.DisplayName != "Alicia" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_Stale(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"modified_on"}).AddRow(t0.Add(time.Microsecond)))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), sampleAccount(), t0)
	if !errors.Is(err, common.ErrStaleAccount) || !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want common.ErrStaleAccount, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs("a-1").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), sampleAccount(), t0)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_LoginTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"modified_on"}).AddRow(t0))
	mock.ExpectExec(`(?s)^UPDATE\s+accounts`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), sampleAccount(), t0)
	if !errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrStaleAccount) {
		t.Fatalf("want plain common.ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^DELETE FROM accounts WHERE id = \$1$`
	mock.ExpectExec(q).WithArgs("a-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("a-2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("a-3").WillReturnError(errors.New("db down"))

	if err := repo.Delete(context.Background(), "a-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), "a-2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "a-3"); err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccount()
	b := sampleAccount()
	b.ID, b.Login, b.CreatedOn = "a-2", "bob", t0.Add(time.Minute)

	rows := sqlmock.NewRows(columns)
	accountRow(rows, a)
	accountRow(rows, b)

	q := `(?s)^SELECT\s+id,.*FROM\s+accounts\s+WHERE\s+revoked_on\s+IS\s+NULL\s+ORDER\s+BY\s+created_on,\s*id\s*$`
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a-1" || got[1].ID != "a-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListActive_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow("a-1")
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+accounts`).WillReturnRows(rows)

	_, err := repo.ListActive(context.Background())
	if err == nil || !regexp.MustCompile(`db error`).MatchString(err.Error()) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestListOlderThan_UsesBirthdayThreshold(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	threshold := time.Date(2008, 10, 16, 0, 0, 0, 0, time.UTC)

	q := `(?s)^SELECT\s+id,.*FROM\s+accounts\s+WHERE\s+birthday\s+IS\s+NOT\s+NULL\s+AND\s+birthday\s*<=\s*\$1`
	mock.ExpectQuery(q).
		WithArgs(threshold).
		WillReturnRows(accountRow(sqlmock.NewRows(columns), sampleAccount()))

	got, err := repo.ListOlderThan(context.Background(), 18, now)
	if err != nil {
		t.Fatalf("ListOlderThan error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListOlderThan_LeapDayThreshold(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	threshold := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+accounts.*birthday\s*<=\s*\$1`).
		WithArgs(threshold).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListOlderThan(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("ListOlderThan error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListOlderThan_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+accounts`).WillReturnError(errors.New("db down"))

	_, err := repo.ListOlderThan(context.Background(), 18, time.Now())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
