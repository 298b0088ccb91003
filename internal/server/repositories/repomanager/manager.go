package repomanager

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

// MemoryDSN selects the in-memory store.
const MemoryDSN = "memory"

// RepositoryManager owns the storage backend: it vends repositories,
// applies schema migrations and releases the backend on Close.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Close() error
}

// Options configure New.
type Options struct {
	DSN            string
	ConnectRetries uint64
	RetryBase      time.Duration
	Logger         logging.Logger
}

// New picks the backend from opts.DSN: empty or "memory" yields a
// MemoryRepositoryManager, anything else is treated as a PostgreSQL DSN.
func New(ctx context.Context, opts Options) (RepositoryManager, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" || strings.EqualFold(dsn, MemoryDSN) {
		opts.Logger.Info(ctx, "using in-memory account store")
		return NewMemoryRepositoryManager(), nil
	}

	db, err := OpenPostgres(ctx, dsn, opts.ConnectRetries, opts.RetryBase, opts.Logger)
	if err != nil {
		return nil, err
	}
	return NewPostgresRepositoryManager(db), nil
}
