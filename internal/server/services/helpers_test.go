package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/server/auth"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

var cheapParams = auth.Argon2Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32}

type fixture struct {
	svc    *AccountService
	repo   *accounts.MemoryRepository
	tokens *auth.TokenIssuer
	admin  *models.Account
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	repo := accounts.NewMemoryRepository()
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	svc := NewAccountService(repo, auth.NewArgon2idHasher(cheapParams, 4), tokens, opts...)

	require.NoError(t, svc.Bootstrap(context.Background(), BootstrapConfig{
		Login: "admin", Password: "admin123", DisplayName: "Administrator",
	}))
	admin, err := repo.FindByLogin(context.Background(), "admin")
	require.NoError(t, err)

	return &fixture{svc: svc, repo: repo, tokens: tokens, admin: admin}
}

// create makes a user through the admin and returns the stored record.
func (f *fixture) create(t *testing.T, login, password string, mods ...func(*CreateAccountRequest)) *models.Account {
	t.Helper()
	req := CreateAccountRequest{Login: login, Password: password, DisplayName: "User"}
	for _, m := range mods {
		m(&req)
	}
	_, err := f.svc.CreateAccount(context.Background(), f.admin, req)
	require.NoError(t, err)
	acc, err := f.repo.FindByLogin(context.Background(), login)
	require.NoError(t, err)
	return acc
}

func (f *fixture) reload(t *testing.T, id string) *models.Account {
	t.Helper()
	acc, err := f.repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return acc
}

func ptr[T any](v T) *T { return &v }
