package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// AuthResult is a successful authentication.
type AuthResult struct {
	Token   string             `json:"token"`
	Account models.AccountView `json:"account"`
}

// Authenticate verifies login and password and issues an access token.
// Unknown login, wrong password and revoked account all fail with the same
// common.ErrAuthenticationFailed after one password verification each.
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (res *AuthResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.observeAuth(time.Since(started))
		s.trackQuery(ctx, "authenticate", &err, "login", login)
	}()

	acc, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.burnVerification(ctx, password)
		return nil, common.ErrAuthenticationFailed
	}

	ok, err := s.hasher.Verify(ctx, password, acc.PasswordHash)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Error(ctx, "stored password hash is unreadable", "id", acc.ID, "error", err)
		return nil, common.ErrAuthenticationFailed
	}
	if !ok || !acc.IsActive() {
		return nil, common.ErrAuthenticationFailed
	}

	token, err := s.tokens.Issue(acc.ID, acc.Login, acc.Roles(), s.now())
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, Account: acc.View()}, nil
}

// ResolveActor turns an access token into the freshly loaded acting account.
// A token whose account no longer exists is invalid.
func (s *AccountService) ResolveActor(ctx context.Context, token string) (*models.Account, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	acc, err := s.accounts.FindByID(ctx, id.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	return acc, nil
}

// burnVerification spends one verification on a throwaway digest so that an
// unknown login costs the same as a wrong password.
func (s *AccountService) burnVerification(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(context.WithoutCancel(ctx), "accountkeeperDummyPassword")
		if err != nil {
			s.logger.Warn(ctx, "cannot prepare dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(ctx, password, s.dummyHash)
	}
}
