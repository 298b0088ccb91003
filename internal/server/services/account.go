// Package services contains server-side business logic. AccountService owns
// the account lifecycle: creation, profile and credential changes, login
// changes, revocation and recovery, deletion, authentication and queries.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/auth"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/accountkeeper/internal/server/validation"
)

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(accountID, login string, roles []string, issuedAt time.Time) (string, error)
	Verify(token string) (*auth.Identity, error)
}

// CreateAccountRequest carries the fields of a new account.
type CreateAccountRequest struct {
	Login       string
	Password    string
	DisplayName string
	Gender      models.Gender
	Birthday    *time.Time
	IsAdmin     bool
}

// ProfileUpdate lists the profile fields to change; nil fields are left alone.
type ProfileUpdate struct {
	DisplayName *string
	Gender      *models.Gender
	Birthday    *time.Time
}

// AccountService orchestrates the account store, the credential hasher,
// the authorization guard and the token issuer.
//
// Every operation that acts on behalf of someone takes the acting account
// explicitly. A nil actor is the System principal and is only used
// internally (bootstrap); public admin-only operations reject it.
type AccountService struct {
	accounts accounts.Repository
	hasher   auth.CredentialHasher
	tokens   TokenIssuer
	logger   logging.Logger
	metrics  *Metrics
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// Option customises an AccountService.
type Option func(*AccountService)

func WithLogger(l logging.Logger) Option {
	return func(s *AccountService) { s.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(s *AccountService) { s.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *AccountService) { s.now = now }
}

func NewAccountService(repo accounts.Repository, hasher auth.CredentialHasher, tokens TokenIssuer, opts ...Option) *AccountService {
	s := &AccountService{
		accounts: repo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logging.Nop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "accounts")
	return s
}

// CreateAccount inserts a new active account. Admin only.
func (s *AccountService) CreateAccount(ctx context.Context, actor *models.Account, req CreateAccountRequest) (view models.AccountView, err error) {
	defer s.trackMutation(ctx, "create_account", &err, "login", req.Login, "admin", req.IsAdmin)

	if err = requireAdmin(actor); err != nil {
		return view, err
	}

	acc, err := s.createAccount(ctx, actor, req)
	if err != nil {
		return view, err
	}
	return acc.View(), nil
}

func (s *AccountService) createAccount(ctx context.Context, actor *models.Account, req CreateAccountRequest) (*models.Account, error) {
	err := validation.Check(validation.Fields{
		"login":        validation.Login(req.Login),
		"password":     validation.Password(req.Password),
		"display_name": validation.DisplayName(req.DisplayName, true),
		"gender":       validation.Gender(req.Gender),
		"birthday":     validation.Birthday(req.Birthday, s.now()),
	})
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	stamp := s.stamp(time.Time{})
	by := actorName(actor)

	return s.accounts.Insert(ctx, &models.Account{
		ID:           uuid.NewString(),
		Login:        req.Login,
		DisplayName:  req.DisplayName,
		Gender:       req.Gender,
		Birthday:     dateOf(req.Birthday),
		IsAdmin:      req.IsAdmin,
		PasswordHash: hash,
		CreatedOn:    stamp,
		CreatedBy:    by,
		ModifiedOn:   stamp,
		ModifiedBy:   by,
	})
}

// UpdateProfile applies the provided profile fields. When nothing actually
// changes no write happens and ModifiedOn is left untouched.
func (s *AccountService) UpdateProfile(ctx context.Context, actor *models.Account, id string, upd ProfileUpdate) (view models.AccountView, err error) {
	defer s.trackMutation(ctx, "update_profile", &err, "id", id)

	fields := validation.Fields{}
	if upd.DisplayName != nil {
		fields["display_name"] = validation.DisplayName(*upd.DisplayName, true)
	}
	if upd.Gender != nil {
		fields["gender"] = validation.Gender(*upd.Gender)
	}
	if upd.Birthday != nil {
		fields["birthday"] = validation.Birthday(upd.Birthday, s.now())
	}
	if err = validation.Check(fields); err != nil {
		return view, err
	}

	acc, err := s.loadForModify(ctx, actor, id)
	if err != nil {
		return view, err
	}

	changed := false
	if upd.DisplayName != nil && *upd.DisplayName != acc.DisplayName {
		acc.DisplayName = *upd.DisplayName
		changed = true
	}
	if upd.Gender != nil && *upd.Gender != acc.Gender {
		acc.Gender = *upd.Gender
		changed = true
	}
	if b := dateOf(upd.Birthday); b != nil && (acc.Birthday == nil || !acc.Birthday.Equal(*b)) {
		acc.Birthday = b
		changed = true
	}
	if !changed {
		return acc.View(), nil
	}

	updated, err := s.save(ctx, actor, acc)
	if err != nil {
		return view, err
	}
	return updated.View(), nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AccountService) ChangePassword(ctx context.Context, actor *models.Account, id, current, newPassword string) (view models.AccountView, err error) {
	defer s.trackMutation(ctx, "change_password", &err, "id", id)

	if err = validation.Check(validation.Fields{"new_password": validation.Password(newPassword)}); err != nil {
		return view, err
	}

	acc, err := s.loadForModify(ctx, actor, id)
	if err != nil {
		return view, err
	}

	ok, err := s.hasher.Verify(ctx, current, acc.PasswordHash)
	if err != nil {
		return view, err
	}
	if !ok {
		return view, common.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return view, err
	}
	acc.PasswordHash = hash

	updated, err := s.save(ctx, actor, acc)
	if err != nil {
		return view, err
	}
	return updated.View(), nil
}

// ChangeLogin renames the account. Renaming to the identical login is a
// no-op; a change of letter case only is a real change.
func (s *AccountService) ChangeLogin(ctx context.Context, actor *models.Account, id, newLogin string) (view models.AccountView, err error) {
	defer s.trackMutation(ctx, "change_login", &err, "id", id, "login", newLogin)

	if err = validation.Check(validation.Fields{"login": validation.Login(newLogin)}); err != nil {
		return view, err
	}

	acc, err := s.loadForModify(ctx, actor, id)
	if err != nil {
		return view, err
	}
	if acc.Login == newLogin {
		return acc.View(), nil
	}
	acc.Login = newLogin

	updated, err := s.save(ctx, actor, acc)
	if err != nil {
		return view, err
	}
	return updated.View(), nil
}

// SoftDelete revokes an active account. Admin only.
func (s *AccountService) SoftDelete(ctx context.Context, actor *models.Account, login string) (err error) {
	defer s.trackMutation(ctx, "soft_delete", &err, "login", login)

	if err = requireAdmin(actor); err != nil {
		return err
	}

	acc, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		return err
	}
	if !acc.IsActive() {
		return common.ErrAlreadyRevoked
	}

	prev := s.touch(actor, acc)
	revokedOn := acc.ModifiedOn
	revokedBy := acc.ModifiedBy
	acc.RevokedOn, acc.RevokedBy = &revokedOn, &revokedBy

	_, err = s.accounts.Update(ctx, acc, prev)
	return err
}

// Recover reactivates a revoked account. Admin only.
func (s *AccountService) Recover(ctx context.Context, actor *models.Account, login string) (view models.AccountView, err error) {
	defer s.trackMutation(ctx, "recover", &err, "login", login)

	if err = requireAdmin(actor); err != nil {
		return view, err
	}

	acc, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		return view, err
	}
	if acc.IsActive() {
		return view, common.ErrAlreadyActive
	}
	acc.RevokedOn, acc.RevokedBy = nil, nil

	updated, err := s.save(ctx, actor, acc)
	if err != nil {
		return view, err
	}
	return updated.View(), nil
}

// HardDelete removes the account permanently, freeing its login. Admin only.
func (s *AccountService) HardDelete(ctx context.Context, actor *models.Account, login string) (err error) {
	defer s.trackMutation(ctx, "hard_delete", &err, "login", login)

	if err = requireAdmin(actor); err != nil {
		return err
	}

	acc, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		return err
	}
	return s.accounts.Delete(ctx, acc.ID)
}

// DeleteAccount revokes (soft) or removes the account.
func (s *AccountService) DeleteAccount(ctx context.Context, actor *models.Account, login string, soft bool) error {
	if soft {
		return s.SoftDelete(ctx, actor, login)
	}
	return s.HardDelete(ctx, actor, login)
}

// ListActive returns active accounts, oldest first. Admin only.
func (s *AccountService) ListActive(ctx context.Context, actor *models.Account) (views []models.AccountView, err error) {
	defer s.trackQuery(ctx, "list_active", &err)

	if err = requireAdmin(actor); err != nil {
		return nil, err
	}

	accs, err := s.accounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(accs), nil
}

// FindByLogin looks an account up by login, revoked or not. Admin only.
func (s *AccountService) FindByLogin(ctx context.Context, actor *models.Account, login string) (view models.AccountView, err error) {
	defer s.trackQuery(ctx, "find_by_login", &err, "login", login)

	if err = requireAdmin(actor); err != nil {
		return view, err
	}

	acc, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		return view, err
	}
	return acc.View(), nil
}

// ListOlderThan returns accounts at least age years old today. Accounts
// without a birthday are never included. Admin only.
func (s *AccountService) ListOlderThan(ctx context.Context, actor *models.Account, age int) (views []models.AccountView, err error) {
	defer s.trackQuery(ctx, "list_older_than", &err, "age", age)

	if err = requireAdmin(actor); err != nil {
		return nil, err
	}
	if err = validation.Check(validation.Fields{"age": validation.Age(age)}); err != nil {
		return nil, err
	}

	accs, err := s.accounts.ListOlderThan(ctx, age, s.now())
	if err != nil {
		return nil, err
	}
	return toViews(accs), nil
}

// loadForModify loads the target and then asks the guard.
func (s *AccountService) loadForModify(ctx context.Context, actor *models.Account, id string) (*models.Account, error) {
	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(actor, id) {
		return nil, common.ErrPermissionDenied
	}
	return acc, nil
}

func (s *AccountService) save(ctx context.Context, actor *models.Account, acc *models.Account) (*models.Account, error) {
	prev := s.touch(actor, acc)
	return s.accounts.Update(ctx, acc, prev)
}

// touch stamps the modification fields and returns the previous ModifiedOn.
func (s *AccountService) touch(actor *models.Account, acc *models.Account) time.Time {
	prev := acc.ModifiedOn
	acc.ModifiedOn = s.stamp(prev)
	acc.ModifiedBy = actorName(actor)
	return prev
}

// stamp returns the current time at storage precision, strictly after prev.
func (s *AccountService) stamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func requireAdmin(actor *models.Account) error {
	if !auth.IsAdmin(actor) {
		return common.ErrPermissionDenied
	}
	return nil
}

func actorName(actor *models.Account) string {
	if actor == nil {
		return common.SystemActor
	}
	return actor.Login
}

func dateOf(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.DateOf(*t)
	return &d
}

func toViews(accs []*models.Account) []models.AccountView {
	views := make([]models.AccountView, 0, len(accs))
	for _, a := range accs {
		views = append(views, a.View())
	}
	return views
}

func (s *AccountService) trackMutation(ctx context.Context, op string, errp *error, args ...any) {
	s.metrics.observe(op, *errp)
	if *errp != nil {
		s.logger.Warn(ctx, "account operation rejected", append([]any{"operation", op, "error", *errp}, args...)...)
		return
	}
	s.logger.Info(ctx, "account operation completed", append([]any{"operation", op}, args...)...)
}

func (s *AccountService) trackQuery(ctx context.Context, op string, errp *error, args ...any) {
	s.metrics.observe(op, *errp)
	if *errp != nil {
		s.logger.Warn(ctx, "account query failed", append([]any{"operation", op, "error", *errp}, args...)...)
		return
	}
	s.logger.Debug(ctx, "account query served", append([]any{"operation", op}, args...)...)
}
