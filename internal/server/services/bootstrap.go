package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// BootstrapConfig names the administrator seeded at startup.
type BootstrapConfig struct {
	Login       string
	Password    string
	DisplayName string
}

// Bootstrap makes sure the configured administrator exists and holds the
// admin flag. It is idempotent. Seeding is attributed to the System actor.
// Failing to grant the admin flag to an existing account is logged and
// otherwise ignored.
func (s *AccountService) Bootstrap(ctx context.Context, cfg BootstrapConfig) error {
	log := s.logger.With("login", cfg.Login)

	acc, err := s.accounts.FindByLogin(ctx, cfg.Login)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		birthday := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err = s.createAccount(ctx, nil, CreateAccountRequest{
			Login:       cfg.Login,
			Password:    cfg.Password,
			DisplayName: cfg.DisplayName,
			Gender:      models.GenderMale,
			Birthday:    &birthday,
			IsAdmin:     true,
		})
		if err == nil {
			log.Info(ctx, "administrator account created")
			return nil
		}
		if !errors.Is(err, common.ErrConflict) {
			return err
		}
		// Created concurrently by another instance.
		if acc, err = s.accounts.FindByLogin(ctx, cfg.Login); err != nil {
			return err
		}
	default:
		return err
	}

	if acc.IsAdmin {
		log.Debug(ctx, "administrator account present")
		return nil
	}

	acc.IsAdmin = true
	if _, err := s.save(ctx, nil, acc); err != nil {
		log.Warn(ctx, "cannot grant admin role to bootstrap account", "error", err)
		return nil
	}
	log.Info(ctx, "admin role granted to existing account")
	return nil
}
