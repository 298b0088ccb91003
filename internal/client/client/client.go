package client

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/api"
)

type Client interface {
	Close() error
	Token() string
	Ping(ctx context.Context) error
	Login(ctx context.Context, login, password string) (*api.AuthenticateResponse, error)
	CreateAccount(ctx context.Context, req *api.CreateAccountRequest) (*api.Account, error)
	UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Account, error)
	ChangePassword(ctx context.Context, id, current, newPassword string) (*api.Account, error)
	ChangeLogin(ctx context.Context, id, newLogin string) (*api.Account, error)
	ListActive(ctx context.Context) ([]api.Account, error)
	FindByLogin(ctx context.Context, login string) (*api.Account, error)
	ListOlderThan(ctx context.Context, age int) ([]api.Account, error)
	DeleteAccount(ctx context.Context, login string, soft bool) error
	Recover(ctx context.Context, login string) (*api.Account, error)
}
