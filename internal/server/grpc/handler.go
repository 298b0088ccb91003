package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountkeeper/internal/api"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) Authenticate(ctx context.Context, req *api.AuthenticateRequest) (*api.AuthenticateResponse, error) {

	res, err := s.accounts.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.AuthenticateResponse{Token: res.Token, Account: toAPIAccount(res.Account)}, nil

}

func (s *GRPCServer) CreateAccount(ctx context.Context, req *api.CreateAccountRequest) (*api.AccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	var birthday *time.Time
	if req.Birthday != "" {
		if birthday, err = parseDate(req.Birthday); err != nil {
			return nil, err
		}
	}

	view, err := s.accounts.CreateAccount(ctx, actor, services.CreateAccountRequest{
		Login:       req.Login,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Gender:      models.Gender(req.Gender),
		Birthday:    birthday,
		IsAdmin:     req.IsAdmin,
	})
	return s.accountResponse(ctx, view, err)
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.AccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	upd := services.ProfileUpdate{DisplayName: req.DisplayName}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		upd.Gender = &g
	}
	if req.Birthday != nil {
		if upd.Birthday, err = parseDate(*req.Birthday); err != nil {
			return nil, err
		}
	}

	view, err := s.accounts.UpdateProfile(ctx, actor, req.ID, upd)
	return s.accountResponse(ctx, view, err)
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.AccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.accounts.ChangePassword(ctx, actor, req.ID, req.CurrentPassword, req.NewPassword)
	return s.accountResponse(ctx, view, err)
}

func (s *GRPCServer) ChangeLogin(ctx context.Context, req *api.ChangeLoginRequest) (*api.AccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.accounts.ChangeLogin(ctx, actor, req.ID, req.NewLogin)
	return s.accountResponse(ctx, view, err)
}

func (s *GRPCServer) ListActiveAccounts(ctx context.Context, req *api.ListActiveAccountsRequest) (*api.AccountsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.accounts.ListActive(ctx, actor)
	return s.accountsResponse(ctx, views, err)
}

func (s *GRPCServer) FindAccountByLogin(ctx context.Context, req *api.FindAccountByLoginRequest) (*api.AccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.accounts.FindByLogin(ctx, actor, req.Login)
	return s.accountResponse(ctx, view, err)
}

func (s *GRPCServer) ListAccountsOlderThan(ctx context.Context, req *api.ListAccountsOlderThanRequest) (*api.AccountsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.accounts.ListOlderThan(ctx, actor, req.Age)
	return s.accountsResponse(ctx, views, err)
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *api.DeleteAccountRequest) (*api.DeleteAccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.DeleteAccount(ctx, actor, req.Login, req.Soft); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.DeleteAccountResponse{}, nil
}

func (s *GRPCServer) RecoverAccount(ctx context.Context, req *api.RecoverAccountRequest) (*api.AccountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.accounts.Recover(ctx, actor, req.Login)
	return s.accountResponse(ctx, view, err)
}

func (s *GRPCServer) accountResponse(ctx context.Context, view models.AccountView, err error) (*api.AccountResponse, error) {
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.AccountResponse{Account: toAPIAccount(view)}, nil
}

func (s *GRPCServer) accountsResponse(ctx context.Context, views []models.AccountView, err error) (*api.AccountsResponse, error) {
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := make([]api.Account, 0, len(views))
	for _, v := range views {
		out = append(out, toAPIAccount(v))
	}
	return &api.AccountsResponse{Accounts: out}, nil
}

func toAPIAccount(v models.AccountView) api.Account {
	a := api.Account{
		ID:          v.ID,
		DisplayName: v.DisplayName,
		Gender:      int(v.Gender),
		IsActive:    v.IsActive,
	}
	if v.Birthday != nil {
		b := v.Birthday.Format(api.DateLayout)
		a.Birthday = &b
	}
	return a
}

func parseDate(s string) (*time.Time, error) {
	t, err := time.Parse(api.DateLayout, s)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "birthday must be formatted as %s", api.DateLayout)
	}
	return &t, nil
}
