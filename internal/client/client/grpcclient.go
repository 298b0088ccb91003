package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountkeeper/internal/api"
	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// accountAPI is the subset of api.AccountServiceClient used here.
type accountAPI interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	Authenticate(ctx context.Context, in *api.AuthenticateRequest, opts ...grpc.CallOption) (*api.AuthenticateResponse, error)
	CreateAccount(ctx context.Context, in *api.CreateAccountRequest, opts ...grpc.CallOption) (*api.AccountResponse, error)
	UpdateProfile(ctx context.Context, in *api.UpdateProfileRequest, opts ...grpc.CallOption) (*api.AccountResponse, error)
	ChangePassword(ctx context.Context, in *api.ChangePasswordRequest, opts ...grpc.CallOption) (*api.AccountResponse, error)
	ChangeLogin(ctx context.Context, in *api.ChangeLoginRequest, opts ...grpc.CallOption) (*api.AccountResponse, error)
	ListActiveAccounts(ctx context.Context, in *api.ListActiveAccountsRequest, opts ...grpc.CallOption) (*api.AccountsResponse, error)
	FindAccountByLogin(ctx context.Context, in *api.FindAccountByLoginRequest, opts ...grpc.CallOption) (*api.AccountResponse, error)
	ListAccountsOlderThan(ctx context.Context, in *api.ListAccountsOlderThanRequest, opts ...grpc.CallOption) (*api.AccountsResponse, error)
	DeleteAccount(ctx context.Context, in *api.DeleteAccountRequest, opts ...grpc.CallOption) (*api.DeleteAccountResponse, error)
	RecoverAccount(ctx context.Context, in *api.RecoverAccountRequest, opts ...grpc.CallOption) (*api.AccountResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      accountAPI
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// NewAccountKeeperClient dials endpointURL. A non-empty token is attached to
// every call.
func NewAccountKeeperClient(endpointURL, token string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: token}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAccountServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Token returns the access token currently attached to calls.
func (s *GRPCClient) Token() string {
	return s.accessToken
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

// Login authenticates and keeps the issued token for subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, login, password string) (*api.AuthenticateResponse, error) {

	resp, err := s.client.Authenticate(ctx, &api.AuthenticateRequest{Login: login, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.accessToken = resp.Token

	return resp, nil
}

func (s *GRPCClient) CreateAccount(ctx context.Context, req *api.CreateAccountRequest) (*api.Account, error) {
	return account(s.client.CreateAccount(ctx, req))
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Account, error) {
	return account(s.client.UpdateProfile(ctx, req))
}

func (s *GRPCClient) ChangePassword(ctx context.Context, id, current, newPassword string) (*api.Account, error) {
	req := &api.ChangePasswordRequest{ID: id, CurrentPassword: current, NewPassword: newPassword}
	return account(s.client.ChangePassword(ctx, req))
}

func (s *GRPCClient) ChangeLogin(ctx context.Context, id, newLogin string) (*api.Account, error) {
	return account(s.client.ChangeLogin(ctx, &api.ChangeLoginRequest{ID: id, NewLogin: newLogin}))
}

func (s *GRPCClient) ListActive(ctx context.Context) ([]api.Account, error) {
	return accounts(s.client.ListActiveAccounts(ctx, &api.ListActiveAccountsRequest{}))
}

func (s *GRPCClient) FindByLogin(ctx context.Context, login string) (*api.Account, error) {
	return account(s.client.FindAccountByLogin(ctx, &api.FindAccountByLoginRequest{Login: login}))
}

func (s *GRPCClient) ListOlderThan(ctx context.Context, age int) ([]api.Account, error) {
	return accounts(s.client.ListAccountsOlderThan(ctx, &api.ListAccountsOlderThanRequest{Age: age}))
}

func (s *GRPCClient) DeleteAccount(ctx context.Context, login string, soft bool) error {
	_, err := s.client.DeleteAccount(ctx, &api.DeleteAccountRequest{Login: login, Soft: soft})
	return s.mapError(err)
}

func (s *GRPCClient) Recover(ctx context.Context, login string) (*api.Account, error) {
	return account(s.client.RecoverAccount(ctx, &api.RecoverAccountRequest{Login: login}))
}

func account(resp *api.AccountResponse, err error) (*api.Account, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Account, nil
}

func accounts(resp *api.AccountsResponse, err error) ([]api.Account, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Accounts, nil
}

func (s *GRPCClient) mapError(err error) error {
	return mapError(err)
}

// mapError turns a gRPC status into one of the package sentinels, keeping
// the server's message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.PermissionDenied:
		sentinel = ErrForbidden
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.InvalidArgument, codes.FailedPrecondition:
		sentinel = ErrInvalidInput
	case codes.AlreadyExists, codes.Aborted:
		sentinel = ErrConflict
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
