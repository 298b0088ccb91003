package api

import (
	"context"

	"google.golang.org/grpc"
)

// AccountServiceClient is a typed client for AccountService. Every call is
// sent with the accountkeeper content subtype.
type AccountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) *AccountServiceClient {
	return &AccountServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *AccountServiceClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error) {
	return invoke[AuthenticateResponse](ctx, c.cc, MethodAuthenticate, in, opts)
}

func (c *AccountServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodCreateAccount, in, opts)
}

func (c *AccountServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *AccountServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *AccountServiceClient) ChangeLogin(ctx context.Context, in *ChangeLoginRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodChangeLogin, in, opts)
}

func (c *AccountServiceClient) ListActiveAccounts(ctx context.Context, in *ListActiveAccountsRequest, opts ...grpc.CallOption) (*AccountsResponse, error) {
	return invoke[AccountsResponse](ctx, c.cc, MethodListActiveAccounts, in, opts)
}

func (c *AccountServiceClient) FindAccountByLogin(ctx context.Context, in *FindAccountByLoginRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodFindAccountByLogin, in, opts)
}

func (c *AccountServiceClient) ListAccountsOlderThan(ctx context.Context, in *ListAccountsOlderThanRequest, opts ...grpc.CallOption) (*AccountsResponse, error) {
	return invoke[AccountsResponse](ctx, c.cc, MethodListAccountsOlderThan, in, opts)
}

func (c *AccountServiceClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error) {
	return invoke[DeleteAccountResponse](ctx, c.cc, MethodDeleteAccount, in, opts)
}

func (c *AccountServiceClient) RecoverAccount(ctx context.Context, in *RecoverAccountRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, MethodRecoverAccount, in, opts)
}
