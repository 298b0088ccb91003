package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "accountkeeper.AccountService"

const (
	MethodPing                  = "Ping"
	MethodAuthenticate          = "Authenticate"
	MethodCreateAccount         = "CreateAccount"
	MethodUpdateProfile         = "UpdateProfile"
	MethodChangePassword        = "ChangePassword"
	MethodChangeLogin           = "ChangeLogin"
	MethodListActiveAccounts    = "ListActiveAccounts"
	MethodFindAccountByLogin    = "FindAccountByLogin"
	MethodListAccountsOlderThan = "ListAccountsOlderThan"
	MethodDeleteAccount         = "DeleteAccount"
	MethodRecoverAccount        = "RecoverAccount"
)

// FullMethod returns the "/service/method" path of a method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AccountServiceServer is implemented by the server side of the service.
type AccountServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*AccountResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*AccountResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*AccountResponse, error)
	ChangeLogin(context.Context, *ChangeLoginRequest) (*AccountResponse, error)
	ListActiveAccounts(context.Context, *ListActiveAccountsRequest) (*AccountsResponse, error)
	FindAccountByLogin(context.Context, *FindAccountByLoginRequest) (*AccountResponse, error)
	ListAccountsOlderThan(context.Context, *ListAccountsOlderThanRequest) (*AccountsResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
	RecoverAccount(context.Context, *RecoverAccountRequest) (*AccountResponse, error)
}

// unary builds the method descriptor for one unary call.
func unary[Req, Resp any](name string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes AccountService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, AccountServiceServer.Ping),
		unary(MethodAuthenticate, AccountServiceServer.Authenticate),
		unary(MethodCreateAccount, AccountServiceServer.CreateAccount),
		unary(MethodUpdateProfile, AccountServiceServer.UpdateProfile),
		unary(MethodChangePassword, AccountServiceServer.ChangePassword),
		unary(MethodChangeLogin, AccountServiceServer.ChangeLogin),
		unary(MethodListActiveAccounts, AccountServiceServer.ListActiveAccounts),
		unary(MethodFindAccountByLogin, AccountServiceServer.FindAccountByLogin),
		unary(MethodListAccountsOlderThan, AccountServiceServer.ListAccountsOlderThan),
		unary(MethodDeleteAccount, AccountServiceServer.DeleteAccount),
		unary(MethodRecoverAccount, AccountServiceServer.RecoverAccount),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accountkeeper/account_service",
}

// RegisterAccountServiceServer registers srv with s.
func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
