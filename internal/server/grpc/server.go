// Package grpc exposes AccountService over gRPC: it maps wire messages to
// service calls, authenticates callers from the access_token metadata and
// translates the error taxonomy into status codes.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/accountkeeper/internal/api"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"
)

// AccountService is the business API the transport binds to.
type AccountService interface {
	Authenticate(ctx context.Context, login, password string) (*services.AuthResult, error)
	ResolveActor(ctx context.Context, token string) (*models.Account, error)
	CreateAccount(ctx context.Context, actor *models.Account, req services.CreateAccountRequest) (models.AccountView, error)
	UpdateProfile(ctx context.Context, actor *models.Account, id string, upd services.ProfileUpdate) (models.AccountView, error)
	ChangePassword(ctx context.Context, actor *models.Account, id, current, newPassword string) (models.AccountView, error)
	ChangeLogin(ctx context.Context, actor *models.Account, id, newLogin string) (models.AccountView, error)
	ListActive(ctx context.Context, actor *models.Account) ([]models.AccountView, error)
	FindByLogin(ctx context.Context, actor *models.Account, login string) (models.AccountView, error)
	ListOlderThan(ctx context.Context, actor *models.Account, age int) ([]models.AccountView, error)
	DeleteAccount(ctx context.Context, actor *models.Account, login string, soft bool) error
	Recover(ctx context.Context, actor *models.Account, login string) (models.AccountView, error)
}

type GRPCServer struct {
	address  string
	accounts AccountService
	logger   logging.Logger
}

var _ api.AccountServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, accounts AccountService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
	}
}

// newServer creates the grpc.Server with interceptors and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterAccountServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		srv.Stop()
		return err
	}

	<-stopped
	return nil
}
