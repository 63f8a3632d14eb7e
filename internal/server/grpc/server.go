package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/docusage/internal/logging"
	pb "github.com/dmitrijs2005/docusage/internal/proto"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

// userService is the slice of services.UserService the transport needs.
type userService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

type fileService interface {
	Upload(ctx context.Context, owner *models.Identity, filename, contentType string, content []byte) (*models.File, error)
	List(ctx context.Context, owner *models.Identity) ([]*models.File, error)
	Download(ctx context.Context, owner *models.Identity, id string) (*models.File, []byte, error)
}

// Options tune the server beyond its address and services.
type Options struct {
	// AuthRateLimit is the sustained Register/Login rate per second; 0 disables limiting.
	AuthRateLimit float64
	AuthRateBurst int
	// MaxRecvMsgSize caps an incoming message; 0 keeps the grpc default.
	MaxRecvMsgSize int
}

type GRPCServer struct {
	pb.UnimplementedDocuSageServiceServer
	address     string
	users       userService
	files       fileService
	logger      logging.Logger
	authLimiter *rate.Limiter
	maxRecv     int
}

func NewGRPCServer(a string, l logging.Logger, us userService, fs fileService, opts Options) *GRPCServer {
	s := &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		files:   fs,
		maxRecv: opts.MaxRecvMsgSize,
	}
	if opts.AuthRateLimit > 0 {
		burst := max(opts.AuthRateBurst, 1)
		s.authLimiter = rate.NewLimiter(rate.Limit(opts.AuthRateLimit), burst)
	}
	return s
}

// NewServer builds a grpc.Server with interceptors and the service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(s.rateLimitInterceptor, s.authInterceptor),
	}
	if s.maxRecv > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(s.maxRecv))
	}

	srv := grpc.NewServer(opts...)
	pb.RegisterDocuSageServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
