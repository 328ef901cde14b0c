package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/myjar/internal/logging"
	pb "github.com/dmitrijs2005/myjar/internal/proto"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"google.golang.org/grpc"
)

// Directory is the client directory served over gRPC.
type Directory interface {
	Create(ctx context.Context, fields map[string]any) (format.PublicView, error)
	Get(ctx context.Context, id string) (format.PublicView, error)
	List(ctx context.Context, page models.Page) ([]format.PublicView, error)
	Search(ctx context.Context, criteria []models.Criterion, page models.Page) ([]format.PublicView, error)
	Modify(ctx context.Context, id string, fields map[string]any) (format.PublicView, error)
	Delete(ctx context.Context, id string) error
}

// RequestObserver records handled requests.
type RequestObserver interface {
	ObserveRequest(transport, method, code string, start time.Time)
}

type GRPCServer struct {
	address     string
	directory   Directory
	observer    RequestObserver
	maxPageSize int
	logger      logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, d Directory, o RequestObserver, maxPageSize int) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		directory:   d,
		observer:    o,
		maxPageSize: maxPageSize,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.recoveryInterceptor))

	// registers service
	pb.RegisterDirectoryServer(srv, &handler{server: s})

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
