package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/myjar/internal/client/models"
	"github.com/dmitrijs2005/myjar/internal/common"
	pb "github.com/dmitrijs2005/myjar/internal/proto"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.DirectoryClient
}

func NewDirectoryClientService(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.timeoutInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewDirectoryClient(conn)
	return nil
}

// timeoutInterceptor bounds every call that has no earlier deadline.
func (s *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Create(ctx context.Context, fields map[string]any) (models.Client, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return models.Client{}, fmt.Errorf("encode fields: %w", err)
	}

	resp, err := s.client.Create(ctx, req)
	if err != nil {
		return models.Client{}, s.mapError(err)
	}
	return models.FromMap(resp.AsMap()), nil
}

func (s *GRPCClient) Get(ctx context.Context, id string) (models.Client, error) {
	resp, err := s.client.Get(ctx, wrapperspb.String(id))
	if err != nil {
		return models.Client{}, s.mapError(err)
	}
	return models.FromMap(resp.AsMap()), nil
}

func (s *GRPCClient) List(ctx context.Context, skip, limit int) ([]models.Client, error) {
	req, err := structpb.NewStruct(map[string]any{pb.KeySkip: skip, pb.KeyLimit: limit})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.List(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return clientsFromList(resp), nil
}

func (s *GRPCClient) Search(ctx context.Context, criteria []models.Criterion, skip, limit int) ([]models.Client, error) {
	items := make([]any, 0, len(criteria))
	for _, c := range criteria {
		items = append(items, map[string]any{pb.KeyField: c.Field, pb.KeyQuery: c.Query})
	}

	req, err := structpb.NewStruct(map[string]any{
		pb.KeyCriteria: items,
		pb.KeySkip:     skip,
		pb.KeyLimit:    limit,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Search(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return clientsFromList(resp), nil
}

func (s *GRPCClient) Modify(ctx context.Context, id string, fields map[string]any) (models.Client, error) {
	req, err := structpb.NewStruct(map[string]any{pb.KeyID: id, pb.KeyFields: fields})
	if err != nil {
		return models.Client{}, fmt.Errorf("encode fields: %w", err)
	}

	resp, err := s.client.Modify(ctx, req)
	if err != nil {
		return models.Client{}, s.mapError(err)
	}
	return models.FromMap(resp.AsMap()), nil
}

func (s *GRPCClient) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, wrapperspb.String(id)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func clientsFromList(list *structpb.ListValue) []models.Client {
	out := make([]models.Client, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		out = append(out, models.FromMap(v.GetStructValue().AsMap()))
	}
	return out
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		if verr := validationError(st); verr != nil {
			return verr
		}
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// validationError rebuilds the field violations carried by st, or returns
// nil when there are none.
func validationError(st *status.Status) *common.ValidationError {
	verr := &common.ValidationError{}
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			if v.GetDescription() == pb.ViolationMissing {
				verr.Missing = append(verr.Missing, v.GetField())
			} else {
				verr.Invalid = append(verr.Invalid, v.GetField())
			}
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
