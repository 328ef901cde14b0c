package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/myjar/internal/proto"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// handler implements pb.DirectoryServer on top of the Directory.
type handler struct {
	server *GRPCServer
}

func (h *handler) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (h *handler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	v, err := h.server.directory.Create(ctx, req.AsMap())
	if err != nil {
		return nil, toStatus(err)
	}
	return viewToStruct(v)
}

func (h *handler) Get(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	v, err := h.server.directory.Get(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return viewToStruct(v)
}

func (h *handler) List(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	views, err := h.server.directory.List(ctx, h.server.page(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return viewsToList(views)
}

func (h *handler) Search(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	criteria, err := criteriaFrom(req)
	if err != nil {
		return nil, err
	}

	views, err := h.server.directory.Search(ctx, criteria, h.server.page(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return viewsToList(views)
}

func (h *handler) Modify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()[pb.KeyID].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	fields := req.GetFields()[pb.KeyFields].GetStructValue().AsMap()
	v, err := h.server.directory.Modify(ctx, id, fields)
	if err != nil {
		return nil, toStatus(err)
	}
	return viewToStruct(v)
}

func (h *handler) Delete(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := h.server.directory.Delete(ctx, req.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// page reads skip and limit from req, clamping limit to the configured
// maximum page size. An absent limit means the default page size; an
// explicit zero selects nothing.
func (s *GRPCServer) page(req *structpb.Struct) models.Page {
	fields := req.GetFields()
	skip := int(fields[pb.KeySkip].GetNumberValue())
	if skip < 0 {
		skip = 0
	}
	limit := models.NoLimit
	if v, ok := fields[pb.KeyLimit]; ok {
		limit = int(v.GetNumberValue())
	}
	return models.Page{Skip: skip, Limit: models.ClampLimit(limit, s.maxPageSize)}
}

// criteriaFrom reads the criteria list of a search request. An absent list
// stays nil so the directory can reject it.
func criteriaFrom(req *structpb.Struct) ([]models.Criterion, error) {
	raw, ok := req.GetFields()[pb.KeyCriteria]
	if !ok {
		return nil, nil
	}
	list := raw.GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, "criteria must be a list")
	}

	criteria := make([]models.Criterion, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		c := item.GetStructValue().GetFields()
		criteria = append(criteria, models.Criterion{
			Field: c[pb.KeyField].GetStringValue(),
			Query: c[pb.KeyQuery].GetStringValue(),
		})
	}
	return criteria, nil
}

func viewToStruct(v format.PublicView) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(v.Map())
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return s, nil
}

func viewsToList(views []format.PublicView) (*structpb.ListValue, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(views))}
	for _, v := range views {
		s, err := viewToStruct(v)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return list, nil
}
