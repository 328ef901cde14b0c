// Package proto describes the Directory gRPC service shared by the server
// and the CLI client. Messages are well-known protobuf types: client field
// maps travel as structpb.Struct, lists as structpb.ListValue.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "myjar.directory.v1.Directory"

const (
	Directory_Ping_FullMethodName   = "/" + ServiceName + "/Ping"
	Directory_Create_FullMethodName = "/" + ServiceName + "/Create"
	Directory_Get_FullMethodName    = "/" + ServiceName + "/Get"
	Directory_List_FullMethodName   = "/" + ServiceName + "/List"
	Directory_Search_FullMethodName = "/" + ServiceName + "/Search"
	Directory_Modify_FullMethodName = "/" + ServiceName + "/Modify"
	Directory_Delete_FullMethodName = "/" + ServiceName + "/Delete"
)

// Request keys.
const (
	KeyID       = "id"
	KeyFields   = "fields"
	KeySkip     = "skip"
	KeyLimit    = "limit"
	KeyCriteria = "criteria"
	KeyField    = "field"
	KeyQuery    = "query"
)

// Descriptions of errdetails.BadRequest field violations.
const (
	ViolationMissing = "missing"
	ViolationInvalid = "invalid"
)

// DirectoryServer is the server API for the Directory service.
//
// Create takes the client fields. Modify takes {"id", "fields"}. List takes
// {"skip", "limit"}; Search adds "criteria", a list of {"field", "query"}.
type DirectoryServer interface {
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Get(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	List(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	Search(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	Modify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

func RegisterDirectoryServer(s grpc.ServiceRegistrar, srv DirectoryServer) {
	s.RegisterService(&Directory_ServiceDesc, srv)
}

// unaryHandler adapts one DirectoryServer method to grpc.MethodDesc.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	newReq func() *Req,
	call func(DirectoryServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DirectoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DirectoryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newEmpty() *emptypb.Empty           { return new(emptypb.Empty) }
func newStruct() *structpb.Struct        { return new(structpb.Struct) }
func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

var Directory_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(Directory_Ping_FullMethodName, newEmpty, DirectoryServer.Ping)},
		{MethodName: "Create", Handler: unaryHandler(Directory_Create_FullMethodName, newStruct, DirectoryServer.Create)},
		{MethodName: "Get", Handler: unaryHandler(Directory_Get_FullMethodName, newString, DirectoryServer.Get)},
		{MethodName: "List", Handler: unaryHandler(Directory_List_FullMethodName, newStruct, DirectoryServer.List)},
		{MethodName: "Search", Handler: unaryHandler(Directory_Search_FullMethodName, newStruct, DirectoryServer.Search)},
		{MethodName: "Modify", Handler: unaryHandler(Directory_Modify_FullMethodName, newStruct, DirectoryServer.Modify)},
		{MethodName: "Delete", Handler: unaryHandler(Directory_Delete_FullMethodName, newString, DirectoryServer.Delete)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "myjar/directory.proto",
}

// DirectoryClient is the client API for the Directory service.
type DirectoryClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	List(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Modify(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Delete(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type directoryClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryClient(cc grpc.ClientConnInterface) DirectoryClient {
	return &directoryClient{cc}
}

func (c *directoryClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Directory_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Directory_Create_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Directory_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) List(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, Directory_List_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, Directory_Search_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) Modify(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Directory_Modify_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) Delete(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Directory_Delete_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
