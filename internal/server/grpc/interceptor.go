package grpc

import (
	"context"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs every call with its result code and reports it
// to the request observer.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	method := path.Base(info.FullMethod)
	code := status.Code(err)
	if s.observer != nil {
		s.observer.ObserveRequest("grpc", method, code.String(), start)
	}

	args := []any{"method", method, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK, codes.InvalidArgument, codes.NotFound:
		s.logger.Debug(ctx, "request", args...)
	default:
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	}

	return resp, err
}

// recoveryInterceptor turns a panicking handler into codes.Internal.
func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "panic in handler", "method", info.FullMethod, "panic", r)
			err = status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}
