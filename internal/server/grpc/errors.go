package grpc

import (
	"errors"

	"github.com/dmitrijs2005/myjar/internal/common"
	pb "github.com/dmitrijs2005/myjar/internal/proto"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a directory error to a gRPC status error.
func toStatus(err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		br := &errdetails.BadRequest{}
		for _, f := range verr.Missing {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{Field: f, Description: pb.ViolationMissing})
		}
		for _, f := range verr.Invalid {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{Field: f, Description: pb.ViolationInvalid})
		}
		st, detailErr := status.New(codes.InvalidArgument, verr.Error()).WithDetails(br)
		if detailErr != nil {
			return status.Error(codes.InvalidArgument, verr.Error())
		}
		return st.Err()
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorInvalidCriteria):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
