// Package client contains the client-side API of the myjar directory.
//
// # Overview
//
// The package provides a transport-agnostic contract (see the Client
// interface) for the directory operations, and a gRPC implementation (see
// GRPCClient) that bounds every call with the configured timeout and maps
// gRPC status codes back to errors.
//
// # Error Handling
//
// Rejected fields come back as *common.ValidationError (match with
// errors.Is(err, common.ErrorValidation)); unknown ids as
// common.ErrorNotFound; an unreachable server as ErrUnavailable; other
// invalid requests as ErrRejected.
package client
