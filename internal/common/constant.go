package common

// Paging defaults shared by the HTTP API, the gRPC API and the CLI.
const (
	DefaultPageSize = 10
	PageSizeCap     = 100
)
