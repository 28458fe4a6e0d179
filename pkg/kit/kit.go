// Package kit holds the endpoint/middleware glue shared by the MCP transport:
// transport-agnostic endpoints, request metadata in context, and the adapter
// that mounts an endpoint as an MCP tool.
package kit

import "context"

// Endpoint is a transport-agnostic operation: decoded request in, response out.
type Endpoint func(ctx context.Context, request any) (any, error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

type contextKey string

const (
	transportKey contextKey = "transport"
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"
)

func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey, transport)
}

func GetTransport(ctx context.Context) string {
	s, _ := ctx.Value(transportKey).(string)
	return s
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func GetUserID(ctx context.Context) string {
	s, _ := ctx.Value(userIDKey).(string)
	return s
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}
