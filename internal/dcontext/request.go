package dcontext

import "context"

type requestIDKey struct{}

func (requestIDKey) String() string { return "request.id" }

// WithRequestID attaches a request identifier to ctx, for inclusion in log
// lines emitted while handling a single HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the request identifier attached to ctx, or the empty
// string if none was attached.
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}
