package logger

import "context"

// contextKey keeps this package's context values from colliding with
// other packages
type contextKey string

// RequestIDKey is the context key under which the request ID travels
const RequestIDKey contextKey = "request_id"

// WithRequestID returns a context carrying the request ID, so layers
// below the HTTP handlers (GORM tracing in particular) can correlate
// their log entries with the request
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID returns the request ID from the context, or an empty
// string outside a request
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
