// Package requestid correlates client requests with backend logs via the
// X-Request-ID header.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request identifier.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh request identifier.
func New() string {
	return uuid.NewString()
}

// NewContext returns a context carrying the given request identifier.
func NewContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// FromContext extracts the request identifier from the context, if any.
func FromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ctxKey{}).(string)
	return requestID, ok
}
