// Package identity carries the authenticated player identity through a request.
package identity

import "context"

type ctxKey int

const identityKey ctxKey = iota

// WithIdentity stores the identity (the account email) in a context.
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored in a context, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}
