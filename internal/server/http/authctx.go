package httpserver

import (
	"context"

	"github.com/rfreitas/task-tracker/internal/model"
)

type ctxKey string

const identityKey ctxKey = "tt.identity"

// WithIdentity stores the resolved caller identity in context. The value is
// the reduced {UserID, Email} view plus token timestamps; the password hash
// never enters the context.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx fetches the caller identity from context.
func IdentityFromCtx(ctx context.Context) (model.Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}
