package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// KeyIdentity is the key for storing the authenticated identity in context.
const KeyIdentity ContextKey = "identity"

// Identity is the request-scoped result of a verified access token plus a
// fresh user lookup. A request either carries one (authenticated) or carries
// none (anonymous); absence is the anonymous case, there is no zero-value
// identity in circulation.
type Identity struct {
	UserID    uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WithIdentity returns a new context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// GetIdentity extracts the authenticated identity from the context.
// The boolean reports whether the request is authenticated.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(KeyIdentity).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}

	return identity, true
}
