// Package delivery defines the contract every transport-facing server implements.
package delivery

import "context"

// Delivery is a serving surface (HTTP today, workers later) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or the context is canceled.
	Serve(ctx context.Context) error
}
