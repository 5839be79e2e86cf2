// Package delivery defines the contract served by every transport front-end.
package delivery

import "context"

// Delivery is a long-running transport (HTTP today) started by the
// application entrypoint and stopped through its lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
