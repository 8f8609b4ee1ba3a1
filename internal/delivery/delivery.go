// Package delivery defines the inbound transport boundary of the service.
package delivery

import "context"

// Delivery is a serving surface started by the composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
