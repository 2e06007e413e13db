// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"time"

	orderdom "storefront/internal/domain/order"
)

// Tx is the unit-of-work port. fn runs with a transaction bound to its
// context; the adapter commits when fn returns nil and rolls back otherwise.
// Repositories pick the transaction up from the context, so every read and
// write inside fn belongs to the same transaction.
type Tx interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// OrderNotifier is the outbound port for post-checkout notification
// (e.g. confirmation mail). Failures are logged, never propagated: the
// order is already committed.
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, o orderdom.Order) error
}
