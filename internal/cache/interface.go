package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache stores JSON encoded values with an expiry. Get reports a miss as
// (false, nil); only transport and decoding failures are errors.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

const namespace = "storefront"

// OrderKey is where a read-through copy of an order lives.
func OrderKey(orderID uuid.UUID) string {
	return namespace + ":order:" + orderID.String()
}

// NotificationKey marks a gateway transaction id as already reconciled.
func NotificationKey(gatewayTransactionID string) string {
	return namespace + ":itn:" + gatewayTransactionID
}
