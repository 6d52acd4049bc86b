// Package storage provides the durable key-value persistence behind the
// store: the session user, the cart and the didactic timestamp each live
// under one well-known key.
package storage

import "context"

// Well-known persistence keys. The names predate this client and must not
// change: existing installs already hold data under them.
const (
	KeySession  = "yams_user_session"
	KeyCart     = "yams_cart"
	KeyOpenedAt = "yams_client_opened_at"
)

// Store is a minimal key-value persistence capability. Get returns
// (nil, nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
