package apiclient

import (
	"context"

	"yams/internal/model"
)

// CreateOrder posts one order line. Checkout fans out one call per cart
// line.
func (c *Client) CreateOrder(ctx context.Context, payload model.OrderPayload) error {
	return c.postJSON(ctx, "/api/commandes", payload, nil)
}
