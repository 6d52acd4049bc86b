package model

import "github.com/shopspring/decimal"

// CartItem is one cart line: a snapshot of the product at add-time plus a
// quantity. The snapshot is not re-synced if the catalog entry changes.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CheckoutStatus is a transient UI signal; it is never persisted.
type CheckoutStatus string

const (
	CheckoutIdle    CheckoutStatus = "idle"
	CheckoutSuccess CheckoutStatus = "success"
	CheckoutError   CheckoutStatus = "error"
)

// OrderPayload is one order line sent to POST /api/commandes during
// checkout fan-out.
type OrderPayload struct {
	Quantite  int             `json:"quantite"`
	Total     decimal.Decimal `json:"total"`
	ProduitID int             `json:"produit_id"`
	UserID    int             `json:"user_id"`
}
