package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"yams/internal/model"
)

// ListProducts fetches the catalog. Filters are passed through as query
// parameters untouched.
func (c *Client) ListProducts(ctx context.Context, filters url.Values) ([]model.APIProduct, error) {
	var products []model.APIProduct
	if err := c.getJSON(ctx, "/api/produits", filters, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product. The backend exposes this as POST.
func (c *Client) GetProduct(ctx context.Context, id int) (model.APIProduct, error) {
	var product model.APIProduct
	if err := c.postJSON(ctx, fmt.Sprintf("/api/produits/%d", id), nil, &product); err != nil {
		return model.APIProduct{}, err
	}
	return product, nil
}

// CreateProduct creates a product via multipart upload, attaching the
// payload image when present.
func (c *Client) CreateProduct(ctx context.Context, payload model.ProductPayload) (model.APIProduct, error) {
	var product model.APIProduct
	err := c.postMultipart(ctx, "/api/produits", payload.FormFields(), "images", payload.ImageName, payload.Image, &product)
	if err != nil {
		return model.APIProduct{}, err
	}
	return product, nil
}

// UpdateProduct updates a product with a flat JSON payload.
func (c *Client) UpdateProduct(ctx context.Context, id int, payload model.ProductPayload) (model.APIProduct, error) {
	var product model.APIProduct
	if err := c.putJSON(ctx, fmt.Sprintf("/api/produits/%d", id), payload.ToAPI(), &product); err != nil {
		return model.APIProduct{}, err
	}
	return product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/produits/%d", id))
}
