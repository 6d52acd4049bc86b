package apiclient

import (
	"context"

	"yams/internal/model"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, credentials model.Credentials) (model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.postJSON(ctx, "/api/login", credentials, &resp); err != nil {
		return model.LoginResponse{}, err
	}
	return resp, nil
}

// Register creates a self-service account. The response may or may not
// include an authenticated user.
func (c *Client) Register(ctx context.Context, payload model.RegisterPayload) (model.RegisterResponse, error) {
	var resp model.RegisterResponse
	if err := c.postJSON(ctx, "/auth/register", payload, &resp); err != nil {
		return model.RegisterResponse{}, err
	}
	return resp, nil
}
