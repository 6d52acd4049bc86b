package apiclient

import (
	"context"
	"fmt"

	"yams/internal/model"
)

// ListUsers fetches the admin user list.
func (c *Client) ListUsers(ctx context.Context) ([]model.APIUser, error) {
	var users []model.APIUser
	if err := c.getJSON(ctx, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user record.
func (c *Client) CreateUser(ctx context.Context, payload model.UserPayload) (model.APIUser, error) {
	var user model.APIUser
	if err := c.postJSON(ctx, "/api/users", payload, &user); err != nil {
		return model.APIUser{}, err
	}
	return user, nil
}

// UpdateUser updates a user record. The id rides both in the path and in
// the payload, which is what the backend expects.
func (c *Client) UpdateUser(ctx context.Context, id int, payload model.UserPayload) (model.APIUser, error) {
	payload.ID = id
	var user model.APIUser
	if err := c.putJSON(ctx, fmt.Sprintf("/api/users/%d", id), payload, &user); err != nil {
		return model.APIUser{}, err
	}
	return user, nil
}

// DeleteUser removes a user record.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/users/%d", id))
}
