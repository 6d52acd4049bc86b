package apiclient

import "context"

// UnreadNotificationCount returns the number of unread notifications. The
// backend answers the bare count for this query shape.
func (c *Client) UnreadNotificationCount(ctx context.Context) (int, error) {
	var count int
	if err := c.getJSON(ctx, "/api/notifications?read_at=null&req_count", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}
