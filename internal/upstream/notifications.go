package upstream

import (
	"context"
	"fmt"
	"net/http"

	"doorsteps/internal/domain"
)

func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/notifications/%d/read", id), nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/notifications/read-all", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", id), nil, nil)
}

// NotificationStreamURL is the websocket endpoint for live pushes.
// Token travels as a query parameter because browsers cannot set
// headers on websocket dials.
func (c *Client) NotificationStreamURL() string {
	base := c.baseURL
	switch {
	case len(base) > 8 && base[:8] == "https://":
		base = "wss://" + base[8:]
	case len(base) > 7 && base[:7] == "http://":
		base = "ws://" + base[7:]
	}
	return base + "/ws/notifications?token=" + c.token()
}
