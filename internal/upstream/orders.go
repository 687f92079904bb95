package upstream

import (
	"context"
	"fmt"
	"net/http"

	"doorsteps/internal/domain"
)

// CustomerOrders lists the orders placed by the current user.
func (c *Client) CustomerOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders?role=customer", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfessionalOrders lists the orders assigned to the current user's
// professional profile.
func (c *Client) ProfessionalOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders?role=professional", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits a confirmed booking. The backend recomputes the
// total price and returns the authoritative order.
func (c *Client) CreateOrder(ctx context.Context, details domain.BookingDetails) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", details, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/cancel", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
