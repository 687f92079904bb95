package upstream

import (
	"context"
	"fmt"
	"net/http"

	"doorsteps/internal/domain"
)

func (c *Client) Payments(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := c.do(ctx, http.MethodGet, "/api/v1/payments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePayment records a payment intent for an order. The backend
// owns the actual settlement flow.
func (c *Client) CreatePayment(ctx context.Context, orderID int64, amount float64, method string) (*domain.Payment, error) {
	var out domain.Payment
	body := map[string]any{"order_id": orderID, "amount": amount, "method": method}
	if err := c.do(ctx, http.MethodPost, "/api/v1/payments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Withdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	var out []domain.Withdrawal
	if err := c.do(ctx, http.MethodGet, "/api/v1/withdrawals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WithdrawalReceipt downloads the receipt document as raw bytes with
// its content type.
func (c *Client) WithdrawalReceipt(ctx context.Context, id int64) ([]byte, string, error) {
	return c.doRaw(ctx, fmt.Sprintf("/api/v1/withdrawals/%d/receipt", id))
}
