package order

import (
	"time"

	"doorsteps/internal/domain"
	"doorsteps/internal/pkg/l10n"
)

// OrderResponse is the localized card the dashboards render.
type OrderResponse struct {
	ID              int64                `json:"id"`
	Status          domain.OrderStatus   `json:"status"`
	PaymentStatus   domain.PaymentStatus `json:"payment_status"`
	ServiceName     string               `json:"service_name"`
	ScheduledDate   string               `json:"scheduled_date"`
	ScheduledTime   string               `json:"scheduled_time"`
	Address         string               `json:"address"`
	Price           float64              `json:"price"`
	DiscountedPrice float64              `json:"discounted_price"`
	Quantity        int                  `json:"quantity"`
	TotalPrice      float64              `json:"total_price"`
	Notes           string               `json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	View        string          `json:"view"`
	LastError   string          `json:"last_error,omitempty"`
	UnpaidCount int             `json:"unpaid_count"`
}

func ToOrderResponse(o *domain.Order, loc l10n.Locale) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		ServiceName:     l10n.Pick(loc, o.ServiceNameEN, o.ServiceNameNP),
		ScheduledDate:   o.ScheduledDate,
		ScheduledTime:   o.ScheduledTime,
		Address:         o.Address,
		Price:           o.Price,
		DiscountedPrice: o.DiscountedPrice,
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
	}
}

func ToOrderListResponse(orders []domain.Order, view, lastErr string, unpaid int, loc l10n.Locale) OrderListResponse {
	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i], loc)
	}
	return OrderListResponse{Orders: items, View: view, LastError: lastErr, UnpaidCount: unpaid}
}
