package domain

import "time"

// OrderStatus transitions are driven by the backend; the client side
// only mirrors them and filters by value.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderInspected OrderStatus = "inspected"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Order struct {
	ID              int64         `json:"id"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	ScheduledDate   string        `json:"scheduled_date"`
	ScheduledTime   string        `json:"scheduled_time"`
	CustomerID      int64         `json:"customer_id"`
	ProfessionalID  int64         `json:"professional_id"`
	ServiceNameEN   string        `json:"service_name_en"`
	ServiceNameNP   string        `json:"service_name_np"`
	Address         string        `json:"address"`
	Price           float64       `json:"price"`
	DiscountedPrice float64       `json:"discounted_price"`
	Quantity        int           `json:"quantity"`
	TotalPrice      float64       `json:"total_price"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
