package domain

// BookingDetails is the single object a confirmed booking form hands
// to the order submission path. The total here is display-side only;
// the backend recomputes and is authoritative.
type BookingDetails struct {
	ProfessionalServiceID int64   `json:"professional_service_id"`
	ProfessionalID        int64   `json:"professional_id"`
	Quantity              int     `json:"quantity"`
	ScheduledDate         string  `json:"scheduled_date"`
	ScheduledTime         string  `json:"scheduled_time"`
	Address               string  `json:"address"`
	Notes                 string  `json:"notes,omitempty"`
	UnitPrice             float64 `json:"unit_price"`
	DiscountedPrice       float64 `json:"discounted_price"`
	TotalPrice            float64 `json:"total_price"`
}
