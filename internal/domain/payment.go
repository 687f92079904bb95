package domain

import "time"

type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalApproved  WithdrawalStatus = "approved"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalCompleted WithdrawalStatus = "completed"
)

// Withdrawal is a professional-side payout record. Read-only from the
// gateway's perspective; the backend drives status transitions.
type Withdrawal struct {
	ID             int64            `json:"id"`
	ProfessionalID int64            `json:"professional_id"`
	Amount         float64          `json:"amount"`
	Status         WithdrawalStatus `json:"status"`
	Remarks        string           `json:"remarks,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type Payment struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
