package models

import "time"

// DateOnly is the wire layout for due dates. The backend treats due
// dates as calendar dates, not instants.
const DateOnly = "2006-01-02"

type Floor struct {
	ID          string  `json:"id"`
	FloorNumber int     `json:"floor_number"`
	Description *string `json:"description"`
}

type Apartment struct {
	ID              string `json:"id"`
	FloorID         string `json:"floor_id"`
	ApartmentNumber string `json:"apartment_number"`
	MeterNumber     string `json:"meter_number"`
	FloorNumber     *int   `json:"floor_number"`
}

type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPaid    DebtStatus = "paid"
	DebtStatusOverdue DebtStatus = "overdue"
)

type Debt struct {
	ID          string     `json:"id"`
	ApartmentID string     `json:"apartment_id"`
	Amount      float64    `json:"amount"`
	Description *string    `json:"description"`
	DueDate     *string    `json:"due_date"`
	Status      DebtStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`

	// Denormalized display fields filled in by the backend.
	ApartmentNumber *string `json:"apartment_number"`
	FloorNumber     *int    `json:"floor_number"`
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

type Payment struct {
	ID          string        `json:"id"`
	DebtID      string        `json:"debt_id"`
	Amount      float64       `json:"amount"`
	PaymentDate time.Time     `json:"payment_date"`
	ReceiptPath *string       `json:"receipt_path"`
	Status      PaymentStatus `json:"status"`
	ApprovedBy  *string       `json:"approved_by"`
	ApprovedAt  *time.Time    `json:"approved_at"`
	Notes       *string       `json:"notes"`

	// Denormalized display fields.
	DebtDescription *string `json:"debt_description"`
	ApartmentNumber *string `json:"apartment_number"`
}

// PaymentMetrics is the aggregate returned by GET /metrics/payments.
type PaymentMetrics struct {
	TotalCount     int     `json:"total_count"`
	TotalAmount    float64 `json:"total_amount"`
	PendingCount   int     `json:"pending_count"`
	ApprovedCount  int     `json:"approved_count"`
	RejectedCount  int     `json:"rejected_count"`
	ApprovedAmount float64 `json:"approved_amount"`
}

// StatusMessage is the generic mutation acknowledgement body.
type StatusMessage struct {
	Message string `json:"message"`
}
