package entity

import "time"

// Delivery log email kinds
const (
	DeliveryConfirmation = "CONFIRMATION"
	DeliveryOperator     = "OPERATOR"
	DeliveryReminder     = "REMINDER"
)

// DeliveryLog records a single email send attempt
type DeliveryLog struct {
	ID          uint
	Kind        string
	Recipient   string
	SlotTime    time.Time
	Succeeded   bool
	ErrorDetail string
	CreatedAt   time.Time
}
