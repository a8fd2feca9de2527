package models

import "time"

// PaymentStatus tracks whether a payment was collected.
type PaymentStatus string

// PaymentMethod describes how a payment was made.
type PaymentMethod string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Payment is an amount recorded against a student's licence fee.
type Payment struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	StudentID uint          `gorm:"index;not null" json:"student_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Date      time.Time     `gorm:"index;not null" json:"date"`
	Status    PaymentStatus `gorm:"size:16;not null;default:paid" json:"status"`
	Method    PaymentMethod `gorm:"size:16;not null;default:cash" json:"method"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// LicensePrice is the full course price for a licence category.
type LicensePrice struct {
	Category  string    `gorm:"primaryKey;size:16" json:"category"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
