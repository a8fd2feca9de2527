package models

import "time"

// Charge categories for school expenses.
const (
	ChargeOfficeRent  = "office_rent"
	ChargeElectricity = "electricity"
	ChargeWater       = "water"
	ChargePhone       = "phone"
	ChargeInternet    = "internet"
	ChargeSoftware    = "software"
	ChargeSalary      = "salary"
	ChargeMechanic    = "mechanic"
	ChargePurchase    = "purchase"
	ChargeOther       = "other"
)

// Attendance entity types.
const (
	AttendanceStudent = "student"
	AttendanceStaff   = "staff"
)

// Charge is an operating expense of the school.
type Charge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    string    `gorm:"size:32;not null;index" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Beneficiary string    `gorm:"size:255" json:"beneficiary"`
	Date        time.Time `gorm:"index" json:"date"`
	InvoiceURL  string    `gorm:"size:512" json:"invoice_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Attendance is the presence of a student or staff member on a day.
type Attendance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EntityID   uint      `gorm:"not null;uniqueIndex:idx_attendance_entry" json:"entity_id"`
	EntityType string    `gorm:"size:16;not null;uniqueIndex:idx_attendance_entry" json:"entity_type"`
	Date       string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_entry" json:"date"`
	Status     string    `gorm:"size:16;not null" json:"status"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UploadRecord stores metadata about uploaded documents.
type UploadRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Purpose   string    `gorm:"size:32;index" json:"purpose"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	MimeType  string    `gorm:"size:128;not null" json:"mime_type"`
	SizeBytes int64     `gorm:"not null" json:"size_bytes"`
	Checksum  string    `gorm:"size:128;index" json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}
