package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// ChargeCreateRequest records an expense.
type ChargeCreateRequest struct {
	Category    string  `json:"category" validate:"required,oneof=office_rent electricity water phone internet software salary mechanic purchase other"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Beneficiary string  `json:"beneficiary" validate:"omitempty,max=255"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	InvoiceURL  string  `json:"invoice_url" validate:"omitempty,url"`
}

// ChargeResponse serializes an expense.
type ChargeResponse struct {
	ID          uint      `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Beneficiary string    `json:"beneficiary"`
	Date        time.Time `json:"date"`
	InvoiceURL  string    `json:"invoice_url,omitempty"`
}

// ChargeListResponse lists expenses with their totals.
type ChargeListResponse struct {
	Items      []ChargeResponse   `json:"items"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
}

// NewChargeResponse converts a charge model into a DTO.
func NewChargeResponse(model models.Charge) ChargeResponse {
	return ChargeResponse{
		ID:          model.ID,
		Category:    model.Category,
		Amount:      model.Amount,
		Beneficiary: model.Beneficiary,
		Date:        model.Date,
		InvoiceURL:  model.InvoiceURL,
	}
}

// AttendanceEntry is one presence mark.
type AttendanceEntry struct {
	EntityID   uint   `json:"entity_id" validate:"required,gt=0"`
	EntityType string `json:"entity_type" validate:"required,oneof=student staff"`
	Status     string `json:"status" validate:"required,oneof=present absent"`
	Notes      string `json:"notes" validate:"omitempty,max=1000"`
}

// AttendanceMarkRequest marks presence for a day.
type AttendanceMarkRequest struct {
	Date    string            `json:"date" validate:"required,datetime=2006-01-02"`
	Records []AttendanceEntry `json:"records" validate:"required,min=1,dive"`
}

// AttendanceResponse serializes a stored presence mark.
type AttendanceResponse struct {
	ID         uint   `json:"id"`
	EntityID   uint   `json:"entity_id"`
	EntityType string `json:"entity_type"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

// NewAttendanceResponse converts an attendance model into a DTO.
func NewAttendanceResponse(model models.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         model.ID,
		EntityID:   model.EntityID,
		EntityType: model.EntityType,
		Date:       model.Date,
		Status:     model.Status,
		Notes:      model.Notes,
	}
}

// UploadResponse describes the stored document metadata returned to the client.
type UploadResponse struct {
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
	Checksum  string `json:"checksum"`
	FileName  string `json:"file_name"`
	Purpose   string `json:"purpose,omitempty"`
}

// SeedRequest contains optional overrides for seed operations.
type SeedRequest struct {
	Force bool `json:"force"`
}

// SeedResponse reports how many rows the demo seed inserted per entity.
type SeedResponse struct {
	Skipped bool           `json:"skipped"`
	Counts  map[string]int `json:"counts"`
}
