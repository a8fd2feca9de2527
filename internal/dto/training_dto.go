package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// LessonListRequest defines filters for listing lessons.
type LessonListRequest struct {
	OfficeID  *uint
	StudentID uint
	TrainerID uint
	Status    string
}

// LessonCreateRequest schedules a lesson.
type LessonCreateRequest struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	TrainerID uint   `json:"trainer_id" validate:"required,gt=0"`
	VehicleID uint   `json:"vehicle_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Status    string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// LessonStatusRequest changes the status of a lesson.
type LessonStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// LessonResponse serializes a lesson with display names of its participants.
type LessonResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	TrainerID   uint      `json:"trainer_id"`
	TrainerName string    `json:"trainer_name,omitempty"`
	VehicleID   uint      `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
}

// NewLessonResponse converts a lesson model into a DTO.
func NewLessonResponse(model models.Lesson) LessonResponse {
	resp := LessonResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		TrainerID: model.TrainerID,
		VehicleID: model.VehicleID,
		Date:      model.Date,
		StartTime: model.StartTime,
		EndTime:   model.EndTime,
		Status:    string(model.Status),
	}
	if model.Student != nil {
		resp.StudentName = model.Student.Name
	}
	if model.Trainer != nil {
		resp.TrainerName = model.Trainer.Name
	}
	if model.Vehicle != nil {
		resp.VehicleName = model.Vehicle.DisplayName()
	}
	return resp
}

// ExamListRequest defines filters for listing exams.
type ExamListRequest struct {
	OfficeID  *uint
	StudentID uint
	Type      string
	Result    string
}

// ExamCreateRequest records an exam sitting.
type ExamCreateRequest struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Type      string `json:"type" validate:"required,oneof=theory practical"`
	Result    string `json:"result" validate:"omitempty,oneof=passed failed pending"`
}

// ExamResultRequest updates the outcome of an exam.
type ExamResultRequest struct {
	Result string `json:"result" validate:"required,oneof=passed failed pending"`
}

// ExamResponse serializes an exam.
type ExamResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Result      string    `json:"result"`
}

// NewExamResponse converts an exam model into a DTO.
func NewExamResponse(model models.Exam) ExamResponse {
	resp := ExamResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		Date:      model.Date,
		Type:      string(model.Type),
		Result:    string(model.Result),
	}
	if model.Student != nil {
		resp.StudentName = model.Student.Name
	}
	return resp
}

// PaymentListRequest defines filters for listing payments.
type PaymentListRequest struct {
	OfficeID  *uint
	StudentID uint
	Status    string
}

// PaymentCreateRequest records a payment.
type PaymentCreateRequest struct {
	StudentID uint    `json:"student_id" validate:"required,gt=0"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"omitempty,oneof=paid pending overdue"`
	Method    string  `json:"method" validate:"required,oneof=card cash transfer"`
}

// PaymentResponse serializes a payment.
type PaymentResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
}

// NewPaymentResponse converts a payment model into a DTO.
func NewPaymentResponse(model models.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		Amount:    model.Amount,
		Date:      model.Date,
		Status:    string(model.Status),
		Method:    string(model.Method),
	}
	if model.Student != nil {
		resp.StudentName = model.Student.Name
	}
	return resp
}

// LicensePriceRequest sets the price of a licence category.
type LicensePriceRequest struct {
	Category string  `json:"category" validate:"required,min=1,max=16"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// LicensePriceUpdateRequest changes the price of an existing category.
type LicensePriceUpdateRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

// LicensePriceResponse serializes a licence price entry.
type LicensePriceResponse struct {
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// NewLicensePriceResponse converts a price model into a DTO.
func NewLicensePriceResponse(model models.LicensePrice) LicensePriceResponse {
	return LicensePriceResponse{Category: model.Category, Price: model.Price}
}
