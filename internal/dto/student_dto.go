package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// StudentListRequest defines filters for listing students.
type StudentListRequest struct {
	Page            int
	PageSize        int
	OfficeID        *uint
	Search          string
	Category        string
	Status          string
	Sort            string
	IncludeArchived bool
}

// StudentCreateRequest captures the enrolment form.
type StudentCreateRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=255"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"omitempty,max=64"`
	JoinDate        string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status" validate:"omitempty,oneof=active inactive completed"`
	LicenseCategory string `json:"license_category" validate:"required,max=16"`
	OfficeID        uint   `json:"office_id"`
}

// StudentUpdateRequest patches profile fields. The archive flag is never writable.
type StudentUpdateRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,max=64"`
	Status          *string `json:"status" validate:"omitempty,oneof=active inactive completed"`
	LicenseCategory *string `json:"license_category" validate:"omitempty,max=16"`
}

// StudentResponse serializes a student.
type StudentResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	JoinDate        time.Time  `json:"join_date"`
	Status          string     `json:"status"`
	LicenseCategory string     `json:"license_category"`
	OfficeID        uint       `json:"office_id"`
	Archived        bool       `json:"archived"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StudentListResponse wraps a paginated student response.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewStudentResponse converts a student model into a DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:              student.ID,
		Name:            student.Name,
		Email:           student.Email,
		Phone:           student.Phone,
		JoinDate:        student.JoinDate,
		Status:          student.Status,
		LicenseCategory: student.LicenseCategory,
		OfficeID:        student.OfficeID,
		Archived:        student.Archived,
		ArchivedAt:      student.ArchivedAt,
		CreatedAt:       student.CreatedAt,
		UpdatedAt:       student.UpdatedAt,
	}
}

// ProgressResponse is the training progress of a student.
type ProgressResponse struct {
	StudentID          uint   `json:"student_id"`
	Percent            int    `json:"percent"`
	CompletedLessons   int    `json:"completed_lessons"`
	TotalLessonsTarget int    `json:"total_lessons_target"`
	TheoryStatus       string `json:"theory_status"`
	PracticalStatus    string `json:"practical_status"`
}

// StandardGroupResponse summarises the students enrolled in one licence category.
type StandardGroupResponse struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	Avatars  []string `json:"avatars"`
	Color    string   `json:"color"`
}
