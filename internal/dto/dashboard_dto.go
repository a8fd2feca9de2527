package dto

import "time"

// MonthlyPoint is one month of a dashboard series.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// OfficeDashboardResponse aggregates the figures shown on an office dashboard.
type OfficeDashboardResponse struct {
	TotalStudents    int64          `json:"total_students"`
	ScheduledLessons int64          `json:"scheduled_lessons"`
	Revenue          float64        `json:"revenue"`
	AvailableCars    int64          `json:"available_cars"`
	TotalCharges     float64        `json:"total_charges"`
	SalaryCharges    float64        `json:"salary_charges"`
	TotalStaff       int64          `json:"total_staff"`
	PresentStaff     int64          `json:"present_staff"`
	AbsentStaff      int64          `json:"absent_staff"`
	LessonsByMonth   []MonthlyPoint `json:"lessons_by_month"`
	RevenueByMonth   []MonthlyPoint `json:"revenue_by_month"`
	GeneratedAt      time.Time      `json:"generated_at"`
	CacheHit         bool           `json:"cache_hit"`
}

// SuperAdminDashboardResponse aggregates platform-wide figures.
type SuperAdminDashboardResponse struct {
	TotalOffices   int64            `json:"total_offices"`
	TotalStudents  int64            `json:"total_students"`
	TotalTrainers  int64            `json:"total_trainers"`
	TotalRevenue   float64          `json:"total_revenue"`
	OfficesPerPlan map[string]int64 `json:"offices_per_plan"`
	GeneratedAt    time.Time        `json:"generated_at"`
	CacheHit       bool             `json:"cache_hit"`
}
