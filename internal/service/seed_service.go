package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads the demo school.
type SeedService interface {
	SeedDemo(ctx context.Context, token string, req dto.SeedRequest) (dto.SeedResponse, error)
}

type seedService struct {
	repo    repository.SeedRepository
	enabled bool
	token   string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewSeedService constructs a seeding service.
func NewSeedService(repo repository.SeedRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		repo:    repo,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
		now:     time.Now,
	}
}

func (s *seedService) SeedDemo(ctx context.Context, token string, req dto.SeedRequest) (dto.SeedResponse, error) {
	if !s.enabled {
		return dto.SeedResponse{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return dto.SeedResponse{}, ErrSeedUnauthorized
	}

	seeded, err := s.repo.HasData(ctx)
	if err != nil {
		return dto.SeedResponse{}, fmt.Errorf("check existing data: %w", err)
	}
	if seeded && !req.Force {
		s.logger.Info().Msg("demo data already present, skipping seed")
		return dto.SeedResponse{Skipped: true, Counts: map[string]int{}}, nil
	}
	if seeded {
		if err := s.repo.Reset(ctx); err != nil {
			return dto.SeedResponse{}, fmt.Errorf("reset demo data: %w", err)
		}
	}

	counts := make(map[string]int)
	err = s.repo.Transaction(ctx, func(w repository.SeedWriter) error {
		loader := demoLoader{w: w, counts: counts, now: s.now().UTC()}
		return loader.load()
	})
	if err != nil {
		return dto.SeedResponse{}, fmt.Errorf("seed demo data: %w", err)
	}

	s.logger.Info().Interface("counts", counts).Msg("demo school seeded")
	return dto.SeedResponse{Counts: counts}, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}

type demoLoader struct {
	w      repository.SeedWriter
	counts map[string]int
	now    time.Time

	offices  []models.Office
	students []models.Student
	trainers []models.Trainer
	vehicles []models.Vehicle
}

func (l *demoLoader) create(kind string, value interface{}) error {
	if err := l.w.Create(value); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	l.counts[kind]++
	return nil
}

func (l *demoLoader) load() error {
	steps := []func() error{
		l.loadOffices,
		l.loadUsers,
		l.loadPrices,
		l.loadSubscriptions,
		l.loadStudents,
		l.loadTrainers,
		l.loadStaff,
		l.loadFleet,
		l.loadTraining,
		l.loadCharges,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadOffices() error {
	l.offices = []models.Office{
		{Name: "Main Office - Downtown", Address: "123 Drive St, Success City", Phone: "123-456-7890", SubscriptionPlan: models.PlanEnterprise},
		{Name: "Westside Branch", Address: "456 West Ave, Success City", Phone: "987-654-3210", SubscriptionPlan: models.PlanBasic},
		{Name: "North End Academy", Address: "789 North Blvd, Success City", Phone: "555-123-4567", SubscriptionPlan: models.PlanBusiness},
	}
	for i := range l.offices {
		if err := l.create("offices", &l.offices[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadUsers() error {
	users := []struct {
		name, email, role string
		office            int
	}{
		{"Super Admin", "superadmin@drivedesk.test", models.RoleSuperAdmin, -1},
		{"Admin User", "admin@drivedesk.test", models.RoleAdmin, -1},
		{"Sarah Miller", "secretary@drivedesk.test", models.RoleSecretary, 0},
		{"Jane Doe", "jane.doe@drivedesk.test", models.RoleSecretary, 0},
		{"John Smith", "john.smith@drivedesk.test", models.RoleSecretary, 1},
	}
	for _, item := range users {
		user := models.User{Name: item.name, Email: item.email, Role: item.role}
		if item.office >= 0 {
			officeID := l.offices[item.office].ID
			user.OfficeID = &officeID
		}
		if err := user.SetPassword(DemoPassword); err != nil {
			return fmt.Errorf("hash demo password: %w", err)
		}
		if err := l.create("users", &user); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadPrices() error {
	prices := []struct {
		category string
		price    float64
	}{
		{"A", 600}, {"A1", 550}, {"B", 500}, {"BE", 700},
		{"C1", 800}, {"C1E", 950}, {"C", 900}, {"CE", 1100},
		{"D1", 1000}, {"D1E", 1200}, {"D", 1150}, {"DE", 1300},
	}
	for _, item := range prices {
		if err := l.create("license_prices", &models.LicensePrice{Category: item.category, Price: item.price}); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadSubscriptions() error {
	plans := []models.Subscription{
		{Code: "sub_basic", Name: "Starter Pack", Price: 49, Duration: "monthly", Features: datatypes.NewJSONSlice([]string{
			"1 Secretary Dashboard", "Manage up to 50 students", "Basic reporting", "Email support",
		})},
		{Code: "sub_business", Name: "Growth Pack", Price: 99, Duration: "monthly", Features: datatypes.NewJSONSlice([]string{
			"Up to 2 Secretary Dashboards", "Manage up to 200 students", "Advanced reporting & analytics", "Priority support",
		})},
		{Code: "sub_enterprise", Name: "Pro Pack", Price: 199, Duration: "monthly", Features: datatypes.NewJSONSlice([]string{
			"Unlimited Secretary Dashboards", "Multi-school management", "Dedicated account manager", "API access",
		})},
	}
	for i := range plans {
		if err := l.create("subscriptions", &plans[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadStudents() error {
	rows := []struct {
		name, email, joined, status, category string
		office                                int
	}{
		{"Alice Johnson", "alice@example.com", "2023-01-15", models.StudentStatusActive, "B", 0},
		{"Bob Smith", "bob@example.com", "2023-02-20", models.StudentStatusActive, "A1", 1},
		{"Charlie Brown", "charlie@example.com", "2022-11-05", models.StudentStatusCompleted, "B", 0},
		{"Diana Prince", "diana@example.com", "2023-03-10", models.StudentStatusInactive, "BE", 1},
		{"Ethan Hunt", "ethan@example.com", "2023-04-01", models.StudentStatusActive, "A", 0},
		{"Fiona Glenanne", "fiona@example.com", "2023-04-12", models.StudentStatusActive, "C", 0},
		{"George Costanza", "george@example.com", "2023-05-20", models.StudentStatusActive, "CE", 1},
		{"Hannah Montana", "hannah@example.com", "2023-06-05", models.StudentStatusCompleted, "D", 0},
		{"Ian Malcolm", "ian@example.com", "2023-06-15", models.StudentStatusActive, "DE", 1},
		{"Jessica Rabbit", "jessica@example.com", "2023-07-01", models.StudentStatusActive, "C1", 0},
		{"Kevin McCallister", "kevin@example.com", "2023-07-22", models.StudentStatusInactive, "C1E", 1},
		{"Laura Croft", "laura@example.com", "2023-08-01", models.StudentStatusActive, "D1", 0},
		{"Michael Scott", "michael@example.com", "2023-08-10", models.StudentStatusActive, "D1E", 1},
		{"Nate Archibald", "nate@example.com", "2023-09-01", models.StudentStatusActive, "A", 0},
		{"Olivia Pope", "olivia@example.com", "2023-09-02", models.StudentStatusActive, "A1", 1},
		{"Peter Pan", "peter@example.com", "2023-09-03", models.StudentStatusActive, "B", 0},
		{"Quinn Fabray", "quinn@example.com", "2023-09-04", models.StudentStatusActive, "BE", 0},
		{"Rachel Green", "rachel@example.com", "2023-09-05", models.StudentStatusActive, "C", 1},
		{"Steve Rogers", "steve@example.com", "2023-09-06", models.StudentStatusActive, "CE", 0},
		{"Tony Stark", "tony@example.com", "2023-09-07", models.StudentStatusCompleted, "D", 1},
	}

	l.students = make([]models.Student, 0, len(rows))
	for _, row := range rows {
		joined, err := time.Parse(dateLayout, row.joined)
		if err != nil {
			return err
		}
		student := models.Student{
			Name:            row.name,
			Email:           row.email,
			JoinDate:        joined,
			Status:          row.status,
			LicenseCategory: row.category,
			OfficeID:        l.offices[row.office].ID,
		}
		if err := l.create("students", &student); err != nil {
			return err
		}
		l.students = append(l.students, student)
	}
	return nil
}

func (l *demoLoader) loadTrainers() error {
	l.trainers = []models.Trainer{
		{Name: "John Davis", Email: "john.d@example.com", Phone: "555-111-2222", Specialty: "Manual Transmission", HireDate: l.date("2021-05-20"), CIN: "A123456", LicenseTypes: datatypes.NewJSONSlice([]string{"B", "D"})},
		{Name: "Jane Williams", Email: "jane.w@example.com", Phone: "555-333-4444", Specialty: "Automatic Transmission", HireDate: l.date("2022-08-15"), CIN: "B789012", LicenseTypes: datatypes.NewJSONSlice([]string{"A", "B"})},
		{Name: "Peter Jones", Email: "peter.j@example.com", Phone: "555-555-6666", Specialty: "Defensive Driving", HireDate: l.date("2020-02-01"), CIN: "C345678", LicenseTypes: datatypes.NewJSONSlice([]string{"C", "CE", "D"})},
	}
	for i := range l.trainers {
		if err := l.create("trainers", &l.trainers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadStaff() error {
	staff := []models.Staff{
		{Name: "Sarah Miller", Role: "Secretary", Email: "sarah.m@example.com", HireDate: l.date("2022-01-10"), SalaryType: models.SalaryMonthly, SalaryAmount: 2500, Status: models.PresencePresent},
		{Name: "Mike Ross", Role: "Content Creator", Email: "mike.r@example.com", HireDate: l.date("2023-03-15"), SalaryType: models.SalaryMonthly, SalaryAmount: 3000, Status: models.PresencePresent},
		{Name: "Linda Chen", Role: "Cleaner", Email: "linda.c@example.com", HireDate: l.date("2021-11-20"), SalaryType: models.SalaryHourly, SalaryAmount: 15, Status: models.PresenceAbsent},
	}
	for i := range staff {
		if err := l.create("staff", &staff[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadFleet() error {
	l.vehicles = []models.Vehicle{
		{Kind: models.VehicleKindCar, Make: "Toyota", Model: "Corolla", Year: 2022, LicensePlate: "DRIVE-1", Status: models.VehicleStatusAvailable},
		{Kind: models.VehicleKindCar, Make: "Honda", Model: "Civic", Year: 2023, LicensePlate: "DRIVE-2", Status: models.VehicleStatusInUse},
		{Kind: models.VehicleKindCar, Make: "Ford", Model: "Focus", Year: 2021, LicensePlate: "DRIVE-3", Status: models.VehicleStatusMaintenance},
		{Kind: models.VehicleKindCar, Make: "Dacia", Model: "Sandero", Year: 2021, LicensePlate: "DRIVE-4", Status: models.VehicleStatusAvailable},
		{Kind: models.VehicleKindTruck, Make: "Isuzu", Model: "N-Series", Year: 2020, LicensePlate: "TRUCK-1", Status: models.VehicleStatusAvailable, TruckType: "normal"},
		{Kind: models.VehicleKindTruck, Make: "Volvo", Model: "FH16", Year: 2022, LicensePlate: "TRUCK-3", Status: models.VehicleStatusInUse, TruckType: "long_haul"},
		{Kind: models.VehicleKindBus, Make: "Renault", Model: "Master Bus", Year: 2019, LicensePlate: "BUS-1", Status: models.VehicleStatusAvailable, Capacity: 16},
		{Kind: models.VehicleKindMotorcycle, Make: "Benelli", Model: "TNT 150", Year: 2022, LicensePlate: "MOTO-1", Status: models.VehicleStatusAvailable, EngineDisplacement: 150},
	}
	for i := range l.vehicles {
		if err := l.create("vehicles", &l.vehicles[i]); err != nil {
			return err
		}
	}

	maintenance := []models.Maintenance{
		{VehicleID: l.vehicles[0].ID, Date: l.daysAgo(90), Description: "Oil Change", Cost: 80, Status: models.MaintenanceCompleted},
		{VehicleID: l.vehicles[2].ID, Date: l.daysAgo(-15), Description: "Annual Inspection", Cost: 150, Status: models.MaintenanceScheduled},
	}
	for i := range maintenance {
		if err := l.create("maintenance", &maintenance[i]); err != nil {
			return err
		}
	}

	inspection := models.Inspection{VehicleID: l.vehicles[0].ID, Date: l.daysAgo(180), InspectorName: "Gov. Inspector A", Result: "passed", Notes: "Routine semi-annual check."}
	return l.create("inspections", &inspection)
}

func (l *demoLoader) loadTraining() error {
	lessons := []models.Lesson{
		{StudentID: l.students[0].ID, TrainerID: l.trainers[0].ID, VehicleID: l.vehicles[0].ID, Date: l.daysAgo(40), StartTime: "10:00", EndTime: "11:00", Status: models.LessonStatusCompleted},
		{StudentID: l.students[0].ID, TrainerID: l.trainers[0].ID, VehicleID: l.vehicles[0].ID, Date: l.daysAgo(20), StartTime: "10:00", EndTime: "11:00", Status: models.LessonStatusCompleted},
		{StudentID: l.students[1].ID, TrainerID: l.trainers[1].ID, VehicleID: l.vehicles[1].ID, Date: l.daysAgo(-2), StartTime: "14:00", EndTime: "15:00", Status: models.LessonStatusScheduled},
		{StudentID: l.students[0].ID, TrainerID: l.trainers[0].ID, VehicleID: l.vehicles[0].ID, Date: l.daysAgo(-3), StartTime: "10:00", EndTime: "11:00", Status: models.LessonStatusScheduled},
	}
	for i := range lessons {
		if err := l.create("lessons", &lessons[i]); err != nil {
			return err
		}
	}

	payments := []models.Payment{
		{StudentID: l.students[0].ID, Amount: 300, Date: l.daysAgo(60), Status: models.PaymentStatusPaid, Method: models.PaymentMethodCard},
		{StudentID: l.students[1].ID, Amount: 550, Date: l.daysAgo(30), Status: models.PaymentStatusPending, Method: models.PaymentMethodTransfer},
		{StudentID: l.students[3].ID, Amount: 700, Date: l.daysAgo(100), Status: models.PaymentStatusOverdue, Method: models.PaymentMethodCash},
	}
	for i := range payments {
		if err := l.create("payments", &payments[i]); err != nil {
			return err
		}
	}

	exams := []models.Exam{
		{StudentID: l.students[2].ID, Date: l.daysAgo(120), Type: models.ExamTypePractical, Result: models.ExamResultPassed},
		{StudentID: l.students[0].ID, Date: l.daysAgo(-10), Type: models.ExamTypeTheory, Result: models.ExamResultPending},
		{StudentID: l.students[1].ID, Date: l.daysAgo(15), Type: models.ExamTypePractical, Result: models.ExamResultFailed},
	}
	for i := range exams {
		if err := l.create("exams", &exams[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) loadCharges() error {
	charges := []models.Charge{
		{Category: models.ChargeOfficeRent, Amount: 2000, Beneficiary: "City Properties", Date: l.daysAgo(30)},
		{Category: models.ChargeElectricity, Amount: 150.75, Beneficiary: "Power & Light Co.", Date: l.daysAgo(26)},
		{Category: models.ChargeSalary, Amount: 2500, Beneficiary: "Sarah Miller", Date: l.daysAgo(21)},
		{Category: models.ChargeMechanic, Amount: 350, Beneficiary: "Auto Repair Shop", Date: l.daysAgo(19)},
		{Category: models.ChargeInternet, Amount: 80, Beneficiary: "ISP Services", Date: l.daysAgo(16)},
		{Category: models.ChargeWater, Amount: 45.5, Beneficiary: "Municipal Water", Date: l.daysAgo(25)},
		{Category: models.ChargeSoftware, Amount: 29.99, Beneficiary: "SaaS Platform", Date: l.daysAgo(20)},
	}
	for i := range charges {
		if err := l.create("charges", &charges[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *demoLoader) date(value string) time.Time {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return today(l.now)
	}
	return parsed
}

// daysAgo returns midnight n days before now; negative values point to the future.
func (l *demoLoader) daysAgo(n int) time.Time {
	return today(l.now).AddDate(0, 0, -n)
}
