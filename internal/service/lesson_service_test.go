package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

type lessonFixture struct {
	service LessonService
	student models.Student
	trainer models.Trainer
	vehicle models.Vehicle
	office  uint
	other   uint
}

func newLessonFixture(t *testing.T) lessonFixture {
	t.Helper()
	db := setupServiceDB(t)

	offices := []models.Office{{Name: "Downtown"}, {Name: "Westside"}}
	require.NoError(t, db.Create(&offices).Error)

	student := models.Student{Name: "Jane Doe", LicenseCategory: "B", OfficeID: offices[0].ID, JoinDate: day(2024, time.January, 3)}
	require.NoError(t, db.Create(&student).Error)
	trainer := models.Trainer{Name: "Karim Trainer", HireDate: day(2020, time.March, 1)}
	require.NoError(t, db.Create(&trainer).Error)
	vehicle := models.Vehicle{Kind: models.VehicleKindCar, Make: "Dacia", Model: "Logan", Year: 2021, LicensePlate: "LESSON-1"}
	require.NoError(t, db.Create(&vehicle).Error)

	svc := NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewStudentRepository(db),
		repository.NewPeopleRepository(db),
		repository.NewFleetRepository(db),
		testValidator(),
		testLogger(),
	)

	return lessonFixture{service: svc, student: student, trainer: trainer, vehicle: vehicle, office: offices[0].ID, other: offices[1].ID}
}

func (f lessonFixture) request(start, end string) dto.LessonCreateRequest {
	return dto.LessonCreateRequest{
		StudentID: f.student.ID,
		TrainerID: f.trainer.ID,
		VehicleID: f.vehicle.ID,
		Date:      "2024-05-02",
		StartTime: start,
		EndTime:   end,
	}
}

func TestLessonServiceCreateDefaultsToScheduled(t *testing.T) {
	f := newLessonFixture(t)
	ctx := context.Background()

	lesson, err := f.service.Create(ctx, f.request("09:00", "10:00"), SystemActor)
	require.NoError(t, err)
	require.Equal(t, string(models.LessonStatusScheduled), lesson.Status)
	require.Equal(t, "Jane Doe", lesson.StudentName)
	require.Equal(t, "Karim Trainer", lesson.TrainerName)

	upcoming, err := f.service.UpcomingForTrainer(ctx, f.trainer.ID, nil)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	_, err = f.service.UpcomingForTrainer(ctx, f.trainer.ID+100, nil)
	require.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestLessonServiceCreateValidatesReferences(t *testing.T) {
	f := newLessonFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.request("10:00", "09:30"), SystemActor)
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	req := f.request("09:00", "10:00")
	req.VehicleID = f.vehicle.ID + 50
	_, err = f.service.Create(ctx, req, SystemActor)
	require.ErrorIs(t, err, ErrVehicleNotFound)

	secretary := ActivityActor{ID: 3, Role: models.RoleSecretary, OfficeID: officePtr(f.other)}
	_, err = f.service.Create(ctx, f.request("09:00", "10:00"), secretary)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestLessonServiceUpdateStatusRespectsOffice(t *testing.T) {
	f := newLessonFixture(t)
	ctx := context.Background()

	lesson, err := f.service.Create(ctx, f.request("09:00", "10:00"), SystemActor)
	require.NoError(t, err)

	foreign := ActivityActor{ID: 3, Role: models.RoleSecretary, OfficeID: officePtr(f.other)}
	_, err = f.service.UpdateStatus(ctx, lesson.ID, dto.LessonStatusRequest{Status: "completed"}, foreign)
	require.ErrorIs(t, err, ErrLessonNotFound)

	own := ActivityActor{ID: 3, Role: models.RoleSecretary, OfficeID: officePtr(f.office)}
	updated, err := f.service.UpdateStatus(ctx, lesson.ID, dto.LessonStatusRequest{Status: "completed"}, own)
	require.NoError(t, err)
	require.Equal(t, string(models.LessonStatusCompleted), updated.Status)

	completed, err := f.service.List(ctx, dto.LessonListRequest{OfficeID: officePtr(f.office), Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)

	elsewhere, err := f.service.List(ctx, dto.LessonListRequest{OfficeID: officePtr(f.other)})
	require.NoError(t, err)
	require.Empty(t, elsewhere)

	_, err = f.service.UpdateStatus(ctx, lesson.ID+99, dto.LessonStatusRequest{Status: "cancelled"}, SystemActor)
	require.ErrorIs(t, err, ErrLessonNotFound)
}
