package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

func TestAttendanceServiceMarkUpserts(t *testing.T) {
	db := setupServiceDB(t)
	ctx := context.Background()

	student := models.Student{Name: "Alice Johnson", LicenseCategory: "B", OfficeID: 1}
	staff := models.Staff{Name: "Linda Chen", Role: "Cleaner"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&staff).Error)

	svc := NewAttendanceService(repository.NewAttendanceRepository(db), repository.NewStudentRepository(db), testValidator(), testLogger())
	actor := ActivityActor{ID: 3, Role: models.RoleSecretary, OfficeID: officePtr(1)}

	marked, err := svc.Mark(ctx, dto.AttendanceMarkRequest{
		Date: "2024-09-02",
		Records: []dto.AttendanceEntry{
			{EntityID: student.ID, EntityType: "student", Status: "present"},
			{EntityID: staff.ID, EntityType: "staff", Status: "present"},
			{EntityID: staff.ID, EntityType: "staff", Status: "absent", Notes: "<i>sick</i>"},
		},
	}, actor)
	require.NoError(t, err)
	require.Len(t, marked, 2)

	_, err = svc.Mark(ctx, dto.AttendanceMarkRequest{
		Date:    "2024-09-02",
		Records: []dto.AttendanceEntry{{EntityID: student.ID, EntityType: "student", Status: "absent"}},
	}, actor)
	require.NoError(t, err)

	day, err := svc.ForDate(ctx, "2024-09-02", officePtr(1))
	require.NoError(t, err)
	require.Len(t, day, 2)

	byType := map[string]dto.AttendanceResponse{}
	for _, record := range day {
		byType[record.EntityType] = record
	}
	require.Equal(t, "absent", byType["student"].Status)
	require.Equal(t, "absent", byType["staff"].Status)
	require.Equal(t, "sick", byType["staff"].Notes)

	var rows int64
	require.NoError(t, db.Model(&models.Attendance{}).Count(&rows).Error)
	require.Equal(t, int64(2), rows)
}

func TestAttendanceServiceRejectsForeignStudent(t *testing.T) {
	db := setupServiceDB(t)
	student := models.Student{Name: "Bob Smith", LicenseCategory: "A1", OfficeID: 2}
	require.NoError(t, db.Create(&student).Error)

	svc := NewAttendanceService(repository.NewAttendanceRepository(db), repository.NewStudentRepository(db), testValidator(), testLogger())

	_, err := svc.Mark(context.Background(), dto.AttendanceMarkRequest{
		Date:    "2024-09-02",
		Records: []dto.AttendanceEntry{{EntityID: student.ID, EntityType: "student", Status: "present"}},
	}, ActivityActor{ID: 3, Role: models.RoleSecretary, OfficeID: officePtr(1)})
	require.ErrorIs(t, err, ErrStudentNotFound)
}
