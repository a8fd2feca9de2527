package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

func TestPeopleServiceTrainerLicenseTypes(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPeopleService(repository.NewPeopleRepository(db), testValidator(), &stubActivityRecorder{}, testLogger())
	ctx := context.Background()

	trainer, err := svc.CreateTrainer(ctx, dto.TrainerCreateRequest{
		Name:         "Peter Jones",
		Email:        "Peter.J@Example.com",
		CIN:          "c345678",
		LicenseTypes: []string{"c", " ce ", "D"},
		LicenseDate:  "2015-06-01",
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, []string{"C", "CE", "D"}, trainer.LicenseTypes)
	require.Equal(t, "C345678", trainer.CIN)
	require.NotNil(t, trainer.LicenseDate)

	got, err := svc.GetTrainer(ctx, trainer.ID)
	require.NoError(t, err)
	require.Equal(t, trainer.LicenseTypes, got.LicenseTypes)

	_, err = svc.GetTrainer(ctx, 404)
	require.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestPeopleServiceStaffDefaults(t *testing.T) {
	db := setupServiceDB(t)
	activity := &stubActivityRecorder{}
	svc := NewPeopleService(repository.NewPeopleRepository(db), testValidator(), activity, testLogger())
	ctx := context.Background()

	staff, err := svc.CreateStaff(ctx, dto.StaffCreateRequest{Name: "Mike Ross", Role: "Content Creator", SalaryAmount: 3000}, adminActor)
	require.NoError(t, err)
	require.Equal(t, models.SalaryMonthly, staff.SalaryType)
	require.Equal(t, models.PresencePresent, staff.Status)
	require.False(t, staff.HireDate.IsZero())

	members, err := svc.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)

	_, err = svc.GetStaff(ctx, 404)
	require.ErrorIs(t, err, ErrStaffNotFound)
	require.Equal(t, []string{"staff.created"}, activity.actions())
}
