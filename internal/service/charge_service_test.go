package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

func TestChargeServiceTotals(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewChargeService(repository.NewChargeRepository(db), testValidator(), &stubActivityRecorder{}, testLogger())
	ctx := context.Background()

	for _, payload := range []dto.ChargeCreateRequest{
		{Category: "electricity", Amount: 150.75, Beneficiary: "Power & Light Co.", Date: "2024-07-05"},
		{Category: "water", Amount: 45.5, Beneficiary: "Municipal Water", Date: "2024-07-06"},
		{Category: "electricity", Amount: 10.1, Date: "2024-08-05"},
	} {
		_, err := svc.Create(ctx, payload, adminActor)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	require.Equal(t, 206.35, all.Total)
	require.Equal(t, 160.85, all.ByCategory["electricity"])

	water, err := svc.List(ctx, "WATER")
	require.NoError(t, err)
	require.Len(t, water.Items, 1)
	require.Equal(t, 45.5, water.Total)
}

func TestChargeServiceValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewChargeService(repository.NewChargeRepository(db), testValidator(), &stubActivityRecorder{}, testLogger())

	_, err := svc.Create(context.Background(), dto.ChargeCreateRequest{Category: "yacht", Amount: 10, Date: "2024-07-05"}, adminActor)
	require.Error(t, err)
}
