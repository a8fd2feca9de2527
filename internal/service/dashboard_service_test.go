package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

func TestDashboardServiceOfficeFiguresAndCache(t *testing.T) {
	db := setupServiceDB(t)
	ctx := context.Background()

	_, err := NewSeedService(repository.NewSeedRepository(db), true, "token", testLogger()).SeedDemo(ctx, "token", dto.SeedRequest{})
	require.NoError(t, err)

	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer client.Close()

	svc := NewDashboardService(repository.NewDashboardRepository(db), client, time.Minute, testLogger())

	first, err := svc.Office(ctx, nil)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, int64(20), first.TotalStudents)
	require.Equal(t, int64(2), first.AvailableCars)
	require.Equal(t, int64(3), first.TotalStaff)
	require.Equal(t, int64(2), first.PresentStaff)
	require.Equal(t, int64(1), first.AbsentStaff)
	require.Equal(t, 300.0, first.Revenue)
	require.Equal(t, 2500.0, first.SalaryCharges)
	require.Len(t, first.LessonsByMonth, dashboardMonths)
	require.Len(t, first.RevenueByMonth, dashboardMonths)
	require.True(t, mini.Exists("dashboard:office:all"))

	second, err := svc.Office(ctx, nil)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.TotalStudents, second.TotalStudents)
}

func TestDashboardServiceSuperAdmin(t *testing.T) {
	db := setupServiceDB(t)
	ctx := context.Background()

	_, err := NewSeedService(repository.NewSeedRepository(db), true, "token", testLogger()).SeedDemo(ctx, "token", dto.SeedRequest{})
	require.NoError(t, err)

	svc := NewDashboardService(repository.NewDashboardRepository(db), nil, 0, testLogger())

	summary, err := svc.SuperAdmin(ctx)
	require.NoError(t, err)
	require.False(t, summary.CacheHit)
	require.Equal(t, int64(3), summary.TotalOffices)
	require.Equal(t, int64(3), summary.TotalTrainers)
	require.Equal(t, map[string]int64{"basic": 1, "business": 1, "enterprise": 1}, summary.OfficesPerPlan)
}

func TestLastMonths(t *testing.T) {
	months := lastMonths(time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC), 3)
	require.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, months)
}
