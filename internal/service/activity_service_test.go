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

type memoryActivityRepo struct {
	entries []models.ActivityLog
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	out := make([]models.ActivityLog, 0, len(m.entries))
	for _, entry := range m.entries {
		if filter.OfficeID != nil && (entry.OfficeID == nil || *entry.OfficeID != *filter.OfficeID) {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func TestActivityServiceRecordMasksSecrets(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewActivityService(repo, testLogger())

	entry, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    1,
		ActorRole:  "Admin",
		Action:     "Secretary.Created",
		EntityType: "user",
		EntityID:   ptrUint(5),
		Metadata: map[string]interface{}{
			"email":    "secretary@example.com",
			"password": "hunter22",
			"office":   "OFFICE01",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "***", entry.Metadata["email"])
	require.Equal(t, "***", entry.Metadata["password"])
	require.Equal(t, "OFFICE01", entry.Metadata["office"])
	require.Equal(t, "admin", entry.ActorRole)
	require.Equal(t, "secretary.created", entry.Action)
}

func TestActivityServiceRecordDefaultsToSystemRole(t *testing.T) {
	svc := NewActivityService(&memoryActivityRepo{}, testLogger())

	entry, err := svc.Record(context.Background(), ActivityEntry{Action: "student.archived", EntityType: "student"})
	require.NoError(t, err)
	require.Equal(t, "system", entry.ActorRole)

	_, err = svc.Record(context.Background(), ActivityEntry{EntityType: "student"})
	require.Error(t, err)
}

func TestActivityServiceListScopesByOffice(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewActivityService(repo, testLogger())
	ctx := context.Background()

	_, err := svc.Record(ctx, ActivityEntry{Action: "payment.created", EntityType: "payment", OfficeID: ptrUint(1)})
	require.NoError(t, err)
	_, err = svc.Record(ctx, ActivityEntry{Action: "payment.created", EntityType: "payment", OfficeID: ptrUint(2)})
	require.NoError(t, err)

	list, err := svc.List(ctx, dto.AdminActivityListRequest{OfficeID: ptrUint(2), Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, int64(1), list.Pagination.TotalItems)
	require.Equal(t, 1, list.Pagination.TotalPages)
}

func ptrUint(v uint) *uint {
	return &v
}
