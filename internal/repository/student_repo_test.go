package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

var testDBSeq atomic.Int64

func setupTestDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(tables...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestStudentRepositoryListFiltersAndSorts(t *testing.T) {
	db := setupTestDB(t, &models.Student{})
	repo := NewStudentRepository(db)
	ctx := context.Background()

	older := models.Student{Name: "Alice Johnson", Email: "alice@example.com", LicenseCategory: "B", OfficeID: 1, Status: models.StudentStatusActive, CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Student{Name: "Bob Smith", Email: "bob@example.com", LicenseCategory: "A1", OfficeID: 1, Status: models.StudentStatusInactive, CreatedAt: time.Now().Add(-1 * time.Hour)}
	elsewhere := models.Student{Name: "Charlie Brown", LicenseCategory: "B", OfficeID: 2, Status: models.StudentStatusActive}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&elsewhere).Error)

	students, total, err := repo.List(ctx, StudentFilter{Search: "ALICE", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Alice Johnson", students[0].Name)

	office := uint(1)
	students, total, err = repo.List(ctx, StudentFilter{OfficeID: &office, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "Bob Smith", students[0].Name, "expected newest record first")

	students, _, err = repo.List(ctx, StudentFilter{Category: "B", Sort: "name DESC"})
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Charlie Brown", students[0].Name)
}

func TestStudentRepositoryMarkArchivedOnce(t *testing.T) {
	db := setupTestDB(t, &models.Student{})
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Diana Prince", LicenseCategory: "BE", OfficeID: 1}
	require.NoError(t, db.Create(&student).Error)

	archived, err := repo.MarkArchived(ctx, student.ID, time.Now())
	require.NoError(t, err)
	require.True(t, archived)

	archived, err = repo.MarkArchived(ctx, student.ID, time.Now())
	require.NoError(t, err)
	require.False(t, archived, "second transition must be a no-op")

	students, total, err := repo.List(ctx, StudentFilter{})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, students)

	_, total, err = repo.List(ctx, StudentFilter{IncludeArchived: true})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestStudentRepositoryUpdateIgnoresArchiveColumns(t *testing.T) {
	db := setupTestDB(t, &models.Student{})
	repo := NewStudentRepository(db)

	student := models.Student{Name: "Ethan Hunt", LicenseCategory: "A", OfficeID: 1}
	require.NoError(t, db.Create(&student).Error)

	updated, err := repo.Update(context.Background(), student.ID, map[string]interface{}{
		"name":     "Ethan H.",
		"archived": true,
	})
	require.NoError(t, err)
	require.Equal(t, "Ethan H.", updated.Name)
	require.False(t, updated.Archived)
}

func TestStudentRepositoryListActiveByCategory(t *testing.T) {
	db := setupTestDB(t, &models.Student{})
	repo := NewStudentRepository(db)

	archivedAt := time.Now()
	rows := []models.Student{
		{Name: "Fiona", LicenseCategory: "C", OfficeID: 1},
		{Name: "George", LicenseCategory: "C", OfficeID: 2},
		{Name: "Hannah", LicenseCategory: "D", OfficeID: 1, Archived: true, ArchivedAt: &archivedAt},
	}
	require.NoError(t, db.Create(&rows).Error)

	office := uint(1)
	students, err := repo.ListActiveByCategory(context.Background(), &office)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Fiona", students[0].Name)
}
