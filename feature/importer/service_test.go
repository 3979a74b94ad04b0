package importer_test

import (
	"context"
	"fmt"
	"testing"

	"race-importer/feature/importer"
	"race-importer/feature/importer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite DB seeded with one season of
// reference data: 2024 round 8, a race session, driver leclerc at ferrari
// with car 16 entered, and that entry's session entry.
func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(models.AllTables()...); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	season := models.Season{Year: 2024}
	require.NoError(t, db.Create(&season).Error)
	round := models.Round{SeasonID: season.ID, Number: 8, Name: "Monaco Grand Prix"}
	require.NoError(t, db.Create(&round).Error)
	session := models.Session{RoundID: round.ID, Type: "R", Number: 1}
	require.NoError(t, db.Create(&session).Error)
	driver := models.Driver{Reference: "leclerc", Forename: "Charles", Surname: "Leclerc"}
	require.NoError(t, db.Create(&driver).Error)
	team := models.Team{Reference: "ferrari", Name: "Ferrari"}
	require.NoError(t, db.Create(&team).Error)
	roundEntry := models.RoundEntry{RoundID: round.ID, DriverID: driver.ID, TeamID: team.ID, CarNumber: 16}
	require.NoError(t, db.Create(&roundEntry).Error)
	sessionEntry := models.SessionEntry{SessionID: session.ID, RoundEntryID: roundEntry.ID}
	require.NoError(t, db.Create(&sessionEntry).Error)

	return db
}

func lapBatch(numbers ...int) []models.RawRecord {
	objects := make([]map[string]any, 0, len(numbers))
	for _, n := range numbers {
		objects = append(objects, map[string]any{"number": float64(n)})
	}
	return []models.RawRecord{{
		ObjectType: models.ModelLap,
		ForeignKeys: map[string]any{
			"year": float64(2024), "round": float64(8),
			"session": "R", "car_number": float64(16),
		},
		Objects: objects,
	}}
}

func TestService_Run_Success(t *testing.T) {
	db := setupTestDB(t, "service_run_ok")
	svc := importer.NewService(db, zap.NewNop())

	summary, err := svc.Run(context.Background(), lapBatch(1, 2, 3), false)
	require.NoError(t, err)

	assert.True(t, summary.Result.Success())
	require.NotNil(t, summary.Outcome)
	assert.Equal(t, 3, summary.Outcome.Models[models.ModelLap].CreatedCount)
	assert.NotEmpty(t, summary.LogID)

	var count int64
	db.Model(&models.Lap{}).Count(&count)
	assert.Equal(t, int64(3), count)

	var entry models.ImportLog
	require.NoError(t, db.First(&entry, "id = ?", summary.LogID).Error)
	assert.Equal(t, 1, entry.RecordCount)
	assert.Equal(t, 3, entry.CreatedCount)
	assert.Equal(t, 0, entry.ErrorCount)
	assert.False(t, entry.DryRun)
}

func TestService_Run_RejectedBatchIsNotPersisted(t *testing.T) {
	db := setupTestDB(t, "service_run_rejected")
	svc := importer.NewService(db, zap.NewNop())

	batch := append(lapBatch(1), models.RawRecord{ObjectType: "InvalidType"})
	summary, err := svc.Run(context.Background(), batch, false)
	require.NoError(t, err)

	assert.False(t, summary.Result.Success())
	assert.Nil(t, summary.Outcome)
	require.Len(t, summary.Result.Errors, 1)
	assert.Equal(t, 1, summary.Result.Errors[0].Index)
	assert.Equal(t, "Invalid object type", summary.Result.Errors[0].Message)

	var count int64
	db.Model(&models.Lap{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var entry models.ImportLog
	require.NoError(t, db.First(&entry, "id = ?", summary.LogID).Error)
	assert.Equal(t, 1, entry.ErrorCount)
	assert.Equal(t, 0, entry.CreatedCount)
}

func TestService_Run_DryRun(t *testing.T) {
	db := setupTestDB(t, "service_run_dry")
	svc := importer.NewService(db, zap.NewNop())

	summary, err := svc.Run(context.Background(), lapBatch(1, 2), true)
	require.NoError(t, err)

	assert.True(t, summary.Result.Success())
	assert.Nil(t, summary.Outcome)
	assert.Equal(t, 2, summary.Result.InstanceCount())

	var count int64
	db.Model(&models.Lap{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var entry models.ImportLog
	require.NoError(t, db.First(&entry, "id = ?", summary.LogID).Error)
	assert.True(t, entry.DryRun)
}

func TestService_Run_IdempotentReimport(t *testing.T) {
	db := setupTestDB(t, "service_run_reimport")
	svc := importer.NewService(db, zap.NewNop())

	first, err := svc.Run(context.Background(), lapBatch(1, 2), false)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Outcome.Models[models.ModelLap].CreatedCount)

	second, err := svc.Run(context.Background(), lapBatch(1, 2), false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Outcome.Models[models.ModelLap].CreatedCount)
	assert.Equal(t, 2, second.Outcome.Models[models.ModelLap].UpdatedCount)

	var count int64
	db.Model(&models.Lap{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestService_RecentLogs(t *testing.T) {
	db := setupTestDB(t, "service_recent_logs")
	svc := importer.NewService(db, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Run(context.Background(), lapBatch(i+1), true)
		require.NoError(t, err)
	}

	logs, err := svc.RecentLogs(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	// Out-of-range limits fall back to the default.
	logs, err = svc.RecentLogs(context.Background(), -5)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
