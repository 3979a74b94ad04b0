package deserialisers_test

import (
	"context"
	"fmt"
	"testing"

	"race-importer/feature/importer/deserialisers"
	"race-importer/feature/importer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func lapForeignKeys() map[string]any {
	return map[string]any{
		"year": float64(2024), "round": float64(8),
		"session": "R", "car_number": float64(16),
	}
}

func TestRoundEntryDeserialiser_Success(t *testing.T) {
	db := setupTestDB(t, "round_entry_ok")
	d := deserialisers.NewRoundEntryDeserialiser(db)

	instances, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType: models.ModelRoundEntry,
		ForeignKeys: map[string]any{
			"year": float64(2024), "round": float64(8),
			"driver_reference": "leclerc", "team_reference": "ferrari",
		},
		Objects: []map[string]any{{"car_number": float64(16)}},
	})
	require.NoError(t, err)

	kind := models.ModelImport{Model: models.ModelRoundEntry}
	require.Len(t, instances[kind], 1)
	entry := instances[kind][0].(*models.RoundEntry)
	assert.Equal(t, 16, entry.CarNumber)
	assert.NotZero(t, entry.RoundID)
	assert.NotZero(t, entry.DriverID)
	assert.NotZero(t, entry.TeamID)
}

func TestRoundEntryDeserialiser_MissingForeignKey(t *testing.T) {
	db := setupTestDB(t, "round_entry_missing_fk")
	d := deserialisers.NewRoundEntryDeserialiser(db)

	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelRoundEntry,
		ForeignKeys: map[string]any{"year": float64(2024), "round": float64(8), "driver_reference": "leclerc"},
	})
	require.Error(t, err)
	assert.Equal(t, `foreign_keys is missing required field "team_reference"`, err.Error())
}

func TestRoundEntryDeserialiser_UnknownRound(t *testing.T) {
	db := setupTestDB(t, "round_entry_unknown_round")
	d := deserialisers.NewRoundEntryDeserialiser(db)

	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType: models.ModelRoundEntry,
		ForeignKeys: map[string]any{
			"year": float64(2024), "round": float64(99),
			"driver_reference": "leclerc", "team_reference": "ferrari",
		},
	})
	require.Error(t, err)
	assert.Equal(t, "Round matching query does not exist.", err.Error())
}

func TestRoundEntryDeserialiser_UnknownDriver(t *testing.T) {
	db := setupTestDB(t, "round_entry_unknown_driver")
	d := deserialisers.NewRoundEntryDeserialiser(db)

	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType: models.ModelRoundEntry,
		ForeignKeys: map[string]any{
			"year": float64(2024), "round": float64(8),
			"driver_reference": "nobody", "team_reference": "ferrari",
		},
	})
	require.Error(t, err)
	assert.Equal(t, "Driver matching query does not exist.", err.Error())
}

func TestSessionEntryDeserialiser_Success(t *testing.T) {
	db := setupTestDB(t, "session_entry_ok")
	d := deserialisers.NewSessionEntryDeserialiser(db)

	instances, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelSessionEntry,
		ForeignKeys: lapForeignKeys(),
		Objects:     []map[string]any{{"position": float64(3), "status": "FINISHED"}},
	})
	require.NoError(t, err)

	kind := models.ModelImport{Model: models.ModelSessionEntry}
	require.Len(t, instances[kind], 1)
	entry := instances[kind][0].(*models.SessionEntry)
	assert.Equal(t, 3, entry.Position)
	assert.Equal(t, "FINISHED", entry.Status)
}

func TestSessionEntryDeserialiser_UnknownSession(t *testing.T) {
	db := setupTestDB(t, "session_entry_unknown_session")
	d := deserialisers.NewSessionEntryDeserialiser(db)

	fk := lapForeignKeys()
	fk["session"] = "SQ1"
	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelSessionEntry,
		ForeignKeys: fk,
	})
	require.Error(t, err)
	assert.Equal(t, "Session matching query does not exist.", err.Error())
}

func TestSessionEntryDeserialiser_UnknownCarNumber(t *testing.T) {
	db := setupTestDB(t, "session_entry_unknown_car")
	d := deserialisers.NewSessionEntryDeserialiser(db)

	fk := lapForeignKeys()
	fk["car_number"] = float64(99)
	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelSessionEntry,
		ForeignKeys: fk,
	})
	require.Error(t, err)
	assert.Equal(t, "RoundEntry matching query does not exist.", err.Error())
}

func TestLapDeserialiser_Success(t *testing.T) {
	db := setupTestDB(t, "lap_ok")
	d := deserialisers.NewLapDeserialiser(db)

	instances, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelLap,
		ForeignKeys: lapForeignKeys(),
		Objects: []map[string]any{
			{"number": float64(1), "position": float64(2), "time": map[string]any{"_type": "timedelta", "milliseconds": float64(93456)}},
			{"number": float64(2), "position": float64(1), "time": float64(92789), "average_speed": float64(211.4)},
		},
	})
	require.NoError(t, err)

	kind := models.ModelImport{Model: models.ModelLap}
	require.Len(t, instances[kind], 2)

	first := instances[kind][0].(*models.Lap)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, int64(93456), first.TimeMillis)

	second := instances[kind][1].(*models.Lap)
	assert.Equal(t, int64(92789), second.TimeMillis)
	assert.InDelta(t, 211.4, second.AverageSpeed, 0.001)
}

func TestLapDeserialiser_MissingNumber(t *testing.T) {
	db := setupTestDB(t, "lap_missing_number")
	d := deserialisers.NewLapDeserialiser(db)

	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelLap,
		ForeignKeys: lapForeignKeys(),
		Objects:     []map[string]any{{"position": float64(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, `lap object is missing required field "number"`, err.Error())
}

func TestLapDeserialiser_UnknownSessionEntry(t *testing.T) {
	db := setupTestDB(t, "lap_unknown_entry")
	d := deserialisers.NewLapDeserialiser(db)

	fk := lapForeignKeys()
	fk["year"] = float64(1999)
	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelLap,
		ForeignKeys: fk,
	})
	require.Error(t, err)
	assert.Equal(t, "Round matching query does not exist.", err.Error())
}

func TestPitStopDeserialiser_Success(t *testing.T) {
	db := setupTestDB(t, "pit_stop_ok")

	var entry models.SessionEntry
	require.NoError(t, db.First(&entry).Error)
	lap := models.Lap{SessionEntryID: entry.ID, Number: 12}
	require.NoError(t, db.Create(&lap).Error)

	d := deserialisers.NewPitStopDeserialiser(db)
	instances, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelPitStop,
		ForeignKeys: lapForeignKeys(),
		Objects: []map[string]any{{
			"number": float64(1), "lap": float64(12),
			"duration":        map[string]any{"_type": "timedelta", "milliseconds": float64(22500)},
			"local_timestamp": "14:35:02",
		}},
	})
	require.NoError(t, err)

	kind := models.ModelImport{Model: models.ModelPitStop}
	require.Len(t, instances[kind], 1)
	stop := instances[kind][0].(*models.PitStop)
	assert.Equal(t, lap.ID, stop.LapID)
	assert.Equal(t, int64(22500), stop.DurationMillis)
	assert.Equal(t, "14:35:02", stop.LocalTimestamp)
}

func TestPitStopDeserialiser_LapNotPersisted(t *testing.T) {
	db := setupTestDB(t, "pit_stop_no_lap")
	d := deserialisers.NewPitStopDeserialiser(db)

	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelPitStop,
		ForeignKeys: lapForeignKeys(),
		Objects:     []map[string]any{{"number": float64(1), "lap": float64(44)}},
	})
	require.Error(t, err)
	assert.Equal(t, "Lap matching query does not exist.", err.Error())
}

func TestPitStopDeserialiser_MissingLapField(t *testing.T) {
	db := setupTestDB(t, "pit_stop_missing_lap")
	d := deserialisers.NewPitStopDeserialiser(db)

	_, err := d.Deserialise(context.Background(), models.RawRecord{
		ObjectType:  models.ModelPitStop,
		ForeignKeys: lapForeignKeys(),
		Objects:     []map[string]any{{"number": float64(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, `pit stop object is missing required field "lap"`, err.Error())
}
