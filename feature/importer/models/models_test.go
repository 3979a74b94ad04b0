package models_test

import (
	"encoding/json"
	"testing"

	"race-importer/feature/importer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserialisationResult_Success(t *testing.T) {
	result := models.NewDeserialisationResult()
	assert.True(t, result.Success())

	result.AddError(0, "Lap", "rejected")
	assert.False(t, result.Success())
}

func TestDeserialisationResult_MergeInstances(t *testing.T) {
	result := models.NewDeserialisationResult()
	lap := models.ModelImport{Model: models.ModelLap}
	pit := models.ModelImport{Model: models.ModelPitStop}

	result.MergeInstances(models.Instances{lap: {"a"}})
	result.MergeInstances(models.Instances{lap: {"b"}, pit: {"c"}})

	assert.Equal(t, []any{"a", "b"}, result.Instances[lap])
	assert.Equal(t, []any{"c"}, result.Instances[pit])
	assert.Equal(t, 3, result.InstanceCount())
}

func TestDeserialisationResult_SortErrors(t *testing.T) {
	result := models.NewDeserialisationResult()
	result.AddError(4, "Lap", "late")
	result.AddError(0, "RoundEntry", "early")
	result.AddError(2, "PitStop", "middle")

	result.SortErrors()

	require.Len(t, result.Errors, 3)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, 2, result.Errors[1].Index)
	assert.Equal(t, 4, result.Errors[2].Index)
}

func TestRawRecord_Decoding(t *testing.T) {
	payload := `{
		"object_type": "RoundEntry",
		"foreign_keys": {"year": 2024, "round": 8, "driver_reference": "leclerc"},
		"objects": [{"car_number": 16}]
	}`

	var record models.RawRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &record))

	assert.Equal(t, "RoundEntry", record.ObjectType)
	assert.Equal(t, float64(2024), record.ForeignKeys["year"])
	require.Len(t, record.Objects, 1)
	assert.Equal(t, float64(16), record.Objects[0]["car_number"])
}

func TestRecordError_Encoding(t *testing.T) {
	raw, err := json.Marshal(models.RecordError{Index: 3, Type: "Lap", Message: "Round matching query does not exist."})
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":3,"type":"Lap","message":"Round matching query does not exist."}`, string(raw))
}

func TestPersistenceOutcome_Encoding(t *testing.T) {
	outcome := models.NewPersistenceOutcome()
	outcome.Models[models.ModelLap] = models.ModelOutcome{CreatedCount: 2, UpdatedCount: 1, Created: []uint{7, 8}}

	raw, err := json.Marshal(outcome)
	require.NoError(t, err)
	assert.JSONEq(t, `{"models":{"Lap":{"created_count":2,"updated_count":1,"created":[7,8]}}}`, string(raw))
}
