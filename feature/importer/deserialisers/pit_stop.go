package deserialisers

import (
	"context"
	"errors"
	"fmt"

	"race-importer/core/utils"
	"race-importer/feature/importer/models"

	"gorm.io/gorm"
)

// PitStopDeserialiser converts PitStop records into pit stop instances.
// A pit stop is incomplete unless it can be associated with a persisted lap,
// so laps must be imported (and saved) before their pit stops.
type PitStopDeserialiser struct {
	resolver
}

// NewPitStopDeserialiser creates a PitStop deserialiser backed by db.
func NewPitStopDeserialiser(db *gorm.DB) *PitStopDeserialiser {
	return &PitStopDeserialiser{resolver{db: db}}
}

func (d *PitStopDeserialiser) Deserialise(ctx context.Context, record models.RawRecord) (models.Instances, error) {
	entry, err := d.sessionEntry(ctx, record.ForeignKeys)
	if err != nil {
		return nil, err
	}

	instances := models.Instances{}
	kind := models.ModelImport{Model: models.ModelPitStop}
	for _, obj := range record.Objects {
		if _, ok := obj["lap"]; !ok {
			return nil, fmt.Errorf("pit stop object is missing required field \"lap\"")
		}

		var lap models.Lap
		err := d.db.WithContext(ctx).
			Where("session_entry_id = ? AND number = ?", entry.ID, utils.ToInt(obj["lap"])).
			First(&lap).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notExist("Lap")
		}
		if err != nil {
			return nil, err
		}

		stop := &models.PitStop{
			SessionEntryID: entry.ID,
			Number:         utils.ToInt(obj["number"]),
			LapID:          lap.ID,
			LocalTimestamp: utils.ToString(obj["local_timestamp"]),
		}
		if raw, ok := obj["duration"]; ok {
			millis, err := durationMillis(raw)
			if err != nil {
				return nil, fmt.Errorf("pit stop %d: %s", stop.Number, err)
			}
			stop.DurationMillis = millis
		}
		instances[kind] = append(instances[kind], stop)
	}
	return instances, nil
}
