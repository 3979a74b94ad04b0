package deserialisers

import (
	"context"
	"fmt"

	"race-importer/core/utils"
	"race-importer/feature/importer/models"

	"gorm.io/gorm"
)

// LapDeserialiser converts Lap records into lap instances for the session
// entry identified by the record's foreign keys.
type LapDeserialiser struct {
	resolver
}

// NewLapDeserialiser creates a Lap deserialiser backed by db.
func NewLapDeserialiser(db *gorm.DB) *LapDeserialiser {
	return &LapDeserialiser{resolver{db: db}}
}

func (d *LapDeserialiser) Deserialise(ctx context.Context, record models.RawRecord) (models.Instances, error) {
	entry, err := d.sessionEntry(ctx, record.ForeignKeys)
	if err != nil {
		return nil, err
	}

	instances := models.Instances{}
	kind := models.ModelImport{Model: models.ModelLap}
	for _, obj := range record.Objects {
		if _, ok := obj["number"]; !ok {
			return nil, fmt.Errorf("lap object is missing required field \"number\"")
		}

		lap := &models.Lap{
			SessionEntryID: entry.ID,
			Number:         utils.ToInt(obj["number"]),
			Position:       utils.ToInt(obj["position"]),
			AverageSpeed:   utils.ToFloat64(obj["average_speed"]),
		}
		if raw, ok := obj["time"]; ok {
			millis, err := durationMillis(raw)
			if err != nil {
				return nil, fmt.Errorf("lap %d: %s", lap.Number, err)
			}
			lap.TimeMillis = millis
		}
		instances[kind] = append(instances[kind], lap)
	}
	return instances, nil
}
