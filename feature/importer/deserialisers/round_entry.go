package deserialisers

import (
	"context"

	"race-importer/core/utils"
	"race-importer/feature/importer/models"

	"gorm.io/gorm"
)

// RoundEntryDeserialiser converts RoundEntry records into round entry
// instances, resolving the round, driver, and team they reference.
type RoundEntryDeserialiser struct {
	resolver
}

// NewRoundEntryDeserialiser creates a RoundEntry deserialiser backed by db.
func NewRoundEntryDeserialiser(db *gorm.DB) *RoundEntryDeserialiser {
	return &RoundEntryDeserialiser{resolver{db: db}}
}

func (d *RoundEntryDeserialiser) Deserialise(ctx context.Context, record models.RawRecord) (models.Instances, error) {
	fk := record.ForeignKeys
	if err := requireKeys(fk, "year", "round", "driver_reference", "team_reference"); err != nil {
		return nil, err
	}

	round, err := d.round(ctx, fk)
	if err != nil {
		return nil, err
	}
	driver, err := d.driver(ctx, utils.ToString(fk["driver_reference"]))
	if err != nil {
		return nil, err
	}
	team, err := d.team(ctx, utils.ToString(fk["team_reference"]))
	if err != nil {
		return nil, err
	}

	instances := models.Instances{}
	kind := models.ModelImport{Model: models.ModelRoundEntry}
	for _, obj := range record.Objects {
		instances[kind] = append(instances[kind], &models.RoundEntry{
			RoundID:   round.ID,
			DriverID:  driver.ID,
			TeamID:    team.ID,
			CarNumber: utils.ToInt(obj["car_number"]),
		})
	}
	return instances, nil
}
