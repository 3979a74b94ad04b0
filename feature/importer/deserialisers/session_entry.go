package deserialisers

import (
	"context"
	"errors"

	"race-importer/core/utils"
	"race-importer/feature/importer/models"

	"gorm.io/gorm"
)

// SessionEntryDeserialiser converts SessionEntry records into session entry
// instances for the round entry identified by car number.
type SessionEntryDeserialiser struct {
	resolver
}

// NewSessionEntryDeserialiser creates a SessionEntry deserialiser backed by db.
func NewSessionEntryDeserialiser(db *gorm.DB) *SessionEntryDeserialiser {
	return &SessionEntryDeserialiser{resolver{db: db}}
}

func (d *SessionEntryDeserialiser) Deserialise(ctx context.Context, record models.RawRecord) (models.Instances, error) {
	fk := record.ForeignKeys
	if err := requireKeys(fk, "year", "round", "session", "car_number"); err != nil {
		return nil, err
	}

	round, err := d.round(ctx, fk)
	if err != nil {
		return nil, err
	}
	session, err := d.session(ctx, round.ID, utils.ToString(fk["session"]))
	if err != nil {
		return nil, err
	}

	var roundEntry models.RoundEntry
	err = d.db.WithContext(ctx).
		Where("round_id = ? AND car_number = ?", round.ID, utils.ToInt(fk["car_number"])).
		First(&roundEntry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("RoundEntry")
	}
	if err != nil {
		return nil, err
	}

	instances := models.Instances{}
	kind := models.ModelImport{Model: models.ModelSessionEntry}
	for _, obj := range record.Objects {
		entry := &models.SessionEntry{
			SessionID:    session.ID,
			RoundEntryID: roundEntry.ID,
			Position:     utils.ToInt(obj["position"]),
		}
		if status, ok := obj["status"]; ok {
			entry.Status = utils.ToString(status)
		}
		instances[kind] = append(instances[kind], entry)
	}
	return instances, nil
}
