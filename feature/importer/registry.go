package importer

import (
	"errors"

	"race-importer/feature/importer/deserialisers"
	"race-importer/feature/importer/models"

	"gorm.io/gorm"
)

// ErrUnknownType is returned by a registry lookup for an object type that has
// no registered deserialiser. The importer converts it into a per-record
// error, so one unrecognized type never aborts the rest of the batch.
var ErrUnknownType = errors.New("Invalid object type")

// Registry resolves an object type identifier to its deserialiser.
type Registry interface {
	GetDeserialiser(objectType string) (deserialisers.Deserialiser, error)
}

// StaticRegistry is a fixed dispatch table from object type to deserialiser.
// The set of known types is closed; adding a type means adding a deserialiser
// and a Register call, not modifying the importer.
type StaticRegistry struct {
	entries map[string]deserialisers.Deserialiser
}

// NewRegistry creates a registry with every known object type registered,
// each deserialiser backed by the given database for referential lookups.
func NewRegistry(db *gorm.DB) *StaticRegistry {
	r := &StaticRegistry{entries: map[string]deserialisers.Deserialiser{}}
	r.Register(models.ModelRoundEntry, deserialisers.NewRoundEntryDeserialiser(db))
	r.Register(models.ModelSessionEntry, deserialisers.NewSessionEntryDeserialiser(db))
	r.Register(models.ModelLap, deserialisers.NewLapDeserialiser(db))
	r.Register(models.ModelPitStop, deserialisers.NewPitStopDeserialiser(db))
	return r
}

// Register maps an object type to its deserialiser, replacing any previous entry.
func (r *StaticRegistry) Register(objectType string, d deserialisers.Deserialiser) {
	if r.entries == nil {
		r.entries = map[string]deserialisers.Deserialiser{}
	}
	r.entries[objectType] = d
}

// GetDeserialiser returns the deserialiser for objectType,
// or ErrUnknownType when none is registered.
func (r *StaticRegistry) GetDeserialiser(objectType string) (deserialisers.Deserialiser, error) {
	d, ok := r.entries[objectType]
	if !ok {
		return nil, ErrUnknownType
	}
	return d, nil
}
