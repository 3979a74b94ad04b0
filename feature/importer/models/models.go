package models

import "sort"

// RawRecord is one item of an import batch: a declared object type plus the
// type-specific payload. The payload carries the foreign keys identifying the
// parent entities and the list of objects to import against those keys.
type RawRecord struct {
	// ObjectType selects the deserialiser for this record (e.g. "RoundEntry").
	ObjectType string `json:"object_type"`

	// ForeignKeys identifies the parent entities the objects attach to
	// (e.g. {"year": 2024, "round": 8, "driver_reference": "leclerc"}).
	ForeignKeys map[string]any `json:"foreign_keys,omitempty"`

	// Objects holds the entity payloads to import. One record may expand
	// into one instance per object, or into none at all.
	Objects []map[string]any `json:"objects,omitempty"`
}

// ModelImport identifies the persisted entity kind a deserialised instance
// belongs to. It is used as a map key and must remain comparable; distinct
// model kinds never collide.
type ModelImport struct {
	// Model is the unique model kind name (e.g. "RoundEntry", "PitStop").
	Model string
}

// RecordError describes one raw record that failed deserialisation.
type RecordError struct {
	// Index is the record's position in the original input batch,
	// regardless of the order groups were processed in.
	Index int `json:"index"`
	// Type is the record's declared object type.
	Type string `json:"type"`
	// Message is a human-readable reason the record was rejected.
	Message string `json:"message"`
}

// Instances groups normalized, ready-to-persist instances by model kind.
// A single record may contribute to more than one kind.
type Instances map[ModelImport][]any

// DeserialisationResult is the aggregate outcome of deserialising a batch.
// It is populated incrementally by the importer and must not be mutated
// after the importer returns it.
type DeserialisationResult struct {
	// Instances holds the successfully deserialised instances by kind.
	Instances Instances `json:"-"`
	// Errors holds one entry per failed record, sorted by original index.
	Errors []RecordError `json:"errors"`
}

// NewDeserialisationResult creates an empty result.
func NewDeserialisationResult() *DeserialisationResult {
	return &DeserialisationResult{Instances: Instances{}}
}

// Success reports whether every record in the batch deserialised cleanly.
// It is derived from the error list and never stored independently.
func (r *DeserialisationResult) Success() bool {
	return len(r.Errors) == 0
}

// MergeInstances folds a per-record contribution into the aggregate,
// appending to each kind's sequence.
func (r *DeserialisationResult) MergeInstances(in Instances) {
	for kind, instances := range in {
		r.Instances[kind] = append(r.Instances[kind], instances...)
	}
}

// AddError records a failed record with its original batch index.
func (r *DeserialisationResult) AddError(index int, objectType, message string) {
	r.Errors = append(r.Errors, RecordError{Index: index, Type: objectType, Message: message})
}

// SortErrors orders the error list by original batch index, so that error
// order reflects input order rather than priority-group traversal order.
func (r *DeserialisationResult) SortErrors() {
	sort.Slice(r.Errors, func(i, j int) bool {
		return r.Errors[i].Index < r.Errors[j].Index
	})
}

// InstanceCount returns the total number of instances across all kinds.
func (r *DeserialisationResult) InstanceCount() int {
	n := 0
	for _, instances := range r.Instances {
		n += len(instances)
	}
	return n
}

// ModelOutcome summarizes the persistence of one model kind.
type ModelOutcome struct {
	// CreatedCount is the number of records newly created.
	CreatedCount int `json:"created_count"`
	// UpdatedCount is the number of existing records updated in place.
	UpdatedCount int `json:"updated_count"`
	// Created holds the identifiers of the newly created records.
	Created []uint `json:"created"`
}

// PersistenceOutcome summarizes a reconciliation call, per model kind.
// It is a read-only summary and is not itself persisted.
type PersistenceOutcome struct {
	Models map[string]ModelOutcome `json:"models"`
}

// NewPersistenceOutcome creates an empty outcome.
func NewPersistenceOutcome() *PersistenceOutcome {
	return &PersistenceOutcome{Models: map[string]ModelOutcome{}}
}
