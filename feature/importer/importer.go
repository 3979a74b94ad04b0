package importer

import (
	"context"

	"race-importer/feature/importer/models"

	"go.uber.org/zap"
)

// Importer orchestrates the deserialisation of a raw record batch. It groups
// records by object type, processes the groups in priority order, dispatches
// each record through the registry, and aggregates instances and per-record
// errors into a single result.
//
// The importer itself performs no I/O; side effects are limited to whatever
// the individual deserialisers do (referential lookups).
type Importer struct {
	registry Registry
	logger   *zap.Logger
}

// NewImporter creates an importer using the given registry for dispatch.
func NewImporter(registry Registry, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{registry: registry, logger: logger}
}

// indexedRecord pairs a record with its position in the original batch, so
// errors can reference the input order after regrouping.
type indexedRecord struct {
	index  int
	record models.RawRecord
}

// DeserialiseAll processes the batch and returns the aggregate result.
// Every record is accounted for exactly once: it either contributes instances
// (possibly zero) or contributes exactly one error entry. A failing record
// never stops processing of the rest of the batch.
func (imp *Importer) DeserialiseAll(ctx context.Context, batch []models.RawRecord) *models.DeserialisationResult {
	result := models.NewDeserialisationResult()

	// Partition by object type, retaining original indices and the order in
	// which each type was first seen.
	groups := make(map[string][]indexedRecord)
	var seen []string
	for i, record := range batch {
		if _, ok := groups[record.ObjectType]; !ok {
			seen = append(seen, record.ObjectType)
		}
		groups[record.ObjectType] = append(groups[record.ObjectType], indexedRecord{index: i, record: record})
	}

	for _, objectType := range models.OrderTypes(seen) {
		group := groups[objectType]

		d, err := imp.registry.GetDeserialiser(objectType)
		if err != nil {
			// Unknown type: fail each record in the group individually
			for _, ir := range group {
				result.AddError(ir.index, objectType, err.Error())
			}
			continue
		}

		for _, ir := range group {
			instances, err := d.Deserialise(ctx, ir.record)
			if err != nil {
				result.AddError(ir.index, objectType, err.Error())
				continue
			}
			result.MergeInstances(instances)
		}
	}

	// Error order must reflect input order, not processing order
	result.SortErrors()

	imp.logger.Debug("Batch deserialised",
		zap.Int("records", len(batch)),
		zap.Int("instances", result.InstanceCount()),
		zap.Int("errors", len(result.Errors)),
	)

	return result
}
