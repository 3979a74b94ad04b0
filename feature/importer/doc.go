// Package importer implements the data import pipeline for motorsport
// results: typed raw JSON records are routed to per-type deserialisers,
// processed in dependency order, aggregated into a single result, and
// persisted with idempotent create-or-update semantics.
//
// # Pipeline
//
//	raw batch -> Importer (grouping + priority ordering)
//	          -> Registry (per-type dispatch)
//	          -> Deserialiser (validation + referential lookups)
//	          -> DeserialisationResult
//	          -> Reconciler (per-kind transactional upsert + counts)
//
// A failing record never aborts the batch: it contributes exactly one entry
// to the result's error list, indexed by its position in the original input.
// Store failures during persistence, by contrast, are fatal for the save
// call, since silently dropping writes would misreport the counts.
//
// # HTTP Endpoints
//
//   - PUT /data/import : Imports a batch (supports dry_run).
//   - GET /data/import/logs : Lists recent import log entries.
package importer
