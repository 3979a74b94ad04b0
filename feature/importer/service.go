package importer

import (
	"context"
	"time"

	"race-importer/feature/importer/models"
	"race-importer/feature/importer/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service ties the import pipeline together: deserialisation, persistence,
// and the import log. One Run call handles one batch.
type Service struct {
	importer   *Importer
	reconciler *reconcile.Reconciler
	db         *gorm.DB
	logger     *zap.Logger
}

// NewService creates an import service with all known deserialisers
// registered against the given database.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		importer:   NewImporter(NewRegistry(db), logger),
		reconciler: reconcile.NewReconciler(db, logger),
		db:         db,
		logger:     logger,
	}
}

// Summary is the outcome of one import call.
type Summary struct {
	// Result is the aggregate deserialisation result. Always set.
	Result *models.DeserialisationResult
	// Outcome is the persistence summary. Nil for dry runs and for
	// batches that failed deserialisation.
	Outcome *models.PersistenceOutcome
	// LogID is the identifier of the recorded import log entry.
	LogID string
}

// Run deserialises the batch and, unless dryRun is set, persists the result.
// A batch containing deserialisation errors is never persisted; the caller
// inspects Summary.Result to enumerate the failing records. A store failure
// during persistence is returned as a fatal error alongside the partial
// summary.
func (s *Service) Run(ctx context.Context, batch []models.RawRecord, dryRun bool) (*Summary, error) {
	summary := &Summary{Result: s.importer.DeserialiseAll(ctx, batch)}

	if !summary.Result.Success() || dryRun {
		summary.LogID = s.writeLog(ctx, summary, len(batch), dryRun)
		return summary, nil
	}

	outcome, err := s.reconciler.Save(ctx, summary.Result, reconcile.Options{})
	summary.Outcome = outcome
	summary.LogID = s.writeLog(ctx, summary, len(batch), dryRun)
	if err != nil {
		return summary, err
	}

	return summary, nil
}

// RecentLogs returns the most recent import log entries, newest first.
func (s *Service) RecentLogs(ctx context.Context, limit int) ([]models.ImportLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var logs []models.ImportLog
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// writeLog records the import call. A log write failure is reported but
// never fails the import itself.
func (s *Service) writeLog(ctx context.Context, summary *Summary, recordCount int, dryRun bool) string {
	entry := models.ImportLog{
		ID:          uuid.NewString(),
		DryRun:      dryRun,
		RecordCount: recordCount,
		ErrorCount:  len(summary.Result.Errors),
		CreatedAt:   time.Now().UTC(),
	}
	if summary.Outcome != nil {
		for _, mo := range summary.Outcome.Models {
			entry.CreatedCount += mo.CreatedCount
			entry.UpdatedCount += mo.UpdatedCount
		}
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Warn("Failed to write import log", zap.Error(err))
		return ""
	}
	return entry.ID
}
