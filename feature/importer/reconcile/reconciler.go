package reconcile

import (
	"context"
	"errors"
	"fmt"

	"race-importer/feature/importer/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Record is the capability a deserialised instance must provide to be
// persisted. Every import-target model in the models package implements it.
type Record interface {
	// ModelName returns the kind name used in the persistence outcome.
	ModelName() string
	// BusinessKey returns the natural-key conditions identifying an
	// existing row. Matching is never done on the synthetic primary key.
	BusinessKey() map[string]any
	// UpdateColumns returns the mutable fields applied when a row exists.
	UpdateColumns() map[string]any
	// PrimaryID returns the synthetic key, populated after create.
	PrimaryID() uint
}

// Options controls reconciliation behavior.
type Options struct {
	// AllowPartial permits persisting the successful portion of a result
	// that contains errors. When false (the default), Save refuses a
	// failed result outright.
	AllowPartial bool
}

// ErrFailedResult is returned when Save is given a result with errors and
// AllowPartial is not set.
var ErrFailedResult = errors.New("refusing to persist a failed deserialisation result")

// ReconciliationError reports a store failure while writing one model kind.
// It is fatal for the save operation: writes for the failed kind are rolled
// back and no further kinds are attempted. Kinds committed before the
// failure stay committed.
type ReconciliationError struct {
	Model string
	Err   error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("failed to persist %s instances: %v", e.Model, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

// Reconciler writes deserialised instances to the store with
// create-or-update semantics and per-kind created/updated accounting.
type Reconciler struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReconciler creates a reconciler writing through db.
func NewReconciler(db *gorm.DB, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{db: db, logger: logger}
}

// Save persists the result's instances, one transaction per model kind,
// kinds in priority order so parents are committed before dependents.
//
// Each instance is matched against the store by its business key: absent
// rows are created (their new identifiers are reported), present rows have
// their mutable columns updated in place. Re-running Save with the same
// already-persisted instances reports zero creations and no duplicates.
//
// On a kind failure the partial outcome for the committed kinds is returned
// together with a *ReconciliationError naming the failed kind.
func (r *Reconciler) Save(ctx context.Context, result *models.DeserialisationResult, opts Options) (*models.PersistenceOutcome, error) {
	if !result.Success() && !opts.AllowPartial {
		return nil, ErrFailedResult
	}

	kindByName := make(map[string]models.ModelImport, len(result.Instances))
	names := make([]string, 0, len(result.Instances))
	for kind := range result.Instances {
		kindByName[kind.Model] = kind
		names = append(names, kind.Model)
	}

	outcome := models.NewPersistenceOutcome()
	for _, name := range models.OrderTypes(names) {
		instances := result.Instances[kindByName[name]]

		var mo models.ModelOutcome
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			saved, err := r.saveKind(tx, name, instances)
			if err != nil {
				return err
			}
			mo = saved
			return nil
		})
		if err != nil {
			r.logger.Error("Reconciliation failed",
				zap.String("model", name), zap.Error(err))
			return outcome, &ReconciliationError{Model: name, Err: err}
		}

		outcome.Models[name] = mo
		r.logger.Info("Model kind reconciled",
			zap.String("model", name),
			zap.Int("created", mo.CreatedCount),
			zap.Int("updated", mo.UpdatedCount),
		)
	}

	return outcome, nil
}

// saveKind upserts one kind's instances inside the given transaction.
func (r *Reconciler) saveKind(tx *gorm.DB, name string, instances []any) (models.ModelOutcome, error) {
	mo := models.ModelOutcome{Created: []uint{}}

	for _, ins := range instances {
		rec, ok := ins.(Record)
		if !ok {
			return mo, fmt.Errorf("instance of kind %s does not implement reconcile.Record", name)
		}

		var ids []uint
		if err := tx.Model(ins).Where(rec.BusinessKey()).Limit(1).Pluck("id", &ids).Error; err != nil {
			return mo, err
		}

		if len(ids) == 0 {
			if err := tx.Create(ins).Error; err != nil {
				return mo, err
			}
			mo.CreatedCount++
			mo.Created = append(mo.Created, rec.PrimaryID())
			continue
		}

		if err := tx.Model(ins).Where("id = ?", ids[0]).Updates(rec.UpdateColumns()).Error; err != nil {
			return mo, err
		}
		mo.UpdatedCount++
	}

	return mo, nil
}
