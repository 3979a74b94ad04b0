package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"race-importer/core/config"
	"race-importer/core/database"
	"race-importer/core/logger"
	"race-importer/core/storage"
	"race-importer/feature/importer"
	"race-importer/feature/importer/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFile   string
	importObject string
	importDryRun bool
)

// importCmd imports one batch of raw records from a file or a storage object.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a batch of raw result records",
	Long: `Import a batch of typed raw records into the results database.

The batch is a JSON array of {object_type, foreign_keys, objects} records,
read either from a local file or from an object in the configured storage
bucket.

Examples:
  # Import from a local file
  race-importer import --file 2024_08_monaco.json

  # Import from object storage
  race-importer import --object batches/2024_08_monaco.json

  # Validate without persisting
  race-importer import --file 2024_08_monaco.json --dry-run`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to a local batch JSON file")
	importCmd.Flags().StringVar(&importObject, "object", "", "Object key of a batch JSON file in the storage bucket")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Deserialise only, do not persist")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if (importFile == "") == (importObject == "") {
		return fmt.Errorf("exactly one of --file or --object is required")
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(models.AllTables()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	raw, err := readBatch(ctx, cfg)
	if err != nil {
		return err
	}

	var batch []models.RawRecord
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("failed to parse batch: %w", err)
	}

	l.Info("Importing batch",
		zap.Int("records", len(batch)),
		zap.Bool("dry_run", importDryRun),
	)

	svc := importer.NewService(db, l)
	summary, err := svc.Run(ctx, batch, importDryRun)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	for _, recErr := range summary.Result.Errors {
		l.Warn("Record rejected",
			zap.Int("index", recErr.Index),
			zap.String("type", recErr.Type),
			zap.String("message", recErr.Message),
		)
	}

	if summary.Outcome != nil {
		for model, mo := range summary.Outcome.Models {
			l.Info("Model reconciled",
				zap.String("model", model),
				zap.Int("created", mo.CreatedCount),
				zap.Int("updated", mo.UpdatedCount),
			)
		}
	}

	if !summary.Result.Success() {
		return fmt.Errorf("batch rejected: %d of %d records failed deserialisation",
			len(summary.Result.Errors), len(batch))
	}

	l.Info("Import complete", zap.String("log_id", summary.LogID), zap.Bool("dry_run", importDryRun))
	return nil
}

// readBatch loads the batch JSON from the configured source.
func readBatch(ctx context.Context, cfg *config.Config) ([]byte, error) {
	if importFile != "" {
		data, err := os.ReadFile(importFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read batch file: %w", err)
		}
		return data, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	return storage.ReadObject(ctx, client, cfg.Storage.Bucket, importObject)
}
