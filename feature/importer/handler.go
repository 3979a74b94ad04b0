package importer

import (
	"errors"

	"race-importer/core/logger"
	"race-importer/feature/importer/models"
	"race-importer/feature/importer/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for data imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/data")
	group.Put("/import", h.HandleImport)
	group.Get("/import/logs", h.HandleListLogs)
}

// ImportRequest is the request body for an import call.
type ImportRequest struct {
	// DryRun deserialises the batch without persisting anything.
	DryRun bool `json:"dry_run"`
	// Data is the ordered batch of raw records.
	Data []models.RawRecord `json:"data"`
}

// ImportResponse is the response body for an import call.
type ImportResponse struct {
	Success bool                           `json:"success"`
	DryRun  bool                           `json:"dry_run"`
	LogID   string                         `json:"log_id,omitempty"`
	Models  map[string]models.ModelOutcome `json:"models,omitempty"`
	Errors  []models.RecordError           `json:"errors,omitempty"`
}

// HandleImport imports a batch of raw records.
// @Summary Import a data batch
// @Description Deserialises a batch of typed records and persists them with create-or-update semantics. A batch with deserialisation errors is rejected without persisting; each error names the failing record's original index.
// @Tags data
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Import batch"
// @Success 200 {object} ImportResponse "Persistence summary"
// @Failure 400 {object} ImportResponse "Deserialisation errors"
// @Failure 500 {object} map[string]string "Reconciliation failure"
// @Router /data/import [put]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}
	if req.Data == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "data is required",
		})
	}

	l.Info("Import requested",
		zap.Int("records", len(req.Data)),
		zap.Bool("dry_run", req.DryRun),
	)

	summary, err := h.service.Run(c.Context(), req.Data, req.DryRun)
	if err != nil {
		// Deserialisation never raises; this is a store failure after a
		// clean deserialisation, surfaced as a fatal save error.
		var recErr *reconcile.ReconciliationError
		if errors.As(err, &recErr) {
			l.Error("Reconciliation failed", zap.String("model", recErr.Model), zap.Error(err))
		} else {
			l.Error("Import failed", zap.Error(err))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := ImportResponse{
		Success: summary.Result.Success(),
		DryRun:  req.DryRun,
		LogID:   summary.LogID,
		Errors:  summary.Result.Errors,
	}
	if summary.Outcome != nil {
		resp.Models = summary.Outcome.Models
	}

	if !resp.Success {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return c.JSON(resp)
}

// HandleListLogs lists recent import log entries.
// @Summary List import logs
// @Description Returns the most recent import log entries, newest first.
// @Tags data
// @Produce json
// @Param limit query int false "Maximum entries to return (default 20)"
// @Success 200 {array} models.ImportLog
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /data/import/logs [get]
func (h *Handler) HandleListLogs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	logs, err := h.service.RecentLogs(c.Context(), c.QueryInt("limit"))
	if err != nil {
		l.Error("Failed to list import logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(logs)
}
