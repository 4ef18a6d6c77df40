package organizations

import (
	"errors"

	"contentsync/core/logger"
	"contentsync/core/reconcile"
	"contentsync/core/syncerr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for organization syncs.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the organization sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/organizations")
	group.Post("/sync", h.HandleSyncAll)
	group.Post("/sync/:id", h.HandleSyncOne)
	group.Post("/availability", h.HandleAvailability)
	group.Get("/preview/:id", h.HandlePreview)
}

// HandleSyncAll triggers a full reconciliation run.
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	report, err := h.service.UpdateAll(c.Context())
	if err != nil {
		l.Error("Organization sync failed", zap.Error(err))
		return errorResponse(c, err)
	}

	l.Info("Organization sync finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("retired", report.Retired),
		zap.Int("failed", report.Failed),
	)
	return c.JSON(report)
}

// HandleSyncOne refreshes a single organization by its external id.
func (h *Handler) HandleSyncOne(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.logger, c)

	report, err := h.service.UpdateByID(c.Context(), id)
	if err != nil {
		l.Error("Organization sync failed", zap.String("record", id), zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(report)
}

// HandleAvailability refreshes the availability controls of all entities.
func (h *Handler) HandleAvailability(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	report, err := h.service.UpdateAvailability(c.Context())
	if err != nil {
		l.Error("Availability sync failed", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(report)
}

// HandlePreview streams the stored preview image for an organization.
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	id := c.Params("id")

	blob, err := h.service.Preview(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.SendStream(blob)
}

// errorResponse maps the error taxonomy onto HTTP statuses. Concurrent
// run rejections answer 409 so callers can retry later.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, reconcile.ErrBusy):
		status = fiber.StatusConflict
	case syncerr.IsKind(err, syncerr.KindNotFound):
		status = fiber.StatusNotFound
	case syncerr.IsKind(err, syncerr.KindValidation):
		status = fiber.StatusBadRequest
	case syncerr.IsKind(err, syncerr.KindRequest):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
