package persons

import (
	"contentsync/core/config"
	"contentsync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	enabled bool
	service *Service
	handler *Handler
}

// NewFeature creates a new persons feature. A disabled feature skips the
// pipeline build entirely, so a deployment without spreadsheet credentials
// still boots.
func NewFeature(cfg config.PersonsConfig, db *gorm.DB, storageClient storage.Client, bucket string, logger *zap.Logger) (*Feature, error) {
	if !cfg.Enabled {
		return &Feature{enabled: false}, nil
	}
	svc, err := NewService(cfg, db, storageClient, bucket, logger)
	if err != nil {
		return nil, err
	}
	h := NewHandler(svc, logger)
	return &Feature{enabled: cfg.Enabled, service: svc, handler: h}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "persons"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the sync service for the scheduler and CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}
