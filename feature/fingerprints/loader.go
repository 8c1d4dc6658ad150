package fingerprints

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the fingerprints feature. mirror may be nil when the
// export mirror is disabled.
func NewFeature(db *gorm.DB, mirror *Mirror, logger *zap.Logger) *Feature {
	svc := NewService(db, mirror, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service returns the feature's service, for CLI commands that bypass HTTP.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "fingerprints"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
