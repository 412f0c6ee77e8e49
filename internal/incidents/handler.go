package incidents

import (
	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
)

// Handler serves the incident setup screen.
type Handler struct {
	module *console.Module
}

// NewHandler mounts the incident setup sections on a console module.
func NewHandler(cfg console.ModuleConfig, service *Service, pageSize int) (*Handler, error) {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	if cfg.Name == "" {
		cfg.Name = "incidents"
	}
	if cfg.Title == "" {
		cfg.Title = "Incident Setup"
	}
	module, err := console.NewModule(cfg, service.sections(pageSize)...)
	if err != nil {
		return nil, err
	}
	return &Handler{module: module}, nil
}

// MountRoutes registers incident setup routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.module.MountRoutes(r)
}
