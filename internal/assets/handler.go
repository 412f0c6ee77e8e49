package assets

import (
	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
)

// Handler serves the asset screen.
type Handler struct {
	module *console.Module
}

// NewHandler mounts the asset sections on a console module. A non-positive
// pageSize falls back to listing.DefaultPageSize.
func NewHandler(cfg console.ModuleConfig, service *Service, pageSize int) (*Handler, error) {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	if cfg.Name == "" {
		cfg.Name = "assets"
	}
	if cfg.Title == "" {
		cfg.Title = "Assets"
	}
	module, err := console.NewModule(cfg, service.sections(pageSize)...)
	if err != nil {
		return nil, err
	}
	return &Handler{module: module}, nil
}

// MountRoutes registers asset routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.module.MountRoutes(r)
}
