package users

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/shared"
)

// Handler manages user administration endpoints.
type Handler struct {
	module  *console.Module
	service *Service
	logger  *slog.Logger
}

// NewHandler builds Handler instance.
func NewHandler(cfg console.ModuleConfig, service *Service, pageSize int) (*Handler, error) {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	if cfg.Name == "" {
		cfg.Name = "users"
	}
	if cfg.Title == "" {
		cfg.Title = "Users"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	module, err := console.NewModule(cfg, service.sections(pageSize)...)
	if err != nil {
		return nil, err
	}
	return &Handler{module: module, service: service, logger: cfg.Logger}, nil
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.module.MountRoutes(r)
	r.Post("/{id}/toggle", h.toggle)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	back := h.module.TabURL(TabUsers)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}
	user, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		h.logger.Warn("toggle user failed", slog.Int64("id", id), slog.Any("error", err))
		h.module.RedirectWithFlash(w, r, back, "error", shared.UserSafeMessage(err))
		return
	}
	state := "deactivated"
	if user.Active {
		state = "activated"
	}
	h.module.RedirectWithFlash(w, r, back, "success", user.Name+" "+state)
}
