package surveys

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/shared"
)

// Handler serves the survey screen and its publish action.
type Handler struct {
	module  *console.Module
	service *Service
	logger  *slog.Logger
}

// NewHandler mounts the survey sections on a console module.
func NewHandler(cfg console.ModuleConfig, service *Service, pageSize int) (*Handler, error) {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	if cfg.Name == "" {
		cfg.Name = "surveys"
	}
	if cfg.Title == "" {
		cfg.Title = "Surveys"
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

// MountRoutes registers survey routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.module.MountRoutes(r)
	r.Post("/{id}/publish", h.publish)
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	back := h.module.TabURL(TabSurveys)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}
	result, err := h.service.Publish(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotPublishable):
		h.module.RedirectWithFlash(w, r, back, "info", "Survey is already "+result.Survey.Status)
	case errors.Is(err, shared.ErrNotFound):
		h.module.RedirectWithFlash(w, r, back, "error", shared.UserSafeMessage(err))
	case err != nil:
		h.module.RedirectWithFlash(w, r, back, "error", "Survey published, but delivery could not be queued")
	case !result.Dispatched:
		h.module.RedirectWithFlash(w, r, back, "success", "Survey published; delivery is disabled")
	default:
		h.module.RedirectWithFlash(w, r, back, "success", "Survey published and queued for delivery")
	}
}
