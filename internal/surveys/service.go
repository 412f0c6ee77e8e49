package surveys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/opsdesk/internal/platform/memstore"
	"github.com/odyssey-erp/opsdesk/internal/seed"
	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/jobs"
)

// Dispatcher hands a published survey to background delivery.
type Dispatcher interface {
	DispatchSurvey(ctx context.Context, payload jobs.SurveyDispatchPayload) error
}

// Service owns the survey stores and the publish workflow.
type Service struct {
	surveys        *memstore.Store[Survey]
	templates      *memstore.Store[Template]
	communications *memstore.Store[Communication]
	dispatcher     Dispatcher
	logger         *slog.Logger
	now            func() time.Time
}

// NewService seeds the stores from the embedded fixtures. A nil dispatcher
// publishes without delivery.
func NewService(dispatcher Dispatcher, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var data fixture
	if err := seed.Load("surveys.yaml", &data); err != nil {
		return nil, fmt.Errorf("surveys: %w", err)
	}
	s := &Service{
		surveys:        memstore.New(func(v Survey) int64 { return v.ID }, func(v *Survey, id int64) { v.ID = id }),
		templates:      memstore.New(func(v Template) int64 { return v.ID }, func(v *Template, id int64) { v.ID = id }),
		communications: memstore.New(func(v Communication) int64 { return v.ID }, func(v *Communication, id int64) { v.ID = id }),
		dispatcher:     dispatcher,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
	s.surveys.Seed(data.Surveys...)
	s.templates.Seed(data.Templates...)
	s.communications.Seed(data.Communications...)
	return s, nil
}

// PublishResult tells the caller whether delivery was queued.
type PublishResult struct {
	Survey     Survey
	Dispatched bool
}

// Publish marks a draft survey as published and queues its delivery. The
// survey stays published when queueing fails; the error is returned so the
// caller can tell the user.
func (s *Service) Publish(ctx context.Context, id int64) (PublishResult, error) {
	updated, err := s.surveys.UpdateIf(id, func(v *Survey) error {
		if v.Status != StatusDraft {
			return ErrNotPublishable
		}
		v.Status = StatusPublished
		return nil
	})
	switch {
	case errors.Is(err, ErrNotPublishable):
		return PublishResult{Survey: updated}, err
	case err != nil:
		return PublishResult{}, fmt.Errorf("survey %d: %w", id, shared.ErrNotFound)
	}
	result := PublishResult{Survey: updated}
	if s.dispatcher == nil {
		s.logger.Warn("survey published without dispatcher", slog.Int64("survey_id", id))
		return result, nil
	}
	payload := jobs.SurveyDispatchPayload{
		SurveyID:    updated.ID,
		Title:       updated.Title,
		Audience:    updated.Audience,
		Questions:   updated.Questions,
		PublishedAt: s.now(),
	}
	if err := s.dispatcher.DispatchSurvey(ctx, payload); err != nil {
		s.logger.Error("dispatch survey", slog.Int64("survey_id", id), slog.Any("error", err))
		return result, fmt.Errorf("queue survey delivery: %w", err)
	}
	result.Dispatched = true
	return result, nil
}
