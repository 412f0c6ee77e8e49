package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/opsdesk/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// AudienceResolver counts the active recipients of an audience.
type AudienceResolver interface {
	CountAudience(ctx context.Context, audience string) (int, error)
}

// SurveyDispatchJob hands published surveys to their audience.
type SurveyDispatchJob struct {
	Audiences AudienceResolver
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewSurveyDispatchJob wires dependencies for the dispatch handler.
func NewSurveyDispatchJob(audiences AudienceResolver, logger *slog.Logger, metrics *jobmetrics.Metrics) *SurveyDispatchJob {
	return &SurveyDispatchJob{Audiences: audiences, Logger: logger, Metrics: metrics}
}

// Handle processes TaskSurveyDispatch tasks. Malformed payloads are not
// retried.
func (j *SurveyDispatchJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Audiences == nil {
		return errors.New("survey dispatch: handler not configured")
	}
	var payload SurveyDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("survey dispatch: decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.SurveyID <= 0 || payload.Title == "" {
		return fmt.Errorf("survey dispatch: incomplete payload: %w", asynq.SkipRetry)
	}

	tracker := j.metrics().Track(TaskSurveyDispatch)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Int64("survey_id", payload.SurveyID), slog.String("audience", payload.Audience))
	recipients, err := j.Audiences.CountAudience(ctx, payload.Audience)
	if err != nil {
		logger.Error("resolve survey audience", slog.Any("error", err))
		return err
	}
	if recipients == 0 {
		logger.Warn("survey audience has no active recipients")
		return nil
	}
	j.metrics().AddRecipients(payload.Audience, recipients)
	logger.Info("survey dispatched", slog.String("title", payload.Title), slog.Int("recipients", recipients))
	return nil
}

func (j *SurveyDispatchJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *SurveyDispatchJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
