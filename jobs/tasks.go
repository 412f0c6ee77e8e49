package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSurveyDispatch delivers a published survey to its audience.
	TaskSurveyDispatch = "survey:dispatch"
)

// SurveyDispatchPayload describes the survey handed to the worker.
type SurveyDispatchPayload struct {
	SurveyID    int64     `json:"survey_id"`
	Title       string    `json:"title"`
	Audience    string    `json:"audience"`
	Questions   int       `json:"questions"`
	PublishedAt time.Time `json:"published_at"`
}

// NewSurveyDispatchTask constructs an Asynq task.
func NewSurveyDispatchTask(payload SurveyDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSurveyDispatch, data, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
