// Package surveys implements the survey screen: surveys, question templates
// and outgoing communications. Publishing a survey hands it to the job queue.
package surveys

import "errors"

// Tab keys of the survey screen.
const (
	TabSurveys        = "Surveys"
	TabTemplates      = "Templates"
	TabCommunications = "Communications"
)

// Survey states.
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusClosed    = "Closed"
)

// ErrNotPublishable is returned when only drafts may be published.
var ErrNotPublishable = errors.New("only draft surveys can be published")

// Survey is a questionnaire sent to an audience.
type Survey struct {
	ID        int64  `yaml:"-" json:"id"`
	Title     string `yaml:"title" json:"title" form:"title" validate:"required"`
	Audience  string `yaml:"audience" json:"audience" form:"audience" validate:"required"`
	Status    string `yaml:"status" json:"status" form:"status"`
	Questions int    `yaml:"questions" json:"questions" form:"questions" validate:"gte=0"`
	CreatedOn string `yaml:"created_on" json:"created_on" form:"created_on"`
}

// Template is a reusable question set.
type Template struct {
	ID        int64  `yaml:"-" json:"id"`
	Name      string `yaml:"name" json:"name" form:"name" validate:"required"`
	Category  string `yaml:"category" json:"category" form:"category"`
	Questions int    `yaml:"questions" json:"questions" form:"questions" validate:"gte=0"`
}

// Communication is an announcement sent over a channel.
type Communication struct {
	ID       int64  `yaml:"-" json:"id"`
	Subject  string `yaml:"subject" json:"subject" form:"subject" validate:"required"`
	Channel  string `yaml:"channel" json:"channel" form:"channel" validate:"required"`
	Audience string `yaml:"audience" json:"audience" form:"audience" validate:"required"`
	SentOn   string `yaml:"sent_on" json:"sent_on" form:"sent_on"`
	Status   string `yaml:"status" json:"status" form:"status"`
}

type fixture struct {
	Surveys        []Survey        `yaml:"surveys"`
	Templates      []Template      `yaml:"templates"`
	Communications []Communication `yaml:"communications"`
}
