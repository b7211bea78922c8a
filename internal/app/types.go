package app

import (
	"time"

	"github.com/m-zajac/githubanalysis/internal/analysis"
	"github.com/m-zajac/githubanalysis/internal/report"
)

// EventType is a type of activity event.
type EventType string

// Tracked event types. Any other type is kept as EventTypeNotTracked.
const (
	EventTypePullRequest        EventType = "PullRequestEvent"
	EventTypePullRequestComment EventType = "PullRequestReviewCommentEvent"
	EventTypePullRequestReview  EventType = "PullRequestReviewEvent"
	EventTypeNotTracked         EventType = "NotTracked"
)

// ParseEventType maps event type name, unknown names are not tracked.
func ParseEventType(s string) EventType {
	switch t := EventType(s); t {
	case EventTypePullRequest, EventTypePullRequestComment, EventTypePullRequestReview:
		return t
	default:
		return EventTypeNotTracked
	}
}

// Pull request and comment actions used by the analysis.
const (
	ActionOpened  = "opened"
	ActionClosed  = "closed"
	ActionCreated = "created"
)

// Event is a single entry of repository's activity feed.
// At most one of payloads is set, depending on the type.
type Event struct {
	ID          string              `json:"id"`
	Type        EventType           `json:"type"`
	CreatedAt   time.Time           `json:"created_at"`
	PullRequest *PullRequestPayload `json:"pull_request,omitempty"`
	Comment     *CommentPayload     `json:"comment,omitempty"`
}

// UserLogin returns login of the user the event is attributed to, empty if unknown.
func (e Event) UserLogin() string {
	switch {
	case e.PullRequest != nil:
		return e.PullRequest.Author
	case e.Comment != nil:
		return e.Comment.Author
	default:
		return ""
	}
}

// RepositoryNames returns head and base repository names of the event's pull request.
func (e Event) RepositoryNames() []string {
	switch {
	case e.PullRequest != nil:
		return []string{e.PullRequest.HeadRepository, e.PullRequest.BaseRepository}
	case e.Comment != nil:
		return []string{e.Comment.HeadRepository, e.Comment.BaseRepository}
	default:
		return nil
	}
}

// PullRequestPayload describes pull request event.
type PullRequestPayload struct {
	Action         string `json:"action"`
	Number         int    `json:"number"`
	Author         string `json:"author"`
	HeadRepository string `json:"head_repository"`
	BaseRepository string `json:"base_repository"`
}

// CommentPayload describes pull request review comment event.
type CommentPayload struct {
	Action         string `json:"action"`
	Author         string `json:"author"`
	HeadRepository string `json:"head_repository"`
	BaseRepository string `json:"base_repository"`
}

// WeeklyCommits holds commit stats of one person in one repository for one week.
type WeeklyCommits struct {
	Person       string    `json:"person"`
	Repository   string    `json:"repository"`
	WeekStart    time.Time `json:"week_start"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	Commits      int       `json:"commits"`
}

// Request holds parameters of an analysis.
type Request struct {
	Owner        string
	Repositories []string
	Filters      Filters

	// InsertLimitFootnote enables marking values computed from retention limited data.
	InsertLimitFootnote bool
}

// Result holds analysis output.
type Result struct {
	Organization analysis.OrganizationStat
	Table        *report.Table

	// Events and Weeks are the records the organization stats were computed from.
	Events []Event
	Weeks  []WeeklyCommits
}
