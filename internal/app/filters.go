package app

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15-04-05Z",
	"2006-01-02",
}

// ParseDate parses datetime or date. Dates without time mean midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, InvalidRequestError(fmt.Sprintf("invalid date '%s', expected YYYY-MM-DDTHH:MM:SSZ or YYYY-MM-DD", s))
}

// Filters narrows down records taken into analysis.
type Filters struct {
	// Repositories to analyze. Empty means all.
	Repositories []string
	// Users to analyze. Empty means all.
	Users []string

	LaterThan   *time.Time
	EarlierThan *time.Time
}

// Apply returns records matching all filters.
// Code stats are weekly, so date filters apply to week start.
func (f Filters) Apply(events []Event, weeks []WeeklyCommits) ([]Event, []WeeklyCommits) {
	filteredEvents := lo.Filter(events, func(e Event, _ int) bool {
		return f.repositoryMatches(e.RepositoryNames()...) &&
			f.userMatches(e.UserLogin()) &&
			f.dateMatches(e.CreatedAt)
	})
	filteredWeeks := lo.Filter(weeks, func(w WeeklyCommits, _ int) bool {
		return f.repositoryMatches(w.Repository) &&
			f.userMatches(w.Person) &&
			f.dateMatches(w.WeekStart)
	})

	return filteredEvents, filteredWeeks
}

func (f Filters) repositoryMatches(names ...string) bool {
	if len(f.Repositories) == 0 {
		return true
	}
	return lo.Some(f.Repositories, names)
}

func (f Filters) userMatches(login string) bool {
	if len(f.Users) == 0 {
		return true
	}
	return lo.Contains(f.Users, login)
}

func (f Filters) dateMatches(t time.Time) bool {
	if f.LaterThan != nil && t.Before(*f.LaterThan) {
		return false
	}
	if f.EarlierThan != nil && t.After(*f.EarlierThan) {
		return false
	}
	return true
}
