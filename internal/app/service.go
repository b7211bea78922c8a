package app

import (
	"context"
	"fmt"
	"time"

	"github.com/m-zajac/githubanalysis/internal/report"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mock/githubcli.go -package=mock . GithubClient

// GithubClient returns activity records of github repositories
type GithubClient interface {
	Events(ctx context.Context, owner string, repository string) ([]Event, error)
	ContributorStats(ctx context.Context, owner string, repository string) ([]WeeklyCommits, error)
}

// Service is main apps entry point. Provides all app functionality
type Service struct {
	githubClient GithubClient
	timeout      time.Duration
	l            logrus.FieldLogger
}

// NewService creates new Service instance
func NewService(githubClient GithubClient, timeout time.Duration, l logrus.FieldLogger) *Service {
	return &Service{
		githubClient: githubClient,
		timeout:      timeout,
		l:            l.WithField("component", "service"),
	}
}

// Analyze fetches activity of all requested repositories and aggregates it into organization stats.
// Aggregation starts only after all fetches are done.
// Missing contributor statistics (not computed by github yet) are logged and skipped.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	repositories := lo.Uniq(req.Repositories)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type respWrapper struct {
		repository string
		feed       string
		events     []Event
		weeks      []WeeklyCommits
		err        error
	}
	responses := make(chan respWrapper, 2*len(repositories))
	for _, r := range repositories {
		r := r
		go func() {
			events, err := s.githubClient.Events(ctx, req.Owner, r)
			responses <- respWrapper{
				repository: r,
				feed:       "events",
				events:     events,
				err:        err,
			}
		}()
		go func() {
			weeks, err := s.githubClient.ContributorStats(ctx, req.Owner, r)
			responses <- respWrapper{
				repository: r,
				feed:       "contributor stats",
				weeks:      weeks,
				err:        err,
			}
		}()
	}

	// All fetches are awaited, first error cancels the ones still running.
	var events []Event
	var weeks []WeeklyCommits
	var fetchErr error
	for i := 0; i < cap(responses); i++ {
		resp := <-responses
		if IsStatsNotReadyError(resp.err) {
			s.l.Warnf("skipping %s of %s/%s: %v", resp.feed, req.Owner, resp.repository, resp.err)
			continue
		}
		if resp.err != nil {
			if fetchErr == nil {
				fetchErr = fmt.Errorf("retrieving %s of %s/%s: %w", resp.feed, req.Owner, resp.repository, resp.err)
				cancel()
			}
			continue
		}
		events = append(events, resp.events...)
		weeks = append(weeks, resp.weeks...)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	filters := req.Filters
	if len(filters.Repositories) == 0 {
		filters.Repositories = repositories
	}
	filteredEvents, filteredWeeks := filters.Apply(events, weeks)
	s.l.Infof(
		"analyzing %d of %d events and %d of %d weekly stats for %s",
		len(filteredEvents), len(events), len(filteredWeeks), len(weeks), req.Owner,
	)

	org := Aggregate(req.Owner, repositories, filteredEvents, filteredWeeks)

	return &Result{
		Organization: org,
		Table:        report.NewTable(org, filters.LaterThan, req.InsertLimitFootnote),
		Events:       filteredEvents,
		Weeks:        filteredWeeks,
	}, nil
}

func validate(req Request) error {
	if req.Owner == "" {
		return InvalidRequestError("owner must not be empty")
	}
	if len(req.Repositories) == 0 {
		return InvalidRequestError("at least one repository is required")
	}
	if lo.Contains(req.Repositories, "") {
		return InvalidRequestError("repository name must not be empty")
	}
	f := req.Filters
	if f.LaterThan != nil && f.EarlierThan != nil && f.EarlierThan.Before(*f.LaterThan) {
		return InvalidRequestError("earlier-than date must not precede later-than date")
	}

	return nil
}
