package app

import (
	"sort"
	"time"

	"github.com/m-zajac/githubanalysis/internal/analysis"
	"github.com/samber/lo"
)

type repositoryPerson struct {
	repository string
	login      string
}

type repositoryPullRequest struct {
	repository string
	number     int
}

// Aggregate folds events and weekly commits into organization stats.
//
// Events are processed in chronological order and duplicates (by ID) are skipped.
// Every name in repositories is present in the result, even with no records at all.
func Aggregate(owner string, repositories []string, events []Event, weeks []WeeklyCommits) analysis.OrganizationStat {
	events = lo.UniqBy(events, func(e Event) string {
		return e.ID
	})
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	persons := make(map[repositoryPerson]analysis.ContributorStat)
	openedAt := make(map[repositoryPullRequest]time.Time)
	for _, e := range events {
		switch {
		case e.Type == EventTypePullRequest && e.PullRequest != nil:
			pr := e.PullRequest
			key := repositoryPerson{repository: pr.BaseRepository, login: pr.Author}
			prKey := repositoryPullRequest{repository: pr.BaseRepository, number: pr.Number}
			c := persons[key].UpdatingEarliest(e.CreatedAt)

			switch pr.Action {
			case ActionOpened:
				c = c.AddingPullRequests(analysis.PullRequestOpened())
				openedAt[prKey] = e.CreatedAt
			case ActionClosed:
				var opened *time.Time
				if t, ok := openedAt[prKey]; ok {
					opened = &t
				}
				c = c.AddingPullRequests(analysis.PullRequestClosed(e.CreatedAt, opened))
			}
			persons[key] = c

		case e.Type == EventTypePullRequestComment && e.Comment != nil:
			cm := e.Comment
			key := repositoryPerson{repository: cm.BaseRepository, login: cm.Author}
			c := persons[key].UpdatingEarliest(e.CreatedAt)
			if cm.Action == ActionCreated {
				c = c.AddingPullRequests(analysis.PullRequestCommented())
			}
			persons[key] = c
		}
	}

	for _, w := range weeks {
		key := repositoryPerson{repository: w.Repository, login: w.Person}
		persons[key] = persons[key].AddingCode(analysis.NewCodeActivity(w.LinesAdded, w.LinesDeleted, w.Commits))
	}

	byRepository := make(map[string]map[string]analysis.ContributorStat)
	for _, name := range repositories {
		byRepository[name] = make(map[string]analysis.ContributorStat)
	}
	for key, c := range persons {
		if _, ok := byRepository[key.repository]; !ok {
			byRepository[key.repository] = make(map[string]analysis.ContributorStat)
		}
		byRepository[key.repository][key.login] = c
	}

	repoStats := make(map[string]analysis.RepositoryStat, len(byRepository))
	for name, ps := range byRepository {
		repoStats[name] = analysis.NewRepositoryStat(name, ps)
	}

	return analysis.NewOrganizationStat(owner, repoStats)
}
