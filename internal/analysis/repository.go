package analysis

import (
	"sort"
	"time"

	"github.com/m-zajac/githubanalysis/internal/stat"
	"github.com/samber/lo"
)

// OpenLengths aggregates pull request open lengths of a repository.
//
// PerPullRequest is the mean over all samples. PerPerson is the mean of every contributor's own mean.
// They differ whenever contributors have unequal number of samples.
type OpenLengths struct {
	Total          stat.Stat[stat.Bounded, []time.Duration]
	PerPullRequest stat.Stat[stat.Bounded, time.Duration]
	PerPerson      stat.Stat[stat.Bounded, time.Duration]
}

// RepositoryPullRequests aggregates pull request activity of a repository.
// Averages are per person.
type RepositoryPullRequests struct {
	Opened      stat.SumAndAvg[stat.Bounded, int]
	Closed      stat.SumAndAvg[stat.Bounded, int]
	Comments    stat.SumAndAvg[stat.Bounded, int]
	OpenLengths OpenLengths
}

// RepositoryCode aggregates code activity of a repository.
// Averages are per person.
type RepositoryCode struct {
	LinesAdded   stat.SumAndAvg[stat.Unbounded, int]
	LinesDeleted stat.SumAndAvg[stat.Unbounded, int]
	Lines        stat.SumAndAvg[stat.Unbounded, int]
	Commits      stat.SumAndAvg[stat.Unbounded, int]
}

// RepositoryStat holds statistics of one repository.
type RepositoryStat struct {
	Name         string
	Persons      map[string]ContributorStat
	PullRequests RepositoryPullRequests
	Code         RepositoryCode

	earliestEvent *time.Time
}

// NewRepositoryStat aggregates given per person stats.
func NewRepositoryStat(name string, persons map[string]ContributorStat) RepositoryStat {
	contributors := sortedValues(persons)

	var earliestEvent *time.Time
	for _, c := range contributors {
		earliestEvent = earliest(earliestEvent, c.EarliestEvent)
	}

	return RepositoryStat{
		Name:          name,
		Persons:       persons,
		PullRequests:  newRepositoryPullRequests(contributors),
		Code:          newRepositoryCode(contributors),
		earliestEvent: earliestEvent,
	}
}

// EarliestEvent returns earliest event of any contributor. Returns nil if no contributor has any event.
func (r RepositoryStat) EarliestEvent() *time.Time {
	if r.earliestEvent == nil {
		return nil
	}
	t := *r.earliestEvent
	return &t
}

// HasEvents tells if any event was recorded for the repository.
func (r RepositoryStat) HasEvents() bool {
	return r.earliestEvent != nil
}

func newRepositoryPullRequests(contributors []ContributorStat) RepositoryPullRequests {
	prs := lo.Map(contributors, func(c ContributorStat, _ int) PullRequestActivity {
		return c.PullRequests
	})

	openLengths := stat.New[stat.Bounded, []time.Duration](nil)
	for _, pr := range prs {
		openLengths = stat.Concat(openLengths, pr.OpenLengths)
	}

	return RepositoryPullRequests{
		Opened: stat.Aggregate(lo.Map(prs, func(pr PullRequestActivity, _ int) stat.Stat[stat.Bounded, int] {
			return pr.Opened
		}), len(prs)),
		Closed: stat.Aggregate(lo.Map(prs, func(pr PullRequestActivity, _ int) stat.Stat[stat.Bounded, int] {
			return pr.Closed
		}), len(prs)),
		Comments: stat.Aggregate(lo.Map(prs, func(pr PullRequestActivity, _ int) stat.Stat[stat.Bounded, int] {
			return pr.CommentEvents
		}), len(prs)),
		OpenLengths: OpenLengths{
			Total:          openLengths,
			PerPullRequest: stat.Mean(openLengths),
			PerPerson: stat.MeanOf(lo.Map(prs, func(pr PullRequestActivity, _ int) stat.Stat[stat.Bounded, time.Duration] {
				return pr.AvgOpenLength()
			})),
		},
	}
}

func newRepositoryCode(contributors []ContributorStat) RepositoryCode {
	code := lo.Map(contributors, func(c ContributorStat, _ int) CodeActivity {
		return c.Code
	})
	field := func(f func(CodeActivity) stat.Stat[stat.Unbounded, int]) stat.SumAndAvg[stat.Unbounded, int] {
		return stat.Aggregate(lo.Map(code, func(c CodeActivity, _ int) stat.Stat[stat.Unbounded, int] {
			return f(c)
		}), len(code))
	}

	return RepositoryCode{
		LinesAdded:   field(func(c CodeActivity) stat.Stat[stat.Unbounded, int] { return c.LinesAdded }),
		LinesDeleted: field(func(c CodeActivity) stat.Stat[stat.Unbounded, int] { return c.LinesDeleted }),
		Lines:        field(CodeActivity.Lines),
		Commits:      field(func(c CodeActivity) stat.Stat[stat.Unbounded, int] { return c.Commits }),
	}
}

// sortedValues returns map values ordered by key, so that floating point sums are reproducible.
func sortedValues[V any](m map[string]V) []V {
	keys := lo.Keys(m)
	sort.Strings(keys)

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}

	return values
}
