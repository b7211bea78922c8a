package analysis

import (
	"sort"
	"time"

	"github.com/m-zajac/githubanalysis/internal/stat"
	"github.com/samber/lo"
)

// Aggregate holds organization wide total of a statistic and its averages.
//
// PerPerson divides the total by number of persons in the organization,
// PerRepository is the mean of every repository's per person average.
type Aggregate[P stat.Provenance] struct {
	Total         stat.Stat[P, int]
	PerPerson     stat.Stat[P, float64]
	PerRepository stat.Stat[P, float64]
}

// OrganizationOpenLengths aggregates pull request open lengths of an organization.
type OrganizationOpenLengths struct {
	Total stat.Stat[stat.Bounded, []time.Duration]

	// PerPullRequest is the mean of all samples.
	PerPullRequest stat.Stat[stat.Bounded, time.Duration]

	// PerPerson is the mean of persons' averages, persons folded across repositories.
	PerPerson stat.Stat[stat.Bounded, time.Duration]

	// PerRepository is the mean of repositories' per person averages.
	PerRepository stat.Stat[stat.Bounded, time.Duration]
}

// OrganizationPullRequests aggregates pull request activity of an organization.
type OrganizationPullRequests struct {
	Opened      Aggregate[stat.Bounded]
	Closed      Aggregate[stat.Bounded]
	Comments    Aggregate[stat.Bounded]
	OpenLengths OrganizationOpenLengths
}

// OrganizationCode aggregates code activity of an organization.
type OrganizationCode struct {
	LinesAdded   Aggregate[stat.Unbounded]
	LinesDeleted Aggregate[stat.Unbounded]
	Lines        Aggregate[stat.Unbounded]
	Commits      Aggregate[stat.Unbounded]
}

// Boundary is the earliest moment since which every repository with events has contributed data.
type Boundary struct {
	At         time.Time
	Repository string
}

// OrganizationStat holds statistics of all analyzed repositories of an organization.
type OrganizationStat struct {
	Name         string
	Repositories map[string]RepositoryStat

	// Persons holds per person stats folded across all repositories.
	Persons map[string]ContributorStat

	PullRequests OrganizationPullRequests
	Code         OrganizationCode

	earliestEvent *time.Time
	boundary      *Boundary
	unreliable    []string
}

// NewOrganizationStat aggregates given repository stats.
func NewOrganizationStat(name string, repositories map[string]RepositoryStat) OrganizationStat {
	repoNames := lo.Keys(repositories)
	sort.Strings(repoNames)
	repos := make([]RepositoryStat, 0, len(repoNames))
	for _, n := range repoNames {
		repos = append(repos, repositories[n])
	}

	persons := make(map[string]ContributorStat)
	for _, r := range repos {
		for login, c := range r.Persons {
			persons[login] = persons[login].Add(c)
		}
	}

	var earliestEvent *time.Time
	var boundary *Boundary
	var unreliable []string
	for i, r := range repos {
		e := r.EarliestEvent()
		if e == nil {
			unreliable = append(unreliable, repoNames[i])
			continue
		}
		earliestEvent = earliest(earliestEvent, e)

		// Names are visited in ascending order, so on equal timestamps the smallest name stays.
		if boundary == nil || e.After(boundary.At) {
			boundary = &Boundary{At: *e, Repository: repoNames[i]}
		}
	}

	return OrganizationStat{
		Name:          name,
		Repositories:  repositories,
		Persons:       persons,
		PullRequests:  newOrganizationPullRequests(repos, persons),
		Code:          newOrganizationCode(repos, len(persons)),
		earliestEvent: earliestEvent,
		boundary:      boundary,
		unreliable:    unreliable,
	}
}

// RepositoryNames returns sorted names of all analyzed repositories.
func (o OrganizationStat) RepositoryNames() []string {
	names := lo.Keys(o.Repositories)
	sort.Strings(names)
	return names
}

// PersonLogins returns sorted logins of all persons.
func (o OrganizationStat) PersonLogins() []string {
	logins := lo.Keys(o.Persons)
	sort.Strings(logins)
	return logins
}

// EarliestEvent returns earliest event of any repository, nil if there are no events at all.
func (o OrganizationStat) EarliestEvent() *time.Time {
	if o.earliestEvent == nil {
		return nil
	}
	t := *o.earliestEvent
	return &t
}

// ReliabilityBoundary returns the latest of repositories' earliest events together with repository name.
// Repositories without events are not considered, see UnreliableRepositories.
// When more repositories share the same earliest event, the lexicographically smallest name is returned.
func (o OrganizationStat) ReliabilityBoundary() (Boundary, bool) {
	if o.boundary == nil {
		return Boundary{}, false
	}
	return *o.boundary, true
}

// UnreliableRepositories returns sorted names of repositories without any events.
func (o OrganizationStat) UnreliableRepositories() []string {
	return append([]string(nil), o.unreliable...)
}

// LimitMatters tells if the reliability boundary may truncate data requested since laterThan.
// It's true when there's no boundary, when there's no lower bound requested
// or when the boundary is more than a day later than laterThan.
func (o OrganizationStat) LimitMatters(laterThan *time.Time) bool {
	b, ok := o.ReliabilityBoundary()
	if !ok || laterThan == nil {
		return true
	}

	return b.At.After(laterThan.Add(24 * time.Hour))
}

func newOrganizationPullRequests(repos []RepositoryStat, persons map[string]ContributorStat) OrganizationPullRequests {
	prs := lo.Map(repos, func(r RepositoryStat, _ int) RepositoryPullRequests {
		return r.PullRequests
	})

	openLengths := stat.New[stat.Bounded, []time.Duration](nil)
	for _, pr := range prs {
		openLengths = stat.Concat(openLengths, pr.OpenLengths.Total)
	}

	return OrganizationPullRequests{
		Opened: aggregate(lo.Map(prs, func(pr RepositoryPullRequests, _ int) stat.SumAndAvg[stat.Bounded, int] {
			return pr.Opened
		}), len(persons)),
		Closed: aggregate(lo.Map(prs, func(pr RepositoryPullRequests, _ int) stat.SumAndAvg[stat.Bounded, int] {
			return pr.Closed
		}), len(persons)),
		Comments: aggregate(lo.Map(prs, func(pr RepositoryPullRequests, _ int) stat.SumAndAvg[stat.Bounded, int] {
			return pr.Comments
		}), len(persons)),
		OpenLengths: OrganizationOpenLengths{
			Total:          openLengths,
			PerPullRequest: stat.Mean(openLengths),
			PerPerson: stat.MeanOf(lo.Map(sortedValues(persons), func(c ContributorStat, _ int) stat.Stat[stat.Bounded, time.Duration] {
				return c.PullRequests.AvgOpenLength()
			})),
			PerRepository: stat.MeanOf(lo.Map(prs, func(pr RepositoryPullRequests, _ int) stat.Stat[stat.Bounded, time.Duration] {
				return pr.OpenLengths.PerPerson
			})),
		},
	}
}

func newOrganizationCode(repos []RepositoryStat, numberOfPersons int) OrganizationCode {
	field := func(f func(RepositoryCode) stat.SumAndAvg[stat.Unbounded, int]) Aggregate[stat.Unbounded] {
		return aggregate(lo.Map(repos, func(r RepositoryStat, _ int) stat.SumAndAvg[stat.Unbounded, int] {
			return f(r.Code)
		}), numberOfPersons)
	}

	return OrganizationCode{
		LinesAdded:   field(func(c RepositoryCode) stat.SumAndAvg[stat.Unbounded, int] { return c.LinesAdded }),
		LinesDeleted: field(func(c RepositoryCode) stat.SumAndAvg[stat.Unbounded, int] { return c.LinesDeleted }),
		Lines:        field(func(c RepositoryCode) stat.SumAndAvg[stat.Unbounded, int] { return c.Lines }),
		Commits:      field(func(c RepositoryCode) stat.SumAndAvg[stat.Unbounded, int] { return c.Commits }),
	}
}

// aggregate sums repository totals. PerPerson divides the total by number of persons,
// PerRepository is the mean of repositories' own per person averages.
func aggregate[P stat.Provenance](of []stat.SumAndAvg[P, int], numberOfPersons int) Aggregate[P] {
	total := stat.Sum(lo.Map(of, func(s stat.SumAndAvg[P, int], _ int) stat.Stat[P, int] {
		return s.Total
	}))

	return Aggregate[P]{
		Total:     total,
		PerPerson: stat.Average(total, numberOfPersons),
		PerRepository: stat.MeanOf(lo.Map(of, func(s stat.SumAndAvg[P, int], _ int) stat.Stat[P, float64] {
			return s.Average
		})),
	}
}
