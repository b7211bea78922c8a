package report

import (
	"time"

	"github.com/m-zajac/githubanalysis/internal/analysis"
	"github.com/m-zajac/githubanalysis/internal/stat"
)

// metricColumn describes how to extract one metric from organization and person stats.
type metricColumn struct {
	header        string
	total         func(analysis.OrganizationStat) cellValue
	perRepository func(analysis.OrganizationStat) cellValue
	perPerson     func(analysis.OrganizationStat) cellValue
	person        func(analysis.ContributorStat) cellValue
}

var metricColumns = []metricColumn{
	aggregateColumn("PRs opened",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Bounded] { return o.PullRequests.Opened },
		func(c analysis.ContributorStat) stat.Stat[stat.Bounded, int] { return c.PullRequests.Opened },
	),
	aggregateColumn("PRs closed",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Bounded] { return o.PullRequests.Closed },
		func(c analysis.ContributorStat) stat.Stat[stat.Bounded, int] { return c.PullRequests.Closed },
	),
	{
		header: "Average PR open length (days)",
		total: func(analysis.OrganizationStat) cellValue {
			return plain(`\`)
		},
		perRepository: func(o analysis.OrganizationStat) cellValue {
			return valueOf(inDays(o.PullRequests.OpenLengths.PerRepository))
		},
		perPerson: func(o analysis.OrganizationStat) cellValue {
			return valueOf(inDays(o.PullRequests.OpenLengths.PerPerson))
		},
		person: func(c analysis.ContributorStat) cellValue {
			return valueOf(inDays(c.PullRequests.AvgOpenLength()))
		},
	},
	aggregateColumn("PR comments",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Bounded] { return o.PullRequests.Comments },
		func(c analysis.ContributorStat) stat.Stat[stat.Bounded, int] { return c.PullRequests.CommentEvents },
	),
	aggregateColumn("LOC Added",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Unbounded] { return o.Code.LinesAdded },
		func(c analysis.ContributorStat) stat.Stat[stat.Unbounded, int] { return c.Code.LinesAdded },
	),
	aggregateColumn("LOC Deleted",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Unbounded] { return o.Code.LinesDeleted },
		func(c analysis.ContributorStat) stat.Stat[stat.Unbounded, int] { return c.Code.LinesDeleted },
	),
	aggregateColumn("Total LOC",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Unbounded] { return o.Code.Lines },
		func(c analysis.ContributorStat) stat.Stat[stat.Unbounded, int] { return c.Code.Lines() },
	),
	aggregateColumn("Commits",
		func(o analysis.OrganizationStat) analysis.Aggregate[stat.Unbounded] { return o.Code.Commits },
		func(c analysis.ContributorStat) stat.Stat[stat.Unbounded, int] { return c.Code.Commits },
	),
}

// aggregateColumn builds column for a metric with organization aggregate and a per person value of the same provenance.
func aggregateColumn[P stat.Provenance](
	header string,
	org func(analysis.OrganizationStat) analysis.Aggregate[P],
	person func(analysis.ContributorStat) stat.Stat[P, int],
) metricColumn {
	return metricColumn{
		header: header,
		total: func(o analysis.OrganizationStat) cellValue {
			return valueOf(org(o).Total)
		},
		perRepository: func(o analysis.OrganizationStat) cellValue {
			return valueOf(org(o).PerRepository)
		},
		perPerson: func(o analysis.OrganizationStat) cellValue {
			return valueOf(org(o).PerPerson)
		},
		person: func(c analysis.ContributorStat) cellValue {
			return valueOf(person(c))
		},
	}
}

func inDays[P stat.Provenance](d stat.Stat[P, time.Duration]) stat.Stat[P, float64] {
	return stat.Map(d, func(v time.Duration) float64 {
		return v.Hours() / 24
	})
}
