package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/m-zajac/githubanalysis/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	colIndex = iota
	colOpened
	colClosed
	colOpenLength
	colComments
	colLinesAdded
	colLinesDeleted
	colLines
	colCommits
	colBlank
	colLimitsIndex
	colLimits
)

const (
	rowHeader = iota
	rowTotal
	rowRepositoryAverage
	rowPersonAverage
	rowBlank
	rowFirstPerson
)

func date(d int) time.Time {
	return time.Date(2018, time.October, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(d int) *time.Time {
	t := date(d)
	return &t
}

func testOrganization() analysis.OrganizationStat {
	return analysis.NewOrganizationStat("acme", map[string]analysis.RepositoryStat{
		"A": analysis.NewRepositoryStat("A", map[string]analysis.ContributorStat{
			"p": analysis.EmptyContributorStat().
				AddingPullRequests(analysis.PullRequestOpened()).
				AddingPullRequests(analysis.PullRequestOpened()).
				AddingCode(analysis.NewCodeActivity(10, 4, 2)).
				UpdatingEarliest(date(1)),
		}),
		"B": analysis.NewRepositoryStat("B", map[string]analysis.ContributorStat{
			"q": analysis.EmptyContributorStat().
				AddingPullRequests(analysis.PullRequestOpened()).
				AddingCode(analysis.NewCodeActivity(1, 1, 1)).
				UpdatingEarliest(date(5)),
		}),
	})
}

func TestCSV(t *testing.T) {
	t.Parallel()

	got := csv(rows([]column{
		miscColumn{header: "a", rest: []string{"1", "2"}},
		miscColumn{header: "b", rest: []string{"3", "4"}},
	}))

	assert.Equal(t, "a,b\n1,3\n2,4", got)
	for _, line := range strings.Split(got, "\n") {
		assert.Len(t, strings.Split(line, ","), 2)
	}
}

func TestRowsPadding(t *testing.T) {
	t.Parallel()

	got := rows([]column{
		miscColumn{header: "a"},
		miscColumn{header: "b", rest: []string{"1", "2"}},
		miscColumn{},
	})

	assert.Equal(t, [][]string{
		{"a", "b", ""},
		{"", "1", ""},
		{"", "2", ""},
	}, got)
}

func TestTableLimitMatters(t *testing.T) {
	t.Parallel()

	table := NewTable(testOrganization(), datePtr(3), true)
	require.True(t, table.LimitMatters())

	rows := table.Rows()
	require.Len(t, rows, 8)
	for _, r := range rows {
		require.Len(t, r, colLimits+1)
	}

	assert.Equal(t, []string{"", "Total", "Repository Average", "User Average", "", "p", "q", ""}, columnOf(rows, colIndex))
	assert.Equal(t, []string{"PRs opened", "3†", "1.5†", "1.5†", "", "2†", "1†", ""}, columnOf(rows, colOpened))
	assert.Equal(t, "Average PR open length (days)", rows[rowHeader][colOpenLength])
	assert.Equal(t, `\`, rows[rowTotal][colOpenLength])
	assert.Equal(t, "0†", rows[rowFirstPerson][colOpenLength])
	assert.Equal(t, []string{"LOC Added", "11", "5.5", "5.5", "", "10", "1", ""}, columnOf(rows, colLinesAdded))
	assert.Equal(t, "16", rows[rowTotal][colLines])
	assert.Equal(t, "3", rows[rowTotal][colCommits])
	assert.Equal(t, "", rows[rowTotal][colBlank])

	assert.Equal(t, []string{
		"",
		"Repositories analyzed",
		"Earliest event analyzed",
		"Limiting lower bound",
		"Limiting repo",
		"Recommendation",
		"Value effected by limits",
		"",
	}, columnOf(rows, colLimitsIndex))
	assert.Equal(t, []string{
		"",
		`"A, B"`,
		"2018-10-01T00-00-00Z",
		"2018-10-05T00-00-00Z",
		"B",
		"use command line argument --later-than=2018-10-05T00-00-00Z",
		"†",
		"",
	}, columnOf(rows, colLimits))
}

func TestTableLimitDoesNotMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		laterThan *time.Time
		footnote  bool
	}{
		{
			name:      "filter after boundary",
			laterThan: datePtr(6),
			footnote:  true,
		},
		{
			name:      "footnotes disabled",
			laterThan: datePtr(3),
			footnote:  false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := NewTable(testOrganization(), tt.laterThan, tt.footnote)
			assert.False(t, table.LimitMatters())
			assert.NotContains(t, table.CSV(), LimitMarker)

			rows := table.Rows()
			assert.Equal(t, "3", rows[rowTotal][colOpened])
			assert.Equal(t, "Rock on!", rows[5][colLimits])
			assert.Equal(t, "", rows[6][colLimitsIndex])
		})
	}
}

func TestTableWithoutEvents(t *testing.T) {
	t.Parallel()

	org := analysis.NewOrganizationStat("acme", map[string]analysis.RepositoryStat{
		"zeta": analysis.NewRepositoryStat("zeta", map[string]analysis.ContributorStat{
			"p": analysis.EmptyContributorStat().AddingCode(analysis.NewCodeActivity(1, 2, 3)),
		}),
		"alpha": analysis.NewRepositoryStat("alpha", nil),
	})

	table := NewTable(org, datePtr(3), true)
	require.True(t, table.LimitMatters())

	rows := table.Rows()
	assert.Equal(t, []string{
		"",
		`"alpha, zeta"`,
		"N/A",
		"N/A",
		"N/A",
		"Loosen up your time window restriction. None of the repositories have event data.",
		"†",
		`"alpha, zeta"`,
	}, columnOf(rows, colLimits))
	assert.Equal(t, "Repositories with no events in time window analyzed", rows[7][colLimitsIndex])
	assert.Equal(t, "3", rows[rowTotal][colCommits])
	assert.Equal(t, "0†", rows[rowTotal][colOpened])
}

func TestTableCSV(t *testing.T) {
	t.Parallel()

	table := NewTable(testOrganization(), datePtr(6), true)
	lines := strings.Split(table.CSV(), "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, ",PRs opened,PRs closed,Average PR open length (days),PR comments,LOC Added,LOC Deleted,Total LOC,Commits,,,", lines[0])
	assert.Equal(t, "Total,3,0,\\,0,11,5,16,3,,Repositories analyzed,\"A, B\"", lines[1])
}

func TestTableColumnStack(t *testing.T) {
	t.Parallel()

	table := NewTable(testOrganization(), nil, false)

	stack := table.ColumnStack()
	require.Len(t, stack, len(metricColumns)+1)
	assert.Equal(t, []string{"", "Total", "Repository Average", "User Average", "", "p", "q"}, stack[0].Index)
	assert.Equal(t, []string{"PRs opened", "3", "1.5", "1.5", "", "2", "1"}, stack[0].Values)
	assert.Equal(t, "Repositories analyzed", stack[len(stack)-1].Index[1])

	var buf bytes.Buffer
	require.NoError(t, table.WriteColumnStack(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), ": PRs opened\nTotal: 3\nRepository Average: 1.5\nUser Average: 1.5\n: \np: 2\nq: 1\n\n"))
}

func columnOf(rows [][]string, idx int) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r[idx])
	}
	return out
}
