package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = 24 * time.Hour

func date(d int) time.Time {
	return time.Date(2018, time.October, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(d int) *time.Time {
	t := date(d)
	return &t
}

func TestEmptyContributorStat(t *testing.T) {
	c := EmptyContributorStat()

	assert.Nil(t, c.EarliestEvent)
	assert.Equal(t, 0, c.PullRequests.Opened.Value())
	assert.Equal(t, 0, c.PullRequests.Closed.Value())
	assert.Equal(t, 0, c.PullRequests.CommentEvents.Value())
	assert.Empty(t, c.PullRequests.OpenLengths.Value())
	assert.Equal(t, time.Duration(0), c.PullRequests.AvgOpenLength().Value())
	assert.Equal(t, 0, c.Code.LinesAdded.Value())
	assert.Equal(t, 0, c.Code.LinesDeleted.Value())
	assert.Equal(t, 0, c.Code.Commits.Value())
	assert.Equal(t, 0, c.Code.Lines().Value())
}

func TestPullRequestFactories(t *testing.T) {
	opened := PullRequestOpened()
	assert.Equal(t, 1, opened.Opened.Value())
	assert.Equal(t, 0, opened.Closed.Value())
	assert.Empty(t, opened.OpenLengths.Value())

	closed := PullRequestClosed(date(10), datePtr(7))
	assert.Equal(t, 0, closed.Opened.Value())
	assert.Equal(t, 1, closed.Closed.Value())
	assert.Equal(t, []time.Duration{3 * day}, closed.OpenLengths.Value())

	closedUnknown := PullRequestClosed(date(10), nil)
	assert.Equal(t, 1, closedUnknown.Closed.Value())
	assert.Empty(t, closedUnknown.OpenLengths.Value())

	commented := PullRequestCommented()
	assert.Equal(t, 1, commented.CommentEvents.Value())
	assert.Equal(t, 0, commented.Opened.Value())

	assert.True(t, opened.Opened.IsBounded())
	assert.True(t, closed.OpenLengths.IsBounded())
}

func TestContributorStatAdding(t *testing.T) {
	base := EmptyContributorStat().
		UpdatingEarliest(date(5)).
		AddingCode(NewCodeActivity(10, 4, 2))

	withPR := base.AddingPullRequests(PullRequestOpened())
	assert.Equal(t, 1, withPR.PullRequests.Opened.Value())
	assert.Equal(t, base.Code, withPR.Code)
	assert.Equal(t, base.EarliestEvent, withPR.EarliestEvent)

	withCode := base.AddingCode(NewCodeActivity(1, 1, 1))
	assert.Equal(t, 11, withCode.Code.LinesAdded.Value())
	assert.Equal(t, 5, withCode.Code.LinesDeleted.Value())
	assert.Equal(t, 3, withCode.Code.Commits.Value())
	assert.Equal(t, 16, withCode.Code.Lines().Value())
	assert.Equal(t, base.PullRequests, withCode.PullRequests)
	assert.Equal(t, base.EarliestEvent, withCode.EarliestEvent)

	// receiver untouched
	assert.Equal(t, 0, base.PullRequests.Opened.Value())
	assert.Equal(t, 10, base.Code.LinesAdded.Value())
}

func TestContributorStatReplacing(t *testing.T) {
	c := EmptyContributorStat().
		AddingCode(NewCodeActivity(10, 4, 2)).
		AddingPullRequests(PullRequestCommented())

	replaced := c.WithCode(NewCodeActivity(1, 2, 3))
	assert.Equal(t, NewCodeActivity(1, 2, 3), replaced.Code)
	assert.Equal(t, c.PullRequests, replaced.PullRequests)

	replacedPR := c.WithPullRequests(PullRequestOpened())
	assert.Equal(t, PullRequestOpened(), replacedPR.PullRequests)
	assert.Equal(t, c.Code, replacedPR.Code)
}

func TestContributorStatUpdatingEarliest(t *testing.T) {
	c := EmptyContributorStat().UpdatingEarliest(date(5))
	require.NotNil(t, c.EarliestEvent)
	assert.Equal(t, date(5), *c.EarliestEvent)

	assert.Equal(t, date(5), *c.UpdatingEarliest(date(9)).EarliestEvent)
	assert.Equal(t, date(2), *c.UpdatingEarliest(date(2)).EarliestEvent)
	assert.Equal(t, date(5), *c.EarliestEvent)
}

func TestContributorStatAdd(t *testing.T) {
	tests := []struct {
		name string
		a    ContributorStat
		b    ContributorStat
		want *time.Time
	}{
		{
			name: "no events",
			a:    EmptyContributorStat(),
			b:    EmptyContributorStat(),
			want: nil,
		},
		{
			name: "left only",
			a:    EmptyContributorStat().UpdatingEarliest(date(3)),
			b:    EmptyContributorStat(),
			want: datePtr(3),
		},
		{
			name: "right only",
			a:    EmptyContributorStat(),
			b:    EmptyContributorStat().UpdatingEarliest(date(4)),
			want: datePtr(4),
		},
		{
			name: "both",
			a:    EmptyContributorStat().UpdatingEarliest(date(8)),
			b:    EmptyContributorStat().UpdatingEarliest(date(4)),
			want: datePtr(4),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.a.AddingPullRequests(PullRequestClosed(date(10), datePtr(8))).AddingCode(NewCodeActivity(1, 2, 3))
			b := tt.b.AddingPullRequests(PullRequestClosed(date(10), datePtr(6))).AddingCode(NewCodeActivity(4, 5, 6))

			got := a.Add(b)
			assert.Equal(t, tt.want, got.EarliestEvent)
			assert.Equal(t, 2, got.PullRequests.Closed.Value())
			assert.Equal(t, []time.Duration{2 * day, 4 * day}, got.PullRequests.OpenLengths.Value())
			assert.Equal(t, 3*day, got.PullRequests.AvgOpenLength().Value())
			assert.Equal(t, NewCodeActivity(5, 7, 9), got.Code)
		})
	}
}
