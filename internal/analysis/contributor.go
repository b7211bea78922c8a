// Package analysis aggregates contributor activity into repository and organization statistics.
//
// Pull request statistics come from the events feed and are Bounded.
// Code statistics come from the contributors statistics feed and are Unbounded.
// All types are values. Every method returns a new value and never modifies the receiver.
package analysis

import (
	"time"

	"github.com/m-zajac/githubanalysis/internal/stat"
)

// PullRequestActivity describes pull request related activity of one person in one repository.
type PullRequestActivity struct {
	Opened        stat.Stat[stat.Bounded, int]
	Closed        stat.Stat[stat.Bounded, int]
	OpenLengths   stat.Stat[stat.Bounded, []time.Duration]
	CommentEvents stat.Stat[stat.Bounded, int]
}

// PullRequestOpened returns activity for a single opened pull request.
func PullRequestOpened() PullRequestActivity {
	return PullRequestActivity{
		Opened: stat.New[stat.Bounded](1),
	}
}

// PullRequestClosed returns activity for a single closed pull request.
// Open length sample is recorded only if openedAt is known.
func PullRequestClosed(at time.Time, openedAt *time.Time) PullRequestActivity {
	var openLengths []time.Duration
	if openedAt != nil {
		openLengths = []time.Duration{at.Sub(*openedAt)}
	}

	return PullRequestActivity{
		Closed:      stat.New[stat.Bounded](1),
		OpenLengths: stat.New[stat.Bounded](openLengths),
	}
}

// PullRequestCommented returns activity for a single pull request comment.
func PullRequestCommented() PullRequestActivity {
	return PullRequestActivity{
		CommentEvents: stat.New[stat.Bounded](1),
	}
}

// Add returns component-wise sum.
func (a PullRequestActivity) Add(b PullRequestActivity) PullRequestActivity {
	return PullRequestActivity{
		Opened:        stat.Add(a.Opened, b.Opened),
		Closed:        stat.Add(a.Closed, b.Closed),
		OpenLengths:   stat.Concat(a.OpenLengths, b.OpenLengths),
		CommentEvents: stat.Add(a.CommentEvents, b.CommentEvents),
	}
}

// AvgOpenLength returns mean of open length samples, 0 if there are none.
func (a PullRequestActivity) AvgOpenLength() stat.Stat[stat.Bounded, time.Duration] {
	return stat.Mean(a.OpenLengths)
}

// CodeActivity describes commits of one person in one repository.
type CodeActivity struct {
	LinesAdded   stat.Stat[stat.Unbounded, int]
	LinesDeleted stat.Stat[stat.Unbounded, int]
	Commits      stat.Stat[stat.Unbounded, int]
}

// NewCodeActivity creates CodeActivity from plain numbers.
func NewCodeActivity(linesAdded, linesDeleted, commits int) CodeActivity {
	return CodeActivity{
		LinesAdded:   stat.New[stat.Unbounded](linesAdded),
		LinesDeleted: stat.New[stat.Unbounded](linesDeleted),
		Commits:      stat.New[stat.Unbounded](commits),
	}
}

// Lines returns total lines affected, both added and deleted.
func (c CodeActivity) Lines() stat.Stat[stat.Unbounded, int] {
	return stat.Add(c.LinesAdded, c.LinesDeleted)
}

// Add returns component-wise sum.
func (c CodeActivity) Add(d CodeActivity) CodeActivity {
	return CodeActivity{
		LinesAdded:   stat.Add(c.LinesAdded, d.LinesAdded),
		LinesDeleted: stat.Add(c.LinesDeleted, d.LinesDeleted),
		Commits:      stat.Add(c.Commits, d.Commits),
	}
}

// ContributorStat holds activity of one person in one repository.
type ContributorStat struct {
	PullRequests PullRequestActivity
	Code         CodeActivity

	// EarliestEvent is nil until any timestamped event was folded in.
	EarliestEvent *time.Time
}

// EmptyContributorStat returns stat with no activity and no earliest event.
func EmptyContributorStat() ContributorStat {
	return ContributorStat{}
}

// AddingPullRequests returns copy with pull request activity increased by a.
func (c ContributorStat) AddingPullRequests(a PullRequestActivity) ContributorStat {
	c.PullRequests = c.PullRequests.Add(a)
	return c
}

// AddingCode returns copy with code activity increased by a.
func (c ContributorStat) AddingCode(a CodeActivity) ContributorStat {
	c.Code = c.Code.Add(a)
	return c
}

// WithPullRequests returns copy with pull request activity replaced.
func (c ContributorStat) WithPullRequests(a PullRequestActivity) ContributorStat {
	c.PullRequests = a
	return c
}

// WithCode returns copy with code activity replaced.
func (c ContributorStat) WithCode(a CodeActivity) ContributorStat {
	c.Code = a
	return c
}

// UpdatingEarliest returns copy with earliest event moved back to t if t is earlier.
func (c ContributorStat) UpdatingEarliest(t time.Time) ContributorStat {
	c.EarliestEvent = earliest(c.EarliestEvent, &t)
	return c
}

// Add returns component-wise sum of both stats.
func (c ContributorStat) Add(d ContributorStat) ContributorStat {
	return ContributorStat{
		PullRequests:  c.PullRequests.Add(d.PullRequests),
		Code:          c.Code.Add(d.Code),
		EarliestEvent: earliest(c.EarliestEvent, d.EarliestEvent),
	}
}

// earliest returns the earlier of a and b, or whichever is set.
// Returned pointer is always a fresh copy.
func earliest(a, b *time.Time) *time.Time {
	var t time.Time
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		t = *b
	case b == nil:
		t = *a
	case b.Before(*a):
		t = *b
	default:
		t = *a
	}

	return &t
}
