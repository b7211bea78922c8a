package app

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       string
		want    time.Time
		wantErr bool
	}{
		{
			name: "datetime",
			s:    "2018-10-05T13:14:15Z",
			want: time.Date(2018, time.October, 5, 13, 14, 15, 0, time.UTC),
		},
		{
			name: "datetime as printed in report",
			s:    "2018-10-05T13-14-15Z",
			want: time.Date(2018, time.October, 5, 13, 14, 15, 0, time.UTC),
		},
		{
			name: "date",
			s:    "2018-10-05",
			want: date(5),
		},
		{
			name:    "invalid",
			s:       "5 Oct 2018",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDate(tt.s)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidRequestError(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestFiltersApply(t *testing.T) {
	t.Parallel()

	events := []Event{
		prEvent("1", 1, ActionOpened, 1, "p", "A"),
		prEvent("2", 3, ActionOpened, 2, "q", "A"),
		prEvent("3", 5, ActionOpened, 3, "p", "B"),
		commentEvent("4", 7, ActionCreated, "p", "C"),
		{ID: "5", Type: EventTypeNotTracked, CreatedAt: date(4)},
	}
	weeks := []WeeklyCommits{
		{Person: "p", Repository: "A", WeekStart: date(1)},
		{Person: "q", Repository: "A", WeekStart: date(8)},
		{Person: "p", Repository: "C", WeekStart: date(8)},
	}
	ids := func(es []Event) []string {
		return lo.Map(es, func(e Event, _ int) string { return e.ID })
	}

	tests := []struct {
		name       string
		filters    Filters
		wantEvents []string
		wantWeeks  int
	}{
		{
			name:       "no filters",
			filters:    Filters{},
			wantEvents: []string{"1", "2", "3", "4", "5"},
			wantWeeks:  3,
		},
		{
			name:       "repositories",
			filters:    Filters{Repositories: []string{"A", "C"}},
			wantEvents: []string{"1", "2", "4"},
			wantWeeks:  3,
		},
		{
			name:       "users",
			filters:    Filters{Users: []string{"q"}},
			wantEvents: []string{"2"},
			wantWeeks:  1,
		},
		{
			name:       "later than is inclusive",
			filters:    Filters{LaterThan: datePtr(3)},
			wantEvents: []string{"2", "3", "4", "5"},
			wantWeeks:  2,
		},
		{
			name:       "earlier than is inclusive",
			filters:    Filters{EarlierThan: datePtr(5)},
			wantEvents: []string{"1", "2", "3", "5"},
			wantWeeks:  1,
		},
		{
			name:       "all",
			filters:    Filters{Repositories: []string{"A", "B"}, Users: []string{"p"}, LaterThan: datePtr(2), EarlierThan: datePtr(6)},
			wantEvents: []string{"3"},
			wantWeeks:  0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotEvents, gotWeeks := tt.filters.Apply(events, weeks)
			assert.Equal(t, tt.wantEvents, ids(gotEvents))
			assert.Len(t, gotWeeks, tt.wantWeeks)
		})
	}
}
