package github

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/githubanalysis/internal/app"
	appmock "github.com/m-zajac/githubanalysis/internal/app/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedClientEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cacheSize     int
		repositories  []string
		callsInterval time.Duration
		ttl           time.Duration
		wantErr       bool
		wantCalls     int
	}{
		{
			name:      "invalid cache size",
			cacheSize: 0,
			wantErr:   true,
		},
		{
			name:          "calls with same parameters",
			cacheSize:     1,
			repositories:  []string{"a", "a", "a", "a"},
			callsInterval: time.Microsecond,
			ttl:           time.Minute,
			wantErr:       false,
			wantCalls:     1,
		},
		{
			name:          "calls for different repositories",
			cacheSize:     2,
			repositories:  []string{"a", "b", "a", "b"},
			callsInterval: time.Microsecond,
			ttl:           time.Minute,
			wantErr:       false,
			wantCalls:     2,
		},
		{
			name:          "calls evicting each other",
			cacheSize:     1,
			repositories:  []string{"a", "b", "a", "b"},
			callsInterval: time.Microsecond,
			ttl:           time.Minute,
			wantErr:       false,
			wantCalls:     4,
		},
		{
			name:          "calls with expiring ttl",
			cacheSize:     1,
			repositories:  []string{"a", "a", "a", "a"},
			callsInterval: 5 * time.Millisecond,
			ttl:           time.Millisecond,
			wantErr:       false,
			wantCalls:     4,
		},
	}

	eventsResponse := []app.Event{
		{
			ID:        "1",
			Type:      app.EventTypePullRequest,
			CreatedAt: time.Date(2018, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var clientCalls int

			client := appmock.NewMockGithubClient(ctrl)
			client.EXPECT().
				Events(gomock.Any(), "acme", gomock.Any()).
				DoAndReturn(func(ctx context.Context, owner string, repository string) ([]app.Event, error) {
					clientCalls++
					return eventsResponse, nil
				}).
				AnyTimes()

			cachedClient, err := NewCachedClient(client, tt.cacheSize, tt.ttl)
			assert.Equal(t, tt.wantErr, err != nil)
			if err != nil {
				return
			}

			for _, repo := range tt.repositories {
				events, err := cachedClient.Events(context.Background(), "acme", repo)
				require.NoError(t, err)
				require.Equal(t, eventsResponse[0], events[0])
				time.Sleep(tt.callsInterval)
			}

			assert.Equal(t, tt.wantCalls, clientCalls)
		})
	}
}

func TestCachedClientContributorStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cacheSize     int
		calls         int
		callsInterval time.Duration
		ttl           time.Duration
		clientErr     error
		wantErr       bool
		wantCalls     int
	}{
		{
			name:      "invalid cache size",
			cacheSize: 0,
			wantErr:   true,
		},
		{
			name:          "calls with same parameters",
			cacheSize:     1,
			calls:         4,
			callsInterval: time.Microsecond,
			ttl:           time.Minute,
			wantErr:       false,
			wantCalls:     1,
		},
		{
			name:          "calls with expiring ttl",
			cacheSize:     1,
			calls:         4,
			callsInterval: 5 * time.Millisecond,
			ttl:           time.Millisecond,
			wantErr:       false,
			wantCalls:     4,
		},
		{
			name:          "errors are not cached",
			cacheSize:     1,
			calls:         3,
			callsInterval: time.Microsecond,
			ttl:           time.Minute,
			clientErr:     errors.New("error"),
			wantErr:       true,
			wantCalls:     3,
		},
	}

	statsResponse := []app.WeeklyCommits{
		{
			Person:     "person1",
			Repository: "go",
			WeekStart:  time.Date(2018, time.October, 7, 0, 0, 0, 0, time.UTC),
			LinesAdded: 10,
			Commits:    1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var clientCalls int

			client := appmock.NewMockGithubClient(ctrl)
			client.EXPECT().
				ContributorStats(gomock.Any(), "golang", "go").
				DoAndReturn(func(ctx context.Context, owner string, repository string) ([]app.WeeklyCommits, error) {
					clientCalls++
					if tt.clientErr != nil {
						return nil, tt.clientErr
					}
					return statsResponse, nil
				}).
				AnyTimes()

			cachedClient, err := NewCachedClient(client, tt.cacheSize, tt.ttl)
			if tt.cacheSize <= 0 {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			for i := 0; i < tt.calls; i++ {
				stats, err := cachedClient.ContributorStats(context.Background(), "golang", "go")
				require.Equal(t, tt.wantErr, err != nil)
				if err == nil {
					require.Equal(t, statsResponse[0], stats[0])
				}
				time.Sleep(tt.callsInterval)
			}

			assert.Equal(t, tt.wantCalls, clientCalls)
		})
	}
}
