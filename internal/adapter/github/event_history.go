package github

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m-zajac/githubanalysis/internal/app"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// KVStore provides simple kv data storage
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
}

// ClientWithEventHistory wraps GithubClient and keeps every event it has ever seen in a store.
//
// Github returns only recent events. Each call merges fetched events with stored ones by event ID,
// saves the union and returns it, so history grows past github's retention with every run.
// Contributor stats are saved too. When github didn't compute them in time,
// stored stats younger than statsTTL are returned instead.
type ClientWithEventHistory struct {
	client   app.GithubClient
	store    KVStore
	statsTTL time.Duration
	l        logrus.FieldLogger

	// Serializes read-merge-write of stored entries.
	m sync.Mutex
}

var _ app.GithubClient = &ClientWithEventHistory{}

// NewClientWithEventHistory creates new ClientWithEventHistory instance.
func NewClientWithEventHistory(
	client app.GithubClient,
	store KVStore,
	statsTTL time.Duration,
	l logrus.FieldLogger,
) *ClientWithEventHistory {
	return &ClientWithEventHistory{
		client:   client,
		store:    store,
		statsTTL: statsTTL,
		l:        l.WithField("component", "event-history"),
	}
}

// Events returns union of fetched and stored events of given repository, ordered by creation time.
func (c *ClientWithEventHistory) Events(ctx context.Context, owner string, repository string) ([]app.Event, error) {
	fetched, err := c.client.Events(ctx, owner, repository)
	if err != nil {
		return nil, err
	}

	c.m.Lock()
	defer c.m.Unlock()

	key := c.eventsDBKey(owner, repository)
	data, err := c.store.ReadKey(key)
	if err != nil {
		return nil, fmt.Errorf("reading events history: %w", err)
	}
	var entry eventsDBEntry
	if data != nil {
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("unserializing events history: %w", err)
		}
	}

	events := mergeEvents(entry.Data, fetched)
	c.l.Infof(
		"%s/%s: %d events fetched, %d stored, %d after merge",
		owner, repository, len(fetched), len(entry.Data), len(events),
	)

	dbdata, err := json.Marshal(eventsDBEntry{
		Updated: time.Now().Unix(),
		Data:    events,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing events history: %w", err)
	}
	if err := c.store.UpdateKey(key, dbdata); err != nil {
		return nil, fmt.Errorf("saving events history: %w", err)
	}

	return events, nil
}

// ContributorStats returns weekly commit stats of given repository.
func (c *ClientWithEventHistory) ContributorStats(ctx context.Context, owner string, repository string) ([]app.WeeklyCommits, error) {
	key := c.statsDBKey(owner, repository)

	stats, err := c.client.ContributorStats(ctx, owner, repository)
	if app.IsStatsNotReadyError(err) {
		c.m.Lock()
		defer c.m.Unlock()

		data, readErr := c.store.ReadKey(key)
		if readErr != nil || data == nil {
			return nil, err
		}
		var entry statsDBEntry
		if jsonErr := json.Unmarshal(data, &entry); jsonErr != nil {
			return nil, err
		}
		if time.Unix(entry.Created, 0).Add(c.statsTTL).Before(time.Now()) {
			return nil, err
		}

		c.l.Warnf("%s/%s: using stored stats from %s", owner, repository, time.Unix(entry.Created, 0).UTC())
		return entry.Data, nil
	}
	if err != nil {
		return nil, err
	}

	dbdata, err := json.Marshal(statsDBEntry{
		Created: time.Now().Unix(),
		Data:    stats,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing stats: %w", err)
	}

	c.m.Lock()
	defer c.m.Unlock()
	if err := c.store.UpdateKey(key, dbdata); err != nil {
		return nil, fmt.Errorf("saving stats: %w", err)
	}

	return stats, nil
}

func (c *ClientWithEventHistory) eventsDBKey(owner string, repository string) []byte {
	return []byte("ev/" + owner + "/" + repository)
}

func (c *ClientWithEventHistory) statsDBKey(owner string, repository string) []byte {
	return []byte("st/" + owner + "/" + repository)
}

// mergeEvents returns union of both lists by event ID, fetched events replace stored ones.
func mergeEvents(stored []app.Event, fetched []app.Event) []app.Event {
	events := lo.UniqBy(append(append([]app.Event(nil), fetched...), stored...), func(e app.Event) string {
		return e.ID
	})
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	return events
}

type eventsDBEntry struct {
	Updated int64
	Data    []app.Event
}

type statsDBEntry struct {
	Created int64
	Data    []app.WeeklyCommits
}
