package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/githubanalysis/internal/app"
)

// CachedClient wraps github client with caching layer.
// Errors are never cached.
type CachedClient struct {
	client      app.GithubClient
	eventsCache *lru.Cache
	statsCache  *lru.Cache
	ttl         time.Duration
}

var _ app.GithubClient = &CachedClient{}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.GithubClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	eventsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for events: %w", err)
	}
	statsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for stats: %w", err)
	}

	return &CachedClient{
		client:      client,
		eventsCache: eventsCache,
		statsCache:  statsCache,
		ttl:         ttl,
	}, nil
}

// Events returns activity events of given repository.
func (c *CachedClient) Events(ctx context.Context, owner string, repository string) ([]app.Event, error) {
	key := c.cacheKey(owner, repository)
	val, ok := c.eventsCache.Get(key)
	if ok {
		entry := val.(eventsCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.data, nil
		}
	}

	events, err := c.client.Events(ctx, owner, repository)
	if err != nil {
		return events, err
	}

	c.eventsCache.Add(key, eventsCacheEntry{
		created: time.Now(),
		data:    events,
	})

	return events, nil
}

// ContributorStats returns weekly commit stats of given repository.
func (c *CachedClient) ContributorStats(ctx context.Context, owner string, repository string) ([]app.WeeklyCommits, error) {
	key := c.cacheKey(owner, repository)
	val, ok := c.statsCache.Get(key)
	if ok {
		entry := val.(statsCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.data, nil
		}
	}

	stats, err := c.client.ContributorStats(ctx, owner, repository)
	if err != nil {
		return stats, err
	}

	c.statsCache.Add(key, statsCacheEntry{
		created: time.Now(),
		data:    stats,
	})

	return stats, nil
}

func (c *CachedClient) cacheKey(owner string, repository string) string {
	return owner + "/" + repository
}

type eventsCacheEntry struct {
	created time.Time
	data    []app.Event
}

type statsCacheEntry struct {
	created time.Time
	data    []app.WeeklyCommits
}
