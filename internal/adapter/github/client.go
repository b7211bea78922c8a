package github

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/githubanalysis/internal/app"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns activity events and contributor statistics of github repositories.
// This struct is an adapter for app.GithubClient.
// Authorization is expected to be handled by the doer (see oauth2.NewClient).
type Client struct {
	doer           HTTPDoer
	address        string
	acceptWaitTime time.Duration
	l              logrus.FieldLogger

	eventsPerPage         int
	maxEventPages         int
	eventsResponseMaxSize int
	statsResponseMaxSize  int
	numRetriesOnAccepted  int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
func NewClient(doer HTTPDoer, address string, l logrus.FieldLogger) *Client {
	c := Client{
		doer:           doer,
		address:        address,
		acceptWaitTime: 5 * time.Second,
		l:              l.WithField("component", "github-client"),

		eventsPerPage:         100,
		maxEventPages:         10,
		eventsResponseMaxSize: 1024 * 1024 * 10,
		statsResponseMaxSize:  1024 * 1024 * 100,
		numRetriesOnAccepted:  7,
	}

	return &c
}

// Events returns activity events of given repository.
// Github keeps only recent events, older ones are never returned.
// Follows pagination links until the last page.
func (c *Client) Events(ctx context.Context, owner string, repository string) ([]app.Event, error) {
	if err := validateRepository(owner, repository); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.address + fmt.Sprintf("/repos/%s/%s/events", owner, repository))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(c.eventsPerPage))
	u.RawQuery = v.Encode()

	var events []app.Event
	next := u.String()
	for page := 0; next != "" && page < c.maxEventPages; page++ {
		httpReq, err := http.NewRequest(http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("creating http request: %w", err)
		}

		resp, err := c.makeRequest(ctx, httpReq, c.eventsResponseMaxSize)
		if err != nil {
			return nil, fmt.Errorf("making http request: %w", err)
		}

		var er eventsResponse
		if len(resp.body) > 0 {
			if err := json.Unmarshal(resp.body, &er); err != nil {
				return nil, fmt.Errorf("unmarshalling response: %w", err)
			}
		}
		pageEvents, err := er.ToEvents()
		if err != nil {
			return nil, fmt.Errorf("decoding events: %w", err)
		}
		events = append(events, pageEvents...)

		next = nextLink(resp.header.Get("Link"))
	}

	return events, nil
}

// ContributorStats returns weekly commit stats of all contributors of given repository.
// Returns app.StatsNotReadyError when github keeps computing the stats.
func (c *Client) ContributorStats(ctx context.Context, owner string, repository string) ([]app.WeeklyCommits, error) {
	if err := validateRepository(owner, repository); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.address + fmt.Sprintf("/repos/%s/%s/stats/contributors", owner, repository))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}

	// Github returns status 202 when processing data.
	// Should wait a bit and try again.
	var tries int
	var body []byte
	for {
		tries++
		resp, err := c.makeRequest(ctx, httpReq, c.statsResponseMaxSize)
		if err != nil {
			return nil, fmt.Errorf("making http request: %w", err)
		}
		if resp.code == http.StatusAccepted {
			if tries < c.numRetriesOnAccepted {
				c.l.Infof("stats of %s/%s not ready, retrying in %s", owner, repository, c.acceptWaitTime)
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(c.acceptWaitTime):
				}
				continue
			}
			return nil, app.StatsNotReadyError(fmt.Sprintf("stats of %s/%s not ready after %d tries", owner, repository, tries))
		}
		body = resp.body
		break
	}

	var resp statsResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("unmarshalling response: %w", err)
		}
	}

	return resp.ToWeeklyCommits(repository), nil
}

type response struct {
	body   []byte
	code   int
	header http.Header
}

func (c *Client) makeRequest(ctx context.Context, req *http.Request, maxBytes int) (response, error) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return response{}, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	defer func() {
		_, _ = io.CopyN(ioutil.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	r := response{
		code:   resp.StatusCode,
		header: resp.Header,
	}
	if resp.StatusCode == http.StatusNoContent {
		return r, nil
	}
	if resp.StatusCode/100 > 3 {
		if c.checkRateLimitExceeded(&resp.Header) {
			return r, app.TooManyRequestsError("github rate limit exceeded")
		}
		return r, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := ioutil.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return r, fmt.Errorf("reading http response body: %w", err)
	}
	r.body = b

	return r, nil
}

func (c *Client) checkRateLimitExceeded(h *http.Header) bool {
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit == 0 {
			return true
		}
	}
	return false
}

func validateRepository(owner string, repository string) error {
	if repository == "" {
		return app.InvalidRequestError("repository name cannot be empty")
	}
	if owner == "" {
		return app.InvalidRequestError("repository owner cannot be empty")
	}
	return nil
}
