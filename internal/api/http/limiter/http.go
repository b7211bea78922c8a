// Package limiter throttles outgoing http requests.
package limiter

import (
	"fmt"
	"net/http"

	"github.com/m-zajac/githubanalysis/internal/app"
	"golang.org/x/time/rate"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// limitedHTTPDoer wraps HTTPDoer and allows Dos with maximum rate limit.
type limitedHTTPDoer struct {
	doer    HTTPDoer
	limiter *rate.Limiter
}

// NewHTTPDoer creates HTTPDoer allowing at most maxRate requests per second,
// with bursts of up to burst requests. Burst lower than 1 is treated as 1.
func NewHTTPDoer(doer HTTPDoer, maxRate float64, burst int) HTTPDoer {
	if burst < 1 {
		burst = 1
	}
	return &limitedHTTPDoer{
		doer:    doer,
		limiter: rate.NewLimiter(rate.Limit(maxRate), burst),
	}
}

// Do executes http request. If limit is exceeded, blocks until call rate is within limit.
// Returns app.TooManyRequestsError if request's context ends first.
func (d *limitedHTTPDoer) Do(r *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(r.Context()); err != nil {
		return nil, app.TooManyRequestsError(fmt.Sprintf("waiting for github api limiter: %v", err))
	}

	return d.doer.Do(r)
}
