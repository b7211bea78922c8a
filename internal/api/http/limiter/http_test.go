package limiter

import (
	"context"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/m-zajac/githubanalysis/internal/app"
	"github.com/m-zajac/githubanalysis/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitedHTTPDoerRate(t *testing.T) {
	maxRate := 500.0
	testTime := 200 * time.Millisecond

	doer := &mock.HTTPDoer{}
	limitedDoer := NewHTTPDoer(doer, maxRate, 1)

	req, _ := http.NewRequest(http.MethodGet, "fakeurl", nil)
	startTime := time.Now()
	var dos int
	for startTime.Add(testTime).After(time.Now()) {
		_, err := limitedDoer.Do(req)
		require.NoError(t, err)
		dos++
	}

	expectedDos := float64(maxRate) * float64(testTime) / float64(time.Second)
	diff := math.Abs(float64(dos)-expectedDos) / expectedDos
	assert.LessOrEqual(t, diff, 0.1, "unexpected number of Dos: %d, want %d", dos, int(expectedDos))
}

func TestLimitedHTTPDoerBurst(t *testing.T) {
	doer := &mock.HTTPDoer{}
	limitedDoer := NewHTTPDoer(doer, 0.1, 3)

	req, _ := http.NewRequest(http.MethodGet, "fakeurl", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 50*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	for i := 0; i < 3; i++ {
		_, err := limitedDoer.Do(req)
		require.NoError(t, err, "burst request %d", i)
	}
	_, err := limitedDoer.Do(req)
	assert.Error(t, err)
	assert.Equal(t, 3, doer.Calls())
}

func TestLimitedHTTPDoerTimeout(t *testing.T) {
	doer := &mock.HTTPDoer{}
	limitedDoer := NewHTTPDoer(doer, 1, 0)

	req, _ := http.NewRequest(http.MethodGet, "fakeurl", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	_, err := limitedDoer.Do(req)
	require.NoError(t, err, "first Do()")

	// Error is expected because of short ctx timeout and low rate limit.
	_, err = limitedDoer.Do(req)
	require.Error(t, err)
	assert.True(t, app.IsTooManyRequestsError(err))
}
