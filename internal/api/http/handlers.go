package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/githubanalysis/internal/app"
	"github.com/m-zajac/githubanalysis/internal/report"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type boundary struct {
	At         string `json:"at"`
	Repository string `json:"repository"`
}

type analysisResponse struct {
	Owner                  string     `json:"owner"`
	Repositories           []string   `json:"repositories"`
	Persons                []string   `json:"persons"`
	EarliestEvent          *string    `json:"earliest_event"`
	ReliabilityBoundary    *boundary  `json:"reliability_boundary"`
	UnreliableRepositories []string   `json:"unreliable_repositories"`
	LimitMatters           bool       `json:"limit_matters"`
	Rows                   [][]string `json:"rows"`
}

func newAnalysisResponse(owner string, result *app.Result) analysisResponse {
	org := result.Organization
	resp := analysisResponse{
		Owner:                  owner,
		Repositories:           org.RepositoryNames(),
		Persons:                org.PersonLogins(),
		UnreliableRepositories: org.UnreliableRepositories(),
		LimitMatters:           result.Table.LimitMatters(),
		Rows:                   result.Table.Rows(),
	}
	if resp.UnreliableRepositories == nil {
		resp.UnreliableRepositories = []string{}
	}
	if e := org.EarliestEvent(); e != nil {
		s := e.Format(report.DatetimeLayout)
		resp.EarliestEvent = &s
	}
	if b, ok := org.ReliabilityBoundary(); ok {
		resp.ReliabilityBoundary = &boundary{
			At:         b.At.Format(report.DatetimeLayout),
			Repository: b.Repository,
		}
	}

	return resp
}

// NewAnalysisHandler creates handlerfunc returning analysis of owner's repositories.
//
// Query params:
//   - repos: comma separated repository names, required
//   - users: comma separated logins to narrow analysis to
//   - laterThan, earlierThan: inclusive time window
//   - footnote: mark values computed from retention limited data, true by default
//   - format: json (default) or csv
func NewAnalysisHandler(
	getOwner func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	l = l.WithField("component", "analysis-handler")

	return func(w http.ResponseWriter, r *http.Request) {
		owner := getOwner(r)
		req, err := newRequest(owner, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := service.Analyze(r.Context(), req)
		if err != nil {
			switch {
			case app.IsInvalidRequestError(err):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case app.IsTooManyRequestsError(err):
				http.Error(w, "", http.StatusTooManyRequests)
			default:
				l.Errorf("analyzing %s: %v", owner, err)
				http.Error(w, "", http.StatusInternalServerError)
			}
			return
		}

		if r.URL.Query().Get("format") == "csv" {
			w.Header().Set("Content-type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte(result.Table.CSV()))
			return
		}

		w.Header().Set("Content-type", "application/json; charset=utf-8")
		_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(newAnalysisResponse(owner, result))
	}
}

func newRequest(owner string, r *http.Request) (app.Request, error) {
	q := r.URL.Query()

	laterThan, err := getDateParam(r, "laterThan")
	if err != nil {
		return app.Request{}, err
	}
	earlierThan, err := getDateParam(r, "earlierThan")
	if err != nil {
		return app.Request{}, err
	}
	footnote := true
	if v := q.Get("footnote"); v != "" {
		if footnote, err = strconv.ParseBool(v); err != nil {
			return app.Request{}, fmt.Errorf("invalid footnote value '%s'", v)
		}
	}

	return app.Request{
		Owner:        owner,
		Repositories: getListParam(r, "repos"),
		Filters: app.Filters{
			Users:       getListParam(r, "users"),
			LaterThan:   laterThan,
			EarlierThan: earlierThan,
		},
		InsertLimitFootnote: footnote,
	}, nil
}

func getListParam(r *http.Request, name string) []string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}

	return lo.Map(strings.Split(v, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
}

func getDateParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := app.ParseDate(v)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
