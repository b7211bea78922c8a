// Package http exposes repository analysis over http.
package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m-zajac/githubanalysis/internal/app"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mock/service.go -package=mock . Service

// Service can analyze github repositories of an owner
type Service interface {
	Analyze(ctx context.Context, req app.Request) (*app.Result, error)
}

// NewMux creates router for app's http server
func NewMux(service Service, timeout time.Duration, l logrus.FieldLogger) *http.ServeMux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)

	analysisPath := "/analysis/"
	analysisHandler := NewAnalysisHandler(
		func(r *http.Request) string {
			return strings.Trim(strings.TrimPrefix(r.URL.Path, analysisPath), "/")
		},
		service,
		l,
	)
	analysisHandler = timeoutMiddleware(analysisHandler)

	m := http.NewServeMux()
	m.HandleFunc(analysisPath, analysisHandler)

	return m
}
