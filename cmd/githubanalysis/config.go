package main

import "time"

// Config is the container for app configuration
type Config struct {
	// LogLevel - logrus level name
	LogLevel string `default:"info" split_words:"true"`

	// HTTPServerAddress - listen address for http server, used with -serve
	HTTPServerAddress string `default:"0.0.0.0:8080" split_words:"true"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:"" split_words:"true"`

	// HTTPHandlerTimeout - timeout for single http request, 0 disables it
	HTTPHandlerTimeout time.Duration `default:"120s" split_words:"true"`

	// ServiceResponseTimeout - timeout for fetching all repositories of an analysis
	ServiceResponseTimeout time.Duration `default:"110s" split_words:"true"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com" split_words:"true"`

	// GithubAPIToken - auth token for rest github api (optional, rate limit is lower without this token)
	GithubAPIToken string `default:"" split_words:"true"`

	// GithubAPIRateLimit - max frequency for github rest api calls
	GithubAPIRateLimit float64 `default:"5" split_words:"true"`

	// GithubAPIRateBurst - max number of github api calls made at once
	GithubAPIRateBurst int `default:"10" split_words:"true"`

	// GithubClientCacheSize - maximum number of elements in cache for each github client method, used with -serve
	GithubClientCacheSize int `default:"1000" split_words:"true"`

	// GithubClientCacheTTL - maximum lifetime for github client cache entries
	GithubClientCacheTTL time.Duration `default:"10m" split_words:"true"`

	// GithubDBPath - filepath for bolt db data. If empty, event history is disabled
	GithubDBPath string `default:"./github_analysis.db" split_words:"true"`

	// GithubDBBucketName - bolt db bucket name
	GithubDBBucketName string `default:"github" split_words:"true"`

	// GithubDBOpenTimeout - how long to wait for other process holding the db file
	GithubDBOpenTimeout time.Duration `default:"5s" split_words:"true"`

	// GithubDBStatsTTL - maximum age of stored contributor stats returned when github didn't compute fresh ones
	GithubDBStatsTTL time.Duration `default:"168h" split_words:"true"`

	// CSVPath - output file for -csv
	CSVPath string `default:"github_analysis.csv" split_words:"true"`
}
