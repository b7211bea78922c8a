package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	netHttp "net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/githubanalysis/internal/adapter/github"
	"github.com/m-zajac/githubanalysis/internal/api/http"
	"github.com/m-zajac/githubanalysis/internal/api/http/limiter"
	"github.com/m-zajac/githubanalysis/internal/app"
	"github.com/m-zajac/githubanalysis/internal/database"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const eventHistoryKeyPrefix = "ev/"

func main() {
	owner := flag.String("owner", "", "github organization or user owning the repositories")
	repos := flag.String("repos", "", "comma separated repository names")
	laterThan := flag.String("later-than", "", "analyze only activity since this date, YYYY-MM-DDTHH:MM:SSZ or YYYY-MM-DD")
	earlierThan := flag.String("earlier-than", "", "analyze only activity until this date, YYYY-MM-DDTHH:MM:SSZ or YYYY-MM-DD")
	users := flag.String("users", "", "comma separated logins to analyze, all if empty")
	writeCSV := flag.Bool("csv", false, "write table to csv file")
	printJSON := flag.Bool("print-json", false, "print analyzed events and weekly stats as json")
	footnote := flag.Bool("footnote", true, "mark values computed from retention limited data")
	serve := flag.Bool("serve", false, "run http server instead of single analysis")
	listHistory := flag.Bool("list-history", false, "list repositories with stored event history")
	flag.Parse()

	l := logrus.New()
	l.Level = logrus.InfoLevel

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Warnf("couldn't load .env file: %v", err)
	}

	var conf Config
	if err := envconfig.Process("GITHUB_ANALYSIS", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		l.Level = lvl
	} else {
		l.Warnf("invalid log level '%s', using %s", conf.LogLevel, l.Level)
	}

	var store *database.BoltKVStore
	if conf.GithubDBPath != "" {
		var err error
		store, err = database.NewBoltKVStore(conf.GithubDBPath, conf.GithubDBBucketName, conf.GithubDBOpenTimeout)
		if err != nil {
			l.Fatalf("couldn't create bolt kv store: %v", err)
		}
		defer store.Close()
	}

	if *listHistory {
		if store == nil {
			l.Fatal("event history is disabled")
		}
		keys, err := store.Keys([]byte(eventHistoryKeyPrefix))
		if err != nil {
			l.Fatalf("couldn't list event history: %v", err)
		}
		for _, k := range keys {
			os.Stdout.WriteString(strings.TrimPrefix(k, eventHistoryKeyPrefix) + "\n")
		}
		return
	}

	githubClient, err := newGithubClient(conf, store, *serve, l)
	if err != nil {
		l.Fatalf("couldn't create github client: %v", err)
	}
	service := app.NewService(githubClient, conf.ServiceResponseTimeout, l)

	if *serve {
		mux := http.NewMux(service, conf.HTTPHandlerTimeout, l)
		server := http.NewServer(conf.HTTPServerAddress, conf.HTTPProfileServerAddress, mux, l)
		server.Run()
		return
	}

	req, err := newRequest(*owner, *repos, *users, *laterThan, *earlierThan, *footnote)
	if err != nil {
		l.Fatalf("invalid arguments: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := service.Analyze(ctx, req)
	if err != nil {
		l.Fatalf("analysis failed: %v", err)
	}

	if *printJSON {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Events []app.Event         `json:"events"`
			Weeks  []app.WeeklyCommits `json:"weeks"`
		}{result.Events, result.Weeks}); err != nil {
			l.Fatalf("couldn't print records: %v", err)
		}
	}

	if err := result.Table.WriteColumnStack(os.Stdout); err != nil {
		l.Fatalf("couldn't print table: %v", err)
	}

	if *writeCSV {
		if err := os.WriteFile(conf.CSVPath, []byte(result.Table.CSV()), 0644); err != nil {
			l.Fatalf("couldn't write csv: %v", err)
		}
		l.Infof("table written to %s", conf.CSVPath)
	}
}

// newGithubClient builds github client chain: oauth2 > rate limiter > rest client > event history > cache.
// Event history is skipped without store, cache is used only by long running server.
func newGithubClient(conf Config, store *database.BoltKVStore, server bool, l logrus.FieldLogger) (app.GithubClient, error) {
	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	if conf.GithubAPIToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conf.GithubAPIToken}))
		httpClient.Timeout = 30 * time.Second
	} else {
		l.Warn("github api token not set, api rate limit is low")
	}
	limitedHTTPClient := limiter.NewHTTPDoer(httpClient, conf.GithubAPIRateLimit, conf.GithubAPIRateBurst)

	var client app.GithubClient = github.NewClient(limitedHTTPClient, conf.GithubAPIAddress, l)
	if store != nil {
		client = github.NewClientWithEventHistory(client, store, conf.GithubDBStatsTTL, l)
	}
	if server {
		cachedClient, err := github.NewCachedClient(client, conf.GithubClientCacheSize, conf.GithubClientCacheTTL)
		if err != nil {
			return nil, err
		}
		client = cachedClient
	}

	return client, nil
}

func newRequest(owner, repos, users, laterThan, earlierThan string, footnote bool) (app.Request, error) {
	req := app.Request{
		Owner:               owner,
		Repositories:        splitList(repos),
		InsertLimitFootnote: footnote,
	}
	req.Filters.Users = splitList(users)

	for _, d := range []struct {
		value  string
		target **time.Time
	}{
		{laterThan, &req.Filters.LaterThan},
		{earlierThan, &req.Filters.EarlierThan},
	} {
		if d.value == "" {
			continue
		}
		t, err := app.ParseDate(d.value)
		if err != nil {
			return app.Request{}, err
		}
		*d.target = &t
	}

	return req, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return lo.Map(strings.Split(s, ","), func(v string, _ int) string {
		return strings.TrimSpace(v)
	})
}
