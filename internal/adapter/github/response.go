package github

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/githubanalysis/internal/app"
)

type eventsResponse []eventsResponseItem

type eventsResponseItem struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	CreatedAt time.Time           `json:"created_at"`
	Payload   jsoniter.RawMessage `json:"payload"`
}

type user struct {
	Login string `json:"login"`
}

type pullRequest struct {
	User user `json:"user"`
	Head struct {
		Repo struct {
			Name string `json:"name"`
		} `json:"repo"`
	} `json:"head"`
	Base struct {
		Repo struct {
			Name string `json:"name"`
		} `json:"repo"`
	} `json:"base"`
}

type pullRequestEventPayload struct {
	Action      string      `json:"action"`
	Number      int         `json:"number"`
	PullRequest pullRequest `json:"pull_request"`
}

type commentEventPayload struct {
	Action  string `json:"action"`
	Comment struct {
		User user `json:"user"`
	} `json:"comment"`
	PullRequest pullRequest `json:"pull_request"`
}

// ToEvents converts response items to app events.
// Payloads are decoded only for tracked event types.
func (s eventsResponse) ToEvents() ([]app.Event, error) {
	es := make([]app.Event, 0, len(s))
	for _, el := range s {
		e := app.Event{
			ID:        el.ID,
			Type:      app.ParseEventType(el.Type),
			CreatedAt: el.CreatedAt.UTC(),
		}

		switch e.Type {
		case app.EventTypePullRequest:
			var p pullRequestEventPayload
			if err := json.Unmarshal(el.Payload, &p); err != nil {
				return nil, fmt.Errorf("event %s: %w", el.ID, err)
			}
			e.PullRequest = &app.PullRequestPayload{
				Action:         p.Action,
				Number:         p.Number,
				Author:         p.PullRequest.User.Login,
				HeadRepository: p.PullRequest.Head.Repo.Name,
				BaseRepository: p.PullRequest.Base.Repo.Name,
			}
		case app.EventTypePullRequestComment:
			var p commentEventPayload
			if err := json.Unmarshal(el.Payload, &p); err != nil {
				return nil, fmt.Errorf("event %s: %w", el.ID, err)
			}
			e.Comment = &app.CommentPayload{
				Action:         p.Action,
				Author:         p.Comment.User.Login,
				HeadRepository: p.PullRequest.Head.Repo.Name,
				BaseRepository: p.PullRequest.Base.Repo.Name,
			}
		}

		es = append(es, e)
	}

	return es, nil
}

type statsResponse []struct {
	Author *user `json:"author"`
	Total  int   `json:"total"`
	Weeks  []struct {
		Start        int64 `json:"w"`
		LinesAdded   int   `json:"a"`
		LinesDeleted int   `json:"d"`
		Commits      int   `json:"c"`
	} `json:"weeks"`
}

// ToWeeklyCommits converts response to weekly commit stats of given repository.
// Contributors without github account and weeks with no activity are skipped.
func (s statsResponse) ToWeeklyCommits(repository string) []app.WeeklyCommits {
	var ws []app.WeeklyCommits
	for _, el := range s {
		if el.Author == nil || el.Author.Login == "" {
			continue
		}
		for _, w := range el.Weeks {
			if w.LinesAdded == 0 && w.LinesDeleted == 0 && w.Commits == 0 {
				continue
			}
			ws = append(ws, app.WeeklyCommits{
				Person:       el.Author.Login,
				Repository:   repository,
				WeekStart:    time.Unix(w.Start, 0).UTC(),
				LinesAdded:   w.LinesAdded,
				LinesDeleted: w.LinesDeleted,
				Commits:      w.Commits,
			})
		}
	}

	return ws
}

// nextLink returns url of the link with rel="next" from Link header value, empty if there is none.
func nextLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}
		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
			}
		}
	}

	return ""
}
