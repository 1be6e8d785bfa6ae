package reddit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
	"github.com/preston-bernstein/gameday-threads/internal/forum"
	"github.com/preston-bernstein/gameday-threads/internal/testutil"
)

type call struct {
	Path string
	Form url.Values
}

type fakeReddit struct {
	t          *testing.T
	mu         sync.Mutex
	calls      []call
	tokens     int
	failPaths  map[string]int
	submitJSON string
}

func newFakeReddit(t *testing.T) (*fakeReddit, *httptest.Server) {
	f := &fakeReddit{
		t:          t,
		failPaths:  map[string]int{},
		submitJSON: `{"json":{"errors":[],"data":{"id":"abc","name":"t3_abc","url":"https://www.reddit.com/r/cardinals/comments/abc/game/"}}}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeReddit) serve(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("User-Agent"); got != "gameday-threads:test" {
		f.t.Errorf("unexpected user agent %q on %s", got, r.URL.Path)
	}
	_ = r.ParseForm()

	f.mu.Lock()
	if r.URL.Path == "/api/v1/access_token" {
		f.tokens++
		f.mu.Unlock()
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			f.t.Errorf("unexpected client credentials %q/%q", user, pass)
		}
		if r.PostForm.Get("grant_type") != "password" || r.PostForm.Get("username") != "gameday_bot" {
			f.t.Errorf("unexpected token form %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
		return
	}
	f.calls = append(f.calls, call{Path: r.URL.Path, Form: r.Form})
	status := f.failPaths[r.URL.Path]
	f.mu.Unlock()

	if got := r.Header.Get("Authorization"); got != "Bearer tok" {
		f.t.Errorf("unexpected authorization %q on %s", got, r.URL.Path)
	}
	if status != 0 {
		http.Error(w, "nope", status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/submit":
		_, _ = w.Write([]byte(f.submitJSON))
	case "/api/comment":
		_, _ = w.Write([]byte(`{"json":{"errors":[],"data":{"things":[{"kind":"t1","data":{"id":"c1","name":"t1_c1"}}]}}}`))
	case "/api/info":
		_, _ = w.Write([]byte(`{"data":{"children":[{"kind":"t3","data":{"id":"live","name":"t3_live","url":"https://www.reddit.com/r/cardinals/comments/live/game/"}}]}}`))
	case "/r/cardinals/api/link_flair_v2":
		_ = json.NewEncoder(w).Encode([]flairTemplate{{ID: "f-fb", Text: "Football"}, {ID: "f-mbb", Text: "Men's Basketball"}})
	default:
		_, _ = w.Write([]byte(`{"json":{"errors":[]}}`))
	}
}

func (f *fakeReddit) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Path)
	}
	return out
}

func (f *fakeReddit) tokenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens
}

func (f *fakeReddit) form(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.Path == path {
			return c.Form
		}
	}
	return nil
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Username:     "gameday_bot",
		Password:     "hunter2",
		Subreddit:    "cardinals",
		UserAgent:    "gameday-threads:test",
		APIBase:      srv.URL,
		TokenURL:     srv.URL + "/api/v1/access_token",
		HTTPClient:   srv.Client(),
		Renderer:     forum.Renderer{Team: "louisville", Location: time.UTC},
		Logger:       testutil.DiscardLogger(),
	})
	require.NoError(t, err)
	return c
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{ClientID: "client", Subreddit: "cardinals"})
	require.ErrorIs(t, err, forum.ErrNotConfigured)
}

func TestCreateLiveThreadSubmitsAndDecorates(t *testing.T) {
	fake, srv := newFakeReddit(t)
	c := newTestClient(t, srv)
	snap := testutil.SampleSnapshot("401", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), games.StatePre)

	thread, err := c.CreateLiveThread(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, forum.Thread{ID: "t3_abc", URL: "https://www.reddit.com/r/cardinals/comments/abc/game/"}, thread)

	assert.Equal(t, []string{
		"/api/submit",
		"/api/editusertext",
		"/api/distinguish",
		"/api/set_suggested_sort",
		"/r/cardinals/api/link_flair_v2",
		"/r/cardinals/api/selectflair",
	}, fake.paths())
	assert.Equal(t, 1, fake.tokenCount(), "token is reused across calls")

	submit := fake.form("/api/submit")
	assert.Equal(t, "cardinals", submit.Get("sr"))
	assert.Equal(t, "self", submit.Get("kind"))
	assert.Equal(t, "false", submit.Get("sendreplies"))
	assert.Equal(t, "[Game Thread] #5 Louisville Men's Basketball (5-1) vs Kentucky (4-2) at 12:00 AM UTC", submit.Get("title"))

	edit := fake.form("/api/editusertext")
	assert.Equal(t, "t3_abc", edit.Get("thing_id"))
	assert.Contains(t, edit.Get("text"), "**Opponent:** Kentucky (4-2)")
	assert.Contains(t, edit.Get("text"), "%2Fu%2Fgameday_bot")

	assert.Equal(t, "new", fake.form("/api/set_suggested_sort").Get("sort"))
	assert.Equal(t, "f-mbb", fake.form("/r/cardinals/api/selectflair").Get("flair_template_id"))
}

func TestCreateSummaryThreadSkipsSuggestedSort(t *testing.T) {
	fake, srv := newFakeReddit(t)
	c := newTestClient(t, srv)
	snap := testutil.FinalSnapshot("401", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	snap.Sport = "basketball-women"

	_, err := c.CreateSummaryThread(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/submit",
		"/api/editusertext",
		"/api/distinguish",
		"/r/cardinals/api/link_flair_v2",
	}, fake.paths(), "no flair matches Women's Basketball")
	assert.Contains(t, fake.form("/api/editusertext").Get("text"), "### Scoring")
}

func TestSubmitFailureIsReturned(t *testing.T) {
	fake, srv := newFakeReddit(t)
	fake.submitJSON = `{"json":{"errors":[["SUBREDDIT_NOTALLOWED","you aren't allowed to post there.","sr"]]}}`
	c := newTestClient(t, srv)

	_, err := c.CreateLiveThread(context.Background(), testutil.SampleSnapshot("401", time.Now(), games.StatePre))
	require.Error(t, err)
	apiErr, ok := forum.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, forum.ActionLiveThread, apiErr.Action)
	assert.Contains(t, apiErr.Message, "SUBREDDIT_NOTALLOWED")
	assert.Equal(t, []string{"/api/submit"}, fake.paths())
}

func TestSubmitHTTPFailureIsReturned(t *testing.T) {
	fake, srv := newFakeReddit(t)
	fake.failPaths["/api/submit"] = http.StatusServiceUnavailable
	c := newTestClient(t, srv)

	_, err := c.CreateSummaryThread(context.Background(), testutil.FinalSnapshot("401", time.Now()))
	apiErr, ok := forum.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestDecorationFailureKeepsThread(t *testing.T) {
	fake, srv := newFakeReddit(t)
	fake.failPaths["/api/editusertext"] = http.StatusInternalServerError
	c := newTestClient(t, srv)

	thread, err := c.CreateLiveThread(context.Background(), testutil.SampleSnapshot("401", time.Now(), games.StatePre))
	require.NoError(t, err)
	assert.Equal(t, "t3_abc", thread.ID)
	assert.Contains(t, fake.paths(), "/api/set_suggested_sort", "later decorations still run")
}

func TestLockThreadSequence(t *testing.T) {
	fake, srv := newFakeReddit(t)
	c := newTestClient(t, srv)

	thread, err := c.LockThread(context.Background(), "t3_live", "https://www.reddit.com/r/cardinals/comments/sum/post/")
	require.NoError(t, err)
	assert.Equal(t, "t3_live", thread.ID)
	assert.Equal(t, "https://www.reddit.com/r/cardinals/comments/live/game/", thread.URL)

	assert.Equal(t, []string{"/api/info", "/api/comment", "/api/distinguish", "/api/sendreplies", "/api/lock"}, fake.paths())
	assert.Equal(t,
		"**This game has ended.** Keep the discussion going in the [post-game thread](https://www.reddit.com/r/cardinals/comments/sum/post/)!",
		fake.form("/api/comment").Get("text"))
	distinguish := fake.form("/api/distinguish")
	assert.Equal(t, "t1_c1", distinguish.Get("id"))
	assert.Equal(t, "true", distinguish.Get("sticky"))
	assert.Equal(t, "false", fake.form("/api/sendreplies").Get("state"))
	assert.Equal(t, "t3_live", fake.form("/api/lock").Get("id"))
}

func TestLockThreadFailureIsReturned(t *testing.T) {
	fake, srv := newFakeReddit(t)
	fake.failPaths["/api/lock"] = http.StatusForbidden
	c := newTestClient(t, srv)

	_, err := c.LockThread(context.Background(), "t3_live", "https://example.com")
	apiErr, ok := forum.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, forum.ActionLock, apiErr.Action)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
