package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/bridge"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/logging"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/store"
)

const postingHTML = `<html><head><title>Backend Engineer | Acme Corp</title>
<meta property="og:title" content="Backend Engineer">
</head><body></body></html>`

type testEnv struct {
	srv     *httptest.Server
	hub     *events.Hub
	cfgVal  *atomic.Value
	cfgPath string
}

func newTestEnv(t *testing.T, requireToken bool) *testEnv {
	t.Helper()

	n := 0
	tr := store.NewTracker(store.NewMemoryKV(),
		store.WithClock(func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }),
		store.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	ex := scrape.NewExtractor(scrape.WithClock(func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }))
	logger := logging.Discard()

	cfgPath, err := config.EnsureUserConfig(t.TempDir())
	require.NoError(t, err)
	cfg := config.Default()
	cfg.App.RequireToken = requireToken
	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	hub := events.NewHub()
	d := Deps{
		Tracker:     tr,
		Hub:         hub,
		Log:         logger,
		Extractor:   ex,
		Host:        bridge.NewHost(ex, logger),
		Fetcher:     bridge.NewFetcher(ex, bridge.FetcherOptions{}),
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		Token:       "secret",
	}
	h := Handler(NewMux(d), d, func() bool {
		return cfgVal.Load().(config.Config).App.RequireToken
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, hub: hub, cfgVal: &cfgVal, cfgPath: cfgPath}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, hdr ...string) *http.Response {
	t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	require.NoError(t, err)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestJobsLifecycle(t *testing.T) {
	env := newTestEnv(t, false)
	sub := env.hub.Subscribe()

	res := env.do(t, http.MethodPost, "/jobs", map[string]any{
		"company": "Acme", "title": "Go Dev", "url": "https://x.test/j?id=1", "jobId": "greenhouse-1",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	rec := decode[domain.JobRecord](t, res)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "Applied", rec.Status)
	assert.Equal(t, "2026-06-01", rec.Date)
	assert.Contains(t, <-sub, events.JobCreated)

	res = env.do(t, http.MethodPost, "/jobs", map[string]any{
		"company": "Acme", "title": "Go Dev", "url": "https://x.test/j?id=1&utm_source=mail",
	})
	require.Equal(t, http.StatusConflict, res.StatusCode)
	dup := decode[duplicateResp](t, res)
	assert.Equal(t, "duplicate", dup.Error.Code)
	assert.Equal(t, "This job is already tracked.", dup.Error.Message)
	assert.Equal(t, "id-1", dup.Existing.ID)

	res = env.do(t, http.MethodPost, "/jobs", map[string]any{"company": "", "title": "x"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = env.do(t, http.MethodPatch, "/jobs/id-1", map[string]any{"status": "Interview"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Interview", decode[domain.JobRecord](t, res).Status)

	res = env.do(t, http.MethodPatch, "/jobs/id-1", map[string]any{"company": "renamed"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "company is not editable")

	res = env.do(t, http.MethodGet, "/jobs?q=acme", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]domain.JobRecord](t, res), 1)

	res = env.do(t, http.MethodGet, "/export.csv", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "job_applications.csv")

	res = env.do(t, http.MethodDelete, "/jobs/id-1", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = env.do(t, http.MethodDelete, "/jobs/id-1", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = env.do(t, http.MethodGet, "/export.csv", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "No jobs to export.", decode[APIError](t, res).Error.Message)
}

func TestScrapeAndExtract(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, postingHTML)
	}))
	defer page.Close()
	env := newTestEnv(t, false)

	res := env.do(t, http.MethodPost, "/scrape", bridge.Request{Action: bridge.ActionScrapeJob, URL: page.URL + "/jobs/1"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	got := decode[bridge.Result](t, res)
	assert.True(t, got.Captured)
	assert.Equal(t, "Backend Engineer", got.Candidate.Title)
	assert.Equal(t, "Acme Corp", got.Candidate.Company)

	res = env.do(t, http.MethodPost, "/scrape", bridge.Request{Action: bridge.ActionScrapeJob, URL: "chrome://newtab"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	got = decode[bridge.Result](t, res)
	assert.Equal(t, bridge.MsgUnreachable, got.Warning)
	assert.Equal(t, "chrome://newtab", got.Candidate.URL)

	res = env.do(t, http.MethodPost, "/scrape", bridge.Request{Action: "other", URL: page.URL})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = env.do(t, http.MethodPost, "/extract?url="+"https%3A%2F%2Fjobs.lever.co%2Facme%2Fsenior-engineer-42abf", postingHTML)
	require.Equal(t, http.StatusOK, res.StatusCode)
	got = decode[bridge.Result](t, res)
	assert.Equal(t, "Acme Corp", got.Candidate.Company)
	require.NotNil(t, got.Candidate.JobID)
	assert.Equal(t, "lever-senior-engineer-42abf", *got.Candidate.JobID)
}

func TestBoardRoutes(t *testing.T) {
	env := newTestEnv(t, false)

	res := env.do(t, http.MethodGet, "/board", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	b := decode[domain.Board](t, res)
	assert.Equal(t, domain.DefaultColumns, b.Columns)

	res = env.do(t, http.MethodPost, "/board/columns", map[string]string{"name": "Ghosted"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res = env.do(t, http.MethodPost, "/board/columns", map[string]string{"name": "Ghosted"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res = env.do(t, http.MethodPut, "/board/columns/Under%20Review/width", map[string]int{"width": 1000})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.EqualValues(t, 520, decode[map[string]any](t, res)["width"])

	res = env.do(t, http.MethodPut, "/board/columns/Ghosted/color", map[string]string{"color": "#abc"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = env.do(t, http.MethodPut, "/board/columns/Nope/color", map[string]string{"color": "#abc"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = env.do(t, http.MethodPut, "/settings/theme", map[string]string{"theme": "dark"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = env.do(t, http.MethodGet, "/settings/theme", nil)
	assert.Equal(t, "dark", decode[map[string]string](t, res)["theme"])
	res = env.do(t, http.MethodPut, "/settings/theme", map[string]string{"theme": "blue"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRequireToken(t *testing.T) {
	env := newTestEnv(t, true)

	res := env.do(t, http.MethodGet, "/jobs", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "reads stay open")

	res = env.do(t, http.MethodPost, "/jobs", map[string]any{"company": "A", "title": "T"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = env.do(t, http.MethodPost, "/jobs", map[string]any{"company": "A", "title": "T"}, TokenHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = env.do(t, http.MethodPost, "/jobs", map[string]any{"company": "A", "title": "T"}, TokenHeader, "secret")
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestCrossOriginRequests(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, postingHTML)
	}))
	defer page.Close()
	env := newTestEnv(t, false)
	scrapeReq := bridge.Request{Action: bridge.ActionScrapeJob, URL: page.URL + "/jobs/1"}

	res := env.do(t, http.MethodOptions, "/scrape", nil,
		"Origin", "https://evil.example", "Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))

	res = env.do(t, http.MethodPost, "/scrape", scrapeReq, "Origin", "https://evil.example")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))

	res = env.do(t, http.MethodPost, "/jobs", map[string]any{"company": "A", "title": "T"}, "Origin", "https://evil.example")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = env.do(t, http.MethodPost, "/scrape", scrapeReq, "Origin", "https://evil.example", TokenHeader, "secret")
	assert.Equal(t, http.StatusOK, res.StatusCode, "token holders may call from anywhere")

	res = env.do(t, http.MethodOptions, "/scrape", nil, "Origin", "chrome-extension://abcdef")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "chrome-extension://abcdef", res.Header.Get("Access-Control-Allow-Origin"))

	res = env.do(t, http.MethodPost, "/scrape", scrapeReq, "Origin", "http://127.0.0.1:5173")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "http://127.0.0.1:5173", res.Header.Get("Access-Control-Allow-Origin"))

	cfg := env.cfgVal.Load().(config.Config)
	cfg.App.AllowedOrigins = []string{"https://board.example"}
	env.cfgVal.Store(cfg)
	res = env.do(t, http.MethodOptions, "/jobs", nil, "Origin", "https://Board.example")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestOriginAllowed(t *testing.T) {
	extra := []string{"https://board.example/"}
	for origin, want := range map[string]bool{
		"":                          false,
		"null":                      false,
		"http://localhost:3000":     true,
		"http://127.0.0.1":          true,
		"http://[::1]:8080":         true,
		"moz-extension://1234-abcd": true,
		"https://board.example":     true,
		"https://evil.example":      false,
		"http://localhost.evil.com": false,
		"file://":                   false,
	} {
		assert.Equal(t, want, OriginAllowed(origin, extra), origin)
	}
}

func TestConfigRoutes(t *testing.T) {
	env := newTestEnv(t, false)

	res := env.do(t, http.MethodGet, "/config/path", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	p := decode[map[string]string](t, res)["path"]
	assert.True(t, filepath.IsAbs(p))

	cfg := config.Default()
	cfg.Log.Level = "debug"
	res = env.do(t, http.MethodPut, "/config", cfg)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "debug", env.cfgVal.Load().(config.Config).Log.Level)

	cfg.Board.Columns = nil
	res = env.do(t, http.MethodPut, "/config", cfg)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	v := decode[config.Validation](t, res)
	assert.NotEmpty(t, v.Errors)

	res = env.do(t, http.MethodPost, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestEventsStream(t *testing.T) {
	env := newTestEnv(t, false)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/events", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	buf := make([]byte, 512)
	n, err := res.Body.Read(buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(buf[:n]), `"type":"ping"`))
}
