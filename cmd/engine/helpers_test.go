package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/logging"
	"jobtrack-engine/internal/store"
)

func TestBackupTask(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tr := store.NewTracker(store.NewMemoryKV())
	task := backupTask(tr, dir, logging.Discard())

	require.NoError(t, task(ctx))
	_, err := os.Stat(filepath.Join(dir, "backup"))
	assert.True(t, os.IsNotExist(err), "empty tracker writes nothing")

	_, err = tr.SaveJob(ctx, domain.NewJob{Company: "Acme", Title: "Go Dev"})
	require.NoError(t, err)
	require.NoError(t, task(ctx))

	path := filepath.Join(dir, "backup", "jobs-"+time.Now().UTC().Format("2006-01-02")+".csv")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Company,Title,Status,Date,URL\n\"Acme\",\"Go Dev\""))
}

func TestShutdownHandlerGuards(t *testing.T) {
	srv := &http.Server{}
	h := shutdownHandler("tok", srv)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/shutdown", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	req.Header.Set("X-Engine-Token", "nope")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
