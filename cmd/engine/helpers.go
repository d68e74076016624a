package main

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/export"
	"jobtrack-engine/internal/store"
)

func shutdownHandler(token string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr can sometimes be just a host; fall back safely
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		got := r.Header.Get("X-Engine-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}

// backupTask writes backup/jobs-<date>.csv in dataDir. An empty tracker
// skips the write.
func backupTask(tr *store.Tracker, dataDir string, logger *log.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		jobs, err := tr.Jobs(ctx)
		if err != nil {
			return fmt.Errorf("backup read: %w", err)
		}
		out, err := export.CSV(jobs)
		if err != nil {
			// nothing to back up
			return nil
		}

		dir := filepath.Join(dataDir, "backup")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("jobs-%s.csv", time.Now().UTC().Format("2006-01-02")))
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, []byte(out), 0o644); err != nil {
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			return err
		}
		logger.Info("backup written", "path", path, "jobs", len(jobs))
		return nil
	}
}
