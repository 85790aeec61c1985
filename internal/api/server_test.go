package api

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zapponejosh/amlich/internal/config"
)

// lockedBuffer collects log output written from several goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

const serverTestObservances = `observances:
  - name: Tết Nguyên Đán
    calendar: lunar
    month: 1
    day: 1
`

func TestRun_ListenFailureStopsWatcher(t *testing.T) {
	// Hold the port so ListenAndServe fails straight away.
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	dir := t.TempDir()
	obsPath := filepath.Join(dir, "observances.yaml")
	if err := os.WriteFile(obsPath, []byte(serverTestObservances), 0o644); err != nil {
		t.Fatalf("write observances: %v", err)
	}

	cfg := &config.Config{
		Port:            ln.Addr().(*net.TCPAddr).Port,
		Env:             config.EnvDevelopment,
		DatabasePath:    filepath.Join(dir, "amlich.db"),
		LogLevel:        "debug",
		LogFormat:       "text",
		TimeZone:        config.DefaultTimeZone,
		ObservancesPath: obsPath,
	}

	var logs lockedBuffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), cfg, log) }()

	select {
	case err = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after listen failure")
	}

	if err == nil || !strings.Contains(err.Error(), "http server") {
		t.Fatalf("Run() error = %v, want http server error", err)
	}
	if !strings.Contains(logs.String(), "observances watcher stopped") {
		t.Errorf("watcher still running after Run returned, logs:\n%s", logs.String())
	}

	// A stopped watcher must not try to reload into the closed database.
	if err := os.WriteFile(obsPath, []byte(serverTestObservances), 0o644); err != nil {
		t.Fatalf("rewrite observances: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	if got := logs.String(); strings.Contains(got, "reload observances") || strings.Contains(got, "observances reloaded") {
		t.Errorf("observances reloaded after Run returned, logs:\n%s", got)
	}
}
