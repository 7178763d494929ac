package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duelist/internal/config"
	"duelist/internal/notify"
	"duelist/internal/repository/sqlite"
)

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

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Notify.Enabled = false
	cfg.Monitor.Interval = 10 * time.Millisecond
	cfg.History.Dir = t.TempDir()
	return cfg
}

func TestRun_ShellSession(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = true
	out := &lockedBuffer{}

	input := "add dishes 1h wash the dishes\nlist\nhistory\nexit\n"
	require.NoError(t, run(context.Background(), cfg, strings.NewReader(input), out))

	text := out.String()
	assert.Contains(t, text, `Added "dishes" to the list.`)
	assert.Contains(t, text, "Task: Dishes")
	assert.Contains(t, text, "added         dishes")
	assert.Contains(t, text, "Exiting application.")
	assert.FileExists(t, filepath.Join(cfg.History.Dir, "history.db"))
}

func TestRun_MonitorAlertsWhileShellWaits(t *testing.T) {
	cfg := testConfig(t)
	out := &lockedBuffer{}
	in, feed := io.Pipe()
	defer feed.Close()

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg, in, out) }()

	_, err := io.WriteString(feed, "add now 0s due right away\n")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Alert: Task 'now' is due now!")
	}, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(feed, "list\nexit\n")
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after exit")
	}
	assert.Equal(t, 1, strings.Count(out.String(), "Alert: Task 'now'"))
	assert.Contains(t, out.String(), "The list is empty.")
}

func TestRun_InterruptEndsCleanly(t *testing.T) {
	cfg := testConfig(t)
	in, feed := io.Pipe()
	defer feed.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, in, &lockedBuffer{}) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_HistoryDirectoryError(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = true
	cfg.History.Dir = filepath.Join("/dev/null", "history")

	err := run(context.Background(), cfg, strings.NewReader(""), &lockedBuffer{})
	assert.Error(t, err)
}

func TestRun_ExitDoesNotWaitForNotification(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notify.Enabled = true
	cfg.Monitor.NotifyTimeout = time.Hour

	started := make(chan struct{})
	var once sync.Once
	blocking := notify.NotifierFunc(func(ctx context.Context, _ notify.Notification) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	})
	saved := newNotifier
	newNotifier = func(*config.Config) notify.Notifier { return blocking }
	t.Cleanup(func() { newNotifier = saved })

	in, feed := io.Pipe()
	defer feed.Close()
	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg, in, &lockedBuffer{}) }()

	_, err := io.WriteString(feed, "add stuck 0s never delivered\n")
	require.NoError(t, err)
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never sent")
	}

	_, err = io.WriteString(feed, "exit\n")
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run waited for the pending notification")
	}
}

func seedHistory(t *testing.T, cfg *config.Config, records ...*sqlite.EventRecord) {
	t.Helper()
	repo, err := sqlite.New(cfg.GetHistoryPath())
	require.NoError(t, err)
	defer repo.Close()
	for _, r := range records {
		require.NoError(t, repo.CreateEvent(context.Background(), r))
	}
}

func TestRun_PrunesHistoryOlderThanRetention(t *testing.T) {
	now := time.Now()
	event := func(id, name string, at time.Time) *sqlite.EventRecord {
		return &sqlite.EventRecord{
			ID: id, Kind: "added", TaskName: name,
			StartTime: at, Deadline: at.Add(time.Hour), OccurredAt: at,
		}
	}

	cfg := testConfig(t)
	cfg.History.Enabled = true
	cfg.History.Retention = 24 * time.Hour
	seedHistory(t, cfg,
		event("old", "stale", now.Add(-48*time.Hour)),
		event("new", "fresh", now.Add(-time.Hour)),
	)

	out := &lockedBuffer{}
	require.NoError(t, run(context.Background(), cfg, strings.NewReader("history\nexit\n"), out))

	assert.Contains(t, out.String(), "fresh")
	assert.NotContains(t, out.String(), "stale")
}

func TestRun_ZeroRetentionKeepsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = true
	at := time.Now().Add(-365 * 24 * time.Hour)
	seedHistory(t, cfg, &sqlite.EventRecord{
		ID: "ancient", Kind: "added", TaskName: "ancient",
		StartTime: at, Deadline: at, OccurredAt: at,
	})

	out := &lockedBuffer{}
	require.NoError(t, run(context.Background(), cfg, strings.NewReader("history\nexit\n"), out))

	assert.Contains(t, out.String(), "ancient")
}

func TestNewNotifier(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Notify.Enabled = false
	assert.IsType(t, notify.Nop{}, newNotifier(cfg))
}
