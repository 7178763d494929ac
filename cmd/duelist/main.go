package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duelist/internal/cli"
	"duelist/internal/config"
	"duelist/internal/events"
	"duelist/internal/logging"
	"duelist/internal/monitor"
	"duelist/internal/notify"
	"duelist/internal/repository/sqlite"
	"duelist/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader(), func(ctx context.Context, cfg *config.Config) error {
		return run(ctx, cfg, os.Stdin, os.Stdout)
	})

	if err := root.Execute(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newNotifier selects the notification sink for cfg.
var newNotifier = func(cfg *config.Config) notify.Notifier {
	if !cfg.Notify.Enabled {
		return notify.Nop{}
	}
	return notify.NewDesktop(cfg.Notify.AppName)
}

// run wires the store, the monitor and the shell, and blocks until the
// shell exits or ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, in io.Reader, stdout io.Writer) error {
	if cfg.Application.Verbose {
		logging.SetDebug(true)
	}

	out := events.NewSyncWriter(stdout)
	sinks := []events.Sink{events.NewConsole(out, cfg.Display.TimeFormat, cfg.Display.Width)}

	var history sqlite.Repository
	if cfg.History.Enabled {
		repo, err := config.CreateHistoryRepository(cfg)
		if err != nil {
			return err
		}
		defer repo.Close()
		pruneHistory(ctx, repo, cfg.History.Retention, time.Now())
		history = repo
		sinks = append(sinks, sqlite.NewJournal(repo, cfg.History.WriteTimeout))
		logging.Debugf("recording history in %s", cfg.GetHistoryPath())
	}
	sink := events.Multi(sinks...)

	s := store.New(store.WithSink(sink))

	m := monitor.New(s, newNotifier(cfg),
		monitor.WithInterval(cfg.Monitor.Interval),
		monitor.WithNotifyTimeout(cfg.Monitor.NotifyTimeout),
		monitor.WithSink(sink),
		monitor.WithApp(cfg.Notify.AppName, notify.ResolveIcon(cfg.Notify.AppIcon)),
		monitor.WithTimeFormat(cfg.Display.TimeFormat),
	)

	// Cancelling first abandons a notification still in flight, so Stop
	// does not wait out the notify timeout.
	monitorCtx, cancel := context.WithCancel(ctx)
	m.Start(monitorCtx)
	defer func() {
		cancel()
		m.Stop()
	}()

	app := cli.NewApp(s, cfg, cli.WithInput(in), cli.WithOutput(out), cli.WithHistory(history))

	// The shell blocks on input, so it is left behind when ctx ends first.
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		fmt.Fprintln(out)
		return nil
	}
}

// pruneHistory drops journal events older than retention. Zero retention
// keeps everything. Failures are logged and the journal is used as is.
func pruneHistory(ctx context.Context, repo sqlite.Repository, retention time.Duration, now time.Time) {
	if retention <= 0 {
		return
	}
	removed, err := repo.DeleteEventsBefore(ctx, now.Add(-retention))
	if err != nil {
		logging.Warnf("history: could not prune events older than %s: %v", retention, err)
		return
	}
	logging.Debugf("history: pruned %d events older than %s", removed, retention)
}
