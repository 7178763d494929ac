package notify

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gen2brain/beeep"

	"duelist/internal/logging"
)

// Desktop shows notifications through the operating system's notification
// service.
type Desktop struct {
	send func(title, message, icon string) error
}

// NewDesktop creates a Desktop notifier. appName is registered with the
// platform notification service; an empty name keeps beeep's default. The
// name is process-wide, so it comes from configuration rather than from each
// Notification.
func NewDesktop(appName string) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Notify implements Notifier. The platform call cannot be interrupted; when
// ctx ends first Notify returns ctx.Err() and the call finishes in the
// background.
func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	logging.Debugf("notify [%s] %s", n.AppName, n.Title)

	errc := make(chan error, 1)
	go func() {
		errc <- d.send(n.Title, n.Message, n.AppIcon)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ResolveIcon returns path when it is set. Otherwise it looks for icon.png
// (icon.ico on Windows) next to the running executable and returns "" when
// there is none.
func ResolveIcon(path string) string {
	if path != "" {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	name := "icon.png"
	if runtime.GOOS == "windows" {
		name = "icon.ico"
	}
	candidate := filepath.Join(filepath.Dir(exe), name)
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
