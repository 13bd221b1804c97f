package notifier

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier shows OS desktop notifications.
type DesktopNotifier struct {
	AppName string
	Icon    string
}

func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{AppName: appName}
}

func (d *DesktopNotifier) Name() string { return "desktop" }

func (d *DesktopNotifier) Notify(_ context.Context, title, body string) error {
	if err := beeep.Notify(title, body, d.Icon); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
