package notifier

import (
	"context"
	"log"
)

// Notifier delivers a user-facing alert. Delivery is best-effort,
// fire-and-forget; callers log failures and move on.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
	Name() string
}

// MultiNotifier fans a notification out to several channels. Every
// channel is attempted; failures are logged, never propagated beyond
// the last error.
type MultiNotifier struct {
	Channels []Notifier
}

func NewMultiNotifier(channels ...Notifier) *MultiNotifier {
	return &MultiNotifier{Channels: channels}
}

func (m *MultiNotifier) Name() string { return "multi" }

func (m *MultiNotifier) Notify(ctx context.Context, title, body string) error {
	var lastErr error
	for _, ch := range m.Channels {
		if err := ch.Notify(ctx, title, body); err != nil {
			log.Printf("[ERROR] notify via %s: %v", ch.Name(), err)
			lastErr = err
		}
	}
	return lastErr
}
