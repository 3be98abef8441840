package notifymock

import (
	"context"
	"sync"

	"rental-intake/internal/domain/application"
)

var _ application.Notifier = (*Notifier)(nil)

// Notifier records every notice; Err is returned from each call.
type Notifier struct {
	mu      sync.Mutex
	Notices []application.StatusNotice
	Err     error
}

func (n *Notifier) NotifyStatus(_ context.Context, notice application.StatusNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
	return n.Err
}

func (n *Notifier) Sent() []application.StatusNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]application.StatusNotice(nil), n.Notices...)
}
