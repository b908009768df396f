package console

import (
	"sync"
	"time"

	"go-inventory-console/internal/ws"
)

// DefaultNoticeTTL matches the console's message banner lifetime.
const DefaultNoticeTTL = 4 * time.Second

// Notifier holds the short-lived status message shown after an action.
// A new notice pre-empts the pending one and restarts the clock. Purely
// presentational; it never affects authorization or transaction state.
type Notifier struct {
	mu      sync.Mutex
	message string
	timer   *time.Timer
	ttl     time.Duration
	hub     *ws.Hub
}

// NewNotifier builds a notifier with the default lifetime. hub may be nil
// when no live clients are attached.
func NewNotifier(hub *ws.Hub) *Notifier {
	return &Notifier{ttl: DefaultNoticeTTL, hub: hub}
}

// NewNotifierTTL is NewNotifier with an explicit lifetime.
func NewNotifierTTL(hub *ws.Hub, ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl, hub: hub}
}

// Notify displays message and schedules its clearing.
func (n *Notifier) Notify(message string) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.message = message
	n.timer = time.AfterFunc(n.ttl, n.clear)
	n.mu.Unlock()

	if n.hub != nil {
		go n.hub.BroadcastJSON(map[string]interface{}{
			"type":    "notice",
			"message": message,
		})
	}
}

func (n *Notifier) clear() {
	n.mu.Lock()
	n.message = ""
	n.mu.Unlock()
}

// Current returns the live message, or "" once it has expired.
func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}
