package console

import (
	"testing"
	"time"
)

func TestNotifierExpiresMessage(t *testing.T) {
	t.Parallel()
	notifier := NewNotifierTTL(nil, 50*time.Millisecond)

	notifier.Notify("Purchase recorded successfully")
	if got := notifier.Current(); got != "Purchase recorded successfully" {
		t.Fatalf("Current: got %q, want the fresh message", got)
	}

	time.Sleep(150 * time.Millisecond)
	if got := notifier.Current(); got != "" {
		t.Errorf("Current after expiry: got %q, want empty", got)
	}
}

func TestNotifierNewMessageRestartsClock(t *testing.T) {
	t.Parallel()
	notifier := NewNotifierTTL(nil, 100*time.Millisecond)

	notifier.Notify("first")
	time.Sleep(60 * time.Millisecond)
	notifier.Notify("second")

	// Past the first message's deadline: the second must still be showing
	// on its own full lifetime.
	time.Sleep(60 * time.Millisecond)
	if got := notifier.Current(); got != "second" {
		t.Errorf("Current: got %q, want %q", got, "second")
	}

	time.Sleep(100 * time.Millisecond)
	if got := notifier.Current(); got != "" {
		t.Errorf("Current after expiry: got %q, want empty", got)
	}
}

func TestNotifierEmptyByDefault(t *testing.T) {
	t.Parallel()
	notifier := NewNotifier(nil)
	if got := notifier.Current(); got != "" {
		t.Errorf("Current: got %q, want empty", got)
	}
}
