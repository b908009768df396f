package session

import (
	"sync"
	"time"

	"go-inventory-console/internal/authz"

	"github.com/google/uuid"
)

// Session is the identity the console operates under. It is built from the
// login response of the inventory API; the bearer credential itself stays
// opaque here, only the already-decoded role claim is read. A session is
// immutable once begun; changing roles means logging in again.
type Session struct {
	PrincipalID uuid.UUID
	Email       string
	Name        string
	Role        authz.Role
	Token       string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

func (s Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Context holds the process-wide session for the lifetime of the client
// session. The login and logout flows are the only writers; everything
// downstream of the route guard reads through the accessors and treats an
// absent or expired session as unauthenticated, never as an error.
type Context struct {
	mu      sync.RWMutex
	current *Session
	now     func() time.Time
}

func NewContext() *Context {
	return &Context{now: time.Now}
}

// Begin installs the session issued at login, replacing any previous one.
func (c *Context) Begin(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &s
}

// End tears the session down (logout or token invalidation).
func (c *Context) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Current returns the live session. ok is false when no session is held or
// the held one is past expiry.
func (c *Context) Current() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil || c.current.expired(c.now()) {
		return Session{}, false
	}
	return *c.current, true
}

// CurrentRole returns the role claim of the live session.
func (c *Context) CurrentRole() (authz.Role, bool) {
	s, ok := c.Current()
	if !ok {
		return authz.RoleNone, false
	}
	return s.Role, true
}

func (c *Context) IsAuthenticated() bool {
	_, ok := c.Current()
	return ok
}

// Token returns the bearer credential for upstream API calls, or "" when
// unauthenticated.
func (c *Context) Token() string {
	s, ok := c.Current()
	if !ok {
		return ""
	}
	return s.Token
}
