// Package notify carries transient, dismissible user notifications.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible unless dismissed
const DefaultTTL = 5 * time.Second

// Variant selects the notification styling
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a toast: a title, an optional description and a variant.
type Notification struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	CreatedAt   time.Time
}

// Notifier receives notifications from the client flows
type Notifier interface {
	Notify(n Notification)
}

// Queue is a thread-safe Notifier holding the visible notifications.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	ttl   time.Duration
	now   func() time.Time
	limit int
}

// NewQueue returns a queue whose entries expire after ttl (DefaultTTL when zero).
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now, limit: 5}
}

// Notify enqueues n, assigning an ID and timestamp when missing. The oldest
// entries are dropped past the queue limit.
func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = q.now()
	}
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	q.items = append(q.items, n)
	if len(q.items) > q.limit {
		q.items = q.items[len(q.items)-q.limit:]
	}
}

// Active returns the unexpired notifications, oldest first.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pruneLocked()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Dismiss removes the notification with the given ID.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Latest returns the newest active notification.
func (q *Queue) Latest() (Notification, bool) {
	active := q.Active()
	if len(active) == 0 {
		return Notification{}, false
	}
	return active[len(active)-1], true
}

func (q *Queue) pruneLocked() {
	cutoff := q.now().Add(-q.ttl)
	kept := q.items[:0]
	for _, n := range q.items {
		if n.CreatedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

// Recorder is a Notifier that keeps everything it receives. Used by the CLI
// subcommands and tests.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Titles returns the titles received so far, in order.
func (r *Recorder) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n.Title)
	}
	return out
}
