// Package notify carries the fire-and-forget notices the state layer emits
// for the view layer to display. Delivery guarantee is "queued for display
// once": a notice sits in the queue until drained, and the oldest notices are
// dropped when the queue is full.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice is a user-visible notification with a title and description.
type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notifier receives notices emitted by the state layer.
type Notifier interface {
	Push(title, description string)
}

// Queue is a bounded in-memory Notifier. The view layer drains it; producers
// never block.
type Queue struct {
	mu      sync.Mutex
	notices []Notice
	limit   int
}

// NewQueue creates a queue holding at most limit pending notices.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = 100
	}
	return &Queue{limit: limit}
}

// Push appends a notice, dropping the oldest pending notice if full.
func (q *Queue) Push(title, description string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.notices) >= q.limit {
		q.notices = q.notices[1:]
	}
	q.notices = append(q.notices, Notice{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
}

// Drain returns all pending notices and clears the queue.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.notices
	q.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Pending returns the number of queued notices.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.notices)
}

// Discard is a Notifier that drops every notice. Used where no view layer is
// attached, e.g. in tests.
type Discard struct{}

func (Discard) Push(string, string) {}
