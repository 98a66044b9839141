// Package mailbox provides a single goroutine execution context fed through a FIFO queue.
// Every function posted to a Mailbox runs on that goroutine, one at a time, in posting order.
package mailbox

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

const defaultCapacity = 64

type Mailbox struct {
	name   string
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

func New(name string) *Mailbox {
	return NewWithCapacity(name, defaultCapacity)
}

func NewWithCapacity(name string, capacity int) *Mailbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Mailbox{
		name:  name,
		tasks: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the queue is full and returns false once the mailbox
// is closed or no longer running.
func (m *Mailbox) Post(fn func()) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		log.Warn().Str("mailbox", m.name).Msg("Mailbox closed, task dropped")
		return false
	}
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.tasks <- fn:
		return true
	case <-m.done:
		return false
	}
}

// TryPost enqueues fn only when the queue has room. It never blocks, so a task running on the
// mailbox may call it.
func (m *Mailbox) TryPost(fn func()) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false
	}
	select {
	case <-m.done:
		return false
	case m.tasks <- fn:
		return true
	default:
		return false
	}
}

// Run executes posted tasks until the mailbox is closed and drained, or ctx is done.
func (m *Mailbox) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn, ok := <-m.tasks:
			if !ok {
				return
			}
			m.execute(fn)
		}
	}
}

// Close stops accepting tasks; Run returns after the queued ones are executed.
func (m *Mailbox) Close() {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		close(m.tasks)
		m.mu.Unlock()
	})
}

// Done is closed when Run has returned.
func (m *Mailbox) Done() <-chan struct{} {
	return m.done
}

func (m *Mailbox) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("mailbox", m.name).Interface("panic", r).Msg("Task panicked, mailbox keeps running")
		}
	}()
	fn()
}
