package log

import (
	"strings"
	"sync"
	"sync/atomic"
)

const (
	defaultBufferSize  = 64
	defaultHistorySize = 8
)

// Publisher is an [io.Writer] that splits log output into lines and fans
// them out to subscribers.
//
// Each line is delivered to every active [Subscription] through a buffered
// channel. When a channel is full its oldest line is dropped, so Write never
// blocks. The last few lines are also kept for [Publisher.Recent], letting a
// view that starts late show what was already logged. Safe for concurrent
// use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	history     []string
	bufSize     int
	historySize int
	mu          sync.Mutex
	closed      bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// NewPublisher creates a [Publisher]. Subscriptions buffer 64 lines and the
// last 8 lines are kept by default.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bufSize:     defaultBufferSize,
		historySize: defaultHistorySize,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithBufferSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// WithHistorySize sets how many lines [Publisher.Recent] returns. Zero
// disables the history; negative values are clamped to zero.
func WithHistorySize(n int) PublisherOption {
	return func(p *Publisher) {
		p.historySize = max(n, 0)
	}
}

// Write delivers every non-empty line of b, without its line terminator, to
// the active subscribers. Closed subscriptions are removed. Write always
// returns len(b), nil.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	alive := p.subscribers[:0]
	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			close(sub.ch)
			continue
		}

		alive = append(alive, sub)
	}

	clear(p.subscribers[len(alive):])
	p.subscribers = alive

	for line := range strings.Lines(string(b)) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		p.remember(line)

		for _, sub := range p.subscribers {
			select {
			case sub.ch <- line:
				continue
			default:
			}

			// Full: drop the oldest line.
			select {
			case <-sub.ch:
			default:
			}

			select {
			case sub.ch <- line:
			default:
			}
		}
	}

	return len(b), nil
}

func (p *Publisher) remember(line string) {
	if p.historySize == 0 {
		return
	}

	if len(p.history) == p.historySize {
		copy(p.history, p.history[1:])
		p.history = p.history[:len(p.history)-1]
	}

	p.history = append(p.history, line)
}

// Recent returns the most recently written lines, oldest first.
func (p *Publisher) Recent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.history...)
}

// Subscribe registers a new [Subscription]. If the Publisher is already
// closed the returned subscription's channel is closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		ch: make(chan string, p.bufSize),
	}

	if p.closed {
		close(sub.ch)
		return sub
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close closes all subscription channels. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		close(sub.ch)
	}

	p.subscribers = nil

	return nil
}

// Subscription receives log lines from a [Publisher].
type Subscription struct {
	ch     chan string
	closed atomic.Bool
}

// C returns the channel that delivers log lines.
func (s *Subscription) C() <-chan string {
	return s.ch
}

// Close marks the subscription as closed. The Publisher closes the channel
// on its next Write or Close call. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}
