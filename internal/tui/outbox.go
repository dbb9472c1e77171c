package tui

import (
	"context"
	"sync"

	"github.com/norregaard/logos-maximus/internal/controller"
)

// Poster accepts controller events.
type Poster interface {
	Post(ev controller.Event)
}

// outbox queues events from Update without blocking and forwards them in
// order from its own goroutine. The controller may be blocked sending to
// the program, so Update must never wait on it.
type outbox struct {
	mu    sync.Mutex
	queue []controller.Event
	wake  chan struct{}
}

func newOutbox() *outbox {
	return &outbox{wake: make(chan struct{}, 1)}
}

func (o *outbox) Post(ev controller.Event) {
	o.mu.Lock()
	o.queue = append(o.queue, ev)
	o.mu.Unlock()
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *outbox) run(ctx context.Context, dst Poster) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.wake:
		}
		o.mu.Lock()
		batch := o.queue
		o.queue = nil
		o.mu.Unlock()
		for _, ev := range batch {
			dst.Post(ev)
		}
	}
}
