// Package worker provides background delivery of subscriber notifications.
package worker

import (
	"log"
	"sync"

	"github.com/solara-labs/cadenza/internal/core/ports"
)

type job struct {
	sub ports.Subscriber
	n   ports.Notification
}

// Pool fans notifications out to subscribers on background workers, so a
// creator publishing never blocks on slow inboxes. It implements
// ports.Notifier.
type Pool struct {
	mu   sync.RWMutex
	subs map[string][]ports.Subscriber

	jobs chan job
	wg   sync.WaitGroup
}

// NewPool creates a delivery pool with the given queue size.
func NewPool(queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		subs: make(map[string][]ports.Subscriber),
		jobs: make(chan job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j.sub.Notify(j.n)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue. Publish must
// not be called afterwards.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Subscribe adds a subscriber to a creator's audience.
func (p *Pool) Subscribe(creator string, s ports.Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs[creator] = append(p.subs[creator], s)
}

// Unsubscribe removes a subscriber from a creator's audience.
func (p *Pool) Unsubscribe(creator, username string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.subs[creator][:0]
	for _, s := range p.subs[creator] {
		if s.Username() != username {
			kept = append(kept, s)
		}
	}
	p.subs[creator] = kept
}

// Publish queues one delivery per subscriber of the notification's
// creator, dropping deliveries when the queue is full.
func (p *Pool) Publish(n ports.Notification) {
	p.mu.RLock()
	subs := make([]ports.Subscriber, len(p.subs[n.Creator]))
	copy(subs, p.subs[n.Creator])
	p.mu.RUnlock()

	for _, s := range subs {
		select {
		case p.jobs <- job{sub: s, n: n}:
		default:
			log.Printf("WARN worker: dropping %s notification for %s", n.Kind, s.Username())
		}
	}
}
