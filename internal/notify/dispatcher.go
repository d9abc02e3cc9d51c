package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-food-backend/internal/domain"
)

// job is one outbound message bound to a single chat.
type job struct {
	chatID int64
	text   string
	kind   string
	order  string
}

// Dispatcher fans order events out to Telegram chats without blocking the
// request path. Each delivery gets at most one attempt; failures are logged
// and discarded. When the queue is full new jobs are dropped, never queued
// synchronously.
type Dispatcher struct {
	sender   Sender
	adminIDs []int64
	jobs     chan job
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool

	sendTimeout time.Duration
}

// Options tunes the dispatcher queue. Zero values fall back to defaults.
type Options struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// NewDispatcher starts the worker pool immediately. A nil sender yields a
// dispatcher that silently discards every event, which keeps the service
// layer oblivious to whether notifications are configured.
func NewDispatcher(sender Sender, adminIDs []int64, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	d := &Dispatcher{
		sender:      sender,
		adminIDs:    adminIDs,
		jobs:        make(chan job, opts.QueueSize),
		sendTimeout: opts.SendTimeout,
	}
	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.sender.SendMessage(ctx, j.chatID, j.text)
		cancel()
		if err != nil {
			log.Warn().
				Err(err).
				Int64("chat_id", j.chatID).
				Str("kind", j.kind).
				Str("order_id", j.order).
				Msg("notification delivery failed")
			continue
		}
		log.Debug().
			Int64("chat_id", j.chatID).
			Str("kind", j.kind).
			Str("order_id", j.order).
			Msg("notification delivered")
	}
}

// enqueue never blocks. A full queue or a closed dispatcher drops the job.
func (d *Dispatcher) enqueue(j job) {
	if d.sender == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.jobs <- j:
	default:
		log.Warn().
			Int64("chat_id", j.chatID).
			Str("kind", j.kind).
			Str("order_id", j.order).
			Msg("notification queue full, dropping")
	}
}

// OrderCreated notifies every admin chat and, when the customer placed the
// order through the bot, the customer chat as well.
func (d *Dispatcher) OrderCreated(o *domain.Order) {
	adminText := AdminOrderMessage(o)
	for _, id := range d.adminIDs {
		d.enqueue(job{chatID: id, text: adminText, kind: "order_created_admin", order: o.ID})
	}
	if o.UserTelegramID != nil {
		d.enqueue(job{chatID: *o.UserTelegramID, text: CustomerOrderMessage(o), kind: "order_created_customer", order: o.ID})
	}
}

// StatusChanged notifies the customer chat only. Orders placed without a
// Telegram identity produce no delivery.
func (d *Dispatcher) StatusChanged(o *domain.Order) {
	if o.UserTelegramID == nil {
		return
	}
	d.enqueue(job{chatID: *o.UserTelegramID, text: StatusUpdateMessage(o), kind: "status_changed", order: o.ID})
}

// Close stops accepting new jobs and waits for in-flight deliveries until
// ctx expires. Pending queued jobs are still attempted during the drain.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
