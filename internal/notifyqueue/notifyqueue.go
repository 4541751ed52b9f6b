// Package notifyqueue retries owner notifications that failed at booking
// time. The appointment is already persisted when a notification lands
// here, so without the retry the owner would never hear about it.
package notifyqueue

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/mailer"
)

const maxAttempts = 3

// Queue defines the interface for enqueuing failed notifications and
// controlling lifecycle.
type Queue interface {
	Add(appointmentID string, msg mailer.Message)
	Start()
	Stop()
}

type entry struct {
	appointmentID string
	msg           mailer.Message
	attempts      int
}

// queue holds undelivered notifications and retries them periodically.
type queue struct {
	log     *zap.Logger
	mail    mailer.Mailer
	entries []entry
	mu      sync.Mutex
	ticker  *time.Ticker
	quit    chan struct{}
}

// New initializes a Queue that retries on the given interval.
func New(m mailer.Mailer, log *zap.Logger, interval time.Duration) Queue {
	return &queue{
		log:    log,
		mail:   m,
		quit:   make(chan struct{}),
		ticker: time.NewTicker(interval),
	}
}

// Add enqueues a failed notification for retry.
func (q *queue) Add(appointmentID string, msg mailer.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry{appointmentID: appointmentID, msg: msg})
	q.log.Info("notification queued for retry", zap.String("appointment_id", appointmentID))
}

// Start runs the periodic retry ticker.
func (q *queue) Start() {
	for {
		select {
		case <-q.ticker.C:
			q.flush()
		case <-q.quit:
			q.flush()
			q.ticker.Stop()
			return
		}
	}
}

// Stop signals the queue to attempt one final flush and shut down.
func (q *queue) Stop() {
	close(q.quit)
}

func (q *queue) flush() {
	q.mu.Lock()
	pending := q.entries
	q.entries = nil
	q.mu.Unlock()

	var remaining []entry
	for _, e := range pending {
		id, err := q.mail.Send(e.msg)
		if err == nil {
			q.log.Info("queued notification delivered",
				zap.String("appointment_id", e.appointmentID),
				zap.String("email_id", id))
			continue
		}
		e.attempts++
		if e.attempts >= maxAttempts {
			// Dropped entries still have a persisted appointment; the
			// store's List is the reconciliation path of last resort.
			q.log.Error("notification dropped after retries",
				zap.String("appointment_id", e.appointmentID),
				zap.Int("attempts", e.attempts),
				zap.Error(err))
			continue
		}
		q.log.Warn("notification retry failed",
			zap.String("appointment_id", e.appointmentID),
			zap.Int("attempt", e.attempts),
			zap.Error(err))
		remaining = append(remaining, e)
	}

	if len(remaining) > 0 {
		q.mu.Lock()
		q.entries = append(remaining, q.entries...)
		q.mu.Unlock()
	}
}
