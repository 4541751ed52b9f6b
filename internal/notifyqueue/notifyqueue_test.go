package notifyqueue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/mailer"
)

type flakyMailer struct {
	mu        sync.Mutex
	failUntil int // fail the first N sends
	calls     int
	delivered []mailer.Message
}

func (m *flakyMailer) Send(msg mailer.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failUntil {
		return "", errors.New("relay down")
	}
	m.delivered = append(m.delivered, msg)
	return "<retry@test>", nil
}

func (m *flakyMailer) deliveredCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.delivered)
}

func TestQueueDeliversOnTick(t *testing.T) {
	log := zaptest.NewLogger(t)
	mm := &flakyMailer{}

	q := New(mm, log, 100*time.Millisecond)
	go q.Start()
	defer q.Stop()

	q.Add("apt-1", mailer.Message{To: "owner@test", Subject: "New Appointment Booking"})

	deadline := time.After(2 * time.Second)
	for mm.deliveredCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("queued notification was never delivered")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestQueueRetriesThenSucceeds(t *testing.T) {
	log := zaptest.NewLogger(t)
	mm := &flakyMailer{failUntil: 2}

	q := New(mm, log, 50*time.Millisecond)
	go q.Start()
	defer q.Stop()

	q.Add("apt-2", mailer.Message{To: "owner@test"})

	deadline := time.After(2 * time.Second)
	for mm.deliveredCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("notification not delivered after transient failures")
		case <-time.After(25 * time.Millisecond):
		}
	}
}

func TestQueueDropsAfterMaxAttempts(t *testing.T) {
	log := zaptest.NewLogger(t)
	mm := &flakyMailer{failUntil: 1000}

	q := New(mm, log, 20*time.Millisecond)
	go q.Start()

	q.Add("apt-3", mailer.Message{To: "owner@test"})
	time.Sleep(300 * time.Millisecond)
	q.Stop()
	time.Sleep(50 * time.Millisecond)

	mm.mu.Lock()
	calls := mm.calls
	mm.mu.Unlock()
	if calls != maxAttempts {
		t.Errorf("expected exactly %d attempts before dropping, got %d", maxAttempts, calls)
	}
}

func TestQueueFlushesOnStop(t *testing.T) {
	log := zaptest.NewLogger(t)
	mm := &flakyMailer{}

	q := New(mm, log, time.Hour) // ticker never fires during the test
	go q.Start()

	q.Add("apt-4", mailer.Message{To: "owner@test"})
	time.Sleep(50 * time.Millisecond)
	q.Stop()
	time.Sleep(100 * time.Millisecond)

	if mm.deliveredCount() != 1 {
		t.Errorf("expected final flush on stop, delivered %d", mm.deliveredCount())
	}
}
