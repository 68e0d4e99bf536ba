// Package delivery implements the outbound notification pipeline: a single
// in-process FIFO queue drained by one worker goroutine, with
// primary-then-fallback transport routing and bounded retry.
//
// Delivery is best effort. Jobs live only in memory; nothing is replayed
// after a restart, and a job that exhausts its retries is dropped with a
// terminal log line. Callers never learn the outcome of a send; the queue
// exists so requests do not wait on mail providers.
package delivery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/infrastructure/email"
)

// Options configures a Queue. Zero-value retry fields fall back to the
// documented defaults (3 attempts, 2s delay, 10s per-send timeout).
type Options struct {
	Primary     email.Sender
	Fallback    email.Sender
	SkipEmails  bool
	MaxRetries  int
	RetryDelay  time.Duration
	SendTimeout time.Duration
}

// Queue owns the pending-job list. The list is private: producers interact
// only through the Queue* methods and the single worker goroutine is the
// only consumer, so at most one send is ever in flight.
type Queue struct {
	primary     email.Sender
	fallback    email.Sender
	skip        bool
	maxRetries  int
	retryDelay  time.Duration
	sendTimeout time.Duration

	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []*domain.DeliveryJob
	closed bool

	stopped chan struct{}
}

func NewQueue(opts Options) *Queue {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	q := &Queue{
		primary:     opts.Primary,
		fallback:    opts.Fallback,
		skip:        opts.SkipEmails,
		maxRetries:  opts.MaxRetries,
		retryDelay:  opts.RetryDelay,
		sendTimeout: opts.SendTimeout,
		stopped:     make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// QueueVerificationNotice enqueues the email-verification notice.
// Fire-and-forget: it never blocks on, or reports, the delivery outcome.
func (q *Queue) QueueVerificationNotice(to, code, displayName string) {
	body, err := renderNotice(verificationTmpl, noticeData{Name: displayName, Code: code})
	if err != nil {
		slog.Error("render verification notice", "err", err)
		return
	}
	q.enqueue(&domain.DeliveryJob{
		Recipient: to,
		Purpose:   domain.PurposeVerification,
		Subject:   subjectVerification,
		HTMLBody:  body,
	})
}

// QueuePasswordResetNotice enqueues the password-reset notice.
func (q *Queue) QueuePasswordResetNotice(to, code, displayName string) {
	body, err := renderNotice(passwordResetTmpl, noticeData{Name: displayName, Code: code})
	if err != nil {
		slog.Error("render password reset notice", "err", err)
		return
	}
	q.enqueue(&domain.DeliveryJob{
		Recipient: to,
		Purpose:   domain.PurposePasswordReset,
		Subject:   subjectPasswordReset,
		HTMLBody:  body,
	})
}

// QueuePasswordChangedNotice enqueues the password-changed confirmation.
func (q *Queue) QueuePasswordChangedNotice(to, displayName string) {
	body, err := renderNotice(passwordChangedTmpl, noticeData{Name: displayName})
	if err != nil {
		slog.Error("render password changed notice", "err", err)
		return
	}
	q.enqueue(&domain.DeliveryJob{
		Recipient: to,
		Purpose:   domain.PurposePasswordChanged,
		Subject:   subjectPasswordChanged,
		HTMLBody:  body,
	})
}

// Close stops the worker. Pending jobs are abandoned; delivery is best
// effort by contract.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	<-q.stopped
}

// enqueue appends a job to the tail. Skip mode is enforced here, at the
// outermost boundary, so no adapter is ever touched in non-prod environments.
func (q *Queue) enqueue(job *domain.DeliveryJob) {
	if q.skip {
		res := domain.DeliveryResult{Success: true, Skipped: true}
		slog.Info("email delivery skipped",
			"to", job.Recipient, "purpose", job.Purpose, "skipped", res.Skipped)
		return
	}
	q.push(job)
}

func (q *Queue) push(job *domain.DeliveryJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.jobs = append(q.jobs, job)
	q.cond.Signal()
}

// pop blocks until a job is available or the queue is closed.
func (q *Queue) pop() *domain.DeliveryJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return nil
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job
}

// run is the single worker loop: strict FIFO, one send in flight at a time.
// Failed jobs are requeued to the tail after retryDelay so retries are never
// expedited ahead of new jobs' first attempt.
func (q *Queue) run() {
	defer close(q.stopped)
	for {
		job := q.pop()
		if job == nil {
			return
		}
		res := q.attempt(job)
		if res.Success {
			slog.Info("email delivered",
				"to", job.Recipient, "purpose", job.Purpose,
				"provider", res.Provider, "attempts", job.Attempts+1)
			continue
		}
		job.Attempts++
		if job.Attempts >= q.maxRetries {
			slog.Error("email discarded after max retries",
				"to", job.Recipient, "purpose", job.Purpose,
				"attempts", job.Attempts, "kind", res.Kind, "detail", res.Detail)
			continue
		}
		slog.Warn("email send failed, retry scheduled",
			"to", job.Recipient, "purpose", job.Purpose,
			"attempts", job.Attempts, "kind", res.Kind, "delay", q.retryDelay)
		time.AfterFunc(q.retryDelay, func() { q.push(job) })
	}
}

// attempt tries the primary transport, then the fallback exactly once on any
// primary failure. Each transport call carries its own hard timeout.
func (q *Queue) attempt(job *domain.DeliveryJob) domain.DeliveryResult {
	ctx, cancel := context.WithTimeout(context.Background(), q.sendTimeout)
	defer cancel()

	res := q.primary.Send(ctx, job.Recipient, job.Subject, job.HTMLBody)
	if res.Success {
		return res
	}
	slog.Warn("primary transport failed, trying fallback",
		"to", job.Recipient, "provider", res.Provider, "kind", res.Kind)

	fctx, fcancel := context.WithTimeout(context.Background(), q.sendTimeout)
	defer fcancel()
	return q.fallback.Send(fctx, job.Recipient, job.Subject, job.HTMLBody)
}
