package delivery

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frental-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSender scripts per-call results and records concurrency.
type stubSender struct {
	mu      sync.Mutex
	results []domain.DeliveryResult // consumed one per call; last one repeats
	calls   int32

	inFlight    int32
	maxInFlight int32
	holdFor     time.Duration
}

func (s *stubSender) Send(ctx context.Context, to, subject, htmlBody string) domain.DeliveryResult {
	cur := atomic.AddInt32(&s.inFlight, 1)
	for {
		max := atomic.LoadInt32(&s.maxInFlight)
		if cur <= max || atomic.CompareAndSwapInt32(&s.maxInFlight, max, cur) {
			break
		}
	}
	if s.holdFor > 0 {
		time.Sleep(s.holdFor)
	}
	atomic.AddInt32(&s.inFlight, -1)

	n := atomic.AddInt32(&s.calls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := int(n) - 1
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx]
}

func (s *stubSender) callCount() int { return int(atomic.LoadInt32(&s.calls)) }

func ok(provider string) domain.DeliveryResult {
	return domain.DeliveryResult{Success: true, Provider: provider}
}

func fail(provider string, kind domain.ErrorKind) domain.DeliveryResult {
	return domain.DeliveryResult{Provider: provider, Kind: kind}
}

func newTestQueue(primary, fallback *stubSender, skip bool) *Queue {
	return NewQueue(Options{
		Primary:     primary,
		Fallback:    fallback,
		SkipEmails:  skip,
		MaxRetries:  3,
		RetryDelay:  5 * time.Millisecond,
		SendTimeout: time.Second,
	})
}

func TestQueue_PrimarySuccess_NoFallbackNoRetry(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{ok("brevo")}}
	fallback := &stubSender{results: []domain.DeliveryResult{ok("smtp")}}
	q := newTestQueue(primary, fallback, false)
	defer q.Close()

	q.QueueVerificationNotice("a@b.com", "123456", "Jane Doe")

	require.Eventually(t, func() bool { return primary.callCount() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, primary.callCount(), "delivered job must not be attempted again")
	assert.Equal(t, 0, fallback.callCount())
}

func TestQueue_PrimaryFails_FallbackInvokedExactlyOnce(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{fail("brevo", domain.ErrKindProviderUnreachable)}}
	fallback := &stubSender{results: []domain.DeliveryResult{ok("smtp")}}
	q := newTestQueue(primary, fallback, false)
	defer q.Close()

	q.QueuePasswordResetNotice("a@b.com", "654321", "Jane Doe")

	require.Eventually(t, func() bool { return fallback.callCount() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, primary.callCount())
	assert.Equal(t, 1, fallback.callCount(), "fallback success must end the job")
}

func TestQueue_BothFail_RetriesUpToCeilingThenDiscards(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{fail("brevo", domain.ErrKindProviderRejected)}}
	fallback := &stubSender{results: []domain.DeliveryResult{fail("smtp", domain.ErrKindProviderUnreachable)}}
	q := newTestQueue(primary, fallback, false)
	defer q.Close()

	q.QueueVerificationNotice("a@b.com", "123456", "Jane Doe")

	// MaxRetries=3 means exactly 3 attempts, each trying both transports.
	require.Eventually(t, func() bool { return primary.callCount() == 3 }, time.Second, time.Millisecond)
	// No resurrection: give several retry windows and confirm no 4th attempt.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, primary.callCount())
	assert.Equal(t, 3, fallback.callCount())
}

func TestQueue_SucceedsOnRetry_StopsImmediately(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{
		fail("brevo", domain.ErrKindTimeout),
		ok("brevo"),
	}}
	fallback := &stubSender{results: []domain.DeliveryResult{fail("smtp", domain.ErrKindConfigurationMissing)}}
	q := newTestQueue(primary, fallback, false)
	defer q.Close()

	q.QueueVerificationNotice("a@b.com", "123456", "Jane Doe")

	require.Eventually(t, func() bool { return primary.callCount() == 2 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, primary.callCount(), "no further attempts after success on retry")
	assert.Equal(t, 1, fallback.callCount())
}

func TestQueue_NeverMoreThanOneSendInFlight(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{ok("brevo")}, holdFor: 2 * time.Millisecond}
	fallback := &stubSender{results: []domain.DeliveryResult{ok("smtp")}}
	q := newTestQueue(primary, fallback, false)
	defer q.Close()

	for i := 0; i < 10; i++ {
		q.QueuePasswordChangedNotice("a@b.com", "Jane Doe")
	}

	require.Eventually(t, func() bool { return primary.callCount() == 10 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&primary.maxInFlight),
		"worker must serialize sends")
}

func TestQueue_SkipMode_NoAdapterCalls(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{ok("brevo")}}
	fallback := &stubSender{results: []domain.DeliveryResult{ok("smtp")}}
	q := newTestQueue(primary, fallback, true)
	defer q.Close()

	q.QueueVerificationNotice("a@b.com", "123456", "Jane Doe")
	q.QueuePasswordResetNotice("a@b.com", "654321", "Jane Doe")
	q.QueuePasswordChangedNotice("a@b.com", "Jane Doe")

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, primary.callCount())
	assert.Equal(t, 0, fallback.callCount())
}

func TestQueue_EnqueueReturnsBeforeSendResolves(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{ok("brevo")}, holdFor: 200 * time.Millisecond}
	fallback := &stubSender{results: []domain.DeliveryResult{ok("smtp")}}
	q := newTestQueue(primary, fallback, false)
	defer q.Close()

	start := time.Now()
	q.QueueVerificationNotice("a@b.com", "123456", "Jane Doe")
	assert.Less(t, time.Since(start), 50*time.Millisecond,
		"enqueue must not wait on the transport")
}

func TestQueue_CloseStopsWorker(t *testing.T) {
	primary := &stubSender{results: []domain.DeliveryResult{ok("brevo")}}
	fallback := &stubSender{results: []domain.DeliveryResult{ok("smtp")}}
	q := newTestQueue(primary, fallback, false)

	q.Close()
	// Close is idempotent and enqueue after close must not panic.
	q.Close()
	q.QueueVerificationNotice("a@b.com", "123456", "Jane Doe")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, primary.callCount())
}
