// Package email contains the outbound mail transport adapters. Each adapter
// implements the same Send contract and reports failures through
// domain.DeliveryResult rather than returning errors, so the delivery queue
// can apply one retry policy across providers.
package email

import (
	"context"

	"github.com/frental-api/internal/domain"
)

// Sender is one swappable mail transport.
type Sender interface {
	// Send submits one message. The context carries the per-attempt timeout.
	Send(ctx context.Context, to, subject, htmlBody string) domain.DeliveryResult
}
