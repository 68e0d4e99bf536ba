package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/frental-api/internal/config"
	"github.com/frental-api/internal/domain"
)

const brevoSendPath = "/v3/smtp/email"

// BrevoSender submits mail through the Brevo transactional email REST API.
type BrevoSender struct {
	apiKey      string
	baseURL     string
	senderEmail string
	senderName  string
	client      *http.Client
}

func NewBrevoSender(cfg *config.Config) *BrevoSender {
	return &BrevoSender{
		apiKey:      cfg.BrevoAPIKey,
		baseURL:     cfg.BrevoBaseURL,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		client:      &http.Client{},
	}
}

type brevoPayload struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func (s *BrevoSender) Send(ctx context.Context, to, subject, htmlBody string) domain.DeliveryResult {
	if s.apiKey == "" || s.senderEmail == "" {
		return domain.DeliveryResult{
			Provider: "brevo",
			Kind:     domain.ErrKindConfigurationMissing,
			Detail:   "api key or sender email not configured",
		}
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      brevoAddress{Name: s.senderName, Email: s.senderEmail},
		To:          []brevoAddress{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return domain.DeliveryResult{Provider: "brevo", Kind: domain.ErrKindProviderRejected, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+brevoSendPath, bytes.NewReader(body))
	if err != nil {
		return domain.DeliveryResult{Provider: "brevo", Kind: domain.ErrKindProviderRejected, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		kind := domain.ErrKindProviderUnreachable
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.ErrKindTimeout
		}
		return domain.DeliveryResult{Provider: "brevo", Kind: kind, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.DeliveryResult{
			Provider: "brevo",
			Kind:     domain.ErrKindProviderRejected,
			Detail:   fmt.Sprintf("status %d: %s", resp.StatusCode, detail),
		}
	}
	return domain.DeliveryResult{Success: true, Provider: "brevo"}
}
