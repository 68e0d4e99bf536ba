package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frental-api/internal/config"
	"github.com/frental-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brevoConfig(baseURL string) *config.Config {
	return &config.Config{
		BrevoAPIKey:  "test-key",
		BrevoBaseURL: baseURL,
		SenderEmail:  "noreply@frental.app",
		SenderName:   "Frental",
	}
}

func TestBrevoSend_Accepted(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, brevoSendPath, r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewBrevoSender(brevoConfig(srv.URL))
	res := s.Send(context.Background(), "jane@x.com", "Verify your email", "<p>hi</p>")

	assert.True(t, res.Success)
	assert.Equal(t, "brevo", res.Provider)
	require.Len(t, got.To, 1)
	assert.Equal(t, "jane@x.com", got.To[0].Email)
	assert.Equal(t, "noreply@frental.app", got.Sender.Email)
	assert.Equal(t, "Verify your email", got.Subject)
}

func TestBrevoSend_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"invalid_parameter"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewBrevoSender(brevoConfig(srv.URL))
	res := s.Send(context.Background(), "jane@x.com", "subject", "body")

	assert.False(t, res.Success)
	assert.Equal(t, domain.ErrKindProviderRejected, res.Kind)
	assert.Contains(t, res.Detail, "status 400")
}

func TestBrevoSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := NewBrevoSender(brevoConfig(srv.URL))
	res := s.Send(context.Background(), "jane@x.com", "subject", "body")

	assert.False(t, res.Success)
	assert.Equal(t, domain.ErrKindProviderUnreachable, res.Kind)
}

func TestBrevoSend_MissingConfig(t *testing.T) {
	s := NewBrevoSender(&config.Config{})
	res := s.Send(context.Background(), "jane@x.com", "subject", "body")

	assert.False(t, res.Success)
	assert.Equal(t, domain.ErrKindConfigurationMissing, res.Kind)
}
