//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopcore/internal/infra/gateway"
	"shopcore/internal/pkg/config"
	"shopcore/internal/usecase/shared"

	"github.com/stretchr/testify/suite"
)

type NotificationClientTestSuite struct {
	suite.Suite
}

func TestNotificationClientSuite(t *testing.T) {
	suite.Run(t, new(NotificationClientTestSuite))
}

func envelope() shared.Envelope {
	return shared.Envelope{
		EventType:      shared.EventOrderConfirmation,
		RecipientEmail: "customer@example.com",
		Data:           map[string]any{"orderNumber": "ORD-000042"},
		PublishedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *NotificationClientTestSuite) newClient(serverURL string) *gateway.NotificationClient {
	return gateway.NewNotificationClient(config.GatewayConfig{
		NotificationWebhookURL: serverURL + "/api/notifications/send",
		RequestTimeout:         time.Second,
	})
}

func (s *NotificationClientTestSuite) TestDeliver() {
	s.Run("success: posts the envelope to the webhook", func() {
		var received shared.Envelope
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal(http.MethodPost, r.Method)
			s.Equal("/api/notifications/send", r.URL.Path)
			s.Equal("application/json", r.Header.Get("Content-Type"))
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		err := s.newClient(server.URL).Deliver(context.Background(), envelope())
		s.Require().NoError(err)
		s.Equal(shared.EventOrderConfirmation, received.EventType)
		s.Equal("customer@example.com", received.RecipientEmail)
		s.Equal("ORD-000042", received.Data["orderNumber"])
	})

	s.Run("error: non-2xx response is surfaced", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		err := s.newClient(server.URL).Deliver(context.Background(), envelope())
		s.Require().Error(err)
		s.Contains(err.Error(), "502")
	})

	s.Run("error: missing recipient is rejected without a request", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.Fail("webhook must not be called")
		}))
		defer server.Close()

		bad := envelope()
		bad.RecipientEmail = ""
		err := s.newClient(server.URL).Deliver(context.Background(), bad)
		s.Require().Error(err)
	})
}
