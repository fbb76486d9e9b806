package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip/hostel-fest-payments/models"
)

func TestGenerateETag(t *testing.T) {
	a, err := GenerateETag(map[string]int{"x": 1})
	require.NoError(t, err)
	b, err := GenerateETag(map[string]int{"x": 1})
	require.NoError(t, err)
	c, err := GenerateETag(map[string]int{"x": 2})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^"[0-9a-f]{32}"$`, a)
}

func TestEmailSender_PostsZeptoPayload(t *testing.T) {
	var got emailRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewEmailSender(EmailConfig{APIURL: srv.URL, APIKey: "key", From: "fest@hostel.example"})
	err := s.Send(context.Background(),
		models.User{ID: 2, Name: "Priya", Email: "priya@example.com"},
		models.Notification{Type: models.NotificationPaymentSuccess, Message: "paid <ok>", Timestamp: time.Now()},
	)
	require.NoError(t, err)

	assert.Equal(t, "key", auth)
	assert.Equal(t, "fest@hostel.example", got.From.Address)
	require.Len(t, got.To, 1)
	assert.Equal(t, "priya@example.com", got.To[0].Email.Address)
	assert.Equal(t, "Payment received", got.Subject)
	assert.Equal(t, "<p>paid &lt;ok&gt;</p>", got.HtmlBody)
}

func TestEmailSender_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewEmailSender(EmailConfig{APIURL: srv.URL, APIKey: "key", From: "f@x"})
	err := s.Send(context.Background(), models.User{Email: "a@x"}, models.Notification{})
	assert.ErrorContains(t, err, "zeptomail API error")

	err = s.Send(context.Background(), models.User{ID: 9}, models.Notification{})
	assert.ErrorContains(t, err, "no email")

	err = SendEmail(context.Background(), http.DefaultClient, EmailConfig{}, "a@x", "", "s", "b")
	assert.ErrorContains(t, err, "missing required email config")
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), models.User{}, models.Notification{}))
}
