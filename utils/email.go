package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phillip/hostel-fest-payments/models"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// EmailConfig points at a ZeptoMail-compatible HTTP API.
type EmailConfig struct {
	APIURL string // e.g. https://api.zeptomail.com/v1.1/email
	APIKey string // e.g. Zoho-enczapikey xxxxx
	From   string
}

func (c EmailConfig) Enabled() bool {
	return c.APIURL != "" && c.APIKey != "" && c.From != ""
}

// SendEmail sends an HTML email using the ZeptoMail HTTP API
func SendEmail(ctx context.Context, client *http.Client, cfg EmailConfig, to, toName, subject, body string) error {
	if !cfg.Enabled() {
		return fmt.Errorf("missing required email config")
	}

	payload := emailRequest{
		From: emailAddress{Address: cfg.From},
		To: []toRecipient{
			{
				Email: emailWithName{
					Address: to,
					Name:    toName,
				},
			},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", cfg.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}
	return nil
}

// Sender hands a logged notification to a delivery channel.
type Sender interface {
	Send(ctx context.Context, to models.User, n models.Notification) error
}

// LogSender only logs. Notifications stay simulated.
type LogSender struct {
	Log *slog.Logger
}

func (s LogSender) Send(ctx context.Context, to models.User, n models.Notification) error {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("simulated sms", "user_id", to.ID, "phone", to.Phone, "type", n.Type, "message", n.Message)
	return nil
}

// EmailSender mails each notification to the user's address.
type EmailSender struct {
	Config EmailConfig
	Client *http.Client
}

func NewEmailSender(cfg EmailConfig) *EmailSender {
	return &EmailSender{Config: cfg, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (s *EmailSender) Send(ctx context.Context, to models.User, n models.Notification) error {
	if to.Email == "" {
		return fmt.Errorf("user %d has no email", to.ID)
	}
	subject := "Payment reminder"
	if n.Type == models.NotificationPaymentSuccess {
		subject = "Payment received"
	}
	return SendEmail(ctx, s.Client, s.Config, to.Email, to.Name, subject, "<p>"+htmlEscape(n.Message)+"</p>")
}
