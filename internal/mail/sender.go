package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Sender delivers templated HTML mail through the SendGrid v3 API.
type Sender struct {
	apiKey    string
	fromEmail string
	fromName  string
	client    *http.Client
}

func NewSender(apiKey, fromEmail, fromName string) *Sender {
	return &Sender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type sendReq struct {
	Personalizations []struct {
		To []addr `json:"to"`
	} `json:"personalizations"`
	From    addr   `json:"from"`
	Subject string `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

type addr struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (s *Sender) Send(ctx context.Context, to, subject, html string) error {
	var body sendReq
	body.Personalizations = append(body.Personalizations, struct {
		To []addr `json:"to"`
	}{To: []addr{{Email: to}}})
	body.From = addr{Email: s.fromEmail, Name: s.fromName}
	body.Subject = subject
	body.Content = append(body.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/html", Value: html})

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendEndpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
