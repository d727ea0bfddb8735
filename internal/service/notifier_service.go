package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/rs/zerolog"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-Alliance-Bank-Signature"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// notification is the JSON body posted to the webhook. Content is rendered for
// chat webhooks; Event carries the structured data.
type notification struct {
	Content string                 `json:"content"`
	Event   domain.WithdrawalEvent `json:"event"`
}

// WebhookNotifier implements ports.Notifier by posting signed JSON to a
// webhook URL, retrying in the background.
type WebhookNotifier struct {
	url        string
	secret     []byte
	httpClient HTTPClient
	intervals  []time.Duration
	log        zerolog.Logger
	wg         sync.WaitGroup
}

// NewWebhookNotifier creates a notifier. intervals are the waits before each
// retry; an empty list means a single attempt.
func NewWebhookNotifier(url, secret string, httpClient HTTPClient, intervals []time.Duration, log zerolog.Logger) *WebhookNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{
		url:        url,
		secret:     []byte(secret),
		httpClient: httpClient,
		intervals:  intervals,
		log:        log.With().Str("component", "notifier").Logger(),
	}
}

// Notify queues delivery and returns immediately.
func (n *WebhookNotifier) Notify(_ context.Context, event domain.WithdrawalEvent) {
	body, err := json.Marshal(notification{Content: describe(event), Event: event})
	if err != nil {
		n.log.Error().Err(err).Str("request_id", event.Request.ID.String()).Msg("notify: failed to marshal event")
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliverWithRetries(body, event)
	}()
}

// Wait blocks until queued deliveries finish, or ctx ends.
func (n *WebhookNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sign computes HMAC-SHA256 of body and returns lowercase hex.
func (n *WebhookNotifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, n.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (n *WebhookNotifier) deliverWithRetries(body []byte, event domain.WithdrawalEvent) {
	reqID := event.Request.ID.String()
	signature := n.Sign(body)

	for attempt := 0; attempt <= len(n.intervals); attempt++ {
		if attempt > 0 {
			time.Sleep(n.intervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.log.Error().Err(err).Str("request_id", reqID).Msg("notify: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(SignatureHeader, signature)

		resp, err := n.httpClient.Do(req)
		if err != nil {
			n.log.Warn().Err(err).Str("request_id", reqID).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Debug().Str("request_id", reqID).Str("event", string(event.Type)).Int("attempt", attempt+1).Msg("notify: delivered")
			return
		}

		n.log.Warn().Str("request_id", reqID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response")
	}

	n.log.Error().Str("request_id", reqID).Str("event", string(event.Type)).Msg("notify: all attempts exhausted")
}

func describe(event domain.WithdrawalEvent) string {
	req := event.Request
	var parts []string
	for _, r := range req.Resources.Resources() {
		parts = append(parts, fmt.Sprintf("%s %s", req.Resources[r].String(), r))
	}
	target := fmt.Sprintf("%s %d", strings.ToLower(string(req.Recipient.Kind)), req.Recipient.ExternalID)
	summary := fmt.Sprintf("%s to %s", strings.Join(parts, ", "), target)

	switch event.Type {
	case domain.EventWithdrawalRequested:
		return fmt.Sprintf("New withdrawal request %s: %s", req.ID, summary)
	case domain.EventWithdrawalPaid:
		ref := ""
		if req.ExternalRef != nil {
			ref = *req.ExternalRef
		}
		return fmt.Sprintf("Withdrawal %s paid (%s): %s", req.ID, ref, summary)
	case domain.EventWithdrawalRejected:
		return fmt.Sprintf("Withdrawal %s rejected", req.ID)
	case domain.EventWithdrawalCanceled:
		return fmt.Sprintf("Withdrawal %s canceled by requester", req.ID)
	case domain.EventWithdrawalFollowUp:
		reason := "unknown"
		if req.FailureReason != nil {
			reason = *req.FailureReason
		}
		return fmt.Sprintf("Withdrawal %s approved but not paid, manual follow-up required: %s", req.ID, reason)
	case domain.EventWithdrawalReconcile:
		return fmt.Sprintf("RECONCILE: withdrawal %s was paid externally but not settled locally: %s", req.ID, summary)
	}
	return fmt.Sprintf("Withdrawal %s: %s", req.ID, event.Type)
}
