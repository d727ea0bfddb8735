package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(typ domain.WithdrawalEventType) domain.WithdrawalEvent {
	ref := "bankrec-5"
	return domain.WithdrawalEvent{
		Type: typ,
		Request: domain.WithdrawalRequest{
			ID:          uuid.MustParse("7d3c1d2e-8f1a-4c55-9a57-0e1f2a3b4c5d"),
			Recipient:   domain.Recipient{Kind: domain.RecipientNation, ExternalID: 42},
			Resources:   bagOf(domain.Money, "250", domain.Steel, "3"),
			Status:      domain.WithdrawalPaid,
			ExternalRef: &ref,
		},
		OccurredAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWebhookNotifier_DeliversSignedPayload(t *testing.T) {
	type delivery struct {
		body      []byte
		signature string
	}
	received := make(chan delivery, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- delivery{body: body, signature: r.Header.Get(SignatureHeader)}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "hook-secret", srv.Client(), nil, zerolog.Nop())
	n.Notify(context.Background(), testEvent(domain.EventWithdrawalPaid))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, n.Wait(ctx))

	d := <-received
	assert.Equal(t, n.Sign(d.body), d.signature)

	var got notification
	require.NoError(t, json.Unmarshal(d.body, &got))
	assert.Equal(t, domain.EventWithdrawalPaid, got.Event.Type)
	assert.Equal(t, "Withdrawal 7d3c1d2e-8f1a-4c55-9a57-0e1f2a3b4c5d paid (bankrec-5): 250 money, 3 steel to nation 42", got.Content)
}

func TestWebhookNotifier_RetriesUntilSuccess(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "s", srv.Client(), []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}, zerolog.Nop())
	n.Notify(context.Background(), testEvent(domain.EventWithdrawalRequested))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, n.Wait(ctx))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestWebhookNotifier_GivesUp(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "s", srv.Client(), []time.Duration{time.Millisecond}, zerolog.Nop())
	n.Notify(context.Background(), testEvent(domain.EventWithdrawalFollowUp))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, n.Wait(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestDescribe(t *testing.T) {
	reason := "payment outcome unknown: timed out"
	ev := testEvent(domain.EventWithdrawalFollowUp)
	ev.Request.FailureReason = &reason

	assert.Contains(t, describe(ev), "manual follow-up required: payment outcome unknown: timed out")
	assert.Contains(t, describe(testEvent(domain.EventWithdrawalReconcile)), "RECONCILE")
	assert.Contains(t, describe(testEvent(domain.EventWithdrawalRequested)), "New withdrawal request")
}
