package pnw

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alliance-bank/config"
	"alliance-bank/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = domain.Credentials{APIKey: "alliance-key", BotKey: "bot-key"}

// capture records the last request the fake API received.
type capture struct {
	query   string
	apiKey  string
	header  string
	botKey  string
	method  string
	content string
}

func newTestServer(t *testing.T, status int, body string) (*Client, *capture) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req graphQLRequest
		_ = json.Unmarshal(raw, &req)
		c.query = req.Query
		c.apiKey = r.URL.Query().Get("api_key")
		c.header = r.Header.Get("X-Api-Key")
		c.botKey = r.Header.Get("X-Bot-Key")
		c.method = r.Method
		c.content = r.Header.Get("Content-Type")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := config.PNWConfig{BaseURL: srv.URL + "/graphql", Timeout: 5 * time.Second}
	return NewClient(cfg, srv.Client(), zerolog.Nop()), c
}

func TestWithdraw_Success(t *testing.T) {
	client, got := newTestServer(t, http.StatusOK, `{"data":{"bankWithdraw":{"id":"98765"}}}`)

	order := domain.PaymentOrder{
		Recipient: domain.Recipient{Kind: domain.RecipientAlliance, ExternalID: 77},
		Resources: domain.Bag{domain.Money: decimal.NewFromInt(1000), domain.Steel: decimal.RequireFromString("12.5")},
		Note:      `payout "weekly"`,
	}

	ref, err := client.Withdraw(context.Background(), testCreds, order)
	require.NoError(t, err)
	assert.Equal(t, "98765", ref)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.content)
	assert.Equal(t, "alliance-key", got.apiKey)
	assert.Equal(t, "alliance-key", got.header)
	assert.Equal(t, "bot-key", got.botKey)
	assert.Contains(t, got.query, "bankWithdraw(receiver: 77, receiver_type: 2, money: 1000, steel: 12.5")
	assert.Contains(t, got.query, `note: "payout \"weekly\""`)
}

func TestWithdraw_NumericID(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"data":{"bankWithdraw":{"id":123}}}`)

	order := domain.PaymentOrder{
		Recipient: domain.Recipient{Kind: domain.RecipientNation, ExternalID: 5},
		Resources: domain.Bag{domain.Food: decimal.NewFromInt(3)},
	}
	ref, err := client.Withdraw(context.Background(), testCreds, order)
	require.NoError(t, err)
	assert.Equal(t, "123", ref)
}

func TestWithdraw_Failures(t *testing.T) {
	order := domain.PaymentOrder{
		Recipient: domain.Recipient{Kind: domain.RecipientNation, ExternalID: 5},
		Resources: domain.Bag{domain.Money: decimal.NewFromInt(10)},
	}

	tests := []struct {
		name   string
		status int
		body   string
		remote bool
	}{
		{"graphql errors", http.StatusOK, `{"errors":[{"message":"insufficient funds in bank"}]}`, true},
		{"no id", http.StatusOK, `{"data":{"bankWithdraw":{"id":""}}}`, true},
		{"null result", http.StatusOK, `{"data":{"bankWithdraw":null}}`, true},
		{"server error", http.StatusBadGateway, `upstream down`, true},
		{"garbage", http.StatusOK, `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, tt.status, tt.body)

			_, err := client.Withdraw(context.Background(), testCreds, order)
			require.Error(t, err)
			var remote *RemoteError
			assert.Equal(t, tt.remote, errors.As(err, &remote))
		})
	}
}

func TestWithdraw_MissingAPIKey(t *testing.T) {
	client, got := newTestServer(t, http.StatusOK, `{}`)

	order := domain.PaymentOrder{
		Recipient: domain.Recipient{Kind: domain.RecipientNation, ExternalID: 5},
		Resources: domain.Bag{domain.Money: decimal.NewFromInt(10)},
	}
	_, err := client.Withdraw(context.Background(), domain.Credentials{BotKey: "bot"}, order)
	assert.Error(t, err)
	assert.Empty(t, got.method, "no request without a key")
}

func TestWithdraw_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(config.PNWConfig{BaseURL: srv.URL, Timeout: time.Minute}, srv.Client(), zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	order := domain.PaymentOrder{
		Recipient: domain.Recipient{Kind: domain.RecipientNation, ExternalID: 5},
		Resources: domain.Bag{domain.Money: decimal.NewFromInt(10)},
	}
	_, err := client.Withdraw(ctx, testCreds, order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestBankRecords_DecodesPage(t *testing.T) {
	body := `{"data":{"bankrecs":{
		"paginatorInfo":{"currentPage":2,"hasMorePages":true},
		"data":[
			{"id":"105","date":"2026-01-02T03:04:05+00:00","sender_id":"11","sender_type":1,
			 "receiver_id":"900","receiver_type":2,"note":"Automated Tax","tax_id":"4",
			 "money":1500.25,"food":"20","coal":0,"steel":null},
			{"id":104,"date":"2026-01-01T00:00:00+00:00","sender_id":900,"sender_type":2,
			 "receiver_id":12,"receiver_type":1,"note":"payout","tax_id":null,"aluminum":3}
		]}}}`
	client, got := newTestServer(t, http.StatusOK, body)

	page, err := client.BankRecords(context.Background(), testCreds, 900, 2, 50)
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.True(t, page.HasMore)
	require.Len(t, page.Records, 2)

	first := page.Records[0]
	assert.Equal(t, int64(105), first.ID)
	assert.Equal(t, int64(11), first.SenderID)
	assert.Equal(t, domain.PartyNation, first.SenderType)
	assert.Equal(t, int64(900), first.ReceiverID)
	assert.Equal(t, domain.PartyAlliance, first.ReceiverType)
	assert.Equal(t, int64(4), first.TaxID)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(first.Resources.Get(domain.Money)))
	assert.True(t, decimal.NewFromInt(20).Equal(first.Resources.Get(domain.Food)))
	assert.Equal(t, []domain.Resource{domain.Money, domain.Food}, first.Resources.Resources())
	assert.Equal(t, 2026, first.Date.Year())

	second := page.Records[1]
	assert.Equal(t, int64(104), second.ID)
	assert.Zero(t, second.TaxID)

	assert.Contains(t, got.query, "bankrecs(or_id: [900], first: 50, page: 2")
	assert.Contains(t, got.query, "paginatorInfo { currentPage hasMorePages }")
	assert.True(t, strings.Contains(got.query, "munitions steel aluminum"))
}

func TestBankRecords_BadID(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK,
		`{"data":{"bankrecs":{"paginatorInfo":{"currentPage":1,"hasMorePages":false},"data":[{"id":"abc"}]}}}`)

	_, err := client.BankRecords(context.Background(), testCreds, 900, 1, 50)
	assert.Error(t, err)
}

func TestBankRecords_RemoteError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"errors":[{"message":"invalid api key"}]}`)

	_, err := client.BankRecords(context.Background(), testCreds, 900, 1, 50)
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Contains(t, remote.Error(), "invalid api key")
}
