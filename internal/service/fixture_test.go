package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testAllianceID int64 = 4221

var testCreds = domain.Credentials{APIKey: "api-key", BotKey: "bot-key"}

type fixture struct {
	store   *memStore
	payer   *fakePayer
	feed    *fakeFeed
	metrics *Metrics
	events  *recordingNotifier

	ledger      ports.LedgerService
	withdrawals ports.WithdrawalService
	tax         ports.TaxService
	bank        ports.BankCacheService

	member domain.Member
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	withdrawal WithdrawalOptions
	ingest     IngestOptions
	creds      ports.CredentialProvider
	payer      ports.PaymentGateway
}

func withReservation(on bool) fixtureOption {
	return func(c *fixtureConfig) { c.withdrawal.ReserveOutstanding = on }
}

func withPaymentTimeout(d time.Duration) fixtureOption {
	return func(c *fixtureConfig) { c.withdrawal.PaymentTimeout = d }
}

func withCreds(p ports.CredentialProvider) fixtureOption {
	return func(c *fixtureConfig) { c.creds = p }
}

func withPayer(p ports.PaymentGateway) fixtureOption {
	return func(c *fixtureConfig) { c.payer = p }
}

// withIngest sets the tax walk page limit and page size. A zero limit takes the default.
func withIngest(pageLimit, pageSize int) fixtureOption {
	return func(c *fixtureConfig) { c.ingest = IngestOptions{PageLimit: pageLimit, PageSize: pageSize} }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	f := &fixture{
		store:   newMemStore(),
		payer:   &fakePayer{},
		feed:    &fakeFeed{},
		metrics: NewMetrics(prometheus.NewRegistry()),
		events:  &recordingNotifier{},
	}
	cfg := fixtureConfig{
		withdrawal: WithdrawalOptions{PaymentTimeout: 2 * time.Second},
		ingest:     IngestOptions{PageLimit: 10, PageSize: 50},
		creds:      staticCreds{creds: testCreds},
		payer:      f.payer,
	}
	for _, o := range opts {
		o(&cfg)
	}

	members := memMembers{f.store}
	f.ledger = NewLedgerService(members, memAccounts{f.store}, memEntries{f.store}, f.store, zerolog.Nop())
	f.withdrawals = NewWithdrawalService(
		members, memAccounts{f.store}, memWithdrawals{f.store}, f.ledger,
		cfg.creds, cfg.payer, f.store, f.metrics, f.events, cfg.withdrawal, zerolog.Nop(),
	)
	f.tax = NewTaxService(
		cfg.creds, f.feed, memCursors{f.store}, memTreasury{f.store}, f.store,
		f.metrics, cfg.ingest, time.Second, zerolog.Nop(),
	)
	f.bank = NewBankCacheService(
		cfg.creds, f.feed, memRecords{f.store}, memCursors{f.store}, f.store,
		f.metrics, time.Second, zerolog.Nop(),
	)

	f.member = f.addMember(t, "discord-1", 1001)
	return f
}

func (f *fixture) addMember(t *testing.T, discordID string, nationID int64) domain.Member {
	t.Helper()
	m := domain.Member{
		ID:         uuid.New(),
		DiscordID:  discordID,
		NationID:   nationID,
		AllianceID: testAllianceID,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, memMembers{f.store}.Create(context.Background(), &m))
	return m
}

// fund credits a member through the ledger.
func (f *fixture) fund(t *testing.T, memberID uuid.UUID, bag domain.Bag) {
	t.Helper()
	for _, r := range bag.Resources() {
		_, err := f.ledger.Adjust(context.Background(), domain.Adjustment{
			MemberID: memberID,
			Resource: r,
			Amount:   bag[r],
			Actor:    "banker",
		})
		require.NoError(t, err)
	}
}

func (f *fixture) balance(t *testing.T, memberID uuid.UUID) domain.Bag {
	t.Helper()
	bag, err := f.ledger.GetBalance(context.Background(), memberID)
	require.NoError(t, err)
	return bag
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bagOf(pairs ...any) domain.Bag {
	out := domain.Bag{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = out.Add(domain.Bag{pairs[i].(domain.Resource): dec(pairs[i+1].(string))})
	}
	return out
}

func payloadFor(bag domain.Bag) domain.WithdrawalPayload {
	return domain.WithdrawalPayload{
		Resources: bag,
		Recipient: domain.Recipient{Kind: domain.RecipientNation, ExternalID: 777},
	}
}

func requireCode(t *testing.T, err error, code string) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
