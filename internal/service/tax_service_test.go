package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports/mocks"
	"alliance-bank/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// deposit is a nation paying into the test alliance.
func deposit(id int64, bag domain.Bag) domain.BankRecord {
	return domain.BankRecord{
		ID:           id,
		Date:         time.Date(2024, 3, 1, 0, 0, int(id), 0, time.UTC),
		SenderID:     9000 + id,
		SenderType:   domain.PartyNation,
		ReceiverID:   testAllianceID,
		ReceiverType: domain.PartyAlliance,
		Resources:    bag,
	}
}

// payout is the test alliance sending to a nation.
func payout(id int64, bag domain.Bag) domain.BankRecord {
	return domain.BankRecord{
		ID:           id,
		SenderID:     testAllianceID,
		SenderType:   domain.PartyAlliance,
		ReceiverID:   9000 + id,
		ReceiverType: domain.PartyNation,
		Resources:    bag,
	}
}

func (f *fixture) cursor(t *testing.T, kind domain.CursorKind) int64 {
	t.Helper()
	c, err := memCursors{f.store}.Get(context.Background(), kind, testAllianceID)
	require.NoError(t, err)
	return c
}

func TestTaxService_ApplyThenIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for id := int64(101); id <= 105; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "100")))
	}

	sum, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Count)
	assert.Equal(t, int64(105), sum.NewestID)
	assert.Equal(t, int64(105), sum.Cursor)
	assert.True(t, sum.Delta.Equal(bagOf(domain.Money, "500")))

	treasury, err := f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.Equal(bagOf(domain.Money, "500")))
	assert.Equal(t, int64(105), f.cursor(t, domain.CursorTax))

	again, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Count)
	assert.True(t, again.Delta.IsZero())
	assert.Equal(t, int64(105), again.Cursor)

	treasury, err = f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.Equal(bagOf(domain.Money, "500")))
	assert.Equal(t, 5.0, testutil.ToFloat64(f.metrics.taxRecords))
}

func TestTaxService_PreviewDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.feed.add(deposit(11, bagOf(domain.Food, "40", domain.Coal, "2")), deposit(12, bagOf(domain.Food, "10")))

	sum, err := f.tax.Preview(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, int64(12), sum.NewestID)
	assert.Equal(t, int64(0), sum.Cursor)
	assert.True(t, sum.Delta.Equal(bagOf(domain.Food, "50", domain.Coal, "2")))

	treasury, err := f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.IsZero())
	assert.Equal(t, int64(0), f.cursor(t, domain.CursorTax))
}

func TestTaxService_OnlyCountsIncomingAllianceRows(t *testing.T) {
	f := newFixture(t)
	ignored := deposit(4, bagOf(domain.Money, "1000"))
	ignored.Note = "refund #ignore"
	otherAlliance := deposit(5, bagOf(domain.Money, "1000"))
	otherAlliance.ReceiverID = testAllianceID + 1
	fromAlliance := deposit(6, bagOf(domain.Money, "1000"))
	fromAlliance.SenderType = domain.PartyAlliance

	f.feed.add(
		deposit(1, bagOf(domain.Money, "10")),
		payout(2, bagOf(domain.Money, "999")),
		deposit(3, bagOf(domain.Steel, "5")),
		ignored, otherAlliance, fromAlliance,
	)

	sum, err := f.tax.Apply(context.Background(), testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, int64(3), sum.NewestID)
	assert.True(t, sum.Delta.Equal(bagOf(domain.Money, "10", domain.Steel, "5")))
}

func TestTaxService_CursorOnlyMovesForward(t *testing.T) {
	f := newFixture(t, withIngest(10, 2))
	ctx := context.Background()

	f.feed.add(deposit(20, bagOf(domain.Money, "1")), deposit(21, bagOf(domain.Money, "1")))
	_, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	require.Equal(t, int64(21), f.cursor(t, domain.CursorTax))

	// A late record below the cursor is never credited and never rewinds it.
	f.feed.add(deposit(15, bagOf(domain.Money, "50")))
	sum, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Count)
	assert.Equal(t, int64(21), f.cursor(t, domain.CursorTax))

	f.feed.add(deposit(30, bagOf(domain.Money, "7")))
	sum, err = f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, int64(30), f.cursor(t, domain.CursorTax))

	treasury, err := f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.Equal(bagOf(domain.Money, "9")))
}

func TestTaxService_ConcurrentApplyCreditsOnce(t *testing.T) {
	f := newFixture(t)
	for id := int64(101); id <= 105; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "100")))
	}

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sum, err := f.tax.Apply(context.Background(), testAllianceID)
			if assert.NoError(t, err) {
				counts[i] = sum.Count
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 5, total)

	treasury, err := f.tax.Treasury(context.Background(), testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.Equal(bagOf(domain.Money, "500")))
	assert.Equal(t, int64(105), f.cursor(t, domain.CursorTax))
}

func TestTaxService_StopsAtCursorPage(t *testing.T) {
	f := newFixture(t, withIngest(10, 2))
	ctx := context.Background()
	for id := int64(1); id <= 6; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "1")))
	}
	_, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)

	f.feed.add(deposit(7, bagOf(domain.Money, "1")))
	before := len(f.feed.fetched())
	sum, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, []int{1}, f.feed.fetched()[before:], "page 1 already reaches the cursor")
}

func TestTaxService_ApplyWalksPastIngestPageBound(t *testing.T) {
	f := newFixture(t, withIngest(0, 2))
	ctx := context.Background()
	for id := int64(1); id <= 6; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "100")))
	}

	sum, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 6, sum.Count)
	assert.Equal(t, int64(6), sum.Cursor)
	assert.Equal(t, []int{1, 2, 3}, f.feed.fetched())

	treasury, err := f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.Equal(bagOf(domain.Money, "600")))
}

func TestTaxService_PageLimitFailsWithoutCrediting(t *testing.T) {
	f := newFixture(t, withIngest(1, 2))
	ctx := context.Background()
	for id := int64(1); id <= 6; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "100")))
	}

	_, err := f.tax.Apply(ctx, testAllianceID)
	requireCode(t, err, "EXT_004")
	_, err = f.tax.Preview(ctx, testAllianceID)
	requireCode(t, err, "EXT_004")

	assert.Equal(t, int64(0), f.cursor(t, domain.CursorTax))
	treasury, err := f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.IsZero())
}

func TestTaxService_ShiftedPageBoundaryCreditsOnce(t *testing.T) {
	f := newFixture(t, withIngest(0, 2))
	ctx := context.Background()
	for id := int64(1); id <= 4; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "100")))
	}
	// Record 5 lands after page 1, pushing record 3 onto page 2 as well.
	f.feed.arrive = map[int][]domain.BankRecord{1: {deposit(5, bagOf(domain.Money, "100"))}}

	sum, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, int64(4), sum.Cursor)
	assert.True(t, sum.Delta.Equal(bagOf(domain.Money, "400")))

	late, err := f.tax.Apply(ctx, testAllianceID)
	require.NoError(t, err)
	assert.Equal(t, 1, late.Count)
	assert.Equal(t, int64(5), late.Cursor)

	treasury, err := f.tax.Treasury(ctx, testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.Equal(bagOf(domain.Money, "500")))
}

func TestTaxService_FeedFailureChangesNothing(t *testing.T) {
	f := newFixture(t, withIngest(10, 2))
	for id := int64(1); id <= 6; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "1")))
	}
	f.feed.failAt = 2

	_, err := f.tax.Apply(context.Background(), testAllianceID)

	appErr := requireCode(t, err, "EXT_002")
	assert.Equal(t, "2", appErr.Details["page"])
	assert.Equal(t, int64(0), f.cursor(t, domain.CursorTax))
	treasury, err := f.tax.Treasury(context.Background(), testAllianceID)
	require.NoError(t, err)
	assert.True(t, treasury.IsZero())
}

func TestTaxService_MissingCredentials(t *testing.T) {
	f := newFixture(t, withCreds(staticCreds{err: apperror.ErrMissingCredentials(errors.New("no key"))}))

	_, err := f.tax.Preview(context.Background(), testAllianceID)
	requireCode(t, err, "EXT_003")
	assert.Empty(t, f.feed.fetched())
}

func TestTaxService_Apply_RollsBackOnCursorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := mocks.NewMockCredentialProvider(ctrl)
	feed := mocks.NewMockBankFeed(ctrl)
	cursors := mocks.NewMockCursorRepository(ctrl)
	treasury := mocks.NewMockTreasuryRepository(ctrl)
	transactor := mocks.NewMockDBTransactor(ctrl)
	tx := &trackingTx{}

	cursors.EXPECT().Get(gomock.Any(), domain.CursorTax, testAllianceID).Return(int64(0), nil)
	creds.EXPECT().ForAlliance(gomock.Any(), testAllianceID).Return(testCreds, nil)
	feed.EXPECT().BankRecords(gomock.Any(), testCreds, testAllianceID, 1, 50).Return(&domain.BankPage{
		Records: []domain.BankRecord{deposit(3, bagOf(domain.Oil, "8"))},
	}, nil)
	transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	cursors.EXPECT().GetForUpdate(gomock.Any(), tx, domain.CursorTax, testAllianceID).Return(int64(0), nil)
	treasury.EXPECT().CreditInTx(gomock.Any(), tx, testAllianceID, gomock.Any()).Return(nil)
	cursors.EXPECT().Advance(gomock.Any(), tx, domain.CursorTax, testAllianceID, int64(3)).Return(int64(0), errors.New("deadlock detected"))

	svc := NewTaxService(creds, feed, cursors, treasury, transactor, nil, IngestOptions{PageLimit: 5, PageSize: 50}, time.Second, zerolog.Nop())
	_, err := svc.Apply(context.Background(), testAllianceID)

	requireCode(t, err, "SYS_001")
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack, "credit and cursor advance commit together or not at all")
}
