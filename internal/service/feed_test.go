package service

import (
	"context"
	"testing"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedPager_VisitsShiftedRecordOnce(t *testing.T) {
	feed := &fakeFeed{}
	for id := int64(1); id <= 4; id++ {
		feed.add(deposit(id, bagOf(domain.Money, "1")))
	}
	feed.arrive = map[int][]domain.BankRecord{1: {deposit(5, bagOf(domain.Money, "1"))}}

	var visited []int64
	pager := feedPager{feed: feed, timeout: time.Second}
	pages, complete, err := pager.walk(context.Background(), testCreds, testAllianceID, 0, 10, 2,
		func(rec domain.BankRecord) { visited = append(visited, rec.ID) })

	require.NoError(t, err)
	assert.True(t, complete)
	assert.Equal(t, 3, pages)
	assert.Equal(t, []int64{4, 3, 2, 1}, visited, "record 3 is served on pages 1 and 2")
}

func TestFeedPager_ReportsIncompleteAtPageBound(t *testing.T) {
	feed := &fakeFeed{}
	for id := int64(1); id <= 6; id++ {
		feed.add(deposit(id, bagOf(domain.Money, "1")))
	}
	pager := feedPager{feed: feed}

	pages, complete, err := pager.walk(context.Background(), testCreds, testAllianceID, 0, 2, 2, func(domain.BankRecord) {})
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.False(t, complete)

	pages, complete, err = pager.walk(context.Background(), testCreds, testAllianceID, 5, 2, 2, func(domain.BankRecord) {})
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.True(t, complete, "page 1 reaches the cursor")
}

func TestBankCacheService_ShiftedPageBoundaryInsertsOnce(t *testing.T) {
	f := newFixture(t)
	for id := int64(1); id <= 4; id++ {
		f.feed.add(deposit(id, bagOf(domain.Money, "1")))
	}
	f.feed.arrive = map[int][]domain.BankRecord{1: {deposit(5, bagOf(domain.Money, "1"))}}
	ctx := context.Background()

	res, err := f.bank.Ingest(ctx, testAllianceID, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Inserted)

	all, err := f.bank.Query(ctx, domain.RecordQuery{AllianceID: testAllianceID})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(all))
}
