package service

import (
	"context"
	"strconv"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
)

// feedPager walks the external bank feed newest first. Tax ingestion and the
// record cache share it.
type feedPager struct {
	feed    ports.BankFeed
	timeout time.Duration
}

// walk fetches pages starting at 1 and hands every record to visit once. It
// stops after the page where a record at or below cursor appears, when the
// feed reports no further pages, or after maxPages. complete is false only in
// the last case. Page boundaries shift when rows arrive mid-walk, so a record
// already visited can come back on the next page; it is skipped.
func (p feedPager) walk(
	ctx context.Context,
	creds domain.Credentials,
	allianceID, cursor int64,
	maxPages, pageSize int,
	visit func(domain.BankRecord),
) (scanned int, complete bool, err error) {
	seen := make(map[int64]struct{})
	for page := 1; page <= maxPages; page++ {
		res, err := p.fetch(ctx, creds, allianceID, page, pageSize)
		if err != nil {
			return scanned, false, apperror.ErrFeedUnavailable(err).WithDetail("page", strconv.Itoa(page))
		}
		scanned++

		reachedCursor := false
		for _, rec := range res.Records {
			if rec.ID <= cursor {
				reachedCursor = true
			}
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			visit(rec)
		}
		if reachedCursor || !res.HasMore || len(res.Records) == 0 {
			return scanned, true, nil
		}
	}
	return scanned, false, nil
}

func (p feedPager) fetch(ctx context.Context, creds domain.Credentials, allianceID int64, page, pageSize int) (*domain.BankPage, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.feed.BankRecords(ctx, creds, allianceID, page, pageSize)
}
