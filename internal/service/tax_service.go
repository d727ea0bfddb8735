package service

import (
	"context"
	"fmt"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"

	"github.com/rs/zerolog"
)

// defaultTaxPageLimit caps one tax walk when IngestOptions leaves it unset.
const defaultTaxPageLimit = 1000

// IngestOptions shapes the tax walk of the external feed.
type IngestOptions struct {
	PageSize int
	// PageLimit caps the pages one walk may fetch. A walk that hits it before
	// reaching the cursor or the end of the feed fails without crediting.
	PageLimit int
}

// taxService implements ports.TaxService.
type taxService struct {
	creds      ports.CredentialProvider
	pager      feedPager
	cursors    ports.CursorRepository
	treasury   ports.TreasuryRepository
	transactor ports.DBTransactor
	metrics    *Metrics
	opts       IngestOptions
	log        zerolog.Logger
}

// NewTaxService creates the treasury ingestion service. feedTimeout bounds
// each page request.
func NewTaxService(
	creds ports.CredentialProvider,
	feed ports.BankFeed,
	cursors ports.CursorRepository,
	treasury ports.TreasuryRepository,
	transactor ports.DBTransactor,
	metrics *Metrics,
	opts IngestOptions,
	feedTimeout time.Duration,
	log zerolog.Logger,
) ports.TaxService {
	if opts.PageLimit <= 0 {
		opts.PageLimit = defaultTaxPageLimit
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	return &taxService{
		creds:      creds,
		pager:      feedPager{feed: feed, timeout: feedTimeout},
		cursors:    cursors,
		treasury:   treasury,
		transactor: transactor,
		metrics:    metrics,
		opts:       opts,
		log:        log.With().Str("component", "tax").Logger(),
	}
}

// taxScan is the raw result of a preview walk.
type taxScan struct {
	cursor  int64
	records []domain.BankRecord
}

func (s *taxService) scan(ctx context.Context, allianceID int64) (*taxScan, error) {
	cursor, err := s.cursors.Get(ctx, domain.CursorTax, allianceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get tax cursor: %w", err))
	}

	creds, err := s.creds.ForAlliance(ctx, allianceID)
	if err != nil {
		return nil, err
	}

	out := &taxScan{cursor: cursor}
	pages, complete, err := s.pager.walk(ctx, creds, allianceID, cursor, s.opts.PageLimit, s.opts.PageSize,
		func(rec domain.BankRecord) {
			if rec.ID <= cursor {
				return
			}
			rec.Classify(allianceID)
			if rec.IncomingTo(allianceID) && !rec.IsIgnored {
				out.records = append(out.records, rec)
			}
		})
	s.metrics.pages("tax", pages)
	if err != nil {
		return nil, err
	}
	// Every record above the cursor has to be seen before the cursor may move
	// past any of them.
	if !complete {
		s.log.Error().
			Int64("alliance_id", allianceID).
			Int64("cursor", cursor).
			Int("page_limit", s.opts.PageLimit).
			Msg("tax feed backlog exceeds page limit")
		return nil, apperror.ErrFeedBacklog(s.opts.PageLimit)
	}
	return out, nil
}

// summarize aggregates records strictly above cursor, each id once.
func summarize(allianceID, cursor int64, records []domain.BankRecord) *domain.TaxSummary {
	sum := &domain.TaxSummary{AllianceID: allianceID, Delta: domain.Bag{}, Cursor: cursor}
	counted := make(map[int64]struct{}, len(records))
	for _, rec := range records {
		if rec.ID <= cursor {
			continue
		}
		if _, dup := counted[rec.ID]; dup {
			continue
		}
		counted[rec.ID] = struct{}{}
		sum.Count++
		sum.Delta = sum.Delta.Add(rec.Resources)
		if rec.ID > sum.NewestID {
			sum.NewestID = rec.ID
		}
	}
	return sum
}

// Preview reports what Apply would credit without changing anything.
func (s *taxService) Preview(ctx context.Context, allianceID int64) (*domain.TaxSummary, error) {
	sc, err := s.scan(ctx, allianceID)
	if err != nil {
		return nil, err
	}
	return summarize(allianceID, sc.cursor, sc.records), nil
}

// Apply credits the treasury with records newer than the tax cursor and
// advances the cursor in the same transaction. The feed is read before the
// transaction opens; records a concurrent run already applied are dropped
// against the locked cursor.
func (s *taxService) Apply(ctx context.Context, allianceID int64) (*domain.TaxSummary, error) {
	sc, err := s.scan(ctx, allianceID)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.cursors.GetForUpdate(ctx, dbTx, domain.CursorTax, allianceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock tax cursor: %w", err))
	}

	sum := summarize(allianceID, locked, sc.records)
	if sum.Count == 0 {
		return sum, nil
	}

	if err := s.treasury.CreditInTx(ctx, dbTx, allianceID, sum.Delta); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("credit treasury: %w", err))
	}
	advanced, err := s.cursors.Advance(ctx, dbTx, domain.CursorTax, allianceID, sum.NewestID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("advance tax cursor: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	sum.Cursor = advanced

	s.metrics.taxApplied(sum.Count, sum.Delta)
	s.log.Info().
		Int64("alliance_id", allianceID).
		Int("count", sum.Count).
		Int64("cursor", advanced).
		Interface("delta", sum.Delta.StringMap()).
		Msg("tax credited to treasury")

	return sum, nil
}

// Treasury returns the alliance's aggregate balance.
func (s *taxService) Treasury(ctx context.Context, allianceID int64) (domain.Bag, error) {
	bag, err := s.treasury.Get(ctx, allianceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get treasury: %w", err))
	}
	return bag, nil
}
