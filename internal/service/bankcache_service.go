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

const maxPageSize = 500

// bankCacheService implements ports.BankCacheService.
type bankCacheService struct {
	creds      ports.CredentialProvider
	pager      feedPager
	records    ports.BankRecordRepository
	cursors    ports.CursorRepository
	transactor ports.DBTransactor
	metrics    *Metrics
	log        zerolog.Logger
}

// NewBankCacheService creates the bank record cache.
func NewBankCacheService(
	creds ports.CredentialProvider,
	feed ports.BankFeed,
	records ports.BankRecordRepository,
	cursors ports.CursorRepository,
	transactor ports.DBTransactor,
	metrics *Metrics,
	feedTimeout time.Duration,
	log zerolog.Logger,
) ports.BankCacheService {
	return &bankCacheService{
		creds:      creds,
		pager:      feedPager{feed: feed, timeout: feedTimeout},
		records:    records,
		cursors:    cursors,
		transactor: transactor,
		metrics:    metrics,
		log:        log.With().Str("component", "bankcache").Logger(),
	}
}

// Ingest copies new feed pages into the cache. Alliance rows are inserted if
// absent; the bank cursor moves to the highest id observed on any row.
func (s *bankCacheService) Ingest(ctx context.Context, allianceID int64, maxPages, pageSize int) (*domain.IngestResult, error) {
	if maxPages < 1 {
		return nil, apperror.Validation("max_pages must be at least 1")
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, apperror.Validation(fmt.Sprintf("page_size must be between 1 and %d", maxPageSize))
	}

	cursor, err := s.cursors.Get(ctx, domain.CursorBank, allianceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get bank cursor: %w", err))
	}
	creds, err := s.creds.ForAlliance(ctx, allianceID)
	if err != nil {
		return nil, err
	}

	var rows []domain.BankRecord
	highest := cursor
	pages, _, err := s.pager.walk(ctx, creds, allianceID, cursor, maxPages, pageSize, func(rec domain.BankRecord) {
		if rec.ID > highest {
			highest = rec.ID
		}
		rec.Classify(allianceID)
		if rec.IsAllianceRow {
			rows = append(rows, rec)
		}
	})
	s.metrics.pages("bank", pages)
	if err != nil {
		return nil, err
	}

	result := &domain.IngestResult{PagesScanned: pages, Cursor: cursor}
	if len(rows) == 0 && highest == cursor {
		return result, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for i := range rows {
		inserted, err := s.records.InsertIfAbsent(ctx, dbTx, &rows[i])
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("insert bank record %d: %w", rows[i].ID, err))
		}
		if inserted {
			result.Inserted++
		}
	}

	advanced, err := s.cursors.Advance(ctx, dbTx, domain.CursorBank, allianceID, highest)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("advance bank cursor: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	result.Cursor = advanced

	s.metrics.cached(result.Inserted)
	s.log.Info().
		Int64("alliance_id", allianceID).
		Int("pages", result.PagesScanned).
		Int("inserted", result.Inserted).
		Int64("cursor", advanced).
		Msg("bank records ingested")

	return result, nil
}

// Query reads the cache newest first.
func (s *bankCacheService) Query(ctx context.Context, query domain.RecordQuery) ([]domain.BankRecord, error) {
	filter, ok := domain.ParseRecordFilter(string(query.Filter))
	if !ok {
		return nil, apperror.Validation("filter must be all, tax or nontax")
	}
	query.Filter = filter
	query.Limit = clampLimit(query.Limit)

	recs, err := s.records.List(ctx, query)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list bank records: %w", err))
	}
	return recs, nil
}
