package worker

import (
	"context"
	"strconv"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"

	"github.com/rs/zerolog"
)

// Options tunes the ingestion scheduler. Zero values take defaults.
type Options struct {
	Interval time.Duration // default: 10m
	MaxPages int           // default: 5
	PageSize int           // default: 50
	LockTTL  time.Duration // default: 5m
}

// AllianceLister lists the alliances to ingest for.
type AllianceLister interface {
	List(ctx context.Context) ([]domain.Alliance, error)
}

// Scheduler periodically refreshes the bank record cache and credits tax
// for every registered alliance. Each alliance run holds a run lock so
// overlapping ticks and other replicas skip instead of piling up.
type Scheduler struct {
	alliances AllianceLister
	bank      ports.BankCacheService
	tax       ports.TaxService
	lock      ports.RunLock // nil = no cross-process locking
	opt       Options
	log       zerolog.Logger
}

// NewScheduler creates a scheduler with defaults applied.
func NewScheduler(alliances AllianceLister, bank ports.BankCacheService, tax ports.TaxService, lock ports.RunLock, opt *Options, log zerolog.Logger) *Scheduler {
	o := Options{
		Interval: 10 * time.Minute,
		MaxPages: 5,
		PageSize: 50,
		LockTTL:  5 * time.Minute,
	}
	if opt != nil {
		if opt.Interval > 0 {
			o.Interval = opt.Interval
		}
		if opt.MaxPages > 0 {
			o.MaxPages = opt.MaxPages
		}
		if opt.PageSize > 0 {
			o.PageSize = opt.PageSize
		}
		if opt.LockTTL > 0 {
			o.LockTTL = opt.LockTTL
		}
	}
	return &Scheduler{
		alliances: alliances,
		bank:      bank,
		tax:       tax,
		lock:      lock,
		opt:       o,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Run ticks until ctx is canceled. The first pass starts immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info().Dur("interval", s.opt.Interval).Msg("scheduler started")
	ticker := time.NewTicker(s.opt.Interval)
	defer ticker.Stop()

	for {
		s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce processes every alliance once. Failures are logged per alliance
// and never stop the pass.
func (s *Scheduler) RunOnce(ctx context.Context) {
	alliances, err := s.alliances.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listing alliances failed")
		return
	}
	for _, a := range alliances {
		if ctx.Err() != nil {
			return
		}
		if !a.HasCredentials() {
			continue
		}
		s.runAlliance(ctx, a.ID)
	}
}

func (s *Scheduler) runAlliance(ctx context.Context, allianceID int64) {
	log := s.log.With().Int64("alliance_id", allianceID).Logger()

	if s.lock != nil {
		key := "ingest:" + strconv.FormatInt(allianceID, 10)
		token, ok, err := s.lock.TryLock(ctx, key, s.opt.LockTTL)
		if err != nil {
			log.Warn().Err(err).Msg("run lock unavailable, skipping")
			return
		}
		if !ok {
			log.Debug().Msg("another run holds the lock, skipping")
			return
		}
		defer func() {
			if err := s.lock.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
				log.Warn().Err(err).Msg("releasing run lock failed")
			}
		}()
	}

	if res, err := s.bank.Ingest(ctx, allianceID, s.opt.MaxPages, s.opt.PageSize); err != nil {
		log.Error().Err(err).Msg("bank record ingest failed")
	} else if res.Inserted > 0 {
		log.Info().Int("inserted", res.Inserted).Int64("cursor", res.Cursor).Msg("bank records cached")
	}

	if sum, err := s.tax.Apply(ctx, allianceID); err != nil {
		log.Error().Err(err).Msg("tax apply failed")
	} else if sum.Count > 0 {
		log.Info().Int("records", sum.Count).Int64("cursor", sum.Cursor).Msg("tax credited")
	}
}
