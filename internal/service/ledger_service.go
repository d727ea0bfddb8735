package service

import (
	"context"
	"fmt"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ledgerService implements ports.LedgerService. Every balance change in the
// system goes through AdjustInTx, which writes the balance and its ledger
// entry in the same transaction.
type ledgerService struct {
	members    ports.MemberRepository
	accounts   ports.AccountRepository
	entries    ports.LedgerEntryRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	members ports.MemberRepository,
	accounts ports.AccountRepository,
	entries ports.LedgerEntryRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) ports.LedgerService {
	return &ledgerService{
		members:    members,
		accounts:   accounts,
		entries:    entries,
		transactor: transactor,
		log:        log.With().Str("component", "ledger").Logger(),
	}
}

func (s *ledgerService) requireMember(ctx context.Context, memberID uuid.UUID) error {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get member: %w", err))
	}
	if m == nil {
		return apperror.ErrNotFound("member")
	}
	return nil
}

// GetBalance returns the member's balances, creating a zero account on first access.
func (s *ledgerService) GetBalance(ctx context.Context, memberID uuid.UUID) (domain.Bag, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}
	bag, err := s.accounts.GetOrCreate(ctx, memberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get balance: %w", err))
	}
	return bag, nil
}

// Adjust applies one signed change in its own transaction.
func (s *ledgerService) Adjust(ctx context.Context, adj domain.Adjustment) (decimal.Decimal, error) {
	adj, err := normalizeAdjustment(adj)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.requireMember(ctx, adj.MemberID); err != nil {
		return decimal.Zero, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	newBalance, err := s.AdjustInTx(ctx, dbTx, adj)
	if err != nil {
		return decimal.Zero, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("member_id", adj.MemberID.String()).
		Str("resource", string(adj.Resource)).
		Str("amount", adj.Amount.String()).
		Str("kind", string(adj.Kind)).
		Str("actor", adj.Actor).
		Str("new_balance", newBalance.String()).
		Msg("balance adjusted")

	return newBalance, nil
}

// AdjustInTx increments the balance and appends the ledger entry inside tx.
// There is no floor at zero; callers pre-validate client-initiated debits.
func (s *ledgerService) AdjustInTx(ctx context.Context, tx pgx.Tx, adj domain.Adjustment) (decimal.Decimal, error) {
	adj, err := normalizeAdjustment(adj)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance, err := s.accounts.AddInTx(ctx, tx, adj.MemberID, adj.Resource, adj.Amount)
	if err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("update balance: %w", err))
	}

	entry := &domain.LedgerEntry{
		MemberID:     adj.MemberID,
		Resource:     adj.Resource,
		Amount:       adj.Amount,
		Actor:        adj.Actor,
		Reason:       adj.Reason,
		Kind:         adj.Kind,
		WithdrawalID: adj.WithdrawalID,
	}
	if err := s.entries.Create(ctx, tx, entry); err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("append ledger entry: %w", err))
	}
	return newBalance, nil
}

func normalizeAdjustment(adj domain.Adjustment) (domain.Adjustment, error) {
	if adj.Amount.IsZero() {
		return adj, apperror.ErrInvalidAmount()
	}
	if !adj.Resource.Valid() {
		return adj, apperror.ErrInvalidPayload("unknown resource " + string(adj.Resource))
	}
	if adj.Actor == "" {
		return adj, apperror.Validation("actor is required")
	}
	if adj.Kind == "" {
		adj.Kind = domain.EntryKindManualAdjust
	}
	if !adj.Kind.Valid() {
		return adj, apperror.Validation("unknown entry kind " + string(adj.Kind))
	}
	return adj, nil
}

// History lists ledger entries newest first.
func (s *ledgerService) History(ctx context.Context, params domain.HistoryParams) ([]domain.LedgerEntry, error) {
	if err := s.requireMember(ctx, params.MemberID); err != nil {
		return nil, err
	}
	if params.Resource != nil && !params.Resource.Valid() {
		return nil, apperror.ErrInvalidPayload("unknown resource " + string(*params.Resource))
	}
	params.Limit = clampLimit(params.Limit)

	entries, err := s.entries.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list ledger entries: %w", err))
	}
	return entries, nil
}

// Reconcile compares stored balances with the ledger sums.
func (s *ledgerService) Reconcile(ctx context.Context, memberID uuid.UUID) (*domain.ReconcileReport, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}
	balance, err := s.accounts.GetOrCreate(ctx, memberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get balance: %w", err))
	}
	sums, err := s.entries.SumByResource(ctx, memberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("sum ledger: %w", err))
	}

	report := domain.NewReconcileReport(memberID, balance, sums)
	if !report.Balanced {
		s.log.Error().
			Str("member_id", memberID.String()).
			Bool("reconciliation", true).
			Msg("account balance drifted from ledger")
	}
	return report, nil
}
