package postgres

import (
	"context"
	"fmt"
	"strings"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerEntryRepo implements ports.LedgerEntryRepository.
type LedgerEntryRepo struct {
	pool Pool
}

// NewLedgerEntryRepo creates a new LedgerEntryRepo.
func NewLedgerEntryRepo(pool Pool) *LedgerEntryRepo {
	return &LedgerEntryRepo{pool: pool}
}

// Create appends an entry within a transaction and fills ID and CreatedAt.
func (r *LedgerEntryRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (member_id, resource, amount, actor, reason, kind, withdrawal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		e.MemberID, e.Resource, e.Amount, e.Actor, e.Reason, e.Kind, e.WithdrawalID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (r *LedgerEntryRepo) List(ctx context.Context, params domain.HistoryParams) ([]domain.LedgerEntry, error) {
	conditions := []string{"member_id = $1"}
	args := []any{params.MemberID}
	argIdx := 2

	if params.Resource != nil {
		conditions = append(conditions, fmt.Sprintf("resource = $%d", argIdx))
		args = append(args, *params.Resource)
		argIdx++
	}
	if params.BeforeID != nil {
		conditions = append(conditions, fmt.Sprintf("id < $%d", argIdx))
		args = append(args, *params.BeforeID)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT id, member_id, resource, amount, actor, reason, kind, withdrawal_id, created_at
		FROM ledger_entries WHERE %s ORDER BY id DESC LIMIT $%d`, strings.Join(conditions, " AND "), argIdx)
	args = append(args, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.MemberID, &e.Resource, &e.Amount, &e.Actor,
			&e.Reason, &e.Kind, &e.WithdrawalID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

// SumByResource totals all entries of a member per resource.
func (r *LedgerEntryRepo) SumByResource(ctx context.Context, memberID uuid.UUID) (domain.Bag, error) {
	query := `SELECT resource, SUM(amount) FROM ledger_entries WHERE member_id = $1 GROUP BY resource`

	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("sum ledger entries: %w", err)
	}
	defer rows.Close()

	sums := make(map[domain.Resource]decimal.Decimal)
	for rows.Next() {
		var res domain.Resource
		var total decimal.Decimal
		if err := rows.Scan(&res, &total); err != nil {
			return nil, fmt.Errorf("scan ledger sum row: %w", err)
		}
		sums[res] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger sum rows: %w", err)
	}
	return domain.NewBag(sums), nil
}
