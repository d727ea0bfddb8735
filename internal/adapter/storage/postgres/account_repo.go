package postgres

import (
	"context"
	"fmt"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepo implements ports.AccountRepository over safekeeping_accounts.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// GetOrCreate returns the member's balances, inserting a zero row first when absent.
func (r *AccountRepo) GetOrCreate(ctx context.Context, memberID uuid.UUID) (domain.Bag, error) {
	query := fmt.Sprintf(`WITH ins AS (
			INSERT INTO safekeeping_accounts (member_id) VALUES ($1)
			ON CONFLICT (member_id) DO NOTHING
			RETURNING %[1]s
		)
		SELECT %[1]s FROM ins
		UNION ALL
		SELECT %[1]s FROM safekeeping_accounts WHERE member_id = $1
		LIMIT 1`, resourceColumns)

	bag, err := scanBag(r.pool.QueryRow(ctx, query, memberID))
	if err != nil {
		return nil, fmt.Errorf("get or create account: %w", err)
	}
	return bag, nil
}

// GetForUpdate ensures the account exists and locks it until tx ends.
// This MUST be called within a transaction.
func (r *AccountRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (domain.Bag, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO safekeeping_accounts (member_id) VALUES ($1) ON CONFLICT (member_id) DO NOTHING`,
		memberID)
	if err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM safekeeping_accounts WHERE member_id = $1 FOR UPDATE`, resourceColumns)
	bag, err := scanBag(tx.QueryRow(ctx, query, memberID))
	if err != nil {
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return bag, nil
}

// AddInTx adds amount to one resource with an additive upsert and returns the new balance.
func (r *AccountRepo) AddInTx(ctx context.Context, tx pgx.Tx, memberID uuid.UUID, resource domain.Resource, amount decimal.Decimal) (decimal.Decimal, error) {
	col, err := column(resource)
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf(`INSERT INTO safekeeping_accounts (member_id, %[1]s) VALUES ($1, $2)
		ON CONFLICT (member_id) DO UPDATE
			SET %[1]s = safekeeping_accounts.%[1]s + EXCLUDED.%[1]s, updated_at = NOW()
		RETURNING %[1]s`, col)

	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, memberID, amount).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("add to account: %w", err)
	}
	return balance, nil
}
