package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alliance-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TreasuryRepo implements ports.TreasuryRepository.
type TreasuryRepo struct {
	pool Pool
}

// NewTreasuryRepo creates a new TreasuryRepo.
func NewTreasuryRepo(pool Pool) *TreasuryRepo {
	return &TreasuryRepo{pool: pool}
}

// Get returns the treasury balances; an alliance without a row has an empty treasury.
func (r *TreasuryRepo) Get(ctx context.Context, allianceID int64) (domain.Bag, error) {
	query := fmt.Sprintf(`SELECT %s FROM alliance_treasuries WHERE alliance_id = $1`, resourceColumns)

	bag, err := scanBag(r.pool.QueryRow(ctx, query, allianceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Bag{}, nil
		}
		return nil, fmt.Errorf("get treasury: %w", err)
	}
	return bag, nil
}

// CreditInTx adds delta to the treasury with one additive upsert.
func (r *TreasuryRepo) CreditInTx(ctx context.Context, tx pgx.Tx, allianceID int64, delta domain.Bag) error {
	res := delta.Resources()
	if len(res) == 0 {
		return nil
	}

	cols := make([]string, len(res))
	placeholders := make([]string, len(res))
	sets := make([]string, len(res))
	args := []any{allianceID}
	for i, rsrc := range res {
		col, err := column(rsrc)
		if err != nil {
			return err
		}
		cols[i] = col
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		sets[i] = fmt.Sprintf("%[1]s = alliance_treasuries.%[1]s + EXCLUDED.%[1]s", col)
		args = append(args, delta[rsrc])
	}

	query := fmt.Sprintf(`INSERT INTO alliance_treasuries (alliance_id, %s) VALUES ($1, %s)
		ON CONFLICT (alliance_id) DO UPDATE SET %s, updated_at = NOW()`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(sets, ", "))

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("credit treasury: %w", err)
	}
	return nil
}
