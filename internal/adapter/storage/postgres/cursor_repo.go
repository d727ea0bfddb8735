package postgres

import (
	"context"
	"errors"
	"fmt"

	"alliance-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CursorRepo implements ports.CursorRepository over tax_cursors and bank_cursors.
type CursorRepo struct {
	pool Pool
}

// NewCursorRepo creates a new CursorRepo.
func NewCursorRepo(pool Pool) *CursorRepo {
	return &CursorRepo{pool: pool}
}

func cursorTable(kind domain.CursorKind) (string, error) {
	switch kind {
	case domain.CursorTax:
		return "tax_cursors", nil
	case domain.CursorBank:
		return "bank_cursors", nil
	}
	return "", fmt.Errorf("unknown cursor kind %q", kind)
}

// Get returns the cursor, zero when the alliance has none yet.
func (r *CursorRepo) Get(ctx context.Context, kind domain.CursorKind, allianceID int64) (int64, error) {
	table, err := cursorTable(kind)
	if err != nil {
		return 0, err
	}

	var lastID int64
	err = r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT last_id FROM %s WHERE alliance_id = $1`, table), allianceID).Scan(&lastID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get %s cursor: %w", kind, err)
	}
	return lastID, nil
}

// GetForUpdate creates the cursor row if needed and locks it until tx ends.
// This MUST be called within a transaction.
func (r *CursorRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, kind domain.CursorKind, allianceID int64) (int64, error) {
	table, err := cursorTable(kind)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (alliance_id) VALUES ($1) ON CONFLICT (alliance_id) DO NOTHING`, table),
		allianceID)
	if err != nil {
		return 0, fmt.Errorf("ensure %s cursor: %w", kind, err)
	}

	var lastID int64
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT last_id FROM %s WHERE alliance_id = $1 FOR UPDATE`, table),
		allianceID).Scan(&lastID)
	if err != nil {
		return 0, fmt.Errorf("lock %s cursor: %w", kind, err)
	}
	return lastID, nil
}

// Advance moves the cursor forward to id; a lower id leaves it unchanged.
func (r *CursorRepo) Advance(ctx context.Context, tx pgx.Tx, kind domain.CursorKind, allianceID int64, id int64) (int64, error) {
	table, err := cursorTable(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO %[1]s (alliance_id, last_id) VALUES ($1, $2)
		ON CONFLICT (alliance_id) DO UPDATE
			SET last_id = GREATEST(%[1]s.last_id, EXCLUDED.last_id), updated_at = NOW()
		RETURNING last_id`, table)

	var lastID int64
	if err := tx.QueryRow(ctx, query, allianceID, id).Scan(&lastID); err != nil {
		return 0, fmt.Errorf("advance %s cursor: %w", kind, err)
	}
	return lastID, nil
}
