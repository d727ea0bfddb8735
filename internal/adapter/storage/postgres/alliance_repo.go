package postgres

import (
	"context"
	"errors"
	"fmt"

	"alliance-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AllianceRepo implements ports.AllianceRepository.
type AllianceRepo struct {
	pool Pool
}

// NewAllianceRepo creates a new AllianceRepo.
func NewAllianceRepo(pool Pool) *AllianceRepo {
	return &AllianceRepo{pool: pool}
}

// Upsert inserts an alliance or replaces its name and sealed key.
func (r *AllianceRepo) Upsert(ctx context.Context, a *domain.Alliance) error {
	query := `INSERT INTO alliances (id, name, api_key_ciphertext, api_key_nonce, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			api_key_ciphertext = EXCLUDED.api_key_ciphertext,
			api_key_nonce = EXCLUDED.api_key_nonce`

	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.APIKeyCiphertext, a.APIKeyNonce, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert alliance: %w", err)
	}
	return nil
}

// GetByID fetches an alliance with its sealed key.
func (r *AllianceRepo) GetByID(ctx context.Context, id int64) (*domain.Alliance, error) {
	query := `SELECT id, name, api_key_ciphertext, api_key_nonce, created_at FROM alliances WHERE id = $1`

	a := &domain.Alliance{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.APIKeyCiphertext, &a.APIKeyNonce, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alliance: %w", err)
	}
	return a, nil
}

// List returns every registered alliance ordered by id.
func (r *AllianceRepo) List(ctx context.Context) ([]domain.Alliance, error) {
	query := `SELECT id, name, api_key_ciphertext, api_key_nonce, created_at FROM alliances ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alliances: %w", err)
	}
	defer rows.Close()

	var out []domain.Alliance
	for rows.Next() {
		var a domain.Alliance
		if err := rows.Scan(&a.ID, &a.Name, &a.APIKeyCiphertext, &a.APIKeyNonce, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alliance row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alliance rows: %w", err)
	}
	return out, nil
}
