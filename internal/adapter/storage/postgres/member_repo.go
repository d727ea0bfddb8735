package postgres

import (
	"context"
	"errors"
	"fmt"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemberRepo implements ports.MemberRepository.
type MemberRepo struct {
	pool Pool
}

// NewMemberRepo creates a new MemberRepo.
func NewMemberRepo(pool Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

// Create inserts a new member.
func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (id, discord_id, nation_id, alliance_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, m.ID, m.DiscordID, m.NationID, m.AllianceID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// GetByID fetches a member by UUID.
func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	query := `SELECT id, discord_id, nation_id, alliance_id, created_at FROM members WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByDiscordID fetches a member by chat identity.
func (r *MemberRepo) GetByDiscordID(ctx context.Context, discordID string) (*domain.Member, error) {
	query := `SELECT id, discord_id, nation_id, alliance_id, created_at FROM members WHERE discord_id = $1`
	return r.getOne(ctx, query, discordID)
}

func (r *MemberRepo) getOne(ctx context.Context, query string, arg any) (*domain.Member, error) {
	m := &domain.Member{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(&m.ID, &m.DiscordID, &m.NationID, &m.AllianceID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}
