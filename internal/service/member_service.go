package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type memberService struct {
	members   ports.MemberRepository
	alliances ports.AllianceRepository
	log       zerolog.Logger
}

// NewMemberService creates a new member registration service.
func NewMemberService(members ports.MemberRepository, alliances ports.AllianceRepository, log zerolog.Logger) ports.MemberService {
	return &memberService{
		members:   members,
		alliances: alliances,
		log:       log.With().Str("component", "member").Logger(),
	}
}

// Register creates a member of a known alliance. Discord ids are unique.
func (s *memberService) Register(ctx context.Context, req ports.RegisterMemberRequest) (*domain.Member, error) {
	discordID := strings.TrimSpace(req.DiscordID)
	if discordID == "" {
		return nil, apperror.Validation("discord_id is required")
	}
	if req.NationID <= 0 {
		return nil, apperror.Validation("nation_id must be positive")
	}

	a, err := s.alliances.GetByID(ctx, req.AllianceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get alliance: %w", err))
	}
	if a == nil {
		return nil, apperror.ErrNotFound("alliance")
	}

	existing, err := s.members.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check discord id: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("member")
	}

	m := &domain.Member{
		ID:         uuid.New(),
		DiscordID:  discordID,
		NationID:   req.NationID,
		AllianceID: req.AllianceID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create member: %w", err))
	}

	s.log.Info().
		Str("member_id", m.ID.String()).
		Int64("nation_id", m.NationID).
		Int64("alliance_id", m.AllianceID).
		Msg("member registered")
	return m, nil
}

func (s *memberService) Get(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get member: %w", err))
	}
	if m == nil {
		return nil, apperror.ErrNotFound("member")
	}
	return m, nil
}

func (s *memberService) GetByDiscordID(ctx context.Context, discordID string) (*domain.Member, error) {
	m, err := s.members.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get member: %w", err))
	}
	if m == nil {
		return nil, apperror.ErrNotFound("member")
	}
	return m, nil
}
