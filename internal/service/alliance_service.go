package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"

	"github.com/rs/zerolog"
)

var (
	errNoAPIKey = errors.New("alliance has no stored api key")
	errNoBotKey = errors.New("bot key is not configured")
)

// allianceService implements ports.AllianceService. API keys are stored
// sealed and opened only when a request needs them.
type allianceService struct {
	alliances ports.AllianceRepository
	box       ports.SecretBox
	botKey    string
	log       zerolog.Logger
}

// NewAllianceService creates the alliance registry. botKey is shared by all
// alliances and comes from configuration.
func NewAllianceService(alliances ports.AllianceRepository, box ports.SecretBox, botKey string, log zerolog.Logger) ports.AllianceService {
	return &allianceService{
		alliances: alliances,
		box:       box,
		botKey:    botKey,
		log:       log.With().Str("component", "alliance").Logger(),
	}
}

// Register stores an alliance, replacing its name and sealed key if present.
func (s *allianceService) Register(ctx context.Context, id int64, name, apiKey string) (*domain.Alliance, error) {
	if id <= 0 {
		return nil, apperror.Validation("alliance id must be positive")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("alliance name is required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apperror.Validation("api key is required")
	}

	ciphertext, nonce, err := s.box.Seal([]byte(apiKey))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("seal api key: %w", err))
	}

	a := &domain.Alliance{
		ID:               id,
		Name:             name,
		APIKeyCiphertext: ciphertext,
		APIKeyNonce:      nonce,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.alliances.Upsert(ctx, a); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("upsert alliance: %w", err))
	}

	s.log.Info().Int64("alliance_id", id).Str("name", name).Msg("alliance registered")
	return a, nil
}

func (s *allianceService) List(ctx context.Context) ([]domain.Alliance, error) {
	list, err := s.alliances.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list alliances: %w", err))
	}
	return list, nil
}

// ForAlliance opens the alliance's API key and pairs it with the bot key.
func (s *allianceService) ForAlliance(ctx context.Context, allianceID int64) (domain.Credentials, error) {
	a, err := s.alliances.GetByID(ctx, allianceID)
	if err != nil {
		return domain.Credentials{}, apperror.ErrDatabaseError(fmt.Errorf("get alliance: %w", err))
	}
	if a == nil {
		return domain.Credentials{}, apperror.ErrNotFound("alliance")
	}
	if !a.HasCredentials() {
		return domain.Credentials{}, apperror.ErrMissingCredentials(errNoAPIKey)
	}
	if s.botKey == "" {
		return domain.Credentials{}, apperror.ErrMissingCredentials(errNoBotKey)
	}

	key, err := s.box.Open(a.APIKeyCiphertext, a.APIKeyNonce)
	if err != nil {
		s.log.Error().Err(err).Int64("alliance_id", allianceID).Msg("failed to open api key")
		return domain.Credentials{}, apperror.ErrDecryptionFailure(err)
	}

	return domain.Credentials{APIKey: string(key), BotKey: s.botKey}, nil
}
