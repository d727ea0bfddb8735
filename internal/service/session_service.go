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

// sessionService implements ports.SessionService on top of a SessionStore.
// A session is saved after every successful step so that a failed step
// leaves the stored state untouched.
type sessionService struct {
	store       ports.SessionStore
	withdrawals ports.WithdrawalService
	members     ports.MemberRepository
	ttl         time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

// NewSessionService creates the transfer session flow.
func NewSessionService(
	store ports.SessionStore,
	withdrawals ports.WithdrawalService,
	members ports.MemberRepository,
	ttl time.Duration,
	log zerolog.Logger,
) ports.SessionService {
	return &sessionService{
		store:       store,
		withdrawals: withdrawals,
		members:     members,
		ttl:         ttl,
		now:         time.Now,
		log:         log.With().Str("component", "session").Logger(),
	}
}

// Start replaces any existing session of the requester with a fresh one.
func (s *sessionService) Start(ctx context.Context, requester string, memberID uuid.UUID) (*domain.TransferSession, error) {
	requester = strings.TrimSpace(requester)
	if requester == "" {
		return nil, apperror.Validation("requester is required")
	}
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get member: %w", err))
	}
	if m == nil {
		return nil, apperror.ErrNotFound("member")
	}

	sess := domain.NewTransferSession(requester, memberID, s.now().UTC(), s.ttl)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Current(ctx context.Context, requester string) (*domain.TransferSession, error) {
	return s.load(ctx, requester)
}

func (s *sessionService) ChooseRecipient(ctx context.Context, requester string, recipient domain.Recipient) (*domain.TransferSession, error) {
	return s.step(ctx, requester, func(sess *domain.TransferSession) error {
		return sess.ChooseRecipient(recipient)
	})
}

func (s *sessionService) EnterAmounts(ctx context.Context, requester string, page int, amounts domain.Bag, finish bool) (*domain.TransferSession, error) {
	return s.step(ctx, requester, func(sess *domain.TransferSession) error {
		return sess.EnterAmounts(page, amounts, finish)
	})
}

func (s *sessionService) SetNote(ctx context.Context, requester, note string) (*domain.TransferSession, error) {
	return s.step(ctx, requester, func(sess *domain.TransferSession) error {
		sess.SetNote(strings.TrimSpace(note))
		return nil
	})
}

// Confirm turns a completed session into a pending withdrawal request. The
// session is kept when creation fails so the requester can adjust amounts.
func (s *sessionService) Confirm(ctx context.Context, requester string) (*domain.WithdrawalRequest, error) {
	sess, err := s.load(ctx, requester)
	if err != nil {
		return nil, err
	}
	payload, err := sess.Payload()
	if err != nil {
		return nil, err
	}

	req, err := s.withdrawals.Create(ctx, sess.MemberID, payload)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sess.Requester); err != nil {
		s.log.Warn().Err(err).Str("requester", sess.Requester).Msg("failed to clear confirmed session")
	}
	return req, nil
}

func (s *sessionService) Abort(ctx context.Context, requester string) error {
	if err := s.store.Delete(ctx, requester); err != nil {
		return apperror.InternalError(fmt.Errorf("delete session: %w", err))
	}
	return nil
}

func (s *sessionService) step(ctx context.Context, requester string, apply func(*domain.TransferSession) error) (*domain.TransferSession, error) {
	sess, err := s.load(ctx, requester)
	if err != nil {
		return nil, err
	}
	if err := apply(sess); err != nil {
		return nil, err
	}
	sess.Touch(s.now().UTC(), s.ttl)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) load(ctx context.Context, requester string) (*domain.TransferSession, error) {
	sess, err := s.store.Get(ctx, requester)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get session: %w", err))
	}
	if sess == nil || sess.Expired(s.now()) {
		return nil, apperror.ErrNotFound("session")
	}
	return sess, nil
}

func (s *sessionService) save(ctx context.Context, sess *domain.TransferSession) error {
	if err := s.store.Save(ctx, sess, s.ttl); err != nil {
		return apperror.InternalError(fmt.Errorf("save session: %w", err))
	}
	return nil
}
