package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// errNotSettleable means the request left APPROVED, or gained an external
// reference, between loading it and marking it paid.
var errNotSettleable = errors.New("request is no longer awaiting settlement")

// WithdrawalOptions tunes the settlement engine.
type WithdrawalOptions struct {
	// PaymentTimeout bounds the external payment call. Expiry counts as an
	// unknown outcome and is never treated as success.
	PaymentTimeout time.Duration
	// ReserveOutstanding subtracts PENDING and unpaid APPROVED requests from
	// the balance a new request is checked against.
	ReserveOutstanding bool
}

// withdrawalService implements ports.WithdrawalService.
type withdrawalService struct {
	members     ports.MemberRepository
	accounts    ports.AccountRepository
	withdrawals ports.WithdrawalRepository
	ledger      ports.LedgerService
	creds       ports.CredentialProvider
	payer       ports.PaymentGateway
	transactor  ports.DBTransactor
	metrics     *Metrics
	notifier    ports.Notifier
	opts        WithdrawalOptions
	log         zerolog.Logger
	now         func() time.Time
}

// NewWithdrawalService creates the settlement engine.
func NewWithdrawalService(
	members ports.MemberRepository,
	accounts ports.AccountRepository,
	withdrawals ports.WithdrawalRepository,
	ledger ports.LedgerService,
	creds ports.CredentialProvider,
	payer ports.PaymentGateway,
	transactor ports.DBTransactor,
	metrics *Metrics,
	notifier ports.Notifier,
	opts WithdrawalOptions,
	log zerolog.Logger,
) ports.WithdrawalService {
	return &withdrawalService{
		members:     members,
		accounts:    accounts,
		withdrawals: withdrawals,
		ledger:      ledger,
		creds:       creds,
		payer:       payer,
		transactor:  transactor,
		metrics:     metrics,
		notifier:    notifier,
		opts:        opts,
		log:         log.With().Str("component", "settlement").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the payload against the member's balance and stores a
// PENDING request. Balances are not touched.
func (s *withdrawalService) Create(ctx context.Context, memberID uuid.UUID, payload domain.WithdrawalPayload) (*domain.WithdrawalRequest, error) {
	payload, err := domain.NewWithdrawalPayload(payload.Resources, payload.Recipient, payload.Note)
	if err != nil {
		return nil, err
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get member: %w", err))
	}
	if member == nil {
		return nil, apperror.ErrNotFound("member")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// The account row lock serialises concurrent creates for one member.
	available, err := s.accounts.GetForUpdate(ctx, dbTx, memberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock account: %w", err))
	}
	if s.opts.ReserveOutstanding {
		outstanding, err := s.withdrawals.Outstanding(ctx, dbTx, memberID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("sum outstanding requests: %w", err))
		}
		available = available.Add(outstanding.Neg())
	}

	if short := payload.Resources.Shortfall(available); len(short) > 0 {
		return nil, apperror.ErrInsufficientBalance(short.StringMap())
	}

	req := &domain.WithdrawalRequest{
		ID:        uuid.New(),
		MemberID:  memberID,
		Recipient: payload.Recipient,
		Resources: payload.Resources,
		Note:      payload.Note,
		Status:    domain.WithdrawalPending,
		CreatedAt: s.now(),
	}
	if err := s.withdrawals.Create(ctx, dbTx, req); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create withdrawal: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.transition(domain.WithdrawalPending)
	s.notify(ctx, domain.EventWithdrawalRequested, req)
	s.log.Info().
		Str("request_id", req.ID.String()).
		Str("member_id", memberID.String()).
		Interface("resources", req.Resources.StringMap()).
		Msg("withdrawal requested")

	return req, nil
}

// Resolve approves or denies a PENDING request. The conditional status update
// is the only serialisation point: exactly one caller wins it, and only the
// winner of an approval issues the external payment.
func (s *withdrawalService) Resolve(ctx context.Context, id uuid.UUID, reviewer string, decision domain.Decision) (*domain.WithdrawalRequest, error) {
	if reviewer == "" {
		return nil, apperror.Validation("reviewer is required")
	}

	var target domain.WithdrawalStatus
	switch decision {
	case domain.DecisionApprove:
		target = domain.WithdrawalApproved
	case domain.DecisionDeny:
		target = domain.WithdrawalRejected
	default:
		return nil, apperror.Validation("decision must be approve or deny")
	}

	won, err := s.withdrawals.Transition(ctx, id, domain.WithdrawalPending, target, reviewer)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("claim withdrawal: %w", err))
	}
	if !won {
		return nil, s.notPending(ctx, id)
	}

	req, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, s.claimedButUnreadable(ctx, id, target, reviewer, err)
	}
	if req == nil {
		return nil, apperror.ErrNotFound("withdrawal")
	}

	s.metrics.transition(target)
	if target == domain.WithdrawalRejected {
		s.log.Info().
			Str("request_id", id.String()).
			Str("reviewer", reviewer).
			Msg("withdrawal rejected")
		s.notify(ctx, domain.EventWithdrawalRejected, req)
		return req, nil
	}

	// The claim is committed. The payment and its settlement must not be cut
	// short by the caller going away.
	return s.pay(context.WithoutCancel(ctx), req, reviewer)
}

// notPending explains why a conditional transition matched no row.
func (s *withdrawalService) notPending(ctx context.Context, id uuid.UUID) error {
	req, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get withdrawal: %w", err))
	}
	if req == nil {
		return apperror.ErrNotFound("withdrawal")
	}
	return apperror.ErrAlreadyResolved(string(req.Status))
}

// claimedButUnreadable handles a won claim whose row could not be reloaded.
// An approval then stays APPROVED without a payment, which needs the same
// follow-up as a failed payment.
func (s *withdrawalService) claimedButUnreadable(ctx context.Context, id uuid.UUID, target domain.WithdrawalStatus, reviewer string, cause error) error {
	err := withRequestID(apperror.ErrDatabaseError(fmt.Errorf("reload withdrawal: %w", cause)), id)
	if target != domain.WithdrawalApproved {
		return err
	}

	s.metrics.transition(target)
	s.metrics.payment(outcomeFailed)
	req := &domain.WithdrawalRequest{ID: id, Status: target, Reviewer: &reviewer}
	s.recordFailure(ctx, req, "not paid: reloading the approved request failed: "+cause.Error())
	s.log.Error().
		Err(cause).
		Str("request_id", id.String()).
		Str("reviewer", reviewer).
		Msg("withdrawal approved but not paid: manual follow-up required")
	s.notify(ctx, domain.EventWithdrawalFollowUp, req)
	return err
}

// pay issues the single payment call for a freshly APPROVED request.
func (s *withdrawalService) pay(ctx context.Context, req *domain.WithdrawalRequest, reviewer string) (*domain.WithdrawalRequest, error) {
	logger := s.log.With().Str("request_id", req.ID.String()).Str("reviewer", reviewer).Logger()

	creds, err := s.credentialsFor(ctx, req.MemberID)
	if err != nil {
		s.metrics.payment(outcomeNoCreds)
		s.recordFailure(ctx, req, "credentials unavailable: "+err.Error())
		logger.Warn().Err(err).Msg("withdrawal approved but not paid: credentials unavailable")
		s.notify(ctx, domain.EventWithdrawalFollowUp, req)
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Class != apperror.ClassExternal {
			err = apperror.ErrMissingCredentials(err)
		}
		return req, withRequestID(err, req.ID)
	}

	payCtx := ctx
	if s.opts.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, s.opts.PaymentTimeout)
		defer cancel()
	}

	order := domain.PaymentOrder{Recipient: req.Recipient, Resources: req.Resources, Note: req.PaymentNote()}
	ref, err := s.payer.Withdraw(payCtx, creds, order)
	if err == nil && ref == "" {
		err = errors.New("payment returned no reference")
	}
	if err != nil {
		outcome, reason := outcomeFailed, "payment failed: "+err.Error()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(payCtx.Err(), context.DeadlineExceeded) {
			outcome, reason = outcomeUnknown, "payment outcome unknown: timed out"
		}
		s.metrics.payment(outcome)
		s.recordFailure(ctx, req, reason)
		logger.Warn().Err(err).Str("outcome", outcome).Msg("withdrawal approved but not paid: manual follow-up required")
		s.notify(ctx, domain.EventWithdrawalFollowUp, req)
		return req, withRequestID(apperror.ErrPaymentFailed(err), req.ID)
	}

	if err := s.settle(ctx, req, reviewer, ref); err != nil {
		s.metrics.payment(outcomeReconcile)
		logger.Error().
			Err(err).
			Bool("reconciliation", true).
			Str("external_ref", ref).
			Interface("resources", req.Resources.StringMap()).
			Msg("payment sent but local settlement failed")
		s.recordFailure(ctx, req, "settlement failed after payment "+ref+": "+err.Error())
		s.notify(ctx, domain.EventWithdrawalReconcile, req)
		return req, apperror.ErrReconciliation(req.ID.String(), ref, err)
	}

	s.metrics.payment(outcomePaid)
	s.metrics.transition(domain.WithdrawalPaid)
	logger.Info().Str("external_ref", ref).Msg("withdrawal paid")
	s.notify(ctx, domain.EventWithdrawalPaid, req)
	return req, nil
}

// settle debits every resource and marks the request PAID in one transaction.
// On success req is updated to reflect the stored row.
func (s *withdrawalService) settle(ctx context.Context, req *domain.WithdrawalRequest, actor, ref string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	reason := "withdrawal " + req.ID.String()
	id := req.ID
	for _, r := range req.Resources.Resources() {
		_, err := s.ledger.AdjustInTx(ctx, dbTx, domain.Adjustment{
			MemberID:     req.MemberID,
			Resource:     r,
			Amount:       req.Resources[r].Neg(),
			Actor:        actor,
			Reason:       &reason,
			Kind:         domain.EntryKindWithdrawal,
			WithdrawalID: &id,
		})
		if err != nil {
			return fmt.Errorf("debit %s: %w", r, err)
		}
	}

	ok, err := s.withdrawals.MarkPaid(ctx, dbTx, req.ID, ref)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if !ok {
		return errNotSettleable
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	now := s.now()
	req.Status = domain.WithdrawalPaid
	req.ExternalRef = &ref
	req.FailureReason = nil
	req.ResolvedAt = &now
	return nil
}

func (s *withdrawalService) credentialsFor(ctx context.Context, memberID uuid.UUID) (domain.Credentials, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("get member: %w", err)
	}
	if member == nil {
		return domain.Credentials{}, fmt.Errorf("member %s not found", memberID)
	}
	return s.creds.ForAlliance(ctx, member.AllianceID)
}

// recordFailure stores why an approved request was not paid. Best effort: the
// request stays APPROVED either way.
func (s *withdrawalService) recordFailure(ctx context.Context, req *domain.WithdrawalRequest, reason string) {
	if err := s.withdrawals.RecordFailure(ctx, req.ID, reason); err != nil {
		s.log.Error().Err(err).Str("request_id", req.ID.String()).Msg("failed to record payment failure")
		return
	}
	req.FailureReason = &reason
}

func (s *withdrawalService) notify(ctx context.Context, typ domain.WithdrawalEventType, req *domain.WithdrawalRequest) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, domain.WithdrawalEvent{Type: typ, Request: *req, OccurredAt: s.now()})
}

func withRequestID(err error, id uuid.UUID) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.WithDetail("request_id", id.String())
	}
	return err
}

// Cancel moves a PENDING request to CANCELED. Only the requesting member may cancel.
func (s *withdrawalService) Cancel(ctx context.Context, id, requester uuid.UUID) (*domain.WithdrawalRequest, error) {
	ok, err := s.withdrawals.CancelByRequester(ctx, id, requester)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("cancel withdrawal: %w", err))
	}

	req, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get withdrawal: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("withdrawal")
	}
	if !ok {
		if req.MemberID != requester {
			return nil, apperror.ErrNotRequester()
		}
		return nil, apperror.ErrAlreadyResolved(string(req.Status))
	}

	s.metrics.transition(domain.WithdrawalCanceled)
	s.log.Info().Str("request_id", id.String()).Msg("withdrawal canceled by requester")
	s.notify(ctx, domain.EventWithdrawalCanceled, req)
	return req, nil
}

// SettleManually records a payment made outside the engine for an APPROVED
// request that never settled, debiting the member as a normal payout would.
func (s *withdrawalService) SettleManually(ctx context.Context, id uuid.UUID, reviewer, externalRef string) (*domain.WithdrawalRequest, error) {
	if reviewer == "" || externalRef == "" {
		return nil, apperror.Validation("reviewer and external reference are required")
	}

	req, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get withdrawal: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("withdrawal")
	}
	if !req.NeedsFollowUp() {
		return nil, apperror.ErrAlreadyResolved(string(req.Status))
	}

	if err := s.settle(ctx, req, reviewer, externalRef); err != nil {
		if errors.Is(err, errNotSettleable) {
			return nil, s.notAwaitingSettlement(ctx, id)
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.ErrDatabaseError(err)
	}

	s.metrics.transition(domain.WithdrawalPaid)
	s.log.Info().
		Str("request_id", id.String()).
		Str("reviewer", reviewer).
		Str("external_ref", externalRef).
		Msg("withdrawal settled manually")
	s.notify(ctx, domain.EventWithdrawalPaid, req)
	return req, nil
}

func (s *withdrawalService) notAwaitingSettlement(ctx context.Context, id uuid.UUID) error {
	req, err := s.withdrawals.GetByID(ctx, id)
	if err != nil || req == nil {
		return apperror.ErrAlreadyResolved("")
	}
	return apperror.ErrAlreadyResolved(string(req.Status))
}

// Get fetches one request.
func (s *withdrawalService) Get(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	req, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get withdrawal: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("withdrawal")
	}
	return req, nil
}

// ListByMember lists a member's requests, newest first.
func (s *withdrawalService) ListByMember(ctx context.Context, memberID uuid.UUID, status *domain.WithdrawalStatus, limit int) ([]domain.WithdrawalRequest, error) {
	return s.list(ctx, domain.WithdrawalListParams{MemberID: &memberID, Status: status, Limit: limit})
}

// ListPending lists requests awaiting review, newest first.
func (s *withdrawalService) ListPending(ctx context.Context, limit int) ([]domain.WithdrawalRequest, error) {
	pending := domain.WithdrawalPending
	return s.list(ctx, domain.WithdrawalListParams{Status: &pending, Limit: limit})
}

func (s *withdrawalService) list(ctx context.Context, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, error) {
	params.Limit = clampLimit(params.Limit)
	reqs, err := s.withdrawals.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list withdrawals: %w", err))
	}
	return reqs, nil
}
