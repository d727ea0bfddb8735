package domain

import (
	"strings"
	"time"

	"alliance-bank/pkg/apperror"

	"github.com/google/uuid"
)

// WithdrawalStatus is the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalPaid     WithdrawalStatus = "PAID"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
	WithdrawalCanceled WithdrawalStatus = "CANCELED"
)

// ParseWithdrawalStatus validates a status filter value.
func ParseWithdrawalStatus(s string) (WithdrawalStatus, bool) {
	st := WithdrawalStatus(strings.ToUpper(s))
	switch st {
	case WithdrawalPending, WithdrawalApproved, WithdrawalPaid, WithdrawalRejected, WithdrawalCanceled:
		return st, true
	}
	return "", false
}

// Decision is a reviewer's verdict on a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// RecipientKind is the type of the external receiver.
type RecipientKind string

const (
	RecipientNation   RecipientKind = "NATION"
	RecipientAlliance RecipientKind = "ALLIANCE"
)

// ReceiverType is the numeric code the game API expects (1 individual, 2 group).
func (k RecipientKind) ReceiverType() int {
	if k == RecipientAlliance {
		return 2
	}
	return 1
}

// Recipient identifies who receives a withdrawal.
type Recipient struct {
	Kind       RecipientKind `json:"kind"`
	ExternalID int64         `json:"external_id"`
}

// Validate checks kind and id.
func (r Recipient) Validate() error {
	switch r.Kind {
	case RecipientNation, RecipientAlliance:
	default:
		return apperror.ErrInvalidRecipient("kind must be NATION or ALLIANCE")
	}
	if r.ExternalID <= 0 {
		return apperror.ErrInvalidRecipient("external id must be positive")
	}
	return nil
}

// WithdrawalPayload is what a member asks to send: only positive quantities,
// a valid recipient and an optional note.
type WithdrawalPayload struct {
	Resources Bag       `json:"resources"`
	Recipient Recipient `json:"recipient"`
	Note      *string   `json:"note,omitempty"`
}

const maxNoteLength = 200

// NewWithdrawalPayload validates and normalises a payload.
func NewWithdrawalPayload(resources Bag, recipient Recipient, note *string) (WithdrawalPayload, error) {
	if !resources.AllNonNegative() {
		return WithdrawalPayload{}, apperror.ErrInvalidPayload("quantities must not be negative")
	}
	if !resources.HasPositive() {
		return WithdrawalPayload{}, apperror.ErrInvalidPayload("at least one quantity must be positive")
	}
	for r := range resources {
		if !r.Valid() {
			return WithdrawalPayload{}, apperror.ErrInvalidPayload("unknown resource " + string(r))
		}
	}
	if err := recipient.Validate(); err != nil {
		return WithdrawalPayload{}, err
	}
	if note != nil {
		n := strings.TrimSpace(*note)
		if len(n) > maxNoteLength {
			return WithdrawalPayload{}, apperror.ErrInvalidPayload("note is too long")
		}
		if n == "" {
			note = nil
		} else {
			note = &n
		}
	}
	return WithdrawalPayload{Resources: resources.Positive(), Recipient: recipient, Note: note}, nil
}

// WithdrawalRequest is one transfer attempt out of a member's safekeeping.
type WithdrawalRequest struct {
	ID            uuid.UUID        `json:"id"`
	MemberID      uuid.UUID        `json:"member_id"`
	Recipient     Recipient        `json:"recipient"`
	Resources     Bag              `json:"resources"`
	Note          *string          `json:"note,omitempty"`
	Status        WithdrawalStatus `json:"status"`
	Reviewer      *string          `json:"reviewer,omitempty"`
	ExternalRef   *string          `json:"external_ref,omitempty"`
	FailureReason *string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	ResolvedAt    *time.Time       `json:"resolved_at,omitempty"`
}

// IsPending returns true while the request can still be resolved or canceled.
func (w *WithdrawalRequest) IsPending() bool {
	return w.Status == WithdrawalPending
}

// NeedsFollowUp returns true for an approved request whose payment never settled.
func (w *WithdrawalRequest) NeedsFollowUp() bool {
	return w.Status == WithdrawalApproved && w.ExternalRef == nil
}

// PaymentNote is the note sent along with the external payment.
func (w *WithdrawalRequest) PaymentNote() string {
	base := "alliance bank withdrawal " + w.ID.String()
	if w.Note != nil {
		return base + ": " + *w.Note
	}
	return base
}

// WithdrawalListParams filters request listings.
type WithdrawalListParams struct {
	MemberID *uuid.UUID
	Status   *WithdrawalStatus
	Limit    int
}

// PaymentOrder is what the external payer receives.
type PaymentOrder struct {
	Recipient Recipient
	Resources Bag
	Note      string
}

// WithdrawalEventType names a notification about a request.
type WithdrawalEventType string

const (
	EventWithdrawalRequested WithdrawalEventType = "withdrawal.requested"
	EventWithdrawalRejected  WithdrawalEventType = "withdrawal.rejected"
	EventWithdrawalCanceled  WithdrawalEventType = "withdrawal.canceled"
	EventWithdrawalPaid      WithdrawalEventType = "withdrawal.paid"
	EventWithdrawalFollowUp  WithdrawalEventType = "withdrawal.follow_up"
	EventWithdrawalReconcile WithdrawalEventType = "withdrawal.reconcile"
)

// WithdrawalEvent is published after a request changes state.
type WithdrawalEvent struct {
	Type       WithdrawalEventType `json:"type"`
	Request    WithdrawalRequest   `json:"request"`
	OccurredAt time.Time           `json:"occurred_at"`
}
