package domain

import (
	"time"

	"alliance-bank/pkg/apperror"

	"github.com/google/uuid"
)

// SessionState is the step a transfer session is at.
type SessionState string

const (
	SessionPickingRecipient SessionState = "PICKING_RECIPIENT"
	SessionEnteringAmounts  SessionState = "ENTERING_AMOUNTS"
	SessionReadyToConfirm   SessionState = "READY_TO_CONFIRM"
)

// ResourcePages groups resources the way the amount forms are shown, five per page.
var ResourcePages = [][]Resource{
	{Money, Food, Coal, Oil, Uranium},
	{Lead, Iron, Bauxite, Gasoline, Munitions},
	{Steel, Aluminum},
}

// TransferSession assembles a withdrawal over several interactions.
// It is keyed by requester and expires after a period of inactivity.
type TransferSession struct {
	Requester string       `json:"requester"`
	MemberID  uuid.UUID    `json:"member_id"`
	State     SessionState `json:"state"`
	Page      int          `json:"page"`
	Recipient *Recipient   `json:"recipient,omitempty"`
	Amounts   Bag          `json:"amounts"`
	Note      *string      `json:"note,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewTransferSession starts a session at the recipient step.
func NewTransferSession(requester string, memberID uuid.UUID, now time.Time, ttl time.Duration) *TransferSession {
	return &TransferSession{
		Requester: requester,
		MemberID:  memberID,
		State:     SessionPickingRecipient,
		Amounts:   Bag{},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session is past its deadline.
func (s *TransferSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Touch extends the deadline after activity.
func (s *TransferSession) Touch(now time.Time, ttl time.Duration) {
	s.ExpiresAt = now.Add(ttl)
}

// ChooseRecipient moves the session to the first amounts page.
func (s *TransferSession) ChooseRecipient(r Recipient) error {
	if s.State != SessionPickingRecipient {
		return apperror.ErrSessionStep("recipient already chosen")
	}
	if err := r.Validate(); err != nil {
		return err
	}
	s.Recipient = &r
	s.State = SessionEnteringAmounts
	s.Page = 0
	return nil
}

// EnterAmounts records quantities for the current page and advances.
// With finish set the remaining pages are skipped.
func (s *TransferSession) EnterAmounts(page int, amounts Bag, finish bool) error {
	if s.State != SessionEnteringAmounts {
		return apperror.ErrSessionStep("session is not collecting amounts")
	}
	if page != s.Page || page < 0 || page >= len(ResourcePages) {
		return apperror.ErrSessionStep("unexpected amounts page")
	}
	allowed := make(map[Resource]bool, len(ResourcePages[page]))
	for _, r := range ResourcePages[page] {
		allowed[r] = true
	}
	for r, v := range amounts {
		if !allowed[r] {
			return apperror.ErrInvalidPayload(string(r) + " is not on this page")
		}
		if v.IsNegative() {
			return apperror.ErrInvalidAmount()
		}
	}

	next := Bag{}
	for r, v := range s.Amounts {
		if !allowed[r] {
			next[r] = v
		}
	}
	next = next.Add(amounts)

	done := finish || page+1 >= len(ResourcePages)
	if done && !next.HasPositive() {
		return apperror.ErrInvalidPayload("at least one quantity must be positive")
	}

	s.Amounts = next
	s.Page = page + 1
	if done {
		s.State = SessionReadyToConfirm
	}
	return nil
}

// SetNote attaches a free-text note; an empty string clears it.
func (s *TransferSession) SetNote(note string) {
	if note == "" {
		s.Note = nil
		return
	}
	s.Note = &note
}

// Payload builds the validated withdrawal payload.
func (s *TransferSession) Payload() (WithdrawalPayload, error) {
	if s.State != SessionReadyToConfirm || s.Recipient == nil {
		return WithdrawalPayload{}, apperror.ErrSessionStep("session is not ready to confirm")
	}
	return NewWithdrawalPayload(s.Amounts, *s.Recipient, s.Note)
}
