package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind classifies why a balance moved.
type EntryKind string

const (
	EntryKindManualAdjust EntryKind = "MANUAL_ADJUST"
	EntryKindWithdrawal   EntryKind = "WITHDRAWAL"
	EntryKindTaxCredit    EntryKind = "TAX_CREDIT"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindManualAdjust, EntryKindWithdrawal, EntryKindTaxCredit:
		return true
	}
	return false
}

// LedgerEntry is an immutable record of one balance movement.
type LedgerEntry struct {
	ID           int64           `json:"id"`
	MemberID     uuid.UUID       `json:"member_id"`
	Resource     Resource        `json:"resource"`
	Amount       decimal.Decimal `json:"amount"`
	Actor        string          `json:"actor"`
	Reason       *string         `json:"reason,omitempty"`
	Kind         EntryKind       `json:"kind"`
	WithdrawalID *uuid.UUID      `json:"withdrawal_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Adjustment describes one balance change requested by a caller.
type Adjustment struct {
	MemberID     uuid.UUID
	Resource     Resource
	Amount       decimal.Decimal
	Actor        string
	Reason       *string
	Kind         EntryKind
	WithdrawalID *uuid.UUID
}

// HistoryParams filters ledger history.
type HistoryParams struct {
	MemberID uuid.UUID
	Resource *Resource
	BeforeID *int64
	Limit    int
}

// ReconcileLine compares the stored balance with the ledger sum for one resource.
type ReconcileLine struct {
	Resource  Resource        `json:"resource"`
	Balance   decimal.Decimal `json:"balance"`
	LedgerSum decimal.Decimal `json:"ledger_sum"`
	Drift     decimal.Decimal `json:"drift"`
}

// ReconcileReport is the result of checking an account against its ledger.
type ReconcileReport struct {
	MemberID uuid.UUID       `json:"member_id"`
	Lines    []ReconcileLine `json:"lines"`
	Balanced bool            `json:"balanced"`
}

// NewReconcileReport builds a report over every resource.
func NewReconcileReport(memberID uuid.UUID, balance, ledgerSum Bag) *ReconcileReport {
	rep := &ReconcileReport{MemberID: memberID, Balanced: true}
	for _, r := range AllResources {
		b, s := balance.Get(r), ledgerSum.Get(r)
		drift := b.Sub(s)
		if !drift.IsZero() {
			rep.Balanced = false
		}
		rep.Lines = append(rep.Lines, ReconcileLine{Resource: r, Balance: b, LedgerSum: s, Drift: drift})
	}
	return rep
}
