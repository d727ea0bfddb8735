package dto

import (
	"strings"

	"alliance-bank/internal/core/domain"

	"github.com/shopspring/decimal"
)

// RegisterMemberRequest is the request body for member registration.
type RegisterMemberRequest struct {
	DiscordID  string `json:"discord_id" binding:"required,safe_id,max=32"`
	NationID   int64  `json:"nation_id" binding:"required,gt=0"`
	AllianceID int64  `json:"alliance_id" binding:"required,gt=0"`
}

// RegisterAllianceRequest registers an alliance and stores its sealed API key.
type RegisterAllianceRequest struct {
	ID     int64  `json:"id" binding:"required,gt=0"`
	Name   string `json:"name" binding:"required,min=1,max=100"`
	APIKey string `json:"api_key" binding:"required,min=1,max=200"`
}

// AdjustRequest changes one resource of a member's balance.
type AdjustRequest struct {
	Resource string          `json:"resource" binding:"required,resource"`
	Amount   decimal.Decimal `json:"amount"`
	Reason   *string         `json:"reason,omitempty" binding:"omitempty,max=200"`
}

// RecipientRequest names who receives a withdrawal.
type RecipientRequest struct {
	Kind       string `json:"kind" binding:"required"`
	ExternalID int64  `json:"external_id"`
}

// ToDomain converts the request to a domain recipient.
func (r RecipientRequest) ToDomain() domain.Recipient {
	return domain.Recipient{Kind: domain.RecipientKind(strings.ToUpper(r.Kind)), ExternalID: r.ExternalID}
}

// CreateWithdrawalRequest is the request body for a new withdrawal.
type CreateWithdrawalRequest struct {
	Resources domain.Bag       `json:"resources" binding:"required"`
	Recipient RecipientRequest `json:"recipient"`
	Note      *string          `json:"note,omitempty" binding:"omitempty,max=200"`
}

// ResolveRequest carries a reviewer's decision.
type ResolveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve deny"`
}

// SettleRequest records an external reference for a payment made out of band.
type SettleRequest struct {
	ExternalRef string `json:"external_ref" binding:"required,safe_id,max=100"`
}

// IngestRequest optionally overrides the ingestion window.
type IngestRequest struct {
	MaxPages int `json:"max_pages" binding:"omitempty,gte=1,lte=50"`
	PageSize int `json:"page_size" binding:"omitempty,gte=1,lte=500"`
}

// AmountsRequest fills one page of the transfer session.
type AmountsRequest struct {
	Page    int        `json:"page" binding:"gte=0"`
	Amounts domain.Bag `json:"amounts"`
	Finish  bool       `json:"finish"`
}

// NoteRequest sets the session note.
type NoteRequest struct {
	Note string `json:"note" binding:"max=200"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	MemberID  string     `json:"member_id"`
	Resources domain.Bag `json:"resources"`
}

// AdjustResponse reports the balance after an adjustment.
type AdjustResponse struct {
	MemberID string          `json:"member_id"`
	Resource string          `json:"resource"`
	Balance  decimal.Decimal `json:"balance"`
}

// TreasuryResponse is the alliance treasury.
type TreasuryResponse struct {
	AllianceID int64      `json:"alliance_id"`
	Resources  domain.Bag `json:"resources"`
}

// HistoryResponse wraps a page of ledger entries.
type HistoryResponse struct {
	Items      []domain.LedgerEntry `json:"items"`
	NextBefore *int64               `json:"next_before_id,omitempty"`
}

// WithdrawalListResponse wraps a list of withdrawal requests.
type WithdrawalListResponse struct {
	Items []domain.WithdrawalRequest `json:"items"`
}

// BankRecordListResponse wraps a page of cached bank records.
type BankRecordListResponse struct {
	Items     []domain.BankRecord `json:"items"`
	NextAfter *int64              `json:"next_after_id,omitempty"`
}

// AllianceListResponse lists registered alliances.
type AllianceListResponse struct {
	Items []domain.Alliance `json:"items"`
}
