package ports

import (
	"context"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Role is the caller's authority level.
type Role string

const (
	RoleMember Role = "member"
	RoleBanker Role = "banker"
	RoleAdmin  Role = "admin"
)

var roleRank = map[Role]int{RoleMember: 1, RoleBanker: 2, RoleAdmin: 3}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Allows reports whether r carries at least the authority of required.
func (r Role) Allows(required Role) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject string, role Role, memberID *uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject  string
	Role     Role
	MemberID *uuid.UUID
}

// --- Service Ports (Business Logic) ---

// LedgerService owns every change to member balances.
type LedgerService interface {
	GetBalance(ctx context.Context, memberID uuid.UUID) (domain.Bag, error)
	Adjust(ctx context.Context, adj domain.Adjustment) (decimal.Decimal, error)
	// AdjustInTx applies an adjustment inside the caller's transaction.
	AdjustInTx(ctx context.Context, tx pgx.Tx, adj domain.Adjustment) (decimal.Decimal, error)
	History(ctx context.Context, params domain.HistoryParams) ([]domain.LedgerEntry, error)
	Reconcile(ctx context.Context, memberID uuid.UUID) (*domain.ReconcileReport, error)
}

// WithdrawalService runs the withdrawal state machine.
type WithdrawalService interface {
	Create(ctx context.Context, memberID uuid.UUID, payload domain.WithdrawalPayload) (*domain.WithdrawalRequest, error)
	Resolve(ctx context.Context, id uuid.UUID, reviewer string, decision domain.Decision) (*domain.WithdrawalRequest, error)
	Cancel(ctx context.Context, id, requester uuid.UUID) (*domain.WithdrawalRequest, error)
	SettleManually(ctx context.Context, id uuid.UUID, reviewer, externalRef string) (*domain.WithdrawalRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, status *domain.WithdrawalStatus, limit int) ([]domain.WithdrawalRequest, error)
	ListPending(ctx context.Context, limit int) ([]domain.WithdrawalRequest, error)
}

// TaxService credits incoming alliance transactions to the treasury.
type TaxService interface {
	Preview(ctx context.Context, allianceID int64) (*domain.TaxSummary, error)
	Apply(ctx context.Context, allianceID int64) (*domain.TaxSummary, error)
	Treasury(ctx context.Context, allianceID int64) (domain.Bag, error)
}

// BankCacheService mirrors the external bank history locally.
type BankCacheService interface {
	Ingest(ctx context.Context, allianceID int64, maxPages, pageSize int) (*domain.IngestResult, error)
	Query(ctx context.Context, query domain.RecordQuery) ([]domain.BankRecord, error)
}

// MemberService manages member registration.
type MemberService interface {
	Register(ctx context.Context, req RegisterMemberRequest) (*domain.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.Member, error)
}

// RegisterMemberRequest holds input for member registration.
type RegisterMemberRequest struct {
	DiscordID  string
	NationID   int64
	AllianceID int64
}

// AllianceService registers alliances and resolves their credentials.
type AllianceService interface {
	CredentialProvider
	Register(ctx context.Context, id int64, name, apiKey string) (*domain.Alliance, error)
	List(ctx context.Context) ([]domain.Alliance, error)
}

// SessionService drives the multi-step transfer flow.
type SessionService interface {
	Start(ctx context.Context, requester string, memberID uuid.UUID) (*domain.TransferSession, error)
	Current(ctx context.Context, requester string) (*domain.TransferSession, error)
	ChooseRecipient(ctx context.Context, requester string, recipient domain.Recipient) (*domain.TransferSession, error)
	EnterAmounts(ctx context.Context, requester string, page int, amounts domain.Bag, finish bool) (*domain.TransferSession, error)
	SetNote(ctx context.Context, requester, note string) (*domain.TransferSession, error)
	Confirm(ctx context.Context, requester string) (*domain.WithdrawalRequest, error)
	Abort(ctx context.Context, requester string) error
}
