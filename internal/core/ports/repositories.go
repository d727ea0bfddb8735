package ports

import (
	"context"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// MemberRepository defines persistence operations for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.Member, error)
}

// AllianceRepository stores alliances and their sealed API keys.
type AllianceRepository interface {
	Upsert(ctx context.Context, alliance *domain.Alliance) error
	GetByID(ctx context.Context, id int64) (*domain.Alliance, error)
	List(ctx context.Context) ([]domain.Alliance, error)
}

// AccountRepository defines persistence for safekeeping accounts.
// Methods accepting pgx.Tx are used inside transaction blocks.
type AccountRepository interface {
	// GetOrCreate returns the balances, creating a zero row when absent.
	GetOrCreate(ctx context.Context, memberID uuid.UUID) (domain.Bag, error)
	// GetForUpdate ensures the row exists and locks it for the rest of tx.
	GetForUpdate(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (domain.Bag, error)
	// AddInTx increments one resource column and returns the new value.
	AddInTx(ctx context.Context, tx pgx.Tx, memberID uuid.UUID, resource domain.Resource, amount decimal.Decimal) (decimal.Decimal, error)
}

// LedgerEntryRepository appends and reads the immutable ledger.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	List(ctx context.Context, params domain.HistoryParams) ([]domain.LedgerEntry, error)
	SumByResource(ctx context.Context, memberID uuid.UUID) (domain.Bag, error)
}

// WithdrawalRepository defines persistence for withdrawal requests.
// Status changes are conditional updates; the bool result reports whether a row changed.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, req *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)
	Transition(ctx context.Context, id uuid.UUID, from, to domain.WithdrawalStatus, reviewer string) (bool, error)
	CancelByRequester(ctx context.Context, id, memberID uuid.UUID) (bool, error)
	RecordFailure(ctx context.Context, id uuid.UUID, reason string) error
	// MarkPaid moves APPROVED to PAID only while no external reference is recorded.
	MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, externalRef string) (bool, error)
	// Outstanding sums payloads of requests that may still be paid out.
	Outstanding(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (domain.Bag, error)
	List(ctx context.Context, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, error)
}

// TreasuryRepository holds the per-alliance aggregate balance.
type TreasuryRepository interface {
	Get(ctx context.Context, allianceID int64) (domain.Bag, error)
	CreditInTx(ctx context.Context, tx pgx.Tx, allianceID int64, delta domain.Bag) error
}

// CursorRepository tracks the newest external record id processed per alliance.
// Cursors never move backward.
type CursorRepository interface {
	Get(ctx context.Context, kind domain.CursorKind, allianceID int64) (int64, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, kind domain.CursorKind, allianceID int64) (int64, error)
	Advance(ctx context.Context, tx pgx.Tx, kind domain.CursorKind, allianceID int64, id int64) (int64, error)
}

// BankRecordRepository is the local cache of external bank records.
type BankRecordRepository interface {
	// InsertIfAbsent returns false when the id is already cached.
	InsertIfAbsent(ctx context.Context, tx pgx.Tx, rec *domain.BankRecord) (bool, error)
	List(ctx context.Context, query domain.RecordQuery) ([]domain.BankRecord, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
