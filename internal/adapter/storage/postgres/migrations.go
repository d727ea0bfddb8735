package postgres

import (
	"context"
	"fmt"
)

// schema creates every table the service needs. It is idempotent and runs on startup.
// Alliances come first because members and treasuries reference them.
const schema = `
CREATE TABLE IF NOT EXISTS alliances (
    id                 BIGINT PRIMARY KEY,
    name               TEXT NOT NULL,
    api_key_ciphertext BYTEA,
    api_key_nonce      BYTEA,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS members (
    id          UUID PRIMARY KEY,
    discord_id  TEXT NOT NULL UNIQUE,
    nation_id   BIGINT NOT NULL UNIQUE,
    alliance_id BIGINT NOT NULL REFERENCES alliances(id),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS safekeeping_accounts (
    member_id  UUID PRIMARY KEY REFERENCES members(id),
    money      NUMERIC(24,2) NOT NULL DEFAULT 0,
    food       NUMERIC(24,2) NOT NULL DEFAULT 0,
    coal       NUMERIC(24,2) NOT NULL DEFAULT 0,
    oil        NUMERIC(24,2) NOT NULL DEFAULT 0,
    uranium    NUMERIC(24,2) NOT NULL DEFAULT 0,
    lead       NUMERIC(24,2) NOT NULL DEFAULT 0,
    iron       NUMERIC(24,2) NOT NULL DEFAULT 0,
    bauxite    NUMERIC(24,2) NOT NULL DEFAULT 0,
    gasoline   NUMERIC(24,2) NOT NULL DEFAULT 0,
    munitions  NUMERIC(24,2) NOT NULL DEFAULT 0,
    steel      NUMERIC(24,2) NOT NULL DEFAULT 0,
    aluminum   NUMERIC(24,2) NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id            BIGSERIAL PRIMARY KEY,
    member_id     UUID NOT NULL REFERENCES members(id),
    resource      TEXT NOT NULL,
    amount        NUMERIC(24,2) NOT NULL,
    actor         TEXT NOT NULL,
    reason        TEXT,
    kind          TEXT NOT NULL CHECK (kind IN ('MANUAL_ADJUST', 'WITHDRAWAL', 'TAX_CREDIT')),
    withdrawal_id UUID,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS withdrawal_requests (
    id             UUID PRIMARY KEY,
    member_id      UUID NOT NULL REFERENCES members(id),
    recipient_kind TEXT NOT NULL CHECK (recipient_kind IN ('NATION', 'ALLIANCE')),
    recipient_id   BIGINT NOT NULL,
    resources      JSONB NOT NULL,
    note           TEXT,
    status         TEXT NOT NULL CHECK (status IN ('PENDING', 'APPROVED', 'PAID', 'REJECTED', 'CANCELED')),
    reviewer       TEXT,
    external_ref   TEXT,
    failure_reason TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    resolved_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS alliance_treasuries (
    alliance_id BIGINT PRIMARY KEY REFERENCES alliances(id),
    money       NUMERIC(24,2) NOT NULL DEFAULT 0,
    food        NUMERIC(24,2) NOT NULL DEFAULT 0,
    coal        NUMERIC(24,2) NOT NULL DEFAULT 0,
    oil         NUMERIC(24,2) NOT NULL DEFAULT 0,
    uranium     NUMERIC(24,2) NOT NULL DEFAULT 0,
    lead        NUMERIC(24,2) NOT NULL DEFAULT 0,
    iron        NUMERIC(24,2) NOT NULL DEFAULT 0,
    bauxite     NUMERIC(24,2) NOT NULL DEFAULT 0,
    gasoline    NUMERIC(24,2) NOT NULL DEFAULT 0,
    munitions   NUMERIC(24,2) NOT NULL DEFAULT 0,
    steel       NUMERIC(24,2) NOT NULL DEFAULT 0,
    aluminum    NUMERIC(24,2) NOT NULL DEFAULT 0,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tax_cursors (
    alliance_id BIGINT PRIMARY KEY,
    last_id     BIGINT NOT NULL DEFAULT 0,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bank_cursors (
    alliance_id BIGINT PRIMARY KEY,
    last_id     BIGINT NOT NULL DEFAULT 0,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bank_records (
    id              BIGINT NOT NULL,
    alliance_id     BIGINT NOT NULL,
    date            TIMESTAMPTZ NOT NULL,
    note            TEXT NOT NULL DEFAULT '',
    sender_id       BIGINT NOT NULL,
    sender_type     SMALLINT NOT NULL,
    receiver_id     BIGINT NOT NULL,
    receiver_type   SMALLINT NOT NULL,
    tax_id          BIGINT NOT NULL DEFAULT 0,
    resources       JSONB NOT NULL,
    is_alliance_row BOOLEAN NOT NULL,
    is_ignored      BOOLEAN NOT NULL,
    is_tax_guess    BOOLEAN NOT NULL,
    cached_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (alliance_id, id)
);

CREATE INDEX IF NOT EXISTS idx_ledger_entries_member ON ledger_entries(member_id, id DESC);
CREATE INDEX IF NOT EXISTS idx_withdrawals_member ON withdrawal_requests(member_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawal_requests(status, created_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_withdrawals_external_ref ON withdrawal_requests(external_ref) WHERE external_ref IS NOT NULL;
`

// schemaTables lists the tables schema creates, in creation order.
var schemaTables = []string{
	"alliances", "members", "safekeeping_accounts", "ledger_entries", "withdrawal_requests",
	"alliance_treasuries", "tax_cursors", "bank_cursors", "bank_records",
}

// Migrate applies the schema.
func Migrate(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
