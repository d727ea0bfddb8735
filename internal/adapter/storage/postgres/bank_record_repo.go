package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"alliance-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BankRecordRepo implements ports.BankRecordRepository.
type BankRecordRepo struct {
	pool Pool
}

// NewBankRecordRepo creates a new BankRecordRepo.
func NewBankRecordRepo(pool Pool) *BankRecordRepo {
	return &BankRecordRepo{pool: pool}
}

// InsertIfAbsent stores a record unless the alliance already cached its id.
// A transfer between two alliances is cached once for each of them.
func (r *BankRecordRepo) InsertIfAbsent(ctx context.Context, tx pgx.Tx, rec *domain.BankRecord) (bool, error) {
	resources, err := json.Marshal(rec.Resources)
	if err != nil {
		return false, fmt.Errorf("encode bank record resources: %w", err)
	}

	query := `INSERT INTO bank_records (id, alliance_id, date, note, sender_id, sender_type, receiver_id,
			receiver_type, tax_id, resources, is_alliance_row, is_ignored, is_tax_guess)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (alliance_id, id) DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		rec.ID, rec.AllianceID, rec.Date, rec.Note, rec.SenderID, int16(rec.SenderType), rec.ReceiverID,
		int16(rec.ReceiverType), rec.TaxID, resources, rec.IsAllianceRow, rec.IsIgnored, rec.IsTaxGuess,
	)
	if err != nil {
		return false, fmt.Errorf("insert bank record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns cached records newest first. Ignored rows are never returned.
func (r *BankRecordRepo) List(ctx context.Context, q domain.RecordQuery) ([]domain.BankRecord, error) {
	query := `SELECT id, alliance_id, date, note, sender_id, sender_type, receiver_id, receiver_type,
			tax_id, resources, is_alliance_row, is_ignored, is_tax_guess
		FROM bank_records
		WHERE alliance_id = $1 AND is_ignored = FALSE`
	args := []any{q.AllianceID}
	argIdx := 2

	switch q.Filter {
	case domain.FilterTax:
		query += " AND is_tax_guess = TRUE"
	case domain.FilterNonTax:
		query += " AND is_tax_guess = FALSE"
	}
	if q.AfterID != nil {
		query += fmt.Sprintf(" AND id < $%d", argIdx)
		args = append(args, *q.AfterID)
		argIdx++
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", argIdx)
	args = append(args, q.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bank records: %w", err)
	}
	defer rows.Close()

	var out []domain.BankRecord
	for rows.Next() {
		var rec domain.BankRecord
		var senderType, receiverType int16
		var resources []byte
		err := rows.Scan(&rec.ID, &rec.AllianceID, &rec.Date, &rec.Note, &rec.SenderID, &senderType,
			&rec.ReceiverID, &receiverType, &rec.TaxID, &resources, &rec.IsAllianceRow, &rec.IsIgnored, &rec.IsTaxGuess)
		if err != nil {
			return nil, fmt.Errorf("scan bank record row: %w", err)
		}
		rec.SenderType = domain.PartyType(senderType)
		rec.ReceiverType = domain.PartyType(receiverType)
		if err := json.Unmarshal(resources, &rec.Resources); err != nil {
			return nil, fmt.Errorf("decode bank record resources: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank record rows: %w", err)
	}
	return out, nil
}
