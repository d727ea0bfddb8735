package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const withdrawalColumns = `id, member_id, recipient_kind, recipient_id, resources, note, status,
	reviewer, external_ref, failure_reason, created_at, resolved_at`

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create inserts a new request within a transaction.
func (r *WithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error {
	resources, err := json.Marshal(w.Resources)
	if err != nil {
		return fmt.Errorf("encode withdrawal resources: %w", err)
	}

	query := `INSERT INTO withdrawal_requests (id, member_id, recipient_kind, recipient_id, resources, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(ctx, query,
		w.ID, w.MemberID, w.Recipient.Kind, w.Recipient.ExternalID,
		resources, w.Note, w.Status, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByID fetches a request by UUID.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`

	w, err := scanWithdrawal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return w, nil
}

// Transition changes status only if the row is still in from.
func (r *WithdrawalRepo) Transition(ctx context.Context, id uuid.UUID, from, to domain.WithdrawalStatus, reviewer string) (bool, error) {
	query := `UPDATE withdrawal_requests SET status = $3, reviewer = $4, resolved_at = NOW()
		WHERE id = $1 AND status = $2`

	tag, err := r.pool.Exec(ctx, query, id, from, to, reviewer)
	if err != nil {
		return false, fmt.Errorf("transition withdrawal: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CancelByRequester cancels a pending request owned by memberID.
func (r *WithdrawalRepo) CancelByRequester(ctx context.Context, id, memberID uuid.UUID) (bool, error) {
	query := `UPDATE withdrawal_requests SET status = $3, resolved_at = NOW()
		WHERE id = $1 AND member_id = $2 AND status = $4`

	tag, err := r.pool.Exec(ctx, query, id, memberID, domain.WithdrawalCanceled, domain.WithdrawalPending)
	if err != nil {
		return false, fmt.Errorf("cancel withdrawal: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RecordFailure stores why the external payment did not go through.
func (r *WithdrawalRepo) RecordFailure(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.pool.Exec(ctx, `UPDATE withdrawal_requests SET failure_reason = $2 WHERE id = $1`, id, reason)
	if err != nil {
		return fmt.Errorf("record withdrawal failure: %w", err)
	}
	return nil
}

// MarkPaid records the external reference and moves APPROVED to PAID.
func (r *WithdrawalRepo) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, externalRef string) (bool, error) {
	query := `UPDATE withdrawal_requests
		SET status = $3, external_ref = $2, failure_reason = NULL, resolved_at = NOW()
		WHERE id = $1 AND status = $4 AND external_ref IS NULL`

	tag, err := tx.Exec(ctx, query, id, externalRef, domain.WithdrawalPaid, domain.WithdrawalApproved)
	if err != nil {
		return false, fmt.Errorf("mark withdrawal paid: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Outstanding sums the payloads of the member's pending and approved-unpaid requests.
func (r *WithdrawalRepo) Outstanding(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (domain.Bag, error) {
	query := `SELECT resources FROM withdrawal_requests WHERE member_id = $1 AND status IN ($2, $3)`

	rows, err := tx.Query(ctx, query, memberID, domain.WithdrawalPending, domain.WithdrawalApproved)
	if err != nil {
		return nil, fmt.Errorf("query outstanding withdrawals: %w", err)
	}
	defer rows.Close()

	total := domain.Bag{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan outstanding withdrawal: %w", err)
		}
		var b domain.Bag
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("decode outstanding withdrawal: %w", err)
		}
		total = total.Add(b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outstanding withdrawals: %w", err)
	}
	return total, nil
}

// List returns requests newest first.
func (r *WithdrawalRepo) List(ctx context.Context, params domain.WithdrawalListParams) ([]domain.WithdrawalRequest, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.MemberID != nil {
		conditions = append(conditions, fmt.Sprintf("member_id = $%d", argIdx))
		args = append(args, *params.MemberID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM withdrawal_requests %s ORDER BY created_at DESC LIMIT $%d`,
		withdrawalColumns, where, argIdx)
	args = append(args, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var out []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal row: %w", err)
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return out, nil
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	w := &domain.WithdrawalRequest{}
	var resources []byte
	err := row.Scan(
		&w.ID, &w.MemberID, &w.Recipient.Kind, &w.Recipient.ExternalID, &resources, &w.Note, &w.Status,
		&w.Reviewer, &w.ExternalRef, &w.FailureReason, &w.CreatedAt, &w.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resources, &w.Resources); err != nil {
		return nil, fmt.Errorf("decode withdrawal resources: %w", err)
	}
	return w, nil
}
