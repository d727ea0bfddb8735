package postgres

import (
	"context"
	"testing"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withdrawalColumnNames() []string {
	return []string{"id", "member_id", "recipient_kind", "recipient_id", "resources", "note", "status",
		"reviewer", "external_ref", "failure_reason", "created_at", "resolved_at"}
}

func TestWithdrawalRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := &domain.WithdrawalRequest{
		ID:        uuid.New(),
		MemberID:  uuid.New(),
		Recipient: domain.Recipient{Kind: domain.RecipientNation, ExternalID: 4242},
		Resources: domain.Bag{domain.Money: dec("100"), domain.Food: dec("5")},
		Note:      strPtr("rebuild"),
		Status:    domain.WithdrawalPending,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO withdrawal_requests").
		WithArgs(w.ID, w.MemberID, domain.RecipientNation, int64(4242),
			[]byte(`{"food":"5","money":"100"}`), w.Note, domain.WithdrawalPending, w.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), tx, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id, memberID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM withdrawal_requests WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(withdrawalColumnNames()).AddRow(
			id, memberID, "ALLIANCE", int64(77), []byte(`{"steel":"3.5"}`), nil, "APPROVED",
			strPtr("banker:9"), nil, strPtr("timeout"), now, &now,
		))

	w, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, domain.RecipientAlliance, w.Recipient.Kind)
	assert.Equal(t, int64(77), w.Recipient.ExternalID)
	assert.Equal(t, domain.WithdrawalApproved, w.Status)
	assert.True(t, dec("3.5").Equal(w.Resources.Get(domain.Steel)))
	assert.Equal(t, "timeout", *w.FailureReason)
	assert.True(t, w.NeedsFollowUp())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("FROM withdrawal_requests WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(withdrawalColumnNames()))

	w, err := NewWithdrawalRepo(mock).GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, w)
}

func TestWithdrawalRepo_Transition(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"claimed", 1, true},
		{"lost race", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			id := uuid.New()
			mock.ExpectExec("UPDATE withdrawal_requests SET status = \\$3, reviewer = \\$4, resolved_at = NOW\\(\\) WHERE id = \\$1 AND status = \\$2").
				WithArgs(id, domain.WithdrawalPending, domain.WithdrawalApproved, "banker:1").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			ok, err := NewWithdrawalRepo(mock).Transition(context.Background(), id,
				domain.WithdrawalPending, domain.WithdrawalApproved, "banker:1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithdrawalRepo_CancelByRequester(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id, memberID := uuid.New(), uuid.New()
	mock.ExpectExec("UPDATE withdrawal_requests SET status = \\$3 .+ WHERE id = \\$1 AND member_id = \\$2 AND status = \\$4").
		WithArgs(id, memberID, domain.WithdrawalCanceled, domain.WithdrawalPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := NewWithdrawalRepo(mock).CancelByRequester(context.Background(), id, memberID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_MarkPaid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawal_requests SET status = \\$3, external_ref = \\$2 .+ WHERE id = \\$1 AND status = \\$4 AND external_ref IS NULL").
		WithArgs(id, "ext-555", domain.WithdrawalPaid, domain.WithdrawalApproved).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	ok, err := NewWithdrawalRepo(mock).MarkPaid(context.Background(), tx, id, "ext-555")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_RecordFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE withdrawal_requests SET failure_reason").
		WithArgs(id, "remote rejected").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, NewWithdrawalRepo(mock).RecordFailure(context.Background(), id, "remote rejected"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_Outstanding(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	memberID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT resources FROM withdrawal_requests WHERE member_id = \\$1 AND status IN \\(\\$2, \\$3\\)").
		WithArgs(memberID, domain.WithdrawalPending, domain.WithdrawalApproved).
		WillReturnRows(pgxmock.NewRows([]string{"resources"}).
			AddRow([]byte(`{"money":"100"}`)).
			AddRow([]byte(`{"money":"50","oil":"2"}`)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	total, err := NewWithdrawalRepo(mock).Outstanding(context.Background(), tx, memberID)
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(total.Get(domain.Money)))
	assert.True(t, dec("2").Equal(total.Get(domain.Oil)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	status := domain.WithdrawalPending
	now := time.Now().UTC()
	mock.ExpectQuery("FROM withdrawal_requests WHERE status = \\$1 ORDER BY created_at DESC LIMIT \\$2").
		WithArgs(status, 10).
		WillReturnRows(pgxmock.NewRows(withdrawalColumnNames()).AddRow(
			uuid.New(), uuid.New(), "NATION", int64(1), []byte(`{"money":"1"}`), nil, "PENDING",
			nil, nil, nil, now, nil,
		))

	list, err := NewWithdrawalRepo(mock).List(context.Background(), domain.WithdrawalListParams{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.WithdrawalPending, list[0].Status)
	assert.Nil(t, list[0].ResolvedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
