package postgres

import (
	"context"
	"testing"

	"alliance-bank/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreasuryRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT money, .+ FROM alliance_treasuries WHERE alliance_id = \\$1").
		WithArgs(int64(900)).
		WillReturnRows(pgxmock.NewRows(resourceColumnNames()).AddRow(bagRow("500")...))

	bag, err := NewTreasuryRepo(mock).Get(context.Background(), 900)
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(bag.Get(domain.Money)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTreasuryRepo_Get_NoRowIsEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM alliance_treasuries").
		WithArgs(int64(900)).
		WillReturnRows(pgxmock.NewRows(resourceColumnNames()))

	bag, err := NewTreasuryRepo(mock).Get(context.Background(), 900)
	require.NoError(t, err)
	assert.True(t, bag.IsZero())
}

func TestTreasuryRepo_CreditInTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO alliance_treasuries \\(alliance_id, money, oil\\) VALUES \\(\\$1, \\$2, \\$3\\) " +
		"ON CONFLICT \\(alliance_id\\) DO UPDATE SET money = alliance_treasuries.money \\+ EXCLUDED.money, " +
		"oil = alliance_treasuries.oil \\+ EXCLUDED.oil").
		WithArgs(int64(900), decimalArg("500"), decimalArg("12.25")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	delta := domain.Bag{domain.Oil: dec("12.25"), domain.Money: dec("500")}
	require.NoError(t, NewTreasuryRepo(mock).CreditInTx(context.Background(), tx, 900, delta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTreasuryRepo_CreditInTx_EmptyDeltaIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, NewTreasuryRepo(mock).CreditInTx(context.Background(), tx, 900, domain.Bag{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
