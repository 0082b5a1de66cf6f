package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"xrpl-payroll-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry() *ports.PaymentLogEntry {
	return &ports.PaymentLogEntry{
		ID:          uuid.New(),
		Sender:      "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH",
		Destination: "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
		Amount:      "25.50",
		Currency:    "USD",
		Issuer:      "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe",
		TxHash:      "ABC123",
		ResultCode:  "tesSUCCESS",
		Succeeded:   true,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func paymentLogColumns() []string {
	return []string{"id", "sender", "destination", "amount", "currency", "issuer",
		"tx_hash", "result_code", "succeeded", "created_at"}
}

func paymentLogRow(e *ports.PaymentLogEntry) *pgxmock.Rows {
	return pgxmock.NewRows(paymentLogColumns()).AddRow(
		e.ID, e.Sender, e.Destination, e.Amount, e.Currency, e.Issuer,
		e.TxHash, e.ResultCode, e.Succeeded, e.CreatedAt,
	)
}

func TestPaymentLogRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentLogRepo(mock)
	e := newTestEntry()

	mock.ExpectExec("INSERT INTO payment_log").
		WithArgs(e.ID, e.Sender, e.Destination, e.Amount, e.Currency,
			e.Issuer, e.TxHash, e.ResultCode, e.Succeeded, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentLogRepo_Create_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentLogRepo(mock)
	e := newTestEntry()

	mock.ExpectExec("INSERT INTO payment_log").
		WithArgs(e.ID, e.Sender, e.Destination, e.Amount, e.Currency,
			e.Issuer, e.TxHash, e.ResultCode, e.Succeeded, e.CreatedAt).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), e)
	assert.Error(t, err)
}

func TestPaymentLogRepo_ListBySender(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentLogRepo(mock)
	e := newTestEntry()

	mock.ExpectQuery("SELECT (.+) FROM payment_log WHERE sender").
		WithArgs(e.Sender, 50).
		WillReturnRows(paymentLogRow(e))

	entries, err := repo.ListBySender(context.Background(), e.Sender, 50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.TxHash, entries[0].TxHash)
	assert.Equal(t, e.Amount, entries[0].Amount)
	assert.True(t, entries[0].Succeeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentLogRepo_ListBySender_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentLogRepo(mock)

	mock.ExpectQuery("SELECT (.+) FROM payment_log WHERE sender").
		WithArgs("rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH", 50).
		WillReturnRows(pgxmock.NewRows(paymentLogColumns()))

	entries, err := repo.ListBySender(context.Background(), "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH", 50)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
