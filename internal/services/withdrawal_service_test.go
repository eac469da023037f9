package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWithdrawalFixture(t *testing.T) (*WithdrawalService, sqlmock.Sqlmock, redismock.ClientMock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	svc := NewWithdrawalService(db, rdb, NewWalletLedger(db), NewBankDirectory(t.TempDir()), testLeagueConfig())
	svc.now = func() time.Time { return paymentNow }
	svc.newID = func() string { return "fixed" }
	return svc, sqlMock, redisMock
}

func withdrawalRequest() *models.WithdrawalRequest {
	return &models.WithdrawalRequest{Amount: 400, BankCode: "HDFC0001234", AccountNumber: "001234567890", AccountName: "Arjun Rao"}
}

func TestWithdrawalService_Withdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("debits pending and queues pacs.008", func(t *testing.T) {
		svc, sqlMock, redisMock := newWithdrawalFixture(t)
		req := withdrawalRequest()

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(lockAccountSQL).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "version", "updated_at"}).
				AddRow(int64(1), int64(1000), 1, time.Now()))
		sqlMock.ExpectQuery(insertTxSQL).
			WithArgs("WD-fixed", int64(1), int64(-400), "DEBIT", "WITHDRAWAL", "Withdrawal to HDFC Bank XXXX7890",
				"PENDING", nil, nil, int64(600), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
		sqlMock.ExpectExec(updateBalanceSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		bank, _ := svc.banks.Lookup("HDFC")
		expected, err := ConvertToXML(svc.CreatePacs008(&models.Transaction{ID: 100, Reference: "WD-fixed"}, req, bank))
		require.NoError(t, err)
		redisMock.ExpectRPush(SettlementQueue, expected).SetVal(1)

		receipt, err := svc.Withdraw(ctx, 1, req)
		require.NoError(t, err)
		assert.True(t, receipt.Queued)
		assert.Equal(t, models.TxPending, receipt.Transaction.Status)
		assert.Equal(t, int64(-400), receipt.Transaction.Amount)
		assert.Equal(t, "HDFC Bank", receipt.Bank.Name)
		assert.Contains(t, expected, "HDFCINBBXXX")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("queue failure leaves the withdrawal pending", func(t *testing.T) {
		svc, sqlMock, redisMock := newWithdrawalFixture(t)
		req := withdrawalRequest()

		sqlMock.ExpectBegin()
		expectLedgerWrite(sqlMock, 1, 1000, 1, -400, models.TxDebit, models.ModeWithdrawal)
		sqlMock.ExpectCommit()

		bank, _ := svc.banks.Lookup("HDFC")
		expected, err := ConvertToXML(svc.CreatePacs008(&models.Transaction{ID: 100, Reference: "WD-fixed"}, req, bank))
		require.NoError(t, err)
		redisMock.ExpectRPush(SettlementQueue, expected).SetErr(errors.New("connection refused"))

		receipt, err := svc.Withdraw(ctx, 1, req)
		require.NoError(t, err)
		assert.False(t, receipt.Queued)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown bank", func(t *testing.T) {
		svc, sqlMock, _ := newWithdrawalFixture(t)
		req := withdrawalRequest()
		req.BankCode = "ZZZZ0000001"

		_, err := svc.Withdraw(ctx, 1, req)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		svc, sqlMock, _ := newWithdrawalFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(lockAccountSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "version", "updated_at"}).
				AddRow(int64(1), int64(100), 1, time.Now()))
		sqlMock.ExpectRollback()

		_, err := svc.Withdraw(ctx, 1, withdrawalRequest())
		assert.True(t, errors.Is(err, apperrors.ErrInsufficientFunds))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestWithdrawalService_CompleteWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("pending becomes completed", func(t *testing.T) {
		svc, sqlMock, _ := newWithdrawalFixture(t)

		sqlMock.ExpectQuery(`UPDATE transactions SET status = \$1 WHERE reference = \$2`).
			WithArgs("COMPLETED", "WD-fixed", "WITHDRAWAL", "PENDING").
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "amount"}).AddRow(int64(100), int64(1), int64(-400)))

		report, err := svc.CompleteWithdrawal(ctx, "WD-fixed")
		require.NoError(t, err)
		assert.Contains(t, report, "ACSC")
		assert.Contains(t, report, "WD-fixed")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("already completed or unknown", func(t *testing.T) {
		svc, sqlMock, _ := newWithdrawalFixture(t)

		sqlMock.ExpectQuery(`UPDATE transactions`).WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "amount"}))

		_, err := svc.CompleteWithdrawal(ctx, "WD-missing")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestBankDirectory(t *testing.T) {
	dir := NewBankDirectory(t.TempDir())

	bank, ok := dir.Lookup("icic0000104")
	require.True(t, ok)
	assert.Equal(t, "ICICI Bank", bank.Name)

	_, ok = dir.Lookup("XYZ")
	assert.False(t, ok)

	banks := dir.Banks()
	require.NotEmpty(t, banks)
	for _, b := range banks {
		assert.Contains(t, b.LogoData, "data:image/svg+xml;base64,")
	}
}
