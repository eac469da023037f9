package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/config"
	"github.com/club28/backend/internal/models"
	"github.com/go-redis/redismock/v8"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentNow = time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)

func testLeagueConfig() *config.LeagueConfig {
	return &config.LeagueConfig{
		Currency:             "INR",
		OrderTTL:             30 * time.Minute,
		MaxOrdersPerWindow:   2,
		OrderRateLimitWindow: time.Hour,
		GatewaySecret:        "s3cret",
		UPIPayee:             "club28@upi",
		UPIPayeeName:         "Club28 League",
		SettlementBIC:        "CLUBINBBXXX",
	}
}

func newPaymentFixture(t *testing.T) (*PaymentService, sqlmock.Sqlmock, redismock.ClientMock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	svc := NewPaymentService(rdb, NewWalletLedger(db), NewAccountService(db), testLeagueConfig())
	svc.now = func() time.Time { return paymentNow }
	svc.newID = func() string { return "order_test" }
	return svc, sqlMock, redisMock
}

func storedOrder(t *testing.T) []byte {
	data, err := json.Marshal(&PaymentOrder{
		OrderID:   "order_test",
		AccountID: 1,
		Amount:    500,
		Currency:  "INR",
		PayLink:   "upi://pay?am=500&cu=INR&pa=club28%40upi&pn=Club28+League&tr=order_test",
		ExpiresAt: paymentNow.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	return data
}

func TestPaymentService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("stores order and returns a QR", func(t *testing.T) {
		svc, _, redisMock := newPaymentFixture(t)

		redisMock.ExpectGet("order:ratelimit:1").RedisNil()
		redisMock.ExpectSet("order:order_test", storedOrder(t), 30*time.Minute).SetVal("OK")
		redisMock.ExpectIncr("order:ratelimit:1").SetVal(1)
		redisMock.ExpectExpire("order:ratelimit:1", time.Hour).SetVal(true)

		order, err := svc.CreateOrder(ctx, 1, 500)
		require.NoError(t, err)
		assert.Equal(t, "order_test", order.OrderID)
		assert.Contains(t, order.PayLink, "pa=club28%40upi")

		png, err := base64.StdEncoding.DecodeString(order.QRImage)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("rate limited", func(t *testing.T) {
		svc, _, redisMock := newPaymentFixture(t)

		redisMock.ExpectGet("order:ratelimit:1").SetVal("2")

		_, err := svc.CreateOrder(ctx, 1, 500)
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, _, _ := newPaymentFixture(t)

		_, err := svc.CreateOrder(ctx, 1, 0)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	ctx := context.Background()
	signature := SignPayment("s3cret", "order_test", "pay_1")

	t.Run("credits the wallet once", func(t *testing.T) {
		svc, sqlMock, redisMock := newPaymentFixture(t)

		redisMock.ExpectGet("order:order_test").SetVal(string(storedOrder(t)))
		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(lockAccountSQL).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "version", "updated_at"}).
				AddRow(int64(1), int64(0), 1, time.Now()))
		sqlMock.ExpectQuery(insertTxSQL).
			WithArgs("pay_1", int64(1), int64(500), "CREDIT", "WALLET_TOPUP", "Wallet top-up via UPI (order_test)",
				"COMPLETED", nil, nil, int64(500), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))
		sqlMock.ExpectExec(updateBalanceSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()
		redisMock.ExpectDel("order:order_test").SetVal(1)

		record, err := svc.VerifyPayment(ctx, "order_test", "pay_1", signature)
		require.NoError(t, err)
		assert.Equal(t, "pay_1", record.Reference)
		assert.Equal(t, int64(500), record.BalanceAfter)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("replayed callback is a duplicate", func(t *testing.T) {
		svc, sqlMock, redisMock := newPaymentFixture(t)

		redisMock.ExpectGet("order:order_test").SetVal(string(storedOrder(t)))
		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(lockAccountSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "version", "updated_at"}).
				AddRow(int64(1), int64(500), 2, time.Now()))
		sqlMock.ExpectQuery(insertTxSQL).WillReturnError(&pq.Error{Code: "23505"})
		sqlMock.ExpectRollback()

		_, err := svc.VerifyPayment(ctx, "order_test", "pay_1", signature)
		assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("forged signature", func(t *testing.T) {
		svc, sqlMock, redisMock := newPaymentFixture(t)

		_, err := svc.VerifyPayment(ctx, "order_test", "pay_1", SignPayment("wrong", "order_test", "pay_1"))
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

		_, err = svc.VerifyPayment(ctx, "order_test", "pay_1", "not-hex")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("expired order", func(t *testing.T) {
		svc, _, redisMock := newPaymentFixture(t)

		redisMock.ExpectGet("order:order_test").RedisNil()

		_, err := svc.VerifyPayment(ctx, "order_test", "pay_1", signature)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestPaymentService_AddWalletFunds(t *testing.T) {
	svc, sqlMock, _ := newPaymentFixture(t)

	sqlMock.ExpectQuery(`FROM accounts WHERE team_code = \$1`).WithArgs("AR01").
		WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 200))
	sqlMock.ExpectBegin()
	expectLedgerWrite(sqlMock, 1, 200, 3, 1000, models.TxCredit, models.ModeWalletTopup)
	sqlMock.ExpectCommit()

	record, err := svc.AddWalletFunds(context.Background(), " ar01 ", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), record.BalanceAfter)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
