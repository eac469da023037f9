package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRegistrationFixture(t *testing.T) (*RegistrationService, sqlmock.Sqlmock, *MockNotifier, *MockBroadcaster) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := &MockNotifier{}
	live := &MockBroadcaster{}
	ledger := NewWalletLedger(db)
	svc := NewRegistrationService(db, ledger, NewGroupAllocator(), NewAccountService(db), notifier, live)
	return svc, sqlMock, notifier, live
}

func singlesTournament(sqlMock sqlmock.Sqlmock) {
	expectTournamentByName(sqlMock,
		tournamentRow(5, "Summer Smash", "Pune", "Singles", 8, "Open"), 5,
		categoryRow("Men's Open", 500, 100, 1000, 500, 250))
}

func doublesTournament(sqlMock sqlmock.Sqlmock) {
	expectTournamentByName(sqlMock,
		tournamentRow(5, "Summer Smash", "Pune", "Doubles", 8, "Open"), 5,
		categoryRow("Men's Open", 500, 100, 1000, 500, 250))
}

func TestRegistrationService_JoinSingles(t *testing.T) {
	ctx := context.Background()
	req := &models.JoinRequest{Tournament: "Summer Smash", City: "Pune", Category: "Men's Open", PaymentMode: "WALLET"}

	t.Run("wallet entry is debited and seeded", func(t *testing.T) {
		svc, sqlMock, notifier, live := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).WithArgs("+919800000001").
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		singlesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		expectLedgerWrite(sqlMock, 1, 1000, 1, -500, models.TxDebit, models.ModeEventFee)
		expectAllocation(sqlMock, map[string]int{"A": 1})
		expectInsertRegistration(sqlMock, 10, 1, "Confirmed")
		sqlMock.ExpectCommit()

		notifier.On("Notify", int64(1), "Registration confirmed", mock.Anything).Return(nil)
		live.On("BroadcastToRoom", "tournament:5", mock.Anything).Return()

		res, err := svc.Join(ctx, "+919800000001", req)
		require.NoError(t, err)
		require.Len(t, res.Registrations, 1)
		assert.Equal(t, int64(500), res.AmountCharged)
		assert.Equal(t, "B", *res.Group)
		assert.Equal(t, models.StatusConfirmed, res.Registrations[0].Status)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		notifier.AssertExpectations(t)
		live.AssertExpectations(t)
	})

	t.Run("duplicate reports current status", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		singlesTournament(sqlMock)
		sqlMock.ExpectQuery(`FROM registrations WHERE account_id = \$1`).
			WillReturnRows(sqlmock.NewRows(registrationCols).
				AddRow(int64(3), int64(1), nil, int64(5), "Pune", "Men's Open", nil, "Partial_Confirmed", "p-1", time.Now()))
		sqlMock.ExpectRollback()

		_, err := svc.Join(ctx, "+919800000001", req)
		assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
		assert.Contains(t, err.Error(), "Partial_Confirmed")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown category never charges a zero fee", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		singlesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectRollback()

		bad := *req
		bad.Category = "Veterans"
		_, err := svc.Join(ctx, "+919800000001", &bad)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("insufficient funds leaves no registration", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 100))
		singlesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectQuery(lockAccountSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "version", "updated_at"}).
				AddRow(int64(1), int64(100), 1, time.Now()))
		sqlMock.ExpectRollback()

		_, err := svc.Join(ctx, "+919800000001", req)
		assert.True(t, errors.Is(err, apperrors.ErrInsufficientFunds))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown player", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).WillReturnRows(sqlmock.NewRows(accountCols))
		sqlMock.ExpectRollback()

		_, err := svc.Join(ctx, "+919800000009", req)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestRegistrationService_JoinDoubles(t *testing.T) {
	ctx := context.Background()

	t.Run("partner required", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		doublesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectRollback()

		_, err := svc.Join(ctx, "+919800000001", &models.JoinRequest{
			Tournament: "Summer Smash", City: "Pune", Category: "Men's Open", PaymentMode: "WALLET",
		})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("self partner rejected", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		doublesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectQuery(`FROM accounts WHERE team_code = \$1`).WithArgs("AR01").
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		sqlMock.ExpectRollback()

		_, err := svc.Join(ctx, "+919800000001", &models.JoinRequest{
			Tournament: "Summer Smash", City: "Pune", Category: "Men's Open", PaymentMode: "WALLET", PartnerTeamCode: " ar01 ",
		})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("partner already registered", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		doublesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectQuery(`FROM accounts WHERE team_code = \$1`).WithArgs("PR22").
			WillReturnRows(accountRow(2, "+919800000022", "Priya", "PR22", 0))
		sqlMock.ExpectQuery(`FROM registrations WHERE account_id = \$1 AND tournament_id = \$2 AND city = \$3`).
			WithArgs(int64(2), int64(5), "Pune").
			WillReturnRows(sqlmock.NewRows(registrationCols).
				AddRow(int64(20), int64(2), nil, int64(5), "Pune", "Men's Open", "C", "Confirmed", nil, time.Now()))
		sqlMock.ExpectRollback()

		_, err := svc.Join(ctx, "+919800000001", &models.JoinRequest{
			Tournament: "Summer Smash", City: "Pune", Category: "Men's Open",
			PaymentMode: "WALLET", PartnerTeamCode: "PR22", PaymentScope: models.ScopeTeam,
		})
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "PARTNER_REGISTERED", appErr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("team scope charges double and confirms both", func(t *testing.T) {
		svc, sqlMock, notifier, live := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 1000))
		doublesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectQuery(`FROM accounts WHERE team_code = \$1`).WithArgs("PR22").
			WillReturnRows(accountRow(2, "+919800000022", "Priya", "PR22", 0))
		expectNoRegistration(sqlMock, 2)
		expectLedgerWrite(sqlMock, 1, 1000, 1, -1000, models.TxDebit, models.ModeEventFee)
		expectAllocation(sqlMock, map[string]int{})
		expectInsertRegistration(sqlMock, 10, 1, "Confirmed")
		expectInsertRegistration(sqlMock, 11, 2, "Confirmed")
		sqlMock.ExpectCommit()

		notifier.On("Notify", mock.Anything, "Team registration confirmed", mock.Anything).Return(nil).Twice()
		live.On("BroadcastToRoom", "tournament:5", mock.Anything).Return()

		res, err := svc.Join(ctx, "+919800000001", &models.JoinRequest{
			Tournament: "Summer Smash", City: "Pune", Category: "Men's Open",
			PaymentMode: "WALLET", PartnerTeamCode: "PR22", PaymentScope: models.ScopeTeam,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1000), res.AmountCharged)
		require.Len(t, res.Registrations, 2)
		assert.Equal(t, "A", *res.Registrations[0].Group)
		assert.Equal(t, *res.Registrations[0].Group, *res.Registrations[1].Group)
		assert.Equal(t, *res.Registrations[0].PairID, *res.Registrations[1].PairID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		notifier.AssertExpectations(t)
	})

	t.Run("individual scope with direct payment", func(t *testing.T) {
		svc, sqlMock, notifier, live := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).
			WillReturnRows(accountRow(1, "+919800000001", "Arjun", "AR01", 0))
		doublesTournament(sqlMock)
		expectNoRegistration(sqlMock, 1)
		sqlMock.ExpectQuery(`FROM accounts WHERE team_code = \$1`).WithArgs("PR22").
			WillReturnRows(accountRow(2, "+919800000022", "Priya", "PR22", 0))
		expectNoRegistration(sqlMock, 2)
		expectLedgerWrite(sqlMock, 1, 0, 1, 500, models.TxCredit, models.ModeDirectPayment)
		expectLedgerWrite(sqlMock, 1, 500, 2, -500, models.TxDebit, models.ModeEventFee)
		expectInsertRegistration(sqlMock, 10, 1, "Partial_Confirmed")
		expectInsertRegistration(sqlMock, 11, 2, "Pending_Payment")
		sqlMock.ExpectCommit()

		notifier.On("Notify", int64(1), "Share paid", mock.Anything).Return(nil)
		notifier.On("Notify", int64(2), "Doubles invitation", mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "registration 11")
		})).Return(errors.New("whatsapp down"))

		res, err := svc.Join(ctx, "+919800000001", &models.JoinRequest{
			Tournament: "Summer Smash", City: "Pune", Category: "Men's Open",
			PaymentMode: "upi", PartnerTeamCode: "PR22", PaymentScope: models.ScopeIndividual,
		})
		require.NoError(t, err)
		assert.Nil(t, res.Group)
		assert.Equal(t, models.StatusPartialConfirmed, res.Registrations[0].Status)
		assert.Equal(t, models.StatusPendingPayment, res.Registrations[1].Status)
		assert.Nil(t, res.Registrations[0].Group)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		notifier.AssertExpectations(t)
		live.AssertNotCalled(t, "BroadcastToRoom", mock.Anything, mock.Anything)
	})
}

func TestRegistrationService_ConfirmPartner(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	pendingRow := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(registrationCols).
			AddRow(int64(11), int64(2), int64(1), int64(5), "Pune", "Men's Open", nil, status, "pair-1", now)
	}

	t.Run("both rows confirmed in one group", func(t *testing.T) {
		svc, sqlMock, notifier, live := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM registrations WHERE id = \$1 FOR UPDATE`).WithArgs(int64(11)).
			WillReturnRows(pendingRow("Pending_Payment"))
		sqlMock.ExpectQuery(`FROM registrations WHERE pair_id = \$1 AND id <> \$2 FOR UPDATE`).WithArgs("pair-1", int64(11)).
			WillReturnRows(sqlmock.NewRows(registrationCols).
				AddRow(int64(10), int64(1), int64(2), int64(5), "Pune", "Men's Open", nil, "Partial_Confirmed", "pair-1", now))
		expectTournamentByID(sqlMock, tournamentRow(5, "Summer Smash", "Pune", "Doubles", 8, "Open"), 5,
			categoryRow("Men's Open", 500, 100, 1000, 500, 250))
		expectLedgerWrite(sqlMock, 2, 800, 1, -500, models.TxDebit, models.ModeEventFee)
		expectAllocation(sqlMock, map[string]int{"A": 1})
		sqlMock.ExpectExec(`UPDATE registrations SET status = \$1, group_label = \$2 WHERE id = ANY\(\$3\)`).
			WithArgs("Confirmed", "B", pq.Array([]int64{11, 10})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		sqlMock.ExpectCommit()

		notifier.On("Notify", mock.Anything, "Team registration confirmed", mock.Anything).Return(nil).Twice()
		live.On("BroadcastToRoom", "tournament:5", mock.Anything).Return()

		res, err := svc.ConfirmPartner(ctx, 2, 11, "WALLET")
		require.NoError(t, err)
		assert.Equal(t, int64(500), res.AmountCharged)
		for _, r := range res.Registrations {
			assert.Equal(t, models.StatusConfirmed, r.Status)
			assert.Equal(t, "B", *r.Group)
		}
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		notifier.AssertExpectations(t)
		live.AssertExpectations(t)
	})

	t.Run("row not pending", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM registrations WHERE id = \$1 FOR UPDATE`).WillReturnRows(pendingRow("Confirmed"))
		sqlMock.ExpectRollback()

		_, err := svc.ConfirmPartner(ctx, 0, 11, "WALLET")
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("someone else's invitation", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM registrations WHERE id = \$1 FOR UPDATE`).WillReturnRows(pendingRow("Pending_Payment"))
		sqlMock.ExpectRollback()

		_, err := svc.ConfirmPartner(ctx, 7, 11, "WALLET")
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_YOUR_REGISTRATION", appErr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("pair row missing", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`FROM registrations WHERE id = \$1 FOR UPDATE`).WillReturnRows(pendingRow("Pending_Payment"))
		sqlMock.ExpectQuery(`WHERE pair_id = \$1`).WillReturnRows(sqlmock.NewRows(registrationCols))
		sqlMock.ExpectRollback()

		_, err := svc.ConfirmPartner(ctx, 2, 11, "WALLET")
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestRegistrationService_AdminRegister(t *testing.T) {
	svc, sqlMock, _, live := newRegistrationFixture(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).WithArgs("+919800000003").
		WillReturnRows(accountRow(3, "+919800000003", "Kiran", "KI03", 0))
	singlesTournament(sqlMock)
	expectNoRegistration(sqlMock, 3)
	expectAllocation(sqlMock, map[string]int{})
	expectInsertRegistration(sqlMock, 12, 3, "Confirmed")
	sqlMock.ExpectCommit()

	live.On("BroadcastToRoom", "tournament:5", mock.Anything).Return()

	reg, err := svc.AdminRegister(context.Background(), &models.AdminRegisterRequest{
		Name: "Kiran", Phone: "+919800000003", Tournament: "Summer Smash", City: "Pune", Category: "Men's Open",
	})
	require.NoError(t, err)
	assert.Equal(t, "A", *reg.Group)
	assert.Equal(t, int64(12), reg.ID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
