package services

import (
	"context"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, accountID int64, title, message string) error {
	args := m.Called(accountID, title, message)
	return args.Error(0)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastToRoom(roomID string, message any) {
	m.Called(roomID, message)
}

var (
	accountCols      = []string{"id", "phone", "name", "team_code", "balance", "version", "created_at", "updated_at"}
	tournamentCols   = []string{"id", "name", "city", "sport", "format", "draw_size", "status", "created_at"}
	categoryCols     = []string{"name", "entry_fee", "per_match_bonus", "first_prize", "second_prize", "third_prize"}
	registrationCols = []string{"id", "account_id", "partner_account_id", "tournament_id", "city", "category", "group_label", "status", "pair_id", "created_at"}
	matchCols        = []string{"id", "tournament_id", "city", "category", "group_label", "stage",
		"side1_label", "side1_primary", "side1_primary_code", "side1_partner", "side1_partner_code",
		"side2_label", "side2_primary", "side2_primary_code", "side2_partner", "side2_partner_code",
		"score", "status", "submitted_by", "scheduled_at", "payout_applied", "created_at", "updated_at"}
)

func accountRow(id int64, phone, name, code string, balance int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(accountCols).AddRow(id, phone, name, code, balance, 1, now, now)
}

func tournamentRow(id int64, name, city, format string, drawSize int, status string) *sqlmock.Rows {
	return sqlmock.NewRows(tournamentCols).AddRow(id, name, city, "Badminton", format, drawSize, status, time.Now())
}

func categoryRow(name string, fee, bonus, first, second, third int64) *sqlmock.Rows {
	return sqlmock.NewRows(categoryCols).AddRow(name, fee, bonus, first, second, third)
}

// expectTournamentByName queues findTournament's two queries.
func expectTournamentByName(mock sqlmock.Sqlmock, rows *sqlmock.Rows, id int64, categories *sqlmock.Rows) {
	mock.ExpectQuery(`FROM tournaments WHERE name = \$1 AND city = \$2`).WillReturnRows(rows)
	mock.ExpectQuery(`FROM tournament_categories WHERE tournament_id = \$1`).WithArgs(id).WillReturnRows(categories)
}

// expectTournamentByID queues tournamentByID's two queries.
func expectTournamentByID(mock sqlmock.Sqlmock, rows *sqlmock.Rows, id int64, categories *sqlmock.Rows) {
	mock.ExpectQuery(`FROM tournaments WHERE id = \$1`).WithArgs(id).WillReturnRows(rows)
	mock.ExpectQuery(`FROM tournament_categories WHERE tournament_id = \$1`).WithArgs(id).WillReturnRows(categories)
}

func expectNoRegistration(mock sqlmock.Sqlmock, accountID int64) {
	mock.ExpectQuery(`FROM registrations WHERE account_id = \$1 AND tournament_id = \$2 AND city = \$3`).
		WithArgs(accountID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(registrationCols))
}

func expectAllocation(mock sqlmock.Sqlmock, occupancy map[string]int) {
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows([]string{"group_label", "count"})
	for label, n := range occupancy {
		rows.AddRow(label, n)
	}
	mock.ExpectQuery(`SELECT group_label, COUNT`).WillReturnRows(rows)
}

func expectInsertRegistration(mock sqlmock.Sqlmock, id int64, accountID int64, status string) {
	mock.ExpectQuery(`INSERT INTO registrations`).
		WithArgs(accountID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), status, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, time.Now()))
}
