package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var playerEntryCols = []string{"id", "tournament_id", "name", "city", "category", "group_label", "status",
	"account_id", "account_name", "team_code", "phone", "partner_team_code"}

func TestRegistrationService_Profile(t *testing.T) {
	svc, sqlMock, _, _ := newRegistrationFixture(t)

	sqlMock.ExpectQuery(`FROM accounts WHERE phone = \$1`).WithArgs("+919800000022").
		WillReturnRows(accountRow(2, "+919800000022", "Priya", "PR22", 0))
	sqlMock.ExpectQuery(`LEFT JOIN accounts p ON p.id = r.partner_account_id WHERE r.account_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(playerEntryCols).
			AddRow(int64(11), int64(5), "Summer Smash", "Pune", "Men's Open", nil, "Pending_Payment",
				int64(2), "Priya", "PR22", "+919800000022", "AR01"))

	profile, err := svc.Profile(context.Background(), "+919800000022")
	require.NoError(t, err)
	assert.Equal(t, "PR22", profile.Account.TeamCode)
	require.Len(t, profile.Registrations, 1)

	entry := profile.Registrations[0]
	assert.Equal(t, int64(11), entry.RegistrationID)
	assert.Equal(t, models.StatusPendingPayment, entry.Status)
	assert.Nil(t, entry.Group)
	require.NotNil(t, entry.PartnerTeamCode)
	assert.Equal(t, "AR01", *entry.PartnerTeamCode)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRegistrationService_Players(t *testing.T) {
	svc, sqlMock, _, _ := newRegistrationFixture(t)

	now := time.Now()
	sqlMock.ExpectQuery(`FROM accounts ORDER BY name, id`).
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow(int64(1), "+919800000001", "Arjun", "AR01", int64(250), 1, now, now).
			AddRow(int64(2), "+919800000022", "Priya", "PR22", int64(0), 1, now, now))

	players, err := svc.Players(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "PR22", players[1].TeamCode)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRegistrationService_TournamentPlayers(t *testing.T) {
	ctx := context.Background()

	t.Run("roster of one tournament", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		singlesTournament(sqlMock)
		sqlMock.ExpectQuery(`WHERE r.tournament_id = \$1 ORDER BY r.category`).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(playerEntryCols).
				AddRow(int64(10), int64(5), "Summer Smash", "Pune", "Men's Open", "A", "Confirmed",
					int64(1), "Arjun", "AR01", "+919800000001", nil).
				AddRow(int64(12), int64(5), "Summer Smash", "Pune", "Men's Open", "B", "Confirmed",
					int64(3), "Kiran", "KI03", "+919800000003", nil))

		roster, err := svc.TournamentPlayers(ctx, "Summer Smash", "Pune")
		require.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, "B", *roster[1].Group)
		assert.Nil(t, roster[0].PartnerTeamCode)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("city is required", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		_, err := svc.TournamentPlayers(ctx, "Summer Smash", " ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown tournament", func(t *testing.T) {
		svc, sqlMock, _, _ := newRegistrationFixture(t)

		sqlMock.ExpectQuery(`FROM tournaments WHERE name = \$1 AND city = \$2`).
			WillReturnRows(sqlmock.NewRows(tournamentCols))

		_, err := svc.TournamentPlayers(ctx, "Winter Cup", "Pune")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
