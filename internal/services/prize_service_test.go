package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/club28/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payout struct {
	account     int64
	amount      int64
	description string
}

func flatten(entries []models.LedgerEntry) []payout {
	out := make([]payout, 0, len(entries))
	for _, e := range entries {
		out = append(out, payout{e.AccountID, e.Amount, e.Description})
	}
	return out
}

func TestComputePayouts(t *testing.T) {
	category := models.Category{Name: "Open", PerMatchBonus: 101, FirstPrize: 1001, SecondPrize: 501, ThirdPrize: 301}

	t.Run("group stage pays only the bonus", func(t *testing.T) {
		got := ComputePayouts(models.StageGroup, category, []int64{7}, []int64{8}, "Summer Smash", 5, 9)
		assert.Equal(t, []payout{{7, 101, "Match Win: Summer Smash (#9)"}}, flatten(got))
		require.NotNil(t, got[0].TournamentID)
		assert.Equal(t, int64(5), *got[0].TournamentID)
		assert.Equal(t, int64(9), *got[0].MatchID)
		assert.Equal(t, models.ModePrize, got[0].Mode)
	})

	t.Run("doubles final splits and rounds down", func(t *testing.T) {
		got := ComputePayouts(models.StageFinal, category, []int64{4, 3}, []int64{1, 2}, "Summer Smash", 5, 9)
		assert.Equal(t, []payout{
			{1, 250, "2nd Place Prize: Summer Smash"},
			{2, 250, "2nd Place Prize: Summer Smash"},
			{3, 50, "Match Win: Summer Smash (#9)"},
			{3, 500, "1st Place Prize: Summer Smash"},
			{4, 50, "Match Win: Summer Smash (#9)"},
			{4, 500, "1st Place Prize: Summer Smash"},
		}, flatten(got))
	})

	t.Run("third place playoff", func(t *testing.T) {
		got := ComputePayouts(models.StageThirdPlace, category, []int64{2}, []int64{1}, "Summer Smash", 5, 9)
		assert.Equal(t, []payout{
			{2, 101, "Match Win: Summer Smash (#9)"},
			{2, 301, "3rd Place Prize: Summer Smash"},
		}, flatten(got))
	})

	t.Run("zero shares are skipped", func(t *testing.T) {
		small := models.Category{Name: "Open", PerMatchBonus: 1}
		got := ComputePayouts(models.StageFinal, small, []int64{1, 2}, []int64{3, 4}, "Summer Smash", 5, 9)
		assert.Empty(t, got)
	})
}

func TestPrizeService_Distribute(t *testing.T) {
	ctx := context.Background()

	t.Run("no winner touches nothing", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		prizes := NewPrizeService(NewWalletLedger(db))

		sqlMock.ExpectBegin()
		tx, err := db.Begin()
		require.NoError(t, err)

		m := &models.Match{ID: 9, TournamentID: 5, Score: "6-6", Stage: models.StageFinal,
			Side1: models.Side{PrimaryID: 1}, Side2: models.Side{PrimaryID: 2}}
		credits, err := prizes.Distribute(ctx, tx, m)
		require.NoError(t, err)
		assert.Empty(t, credits)
		assert.False(t, m.PayoutApplied)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("falls back to the match category", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		prizes := NewPrizeService(NewWalletLedger(db))

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(claimPayoutSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		expectTournamentByID(sqlMock, tournamentRow(5, "Summer Smash", "Pune", "Singles", 16, "Open"), 5,
			categoryRow("Veterans", 0, 200, 0, 0, 0))
		sqlMock.ExpectQuery(`SELECT category FROM registrations`).WillReturnRows(sqlmock.NewRows([]string{"category"}))
		expectLedgerWrite(sqlMock, 2, 40, 4, 200, models.TxCredit, models.ModePrize)

		tx, err := db.Begin()
		require.NoError(t, err)

		m := &models.Match{ID: 9, TournamentID: 5, Category: "Veterans", Score: "3-6, 2-6", Stage: models.StageGroup,
			Side1: models.Side{PrimaryID: 1}, Side2: models.Side{PrimaryID: 2}}
		credits, err := prizes.Distribute(ctx, tx, m)
		require.NoError(t, err)
		require.Len(t, credits, 1)
		assert.Equal(t, int64(240), credits[0].BalanceAfter)
		assert.True(t, m.PayoutApplied)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
