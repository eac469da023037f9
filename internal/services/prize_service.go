package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/audit"
	"github.com/club28/backend/internal/models"
)

// PrizeService credits match bonuses and place prizes once a match is
// Official. It is only ever called inside the transaction that made the
// match Official.
type PrizeService struct {
	ledger *WalletLedger
	audit  *audit.Logger
}

func NewPrizeService(ledger *WalletLedger) *PrizeService {
	return &PrizeService{ledger: ledger, audit: audit.NewLogger()}
}

// ComputePayouts lists the PRIZE credits an Official match earns. Shares are
// divided with integer division and the remainder is dropped. Zero amounts are
// omitted. Entries are ordered by account id so concurrent payouts lock
// accounts in the same order.
func ComputePayouts(stage models.Stage, category models.Category, winners, losers []int64, tournament string, tournamentID, matchID int64) []models.LedgerEntry {
	var entries []models.LedgerEntry
	add := func(ids []int64, total int64, description string) {
		if len(ids) == 0 {
			return
		}
		share := total / int64(len(ids))
		if share <= 0 {
			return
		}
		for _, id := range ids {
			tid, mid := tournamentID, matchID
			entries = append(entries, models.LedgerEntry{
				AccountID:    id,
				Amount:       share,
				Mode:         models.ModePrize,
				Description:  description,
				TournamentID: &tid,
				MatchID:      &mid,
			})
		}
	}

	add(winners, category.PerMatchBonus, MatchWinDescription(tournament, matchID))
	switch stage {
	case models.StageFinal:
		add(winners, category.FirstPrize, PlacePrizeDescription(1, tournament))
		add(losers, category.SecondPrize, PlacePrizeDescription(2, tournament))
	case models.StageThirdPlace:
		add(winners, category.ThirdPrize, PlacePrizeDescription(3, tournament))
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].AccountID < entries[j].AccountID })
	return entries
}

// Distribute pays out an Official match. It returns the credits written, which
// is empty when the match has no winner or was already paid.
func (p *PrizeService) Distribute(ctx context.Context, tx *sql.Tx, m *models.Match) ([]models.Transaction, error) {
	outcome, err := ScoreOutcome(m.Score)
	if err != nil {
		return nil, err
	}

	var winners, losers []int64
	switch outcome {
	case Side1Wins:
		winners, losers = m.Side1.AccountIDs(), m.Side2.AccountIDs()
	case Side2Wins:
		winners, losers = m.Side2.AccountIDs(), m.Side1.AccountIDs()
	default:
		log.Printf("[PRIZE] match %d has no winner (%q), nothing to pay", m.ID, m.Score)
		return nil, nil
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE matches
		SET payout_applied = true
		WHERE id = $1 AND payout_applied = false`, m.ID)
	if err != nil {
		return nil, fmt.Errorf("claim payout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Printf("[PRIZE] match %d already paid out", m.ID)
		return nil, nil
	}
	m.PayoutApplied = true

	t, err := tournamentByID(ctx, tx, m.TournamentID)
	if err != nil {
		return nil, err
	}

	categoryName, err := p.winnerCategory(ctx, tx, winners[0], m)
	if err != nil {
		return nil, err
	}
	category, ok := t.Category(categoryName)
	if !ok {
		return nil, apperrors.InvalidInput("UNKNOWN_CATEGORY", "%s has no category %q to pay match %d from", t.Name, categoryName, m.ID)
	}

	entries := ComputePayouts(m.Stage, category, winners, losers, t.Name, t.ID, m.ID)
	credits := make([]models.Transaction, 0, len(entries))
	for _, entry := range entries {
		record, err := p.ledger.CreditTx(ctx, tx, entry)
		if err != nil {
			return nil, fmt.Errorf("credit account %d for match %d: %w", entry.AccountID, m.ID, err)
		}
		p.audit.LogPayout(m.ID, entry.AccountID, entry.Amount, entry.Description)
		credits = append(credits, *record)
	}

	log.Printf("[PRIZE] match %d (%s) paid %d credits", m.ID, m.Stage, len(credits))
	return credits, nil
}

// winnerCategory reads the category from the first winner's registration,
// falling back to the match's own category.
func (p *PrizeService) winnerCategory(ctx context.Context, tx *sql.Tx, accountID int64, m *models.Match) (string, error) {
	var category string
	err := tx.QueryRowContext(ctx, `
		SELECT category
		FROM registrations
		WHERE account_id = $1 AND tournament_id = $2`, accountID, m.TournamentID).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return m.Category, nil
	}
	if err != nil {
		return "", fmt.Errorf("load winner category: %w", err)
	}
	return category, nil
}
