package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
)

// Entrant is one confirmed participant of a category: a singles player or a
// doubles pair counted once.
type Entrant struct {
	Label      string  `json:"label"`
	TeamCode   string  `json:"teamCode"`
	Category   string  `json:"category"`
	Group      string  `json:"group"`
	AccountIDs []int64 `json:"-"`
}

// Standing is one row of a standings table.
type Standing struct {
	Entrant         string `json:"entrant"`
	TeamCode        string `json:"teamCode"`
	Category        string `json:"category"`
	Group           string `json:"group"`
	Points          int    `json:"points"`
	GamesWon        int    `json:"gamesWon"`
	Played          int    `json:"played"`
	TotalGamePoints int    `json:"totalGamePoints"`
}

const pointsPerWin = 3

// AggregateStandings folds Official matches into per-entrant rows. A match
// side belongs to an entrant when both name exactly the same accounts. Rows
// are sorted by points, highest first; equal points keep entrant order.
func AggregateStandings(entrants []Entrant, matches []models.Match) []Standing {
	rows := make([]Standing, len(entrants))
	for i, e := range entrants {
		rows[i] = Standing{Entrant: e.Label, TeamCode: e.TeamCode, Category: e.Category, Group: e.Group}
	}

	find := func(side models.Side, category string) int {
		for i, e := range entrants {
			if e.Category == category && sameAccounts(e.AccountIDs, side.AccountIDs()) {
				return i
			}
		}
		return -1
	}

	for _, m := range matches {
		if m.Status != models.MatchOfficial {
			continue
		}
		sets, err := ParseScore(m.Score)
		if err != nil {
			log.Printf("[STANDINGS] skipping match %d with unreadable score %q: %v", m.ID, m.Score, err)
			continue
		}
		outcome := DecideOutcome(sets)

		for _, side := range []Outcome{Side1Wins, Side2Wins} {
			ref := m.Side1
			if side == Side2Wins {
				ref = m.Side2
			}
			i := find(ref, m.Category)
			if i < 0 {
				continue
			}
			rows[i].Played++
			rows[i].TotalGamePoints += GamesFor(sets, side)
			if outcome == side {
				rows[i].Points += pointsPerWin
				rows[i].GamesWon++
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })
	return rows
}

func sameAccounts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		found := false
		for _, other := range b {
			if id == other {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// StandingsService reads entrants and Official matches and aggregates them.
type StandingsService struct {
	db *sql.DB
}

func NewStandingsService(db *sql.DB) *StandingsService {
	return &StandingsService{db: db}
}

// Standings returns the table for a tournament and city, for every category
// or just the one named. An empty city means the tournament's own city.
func (s *StandingsService) Standings(ctx context.Context, tournamentID int64, city, category string) ([]Standing, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		err := s.db.QueryRowContext(ctx, `SELECT city FROM tournaments WHERE id = $1`, tournamentID).Scan(&city)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("TOURNAMENT_NOT_FOUND", "tournament %d not found", tournamentID)
		}
		if err != nil {
			return nil, fmt.Errorf("load tournament city: %w", err)
		}
	}

	entrants, err := s.entrants(ctx, tournamentID, city, category)
	if err != nil {
		return nil, err
	}

	matches, err := listMatches(ctx, s.db, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE tournament_id = $1 AND city = $2 AND ($3 = '' OR category = $3) AND status = 'Official'
		ORDER BY id`, tournamentID, city, category)
	if err != nil {
		return nil, err
	}

	return AggregateStandings(entrants, matches), nil
}

// entrants lists confirmed registrations in registration order, collapsing
// each doubles pair to the row registered first.
func (s *StandingsService) entrants(ctx context.Context, tournamentID int64, city, category string) ([]Entrant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.account_id, r.partner_account_id, r.category, COALESCE(r.group_label, ''), r.pair_id,
			a.name, a.team_code, p.name, p.team_code
		FROM registrations r
		JOIN accounts a ON a.id = r.account_id
		LEFT JOIN accounts p ON p.id = r.partner_account_id
		WHERE r.tournament_id = $1 AND r.city = $2 AND ($3 = '' OR r.category = $3) AND r.status = 'Confirmed'
		ORDER BY r.id`, tournamentID, city, category)
	if err != nil {
		return nil, fmt.Errorf("list entrants: %w", err)
	}
	defer rows.Close()

	seenPairs := make(map[string]bool)
	entrants := []Entrant{}
	for rows.Next() {
		var e Entrant
		var accountID int64
		var partnerID sql.NullInt64
		var pairID, partnerName, partnerCode sql.NullString
		var name string
		if err := rows.Scan(&accountID, &partnerID, &e.Category, &e.Group, &pairID,
			&name, &e.TeamCode, &partnerName, &partnerCode); err != nil {
			return nil, fmt.Errorf("scan entrant: %w", err)
		}

		if pairID.Valid {
			if seenPairs[pairID.String] {
				continue
			}
			seenPairs[pairID.String] = true
		}

		e.Label = fmt.Sprintf("%s (%s)", name, e.TeamCode)
		e.AccountIDs = []int64{accountID}
		if partnerID.Valid {
			e.AccountIDs = append(e.AccountIDs, partnerID.Int64)
			e.Label += fmt.Sprintf(" & %s (%s)", partnerName.String, partnerCode.String)
		}
		entrants = append(entrants, e)
	}
	return entrants, rows.Err()
}
