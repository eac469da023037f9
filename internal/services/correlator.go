package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/club28/backend/internal/models"
	"github.com/lib/pq"
)

// ArchiveTag is appended to the description of ledger lines whose tournament
// was deleted. The line itself is never removed.
const ArchiveTag = " [ARCHIVED]"

// eventDescription matches "Fee: X", "Match Win: X" and "<n> Place Prize: X"
// with an optional trailing "(...)" annotation and archive tag.
var eventDescription = regexp.MustCompile(
	`(?i)^\s*(?:fee|match win|\d+(?:st|nd|rd|th)? place prize):\s*(.+?)(?:\s+\([^()]*\))?(?:\s*\[archived\])?\s*$`)

// ExtractTournamentName returns the tournament a ledger description refers to.
func ExtractTournamentName(description string) (string, bool) {
	m := eventDescription.FindStringSubmatch(description)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

// MatchesTournament reports whether a legacy description belongs to name.
func MatchesTournament(description, name string) bool {
	extracted, ok := ExtractTournamentName(description)
	return ok && strings.EqualFold(extracted, strings.TrimSpace(name))
}

func FeeDescription(tournament, category string) string {
	return fmt.Sprintf("Fee: %s (%s)", tournament, category)
}

func MatchWinDescription(tournament string, matchID int64) string {
	return fmt.Sprintf("Match Win: %s (#%d)", tournament, matchID)
}

func PlacePrizeDescription(place int, tournament string) string {
	return fmt.Sprintf("%s Place Prize: %s", ordinal(place), tournament)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Correlator links ledger lines to tournaments. Lines written since the
// tournament_id column exists carry the id; older lines are matched by the
// name in their description.
type Correlator struct {
	db     *sql.DB
	ledger *WalletLedger
}

func NewCorrelator(db *sql.DB, ledger *WalletLedger) *Correlator {
	return &Correlator{db: db, ledger: ledger}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match itself literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ArchiveTournament tags every ledger line of a deleted tournament. It runs in
// the caller's transaction so the archive and the delete commit together.
func (c *Correlator) ArchiveTournament(ctx context.Context, tx *sql.Tx, tournamentID int64, name string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET archived = true, description = description || $2
		WHERE tournament_id = $1 AND archived = false`, tournamentID, ArchiveTag)
	if err != nil {
		return 0, fmt.Errorf("archive tournament transactions: %w", err)
	}
	archived, _ := res.RowsAffected()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, description
		FROM transactions
		WHERE tournament_id IS NULL AND archived = false AND description ILIKE '%' || $1 || '%' ESCAPE '\'`, escapeLike(name))
	if err != nil {
		return 0, fmt.Errorf("find legacy transactions: %w", err)
	}
	var legacy []int64
	for rows.Next() {
		var id int64
		var description string
		if err := rows.Scan(&id, &description); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan legacy transaction: %w", err)
		}
		if MatchesTournament(description, name) {
			legacy = append(legacy, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if len(legacy) > 0 {
		res, err := tx.ExecContext(ctx, `
			UPDATE transactions
			SET archived = true, description = description || $2
			WHERE id = ANY($1)`, pq.Array(legacy), ArchiveTag)
		if err != nil {
			return 0, fmt.Errorf("archive legacy transactions: %w", err)
		}
		n, _ := res.RowsAffected()
		archived += n
	}

	log.Printf("[CORRELATOR] archived %d ledger lines for tournament %d (%s)", archived, tournamentID, name)
	return archived, nil
}

// TournamentTransactions lists the live ledger lines that belong to a tournament.
func (c *Correlator) TournamentTransactions(ctx context.Context, tournamentID int64, name string) ([]models.Transaction, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE archived = false
		  AND (tournament_id = $1 OR (tournament_id IS NULL AND description ILIKE '%' || $2 || '%' ESCAPE '\'))
		ORDER BY created_at DESC, id DESC`, tournamentID, escapeLike(name))
	if err != nil {
		return nil, fmt.Errorf("list tournament transactions: %w", err)
	}
	defer rows.Close()

	all, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for _, t := range all {
		if t.TournamentID != nil || MatchesTournament(t.Description, name) {
			out = append(out, t)
		}
	}
	return out, nil
}

// FeedItem is one entry of a player's notification feed.
type FeedItem struct {
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Tournament string    `json:"tournament,omitempty"`
	Amount     int64     `json:"amount"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationFeed turns an account's ledger into human readable feed items.
func (c *Correlator) NotificationFeed(ctx context.Context, accountID int64) ([]FeedItem, error) {
	txs, err := c.ledger.ListTransactions(ctx, accountID, 50)
	if err != nil {
		return nil, err
	}

	feed := make([]FeedItem, 0, len(txs))
	for _, t := range txs {
		item := FeedItem{
			Message:   strings.TrimSuffix(t.Description, ArchiveTag),
			Amount:    t.Amount,
			Archived:  t.Archived,
			CreatedAt: t.CreatedAt,
		}
		item.Tournament, _ = ExtractTournamentName(t.Description)
		switch t.Mode {
		case models.ModePrize:
			item.Title = "Prize credited"
		case models.ModeEventFee:
			item.Title = "Registration fee paid"
		case models.ModeDirectPayment:
			item.Title = "Payment received"
		case models.ModeWithdrawal:
			item.Title = "Withdrawal " + strings.ToLower(string(t.Status))
		default:
			item.Title = "Wallet topped up"
		}
		feed = append(feed, item)
	}
	return feed, nil
}
