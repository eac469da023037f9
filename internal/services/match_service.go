package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
)

const matchColumns = `id, tournament_id, city, category, group_label, stage,
	side1_label, side1_primary, side1_primary_code, side1_partner, side1_partner_code,
	side2_label, side2_primary, side2_primary_code, side2_partner, side2_partner_code,
	score, status, submitted_by, scheduled_at, payout_applied, created_at, updated_at`

var teamCodePattern = regexp.MustCompile(`\(\s*([A-Za-z0-9]{2,12})\s*\)`)

// ExtractTeamCodes returns the bracketed team codes in a side label such as
// "Arjun (AR01) & Priya (PR22)", upper-cased and in order.
func ExtractTeamCodes(label string) []string {
	var codes []string
	for _, m := range teamCodePattern.FindAllStringSubmatch(label, -1) {
		codes = append(codes, NormalizeTeamCode(m[1]))
	}
	return codes
}

// MatchService runs the match lifecycle:
// Scheduled -> Pending Verification -> Official | Disputed.
type MatchService struct {
	db       *sql.DB
	prizes   *PrizeService
	notifier Notifier
	live     Broadcaster
}

func NewMatchService(db *sql.DB, prizes *PrizeService, notifier Notifier, live Broadcaster) *MatchService {
	return &MatchService{db: db, prizes: prizes, notifier: notifier, live: live}
}

// SubmitScore records a score reported by one of the participants and moves
// the match to Pending Verification.
func (s *MatchService) SubmitScore(ctx context.Context, matchID int64, score, teamCode string) (*models.Match, error) {
	score = strings.TrimSpace(score)
	code := NormalizeTeamCode(teamCode)

	var m *models.Match
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if m, err = lockMatch(ctx, tx, matchID); err != nil {
			return err
		}
		if m.Status != models.MatchScheduled && m.Status != models.MatchDisputed {
			return apperrors.Conflict("MATCH_NOT_OPEN", "match %d is %s; scores can only be submitted while Scheduled or Disputed", m.ID, m.Status)
		}
		if err := validateScore(score); err != nil {
			return err
		}
		if !m.Side1.HasTeamCode(code) && !m.Side2.HasTeamCode(code) {
			return apperrors.InvalidInput("NOT_A_PARTICIPANT", "team %s is not playing match %d", code, m.ID)
		}

		m.Score = score
		m.Status = models.MatchPendingVerification
		m.SubmittedBy = code
		return updateMatch(ctx, tx, m)
	})
	if err != nil {
		log.Printf("[MATCH] submit score for %d by %s failed: %v", matchID, code, err)
		return nil, err
	}

	opponents := m.Side2
	if m.Side2.HasTeamCode(code) {
		opponents = m.Side1
	}
	notifyAll(ctx, s.notifier, opponents.AccountIDs(), "Verify match score",
		fmt.Sprintf("%s reported %s for match #%d. Please approve or dispute.", code, m.Score, m.ID))
	broadcast(s.live, m.TournamentID, EventMatchUpdated, m)
	return m, nil
}

// Verify approves or rejects a submitted score. verifierCode is the team code
// of the verifying player; it must belong to the side that did not submit.
func (s *MatchService) Verify(ctx context.Context, matchID int64, action models.VerifyAction, verifierCode string) (*models.Match, error) {
	verifierCode = NormalizeTeamCode(verifierCode)
	if verifierCode == "" {
		return nil, apperrors.InvalidInput("VERIFIER_REQUIRED", "a team code is required to verify match %d", matchID)
	}
	return s.verify(ctx, matchID, action, verifierCode, false)
}

// AdminVerify settles a pending score on an admin's authority, without the
// participant checks.
func (s *MatchService) AdminVerify(ctx context.Context, matchID int64, action models.VerifyAction) (*models.Match, error) {
	return s.verify(ctx, matchID, action, "", true)
}

func (s *MatchService) verify(ctx context.Context, matchID int64, action models.VerifyAction, verifierCode string, admin bool) (*models.Match, error) {
	var m *models.Match
	var payouts []models.Transaction
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if m, err = lockMatch(ctx, tx, matchID); err != nil {
			return err
		}
		if m.Status != models.MatchPendingVerification {
			return apperrors.Conflict("MATCH_NOT_PENDING", "match %d is %s, not %s", m.ID, m.Status, models.MatchPendingVerification)
		}
		if !admin {
			if !m.Side1.HasTeamCode(verifierCode) && !m.Side2.HasTeamCode(verifierCode) {
				return apperrors.InvalidInput("NOT_A_PARTICIPANT", "team %s is not playing match %d", verifierCode, m.ID)
			}
			if sameSide(m, verifierCode, m.SubmittedBy) {
				return apperrors.InvalidInput("SELF_VERIFY", "the submitting side cannot verify its own score")
			}
		}

		switch action {
		case models.VerifyApprove:
			m.Status = models.MatchOfficial
		case models.VerifyReject:
			m.Status = models.MatchDisputed
		default:
			return apperrors.InvalidInput("INVALID_ACTION", "action must be APPROVE or REJECT")
		}
		if err := updateMatch(ctx, tx, m); err != nil {
			return err
		}
		payouts, err = s.settle(ctx, tx, m)
		return err
	})
	if err != nil {
		log.Printf("[MATCH] verify %d (%s) failed: %v", matchID, action, err)
		return nil, err
	}

	s.announce(ctx, m, payouts)
	return m, nil
}

// AdminEditMatch overrides sides, schedule or score. A score makes the match
// Official and goes through the same payout path as an approval.
func (s *MatchService) AdminEditMatch(ctx context.Context, matchID int64, req *models.EditMatchRequest) (*models.Match, error) {
	var m *models.Match
	var payouts []models.Transaction
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if m, err = lockMatch(ctx, tx, matchID); err != nil {
			return err
		}

		if req.Side1 != nil {
			if m.Side1, err = resolveSide(ctx, tx, *req.Side1); err != nil {
				return err
			}
		}
		if req.Side2 != nil {
			if m.Side2, err = resolveSide(ctx, tx, *req.Side2); err != nil {
				return err
			}
		}
		if err := checkDistinctSides(m.Side1, m.Side2); err != nil {
			return err
		}
		if req.ScheduledAt != nil {
			at := req.ScheduledAt.UTC()
			m.ScheduledAt = &at
		}
		if req.Score != nil {
			score := strings.TrimSpace(*req.Score)
			if err := validateScore(score); err != nil {
				return err
			}
			m.Score = score
			m.Status = models.MatchOfficial
		}

		if err := updateMatch(ctx, tx, m); err != nil {
			return err
		}
		payouts, err = s.settle(ctx, tx, m)
		return err
	})
	if err != nil {
		log.Printf("[MATCH] admin edit %d failed: %v", matchID, err)
		return nil, err
	}

	s.announce(ctx, m, payouts)
	return m, nil
}

// AdminCreateMatch schedules a match between two labelled sides. Each label
// must carry its players' team codes in brackets.
func (s *MatchService) AdminCreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	m := &models.Match{
		TournamentID: req.TournamentID,
		Category:     strings.TrimSpace(req.Category),
		Group:        strings.ToUpper(strings.TrimSpace(req.Group)),
		Stage:        req.Stage,
		Status:       models.MatchScheduled,
	}
	if req.ScheduledAt != nil {
		at := req.ScheduledAt.UTC()
		m.ScheduledAt = &at
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := tournamentByID(ctx, tx, req.TournamentID)
		if err != nil {
			return err
		}
		if _, ok := t.Category(m.Category); !ok {
			return apperrors.InvalidInput("UNKNOWN_CATEGORY", "%s has no category %q", t.Name, m.Category)
		}
		m.City = t.City

		if m.Side1, err = resolveSide(ctx, tx, req.Side1); err != nil {
			return err
		}
		if m.Side2, err = resolveSide(ctx, tx, req.Side2); err != nil {
			return err
		}
		if err := checkDistinctSides(m.Side1, m.Side2); err != nil {
			return err
		}

		return tx.QueryRowContext(ctx, `
			INSERT INTO matches (tournament_id, city, category, group_label, stage,
				side1_label, side1_primary, side1_primary_code, side1_partner, side1_partner_code,
				side2_label, side2_primary, side2_primary_code, side2_partner, side2_partner_code,
				status, scheduled_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
			RETURNING id, created_at, updated_at`,
			m.TournamentID, m.City, m.Category, m.Group, string(m.Stage),
			m.Side1.Label, m.Side1.PrimaryID, m.Side1.PrimaryCode, nullInt64(m.Side1.PartnerID), nullString(m.Side1.PartnerCode),
			m.Side2.Label, m.Side2.PrimaryID, m.Side2.PrimaryCode, nullInt64(m.Side2.PartnerID), nullString(m.Side2.PartnerCode),
			string(m.Status), nullTime(m.ScheduledAt),
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	})
	if err != nil {
		log.Printf("[MATCH] create in tournament %d failed: %v", req.TournamentID, err)
		return nil, err
	}

	log.Printf("[MATCH] created %d: %s vs %s (%s)", m.ID, m.Side1.Label, m.Side2.Label, m.Stage)
	broadcast(s.live, m.TournamentID, EventMatchUpdated, m)
	return m, nil
}

// AdminDeleteMatch removes a match. Ledger lines already paid for it stay.
func (s *MatchService) AdminDeleteMatch(ctx context.Context, matchID int64) error {
	var tournamentID int64
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM matches WHERE id = $1 RETURNING tournament_id`, matchID).Scan(&tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("MATCH_NOT_FOUND", "match %d not found", matchID)
	}
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	log.Printf("[MATCH] deleted %d", matchID)
	broadcast(s.live, tournamentID, EventMatchDeleted, map[string]int64{"id": matchID})
	return nil
}

// Get loads one match.
func (s *MatchService) Get(ctx context.Context, matchID int64) (*models.Match, error) {
	m, err := scanMatch(s.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`, matchID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("MATCH_NOT_FOUND", "match %d not found", matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}
	return m, nil
}

// List returns a tournament's matches, optionally narrowed to one category.
func (s *MatchService) List(ctx context.Context, tournamentID int64, category string) ([]models.Match, error) {
	return listMatches(ctx, s.db, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE tournament_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY scheduled_at NULLS LAST, id`, tournamentID, category)
}

// settle is the single payout hook. Only Official matches pay.
func (s *MatchService) settle(ctx context.Context, tx *sql.Tx, m *models.Match) ([]models.Transaction, error) {
	if m.Status != models.MatchOfficial || s.prizes == nil {
		return nil, nil
	}
	return s.prizes.Distribute(ctx, tx, m)
}

func (s *MatchService) announce(ctx context.Context, m *models.Match, payouts []models.Transaction) {
	participants := append(m.Side1.AccountIDs(), m.Side2.AccountIDs()...)
	switch m.Status {
	case models.MatchOfficial:
		notifyAll(ctx, s.notifier, participants, "Result official",
			fmt.Sprintf("Match #%d is official: %s.", m.ID, m.Score))
		broadcast(s.live, m.TournamentID, EventStandingsChanged, map[string]any{"category": m.Category, "group": m.Group})
	case models.MatchDisputed:
		notifyAll(ctx, s.notifier, participants, "Result disputed",
			fmt.Sprintf("The score for match #%d was disputed. Please resubmit.", m.ID))
	}
	for _, p := range payouts {
		notifyAll(ctx, s.notifier, []int64{p.AccountID}, "Prize credited",
			fmt.Sprintf("%d credited: %s", p.Amount, p.Description))
	}
	broadcast(s.live, m.TournamentID, EventMatchUpdated, m)
}

func validateScore(score string) error {
	if score == "" {
		return apperrors.InvalidInput("SCORE_REQUIRED", "a score is required")
	}
	_, err := ParseScore(score)
	return err
}

func sameSide(m *models.Match, a, b string) bool {
	return (m.Side1.HasTeamCode(a) && m.Side1.HasTeamCode(b)) ||
		(m.Side2.HasTeamCode(a) && m.Side2.HasTeamCode(b))
}

func checkDistinctSides(a, b models.Side) error {
	for _, id := range a.AccountIDs() {
		if b.HasAccount(id) {
			return apperrors.InvalidInput("SAME_PLAYER_BOTH_SIDES", "a player cannot be on both sides of a match")
		}
	}
	return nil
}

// resolveSide turns a display label into structured participant refs using
// the bracketed team codes it contains.
func resolveSide(ctx context.Context, q queryer, label string) (models.Side, error) {
	label = strings.TrimSpace(label)
	codes := ExtractTeamCodes(label)
	switch {
	case len(codes) == 0:
		return models.Side{}, apperrors.InvalidInput("MISSING_TEAM_CODE", "side %q must name its players' team codes in brackets", label)
	case len(codes) > 2:
		return models.Side{}, apperrors.InvalidInput("TOO_MANY_PLAYERS", "side %q names more than two players", label)
	}

	primary, err := accountByTeamCode(ctx, q, codes[0])
	if err != nil {
		return models.Side{}, err
	}
	side := models.Side{Label: label, PrimaryID: primary.ID, PrimaryCode: primary.TeamCode}
	if len(codes) == 2 {
		partner, err := accountByTeamCode(ctx, q, codes[1])
		if err != nil {
			return models.Side{}, err
		}
		if partner.ID == primary.ID {
			return models.Side{}, apperrors.InvalidInput("DUPLICATE_PLAYER", "side %q names the same player twice", label)
		}
		side.PartnerID = &partner.ID
		side.PartnerCode = &partner.TeamCode
	}
	return side, nil
}

func lockMatch(ctx context.Context, tx *sql.Tx, id int64) (*models.Match, error) {
	m, err := scanMatch(tx.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("MATCH_NOT_FOUND", "match %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock match: %w", err)
	}
	return m, nil
}

func updateMatch(ctx context.Context, tx *sql.Tx, m *models.Match) error {
	m.UpdatedAt = time.Now().UTC()
	_, err := tx.ExecContext(ctx, `
		UPDATE matches
		SET side1_label = $1, side1_primary = $2, side1_primary_code = $3, side1_partner = $4, side1_partner_code = $5,
			side2_label = $6, side2_primary = $7, side2_primary_code = $8, side2_partner = $9, side2_partner_code = $10,
			score = $11, status = $12, submitted_by = $13, scheduled_at = $14, updated_at = $15
		WHERE id = $16`,
		m.Side1.Label, m.Side1.PrimaryID, m.Side1.PrimaryCode, nullInt64(m.Side1.PartnerID), nullString(m.Side1.PartnerCode),
		m.Side2.Label, m.Side2.PrimaryID, m.Side2.PrimaryCode, nullInt64(m.Side2.PartnerID), nullString(m.Side2.PartnerCode),
		m.Score, string(m.Status), m.SubmittedBy, nullTime(m.ScheduledAt), m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("update match %d: %w", m.ID, err)
	}
	return nil
}

func listMatches(ctx context.Context, q queryer, query string, args ...any) ([]models.Match, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func scanMatch(scan func(dest ...any) error) (*models.Match, error) {
	var m models.Match
	var p1, p2 sql.NullInt64
	var c1, c2 sql.NullString
	var scheduled sql.NullTime
	err := scan(&m.ID, &m.TournamentID, &m.City, &m.Category, &m.Group, &m.Stage,
		&m.Side1.Label, &m.Side1.PrimaryID, &m.Side1.PrimaryCode, &p1, &c1,
		&m.Side2.Label, &m.Side2.PrimaryID, &m.Side2.PrimaryCode, &p2, &c2,
		&m.Score, &m.Status, &m.SubmittedBy, &scheduled, &m.PayoutApplied, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Side1.PartnerID, m.Side1.PartnerCode = int64Ptr(p1), stringPtr(c1)
	m.Side2.PartnerID, m.Side2.PartnerCode = int64Ptr(p2), stringPtr(c2)
	if scheduled.Valid {
		at := scheduled.Time
		m.ScheduledAt = &at
	}
	return &m, nil
}
