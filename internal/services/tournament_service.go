package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/database"
	"github.com/club28/backend/internal/models"
)

const tournamentColumns = `id, name, city, sport, format, draw_size, status, created_at`

// TournamentService is the tournament config store plus the admin operations
// on it.
type TournamentService struct {
	db         *sql.DB
	correlator *Correlator
}

func NewTournamentService(db *sql.DB, correlator *Correlator) *TournamentService {
	return &TournamentService{db: db, correlator: correlator}
}

// ValidateTournament checks a create/edit request beyond its struct tags.
func ValidateTournament(req *models.TournamentRequest) error {
	if req.DrawSize <= 0 || req.DrawSize%groupCapacity != 0 {
		return apperrors.InvalidInput("INVALID_DRAW_SIZE", "draw size must be a positive multiple of %d", groupCapacity)
	}
	if req.DrawSize > MaxDrawSize {
		return apperrors.InvalidInput("INVALID_DRAW_SIZE", "draw size may not exceed %d", MaxDrawSize)
	}
	if req.Format != models.FormatSingles && req.Format != models.FormatDoubles {
		return apperrors.InvalidInput("INVALID_FORMAT", "format must be Singles or Doubles")
	}
	if len(req.Categories) == 0 {
		return apperrors.InvalidInput("NO_CATEGORIES", "at least one category is required")
	}

	seen := make(map[string]bool)
	for i := range req.Categories {
		c := &req.Categories[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return apperrors.InvalidInput("INVALID_CATEGORY", "category %d has no name", i+1)
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return apperrors.InvalidInput("DUPLICATE_CATEGORY", "category %q is listed twice", c.Name)
		}
		seen[key] = true
		if c.EntryFee < 0 || c.PerMatchBonus < 0 || c.FirstPrize < 0 || c.SecondPrize < 0 || c.ThirdPrize < 0 {
			return apperrors.InvalidInput("NEGATIVE_AMOUNT", "category %q has a negative amount", c.Name)
		}
	}
	return nil
}

// Create stores a new tournament with its pricing tiers.
func (s *TournamentService) Create(ctx context.Context, req *models.TournamentRequest) (*models.Tournament, error) {
	if err := ValidateTournament(req); err != nil {
		return nil, err
	}
	status := models.TournamentStatus(req.Status)
	if status == "" {
		status = models.TournamentOpen
	}

	t := &models.Tournament{
		Name:       strings.TrimSpace(req.Name),
		City:       strings.TrimSpace(req.City),
		Sport:      strings.TrimSpace(req.Sport),
		Format:     req.Format,
		DrawSize:   req.DrawSize,
		Status:     status,
		Categories: req.Categories,
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO tournaments (name, city, sport, format, draw_size, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id, created_at`,
			t.Name, t.City, t.Sport, string(t.Format), t.DrawSize, string(t.Status),
		).Scan(&t.ID, &t.CreatedAt)
		if database.IsUniqueViolation(err) {
			return apperrors.Duplicate("TOURNAMENT_EXISTS", "%s already exists in %s for %s", t.Name, t.City, t.Sport)
		}
		if err != nil {
			return fmt.Errorf("insert tournament: %w", err)
		}
		return s.insertCategories(ctx, tx, t.ID, t.Categories)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[TOURNAMENT] created %d %s (%s, %s)", t.ID, t.Name, t.City, t.Sport)
	return t, nil
}

func (s *TournamentService) insertCategories(ctx context.Context, tx *sql.Tx, tournamentID int64, categories []models.Category) error {
	for i, c := range categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tournament_categories
				(tournament_id, position, name, entry_fee, per_match_bonus, first_prize, second_prize, third_prize)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			tournamentID, i, c.Name, c.EntryFee, c.PerMatchBonus, c.FirstPrize, c.SecondPrize, c.ThirdPrize,
		); err != nil {
			return fmt.Errorf("insert category %s: %w", c.Name, err)
		}
	}
	return nil
}

// Edit replaces a tournament's settings and pricing tiers. Categories still
// used by registrations or matches must stay, every occupied group must stay
// inside the new draw, and a city change is carried onto the tournament's
// registrations and matches.
func (s *TournamentService) Edit(ctx context.Context, id int64, req *models.TournamentRequest) (*models.Tournament, error) {
	if err := ValidateTournament(req); err != nil {
		return nil, err
	}

	var t *models.Tournament
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := s.lockTournament(ctx, tx, id)
		if err != nil {
			return err
		}

		status := models.TournamentStatus(req.Status)
		if status == "" {
			status = current.Status
		}
		t = &models.Tournament{
			ID:         id,
			Name:       strings.TrimSpace(req.Name),
			City:       strings.TrimSpace(req.City),
			Sport:      strings.TrimSpace(req.Sport),
			Format:     req.Format,
			DrawSize:   req.DrawSize,
			Status:     status,
			Categories: req.Categories,
			CreatedAt:  current.CreatedAt,
		}

		if err := s.checkEdit(ctx, tx, current, t); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE tournaments
			SET name = $1, city = $2, sport = $3, format = $4, draw_size = $5, status = $6
			WHERE id = $7`,
			t.Name, t.City, t.Sport, string(t.Format), t.DrawSize, string(t.Status), id)
		if database.IsUniqueViolation(err) {
			return apperrors.Duplicate("TOURNAMENT_EXISTS", "%s already exists in %s for %s", t.Name, t.City, t.Sport)
		}
		if err != nil {
			return fmt.Errorf("update tournament: %w", err)
		}

		if t.City != current.City {
			if _, err := tx.ExecContext(ctx, `UPDATE registrations SET city = $1 WHERE tournament_id = $2`, t.City, id); err != nil {
				return fmt.Errorf("move registrations to %s: %w", t.City, err)
			}
			if _, err := tx.ExecContext(ctx, `UPDATE matches SET city = $1 WHERE tournament_id = $2`, t.City, id); err != nil {
				return fmt.Errorf("move matches to %s: %w", t.City, err)
			}
			log.Printf("[TOURNAMENT] %d moved from %s to %s", id, current.City, t.City)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_categories WHERE tournament_id = $1`, id); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		return s.insertCategories(ctx, tx, id, t.Categories)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// checkEdit rejects edits that would strand existing registrations, matches
// or group placements.
func (s *TournamentService) checkEdit(ctx context.Context, tx *sql.Tx, current, next *models.Tournament) error {
	referenced, err := referencedCategories(ctx, tx, current.ID)
	if err != nil {
		return err
	}
	if len(referenced) > 0 && next.Format != current.Format {
		return apperrors.Conflict("FORMAT_LOCKED", "%s already has entrants; its format cannot change", current.Name)
	}
	for _, name := range referenced {
		if _, ok := next.Category(name); !ok {
			return apperrors.Conflict("CATEGORY_IN_USE", "category %q is still used by registrations or matches", name)
		}
	}

	placements, err := groupPlacements(ctx, tx, current.ID)
	if err != nil {
		return err
	}
	allowed := make(map[string]bool)
	for _, label := range GroupLabels(next.DrawSize) {
		allowed[label] = true
	}
	for category, groups := range placements {
		total := 0
		for label, n := range groups {
			total += n
			if !allowed[label] {
				return apperrors.Conflict("GROUP_OUTSIDE_DRAW", "group %s of %q has %d entrants but a draw of %d has no group %s",
					label, category, n, next.DrawSize, label)
			}
		}
		if total > next.DrawSize {
			return apperrors.Conflict("DRAW_TOO_SMALL", "draw size %d is below the %d confirmed entrants of %q", next.DrawSize, total, category)
		}
	}
	return nil
}

func referencedCategories(ctx context.Context, tx *sql.Tx, tournamentID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT category FROM registrations WHERE tournament_id = $1
		UNION
		SELECT category FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load referenced categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan referenced category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// groupPlacements counts confirmed entrants per category and group; a doubles
// pair is one entrant.
func groupPlacements(ctx context.Context, tx *sql.Tx, tournamentID int64) (map[string]map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT category, group_label, COUNT(DISTINCT COALESCE(pair_id::text, id::text))
		FROM registrations
		WHERE tournament_id = $1 AND status = 'Confirmed' AND group_label IS NOT NULL
		GROUP BY category, group_label`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("count group placements: %w", err)
	}
	defer rows.Close()

	placements := make(map[string]map[string]int)
	for rows.Next() {
		var category, label string
		var n int
		if err := rows.Scan(&category, &label, &n); err != nil {
			return nil, fmt.Errorf("scan group placement: %w", err)
		}
		if placements[category] == nil {
			placements[category] = make(map[string]int)
		}
		placements[category][label] = n
	}
	return placements, rows.Err()
}

// Delete removes a tournament together with its matches and registrations.
// Its ledger lines are archived, never deleted.
func (s *TournamentService) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := s.lockTournament(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := s.correlator.ArchiveTournament(ctx, tx, t.ID, t.Name); err != nil {
			return err
		}

		matches, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}
		registrations, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE tournament_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete tournament: %w", err)
		}

		nm, _ := matches.RowsAffected()
		nr, _ := registrations.RowsAffected()
		log.Printf("[TOURNAMENT] deleted %d %s: %d matches, %d registrations", id, t.Name, nm, nr)
		return nil
	})
}

func (s *TournamentService) lockTournament(ctx context.Context, tx *sql.Tx, id int64) (*models.Tournament, error) {
	t, err := scanTournament(tx.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("TOURNAMENT_NOT_FOUND", "tournament %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock tournament: %w", err)
	}
	return t, nil
}

// Get loads a tournament and its pricing tiers.
func (s *TournamentService) Get(ctx context.Context, id int64) (*models.Tournament, error) {
	return tournamentByID(ctx, s.db, id)
}

// Find resolves a tournament by name and city, and sport when given.
func (s *TournamentService) Find(ctx context.Context, name, city, sport string) (*models.Tournament, error) {
	return findTournament(ctx, s.db, name, city, sport)
}

// List returns tournaments, optionally filtered by city.
func (s *TournamentService) List(ctx context.Context, city string) ([]models.Tournament, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tournamentColumns+`
		FROM tournaments
		WHERE $1 = '' OR city = $1
		ORDER BY created_at DESC, id DESC`, city)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := []models.Tournament{}
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.Sport, &t.Format, &t.DrawSize, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func scanTournament(row *sql.Row) (*models.Tournament, error) {
	var t models.Tournament
	if err := row.Scan(&t.ID, &t.Name, &t.City, &t.Sport, &t.Format, &t.DrawSize, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func tournamentByID(ctx context.Context, q queryer, id int64) (*models.Tournament, error) {
	t, err := scanTournament(q.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("TOURNAMENT_NOT_FOUND", "tournament %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	if t.Categories, err = loadCategories(ctx, q, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func findTournament(ctx context.Context, q queryer, name, city, sport string) (*models.Tournament, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+tournamentColumns+`
		FROM tournaments
		WHERE name = $1 AND city = $2 AND ($3 = '' OR sport = $3)
		ORDER BY id
		LIMIT 2`, strings.TrimSpace(name), strings.TrimSpace(city), strings.TrimSpace(sport))
	if err != nil {
		return nil, fmt.Errorf("find tournament: %w", err)
	}

	var found []models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.Sport, &t.Format, &t.DrawSize, &t.Status, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		found = append(found, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, apperrors.NotFound("TOURNAMENT_NOT_FOUND", "no tournament %s in %s", name, city)
	case 1:
	default:
		return nil, apperrors.InvalidInput("AMBIGUOUS_TOURNAMENT", "%s in %s runs for several sports; specify the sport", name, city)
	}

	t := &found[0]
	if t.Categories, err = loadCategories(ctx, q, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func loadCategories(ctx context.Context, q queryer, tournamentID int64) ([]models.Category, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, entry_fee, per_match_bonus, first_prize, second_prize, third_prize
		FROM tournament_categories
		WHERE tournament_id = $1
		ORDER BY position`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Name, &c.EntryFee, &c.PerMatchBonus, &c.FirstPrize, &c.SecondPrize, &c.ThirdPrize); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
