package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
)

const playerEntrySelect = `
	SELECT r.id, r.tournament_id, t.name, r.city, r.category, r.group_label, r.status,
		a.id, a.name, a.team_code, a.phone, p.team_code
	FROM registrations r
	JOIN tournaments t ON t.id = r.tournament_id
	JOIN accounts a ON a.id = r.account_id
	LEFT JOIN accounts p ON p.id = r.partner_account_id`

// Profile returns the caller's account and registrations. An invitee reads
// the registration id it has to confirm from here.
func (s *RegistrationService) Profile(ctx context.Context, phone string) (*models.PlayerProfile, error) {
	account, err := s.accounts.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	entries, err := s.playerEntries(ctx, playerEntrySelect+`
		WHERE r.account_id = $1
		ORDER BY r.created_at DESC, r.id DESC`, account.ID)
	if err != nil {
		return nil, err
	}
	return &models.PlayerProfile{Account: *account, Registrations: entries}, nil
}

// Players lists every account.
func (s *RegistrationService) Players(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx)
}

// TournamentPlayers lists the registrations of the tournament called name in
// city, grouped by category and group.
func (s *RegistrationService) TournamentPlayers(ctx context.Context, name, city string) ([]models.PlayerEntry, error) {
	if strings.TrimSpace(city) == "" {
		return nil, apperrors.InvalidInput("CITY_REQUIRED", "city is required to identify %s", name)
	}
	t, err := findTournament(ctx, s.db, name, city, "")
	if err != nil {
		return nil, err
	}
	return s.playerEntries(ctx, playerEntrySelect+`
		WHERE r.tournament_id = $1
		ORDER BY r.category, r.group_label NULLS LAST, a.name`, t.ID)
}

func (s *RegistrationService) playerEntries(ctx context.Context, query string, args ...any) ([]models.PlayerEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	entries := []models.PlayerEntry{}
	for rows.Next() {
		var e models.PlayerEntry
		var group, partner sql.NullString
		if err := rows.Scan(&e.RegistrationID, &e.TournamentID, &e.Tournament, &e.City, &e.Category, &group, &e.Status,
			&e.AccountID, &e.Name, &e.TeamCode, &e.Phone, &partner); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		e.Group = stringPtr(group)
		e.PartnerTeamCode = stringPtr(partner)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
