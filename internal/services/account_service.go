package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/models"
)

const accountColumns = `id, phone, name, team_code, balance, version, created_at, updated_at`

// AccountService is the account store. Accounts are normally created by the
// external sign-up flow; the admin path may create them on the fly.
type AccountService struct {
	db *sql.DB
}

func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{db: db}
}

func scanAccount(scan func(dest ...any) error) (*models.Account, error) {
	var a models.Account
	err := scan(&a.ID, &a.Phone, &a.Name, &a.TeamCode, &a.Balance, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountService) GetByPhone(ctx context.Context, phone string) (*models.Account, error) {
	return accountByPhone(ctx, s.db, phone)
}

func (s *AccountService) GetByTeamCode(ctx context.Context, code string) (*models.Account, error) {
	return accountByTeamCode(ctx, s.db, code)
}

func accountByPhone(ctx context.Context, q queryer, phone string) (*models.Account, error) {
	a, err := scanAccount(q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE phone = $1`, phone).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("ACCOUNT_NOT_FOUND", "no account for phone %s", phone)
	}
	if err != nil {
		return nil, fmt.Errorf("load account by phone: %w", err)
	}
	return a, nil
}

func accountByTeamCode(ctx context.Context, q queryer, code string) (*models.Account, error) {
	code = NormalizeTeamCode(code)
	a, err := scanAccount(q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE team_code = $1`, code).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("TEAM_NOT_FOUND", "no player with team code %s", code)
	}
	if err != nil {
		return nil, fmt.Errorf("load account by team code: %w", err)
	}
	return a, nil
}

// List returns every account ordered by name.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// EnsureAccount returns the account for phone, creating it when missing.
func (s *AccountService) EnsureAccount(ctx context.Context, tx *sql.Tx, name, phone string) (*models.Account, error) {
	a, err := accountByPhone(ctx, tx, phone)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	code, err := s.uniqueTeamCode(ctx, tx, name, phone)
	if err != nil {
		return nil, err
	}

	a, err = scanAccount(tx.QueryRowContext(ctx, `
		INSERT INTO accounts (phone, name, team_code, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 1, NOW(), NOW())
		RETURNING `+accountColumns, phone, strings.TrimSpace(name), code).Scan)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	log.Printf("[ACCOUNT] created account %d with team code %s", a.ID, a.TeamCode)
	return a, nil
}

func (s *AccountService) uniqueTeamCode(ctx context.Context, tx *sql.Tx, name, phone string) (string, error) {
	code := GenerateTeamCode(name, phone)
	prefix := string([]rune(code)[:2])
	for attempt := 0; attempt < 20; attempt++ {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE team_code = $1)`, code).Scan(&exists); err != nil {
			return "", fmt.Errorf("check team code: %w", err)
		}
		if !exists {
			return code, nil
		}
		code = fmt.Sprintf("%s%d", prefix, 10+rand.IntN(90))
	}
	return "", apperrors.Conflict("TEAM_CODE_EXHAUSTED", "could not allocate a team code for %s", name)
}

// GenerateTeamCode derives the short player code: the first two letters of the
// name upper-cased followed by the last two digits of the phone.
func GenerateTeamCode(name, phone string) string {
	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 2 {
				break
			}
		}
	}
	for len(letters) < 2 {
		letters = append(letters, 'X')
	}

	var digits []rune
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	for len(digits) < 2 {
		digits = append([]rune{'0'}, digits...)
	}

	return string(letters) + string(digits[len(digits)-2:])
}

// NormalizeTeamCode trims and upper-cases a user supplied team code.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
