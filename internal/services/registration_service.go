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
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const registrationColumns = `id, account_id, partner_account_id, tournament_id, city, category, group_label, status, pair_id, created_at`

// PaymentWallet is the only payment mode that draws on the wallet balance.
// Any other mode was collected outside the system and is first recorded as a
// DIRECT_PAYMENT credit.
const PaymentWallet = "WALLET"

// JoinResult describes the rows a join created and what it cost.
type JoinResult struct {
	Registrations []models.Registration `json:"registrations"`
	AmountCharged int64                 `json:"amountCharged"`
	Group         *string               `json:"group,omitempty"`
}

type RegistrationService struct {
	db        *sql.DB
	ledger    *WalletLedger
	allocator *GroupAllocator
	accounts  *AccountService
	notifier  Notifier
	live      Broadcaster
}

func NewRegistrationService(db *sql.DB, ledger *WalletLedger, allocator *GroupAllocator, accounts *AccountService, notifier Notifier, live Broadcaster) *RegistrationService {
	return &RegistrationService{
		db:        db,
		ledger:    ledger,
		allocator: allocator,
		accounts:  accounts,
		notifier:  notifier,
		live:      live,
	}
}

type pendingNotice struct {
	accountID int64
	title     string
	message   string
}

// Join registers the player identified by phone for a tournament. Everything,
// including the fee debit and the group allocation, commits or rolls back
// together.
func (s *RegistrationService) Join(ctx context.Context, phone string, req *models.JoinRequest) (*JoinResult, error) {
	var result *JoinResult
	var notices []pendingNotice
	var tournamentID int64

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		account, err := accountByPhone(ctx, tx, phone)
		if err != nil {
			return err
		}

		t, err := findTournament(ctx, tx, req.Tournament, req.City, "")
		if err != nil {
			return err
		}
		tournamentID = t.ID
		if t.Status != models.TournamentOpen {
			return apperrors.Conflict("REGISTRATION_CLOSED", "%s is not open for registration", t.Name)
		}

		if existing, err := registrationFor(ctx, tx, account.ID, t.ID, t.City); err != nil {
			return err
		} else if existing != nil {
			return apperrors.Duplicate("ALREADY_REGISTERED", "already registered for %s with status %s", t.Name, existing.Status)
		}

		category, ok := t.Category(req.Category)
		if !ok {
			return apperrors.InvalidInput("UNKNOWN_CATEGORY", "%s has no category %q", t.Name, req.Category)
		}

		if t.Format == models.FormatDoubles {
			result, notices, err = s.joinDoubles(ctx, tx, account, t, category, req)
		} else {
			result, notices, err = s.joinSingles(ctx, tx, account, t, category, req.PaymentMode)
		}
		return err
	})
	if err != nil {
		log.Printf("[REGISTRATION] join %s by %s failed: %v", req.Tournament, phone, err)
		return nil, err
	}

	for _, n := range notices {
		notifyAll(ctx, s.notifier, []int64{n.accountID}, n.title, n.message)
	}
	if result.Group != nil {
		broadcast(s.live, tournamentID, EventEntrantConfirmed, result.Registrations)
	}
	return result, nil
}

func (s *RegistrationService) joinSingles(ctx context.Context, tx *sql.Tx, account *models.Account, t *models.Tournament, category models.Category, paymentMode string) (*JoinResult, []pendingNotice, error) {
	if err := s.charge(ctx, tx, account.ID, category.EntryFee, paymentMode, t, category.Name); err != nil {
		return nil, nil, err
	}

	group, err := s.allocator.Allocate(ctx, tx, t.ID, t.City, category.Name, t.DrawSize)
	if err != nil {
		return nil, nil, err
	}

	reg := models.Registration{
		AccountID:    account.ID,
		TournamentID: t.ID,
		City:         t.City,
		Category:     category.Name,
		Group:        &group,
		Status:       models.StatusConfirmed,
	}
	if err := insertRegistration(ctx, tx, &reg); err != nil {
		return nil, nil, err
	}

	notices := []pendingNotice{{account.ID, "Registration confirmed",
		fmt.Sprintf("You are in %s (%s), group %s.", t.Name, category.Name, group)}}
	return &JoinResult{Registrations: []models.Registration{reg}, AmountCharged: category.EntryFee, Group: &group}, notices, nil
}

func (s *RegistrationService) joinDoubles(ctx context.Context, tx *sql.Tx, account *models.Account, t *models.Tournament, category models.Category, req *models.JoinRequest) (*JoinResult, []pendingNotice, error) {
	code := NormalizeTeamCode(req.PartnerTeamCode)
	if code == "" {
		return nil, nil, apperrors.InvalidInput("PARTNER_REQUIRED", "%s is a doubles event; a partner team code is required", t.Name)
	}

	partner, err := accountByTeamCode(ctx, tx, code)
	if err != nil {
		return nil, nil, err
	}
	if partner.ID == account.ID {
		return nil, nil, apperrors.InvalidInput("SELF_PARTNER", "you cannot partner with yourself")
	}
	if existing, err := registrationFor(ctx, tx, partner.ID, t.ID, t.City); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, apperrors.InvalidInput("PARTNER_REGISTERED", "partner %s is already registered with status %s", code, existing.Status)
	}

	pairID := uuid.New().String()
	payer := models.Registration{
		AccountID:        account.ID,
		PartnerAccountID: &partner.ID,
		TournamentID:     t.ID,
		City:             t.City,
		Category:         category.Name,
		PairID:           &pairID,
	}
	invitee := models.Registration{
		AccountID:        partner.ID,
		PartnerAccountID: &account.ID,
		TournamentID:     t.ID,
		City:             t.City,
		Category:         category.Name,
		PairID:           &pairID,
	}

	scope := req.PaymentScope
	if scope == "" {
		scope = models.ScopeTeam
	}

	var charged int64
	var group *string
	var notices []pendingNotice

	switch scope {
	case models.ScopeTeam:
		charged = 2 * category.EntryFee
		if err := s.charge(ctx, tx, account.ID, charged, req.PaymentMode, t, category.Name); err != nil {
			return nil, nil, err
		}
		label, err := s.allocator.Allocate(ctx, tx, t.ID, t.City, category.Name, t.DrawSize)
		if err != nil {
			return nil, nil, err
		}
		group = &label
		payer.Status, payer.Group = models.StatusConfirmed, group
		invitee.Status, invitee.Group = models.StatusConfirmed, group

		msg := fmt.Sprintf("%s & %s are in %s (%s), group %s.", account.Name, partner.Name, t.Name, category.Name, label)
		notices = append(notices,
			pendingNotice{account.ID, "Team registration confirmed", msg},
			pendingNotice{partner.ID, "Team registration confirmed", msg})

	case models.ScopeIndividual:
		charged = category.EntryFee
		if err := s.charge(ctx, tx, account.ID, charged, req.PaymentMode, t, category.Name); err != nil {
			return nil, nil, err
		}
		payer.Status = models.StatusPartialConfirmed
		invitee.Status = models.StatusPendingPayment

		notices = append(notices,
			pendingNotice{account.ID, "Share paid",
				fmt.Sprintf("Your share for %s is paid. Waiting for %s to pay theirs.", t.Name, partner.Name)})

	default:
		return nil, nil, apperrors.InvalidInput("INVALID_SCOPE", "unknown payment scope %q", scope)
	}

	if err := insertRegistration(ctx, tx, &payer); err != nil {
		return nil, nil, err
	}
	if err := insertRegistration(ctx, tx, &invitee); err != nil {
		return nil, nil, err
	}
	if invitee.Status == models.StatusPendingPayment {
		notices = append(notices, pendingNotice{partner.ID, "Doubles invitation",
			fmt.Sprintf("%s (%s) invited you to %s (%s). Pay your share of %d against registration %d to confirm the team.",
				account.Name, account.TeamCode, t.Name, category.Name, category.EntryFee, invitee.ID)})
	}

	return &JoinResult{
		Registrations: []models.Registration{payer, invitee},
		AmountCharged: charged,
		Group:         group,
	}, notices, nil
}

// ConfirmPartner completes an INDIVIDUAL doubles registration: the invitee
// pays their share and both rows become Confirmed in one shared group.
// callerAccountID may be zero for admin use.
func (s *RegistrationService) ConfirmPartner(ctx context.Context, callerAccountID, registrationID int64, paymentMode string) (*JoinResult, error) {
	var result *JoinResult
	var tournamentID int64
	var accounts []int64
	var tournamentName string

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		reg, err := lockRegistration(ctx, tx, registrationID)
		if err != nil {
			return err
		}
		if callerAccountID != 0 && reg.AccountID != callerAccountID {
			return apperrors.Conflict("NOT_YOUR_REGISTRATION", "registration %d belongs to another player", registrationID)
		}
		if reg.Status != models.StatusPendingPayment {
			return apperrors.Conflict("NOT_PENDING", "registration %d is %s, not %s", reg.ID, reg.Status, models.StatusPendingPayment)
		}
		if reg.PairID == nil {
			return apperrors.Conflict("NO_PAIR", "registration %d has no doubles pair", reg.ID)
		}

		pair, err := lockPairRow(ctx, tx, *reg.PairID, reg.ID)
		if err != nil {
			return err
		}
		if pair.Status != models.StatusPartialConfirmed {
			return apperrors.Conflict("PAIR_NOT_PARTIAL", "paired registration %d is %s, not %s", pair.ID, pair.Status, models.StatusPartialConfirmed)
		}

		t, err := tournamentByID(ctx, tx, reg.TournamentID)
		if err != nil {
			return err
		}
		tournamentID, tournamentName = t.ID, t.Name
		category, ok := t.Category(reg.Category)
		if !ok {
			return apperrors.InvalidInput("UNKNOWN_CATEGORY", "%s no longer has category %q", t.Name, reg.Category)
		}

		if err := s.charge(ctx, tx, reg.AccountID, category.EntryFee, paymentMode, t, category.Name); err != nil {
			return err
		}

		group, err := s.allocator.Allocate(ctx, tx, t.ID, reg.City, reg.Category, t.DrawSize)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE registrations
			SET status = $1, group_label = $2
			WHERE id = ANY($3)`,
			string(models.StatusConfirmed), group, pq.Array([]int64{reg.ID, pair.ID}))
		if err != nil {
			return fmt.Errorf("confirm pair: %w", err)
		}
		if n, _ := res.RowsAffected(); n != 2 {
			return apperrors.Conflict("PAIR_CHANGED", "expected to confirm 2 rows, confirmed %d", n)
		}

		reg.Status, reg.Group = models.StatusConfirmed, &group
		pair.Status, pair.Group = models.StatusConfirmed, &group
		accounts = []int64{reg.AccountID, pair.AccountID}
		result = &JoinResult{
			Registrations: []models.Registration{*pair, *reg},
			AmountCharged: category.EntryFee,
			Group:         &group,
		}
		return nil
	})
	if err != nil {
		log.Printf("[REGISTRATION] confirm partner %d failed: %v", registrationID, err)
		return nil, err
	}

	notifyAll(ctx, s.notifier, accounts, "Team registration confirmed",
		fmt.Sprintf("Your team is confirmed for %s, group %s.", tournamentName, *result.Group))
	broadcast(s.live, tournamentID, EventEntrantConfirmed, result.Registrations)
	return result, nil
}

// AdminRegister adds a confirmed singles entrant without charging a fee,
// creating the account when the phone is new.
func (s *RegistrationService) AdminRegister(ctx context.Context, req *models.AdminRegisterRequest) (*models.Registration, error) {
	var reg models.Registration
	var tournamentID int64

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		account, err := s.accounts.EnsureAccount(ctx, tx, req.Name, strings.TrimSpace(req.Phone))
		if err != nil {
			return err
		}

		t, err := findTournament(ctx, tx, req.Tournament, req.City, "")
		if err != nil {
			return err
		}
		tournamentID = t.ID
		if _, ok := t.Category(req.Category); !ok {
			return apperrors.InvalidInput("UNKNOWN_CATEGORY", "%s has no category %q", t.Name, req.Category)
		}

		if existing, err := registrationFor(ctx, tx, account.ID, t.ID, t.City); err != nil {
			return err
		} else if existing != nil {
			return apperrors.Duplicate("ALREADY_REGISTERED", "%s is already registered with status %s", account.TeamCode, existing.Status)
		}

		group, err := s.allocator.Allocate(ctx, tx, t.ID, t.City, req.Category, t.DrawSize)
		if err != nil {
			return err
		}

		reg = models.Registration{
			AccountID:    account.ID,
			TournamentID: t.ID,
			City:         t.City,
			Category:     req.Category,
			Group:        &group,
			Status:       models.StatusConfirmed,
		}
		return insertRegistration(ctx, tx, &reg)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[REGISTRATION] admin registered account %d into tournament %d group %s", reg.AccountID, tournamentID, *reg.Group)
	broadcast(s.live, tournamentID, EventEntrantConfirmed, []models.Registration{reg})
	return &reg, nil
}

// charge collects amount for an entry. A zero fee writes nothing.
func (s *RegistrationService) charge(ctx context.Context, tx *sql.Tx, accountID, amount int64, paymentMode string, t *models.Tournament, category string) error {
	if amount == 0 {
		return nil
	}
	tid := t.ID

	mode := strings.ToUpper(strings.TrimSpace(paymentMode))
	if mode != PaymentWallet {
		if _, err := s.ledger.CreditTx(ctx, tx, models.LedgerEntry{
			AccountID:    accountID,
			Amount:       amount,
			Mode:         models.ModeDirectPayment,
			Description:  fmt.Sprintf("Fee: %s (%s, paid via %s)", t.Name, category, mode),
			TournamentID: &tid,
		}); err != nil {
			return err
		}
	}

	_, err := s.ledger.DebitTx(ctx, tx, models.LedgerEntry{
		AccountID:    accountID,
		Amount:       amount,
		Mode:         models.ModeEventFee,
		Description:  FeeDescription(t.Name, category),
		TournamentID: &tid,
	})
	return err
}

func scanRegistration(scan func(dest ...any) error) (*models.Registration, error) {
	var r models.Registration
	var partner sql.NullInt64
	var group, pair sql.NullString
	if err := scan(&r.ID, &r.AccountID, &partner, &r.TournamentID, &r.City, &r.Category, &group, &r.Status, &pair, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.PartnerAccountID = int64Ptr(partner)
	r.Group = stringPtr(group)
	r.PairID = stringPtr(pair)
	return &r, nil
}

// registrationFor returns the account's registration in a tournament, or nil.
func registrationFor(ctx context.Context, q queryer, accountID, tournamentID int64, city string) (*models.Registration, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		WHERE account_id = $1 AND tournament_id = $2 AND city = $3`, accountID, tournamentID, city)
	r, err := scanRegistration(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load registration: %w", err)
	}
	return r, nil
}

func lockRegistration(ctx context.Context, tx *sql.Tx, id int64) (*models.Registration, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		WHERE id = $1
		FOR UPDATE`, id)
	r, err := scanRegistration(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("REGISTRATION_NOT_FOUND", "registration %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock registration: %w", err)
	}
	return r, nil
}

func lockPairRow(ctx context.Context, tx *sql.Tx, pairID string, excludeID int64) (*models.Registration, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		WHERE pair_id = $1 AND id <> $2
		FOR UPDATE`, pairID, excludeID)
	r, err := scanRegistration(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Conflict("PAIR_MISSING", "paired registration for %s not found", pairID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock pair registration: %w", err)
	}
	return r, nil
}

func insertRegistration(ctx context.Context, tx *sql.Tx, r *models.Registration) error {
	var group, pair sql.NullString
	if r.Group != nil {
		group = sql.NullString{String: *r.Group, Valid: true}
	}
	if r.PairID != nil {
		pair = sql.NullString{String: *r.PairID, Valid: true}
	}

	err := tx.QueryRowContext(ctx, `
		INSERT INTO registrations (account_id, partner_account_id, tournament_id, city, category, group_label, status, pair_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at`,
		r.AccountID, nullInt64(r.PartnerAccountID), r.TournamentID, r.City, r.Category, group, string(r.Status), pair,
	).Scan(&r.ID, &r.CreatedAt)
	if database.IsUniqueViolation(err) {
		return apperrors.Duplicate("ALREADY_REGISTERED", "account %d is already registered for this tournament", r.AccountID)
	}
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}
