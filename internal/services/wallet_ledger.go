package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/audit"
	"github.com/club28/backend/internal/models"
	"github.com/google/uuid"
)

const transactionColumns = `id, reference, account_id, amount, type, mode, description, status,
	tournament_id, match_id, archived, balance_after, created_at`

// WalletLedger owns every balance change. Each mutation locks the account row,
// appends exactly one transaction line and updates the cached balance in the
// same SQL transaction.
type WalletLedger struct {
	db    *sql.DB
	audit *audit.Logger
	now   func() time.Time
}

func NewWalletLedger(db *sql.DB) *WalletLedger {
	return &WalletLedger{
		db:    db,
		audit: audit.NewLogger(),
		now:   time.Now,
	}
}

// Credit adds funds in its own transaction.
func (l *WalletLedger) Credit(ctx context.Context, entry models.LedgerEntry) (*models.Transaction, error) {
	var record *models.Transaction
	err := withTx(ctx, l.db, func(tx *sql.Tx) error {
		var err error
		record, err = l.CreditTx(ctx, tx, entry)
		return err
	})
	return record, err
}

// Debit removes funds in its own transaction.
func (l *WalletLedger) Debit(ctx context.Context, entry models.LedgerEntry) (*models.Transaction, error) {
	var record *models.Transaction
	err := withTx(ctx, l.db, func(tx *sql.Tx) error {
		var err error
		record, err = l.DebitTx(ctx, tx, entry)
		return err
	})
	return record, err
}

// CreditTx adds funds inside the caller's transaction.
func (l *WalletLedger) CreditTx(ctx context.Context, tx *sql.Tx, entry models.LedgerEntry) (*models.Transaction, error) {
	return l.apply(ctx, tx, entry, models.TxCredit)
}

// DebitTx removes funds inside the caller's transaction. It fails with
// InsufficientFunds when the balance is below the amount.
func (l *WalletLedger) DebitTx(ctx context.Context, tx *sql.Tx, entry models.LedgerEntry) (*models.Transaction, error) {
	return l.apply(ctx, tx, entry, models.TxDebit)
}

func (l *WalletLedger) apply(ctx context.Context, tx *sql.Tx, entry models.LedgerEntry, txType models.TxType) (*models.Transaction, error) {
	if entry.Amount <= 0 {
		return nil, apperrors.InvalidInput("INVALID_AMOUNT", "amount must be positive, got %d", entry.Amount)
	}
	if !entry.Mode.Valid() {
		return nil, apperrors.InvalidInput("INVALID_MODE", "unknown transaction mode %q", entry.Mode)
	}

	account, err := l.lockAccount(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}

	signed := entry.Amount
	if txType == models.TxDebit {
		if account.Balance < entry.Amount {
			l.audit.LogError(entry.Reference, account.ID, fmt.Errorf("insufficient balance for %s", entry.Mode))
			return nil, apperrors.InsufficientFunds("INSUFFICIENT_FUNDS",
				"wallet balance %d is below the required %d", account.Balance, entry.Amount)
		}
		signed = -entry.Amount
	}

	record := &models.Transaction{
		Reference:    entry.Reference,
		AccountID:    account.ID,
		Amount:       signed,
		Type:         txType,
		Mode:         entry.Mode,
		Description:  entry.Description,
		Status:       entry.Status,
		TournamentID: entry.TournamentID,
		MatchID:      entry.MatchID,
		BalanceAfter: account.Balance + signed,
		CreatedAt:    l.now(),
	}
	if record.Reference == "" {
		record.Reference = uuid.New().String()
	}
	if record.Status == "" {
		record.Status = models.TxCompleted
	}

	if err := l.createTransaction(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := l.updateAccountBalance(ctx, tx, account.ID, record.BalanceAfter, account.Version); err != nil {
		return nil, err
	}

	l.audit.LogLedger(record.Reference, account.ID, signed, string(entry.Mode), string(record.Status))
	return record, nil
}

func (l *WalletLedger) lockAccount(ctx context.Context, tx *sql.Tx, accountID int64) (*models.Account, error) {
	var account models.Account
	err := tx.QueryRowContext(ctx, `
		SELECT id, balance, version, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE`, accountID).Scan(&account.ID, &account.Balance, &account.Version, &account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("ACCOUNT_NOT_FOUND", "account %d not found", accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock account %d: %w", accountID, err)
	}
	return &account, nil
}

func (l *WalletLedger) createTransaction(ctx context.Context, tx *sql.Tx, t *models.Transaction) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (reference, account_id, amount, type, mode, description, status,
			tournament_id, match_id, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		t.Reference, t.AccountID, t.Amount, string(t.Type), string(t.Mode), t.Description, string(t.Status),
		nullInt64(t.TournamentID), nullInt64(t.MatchID), t.BalanceAfter, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (l *WalletLedger) updateAccountBalance(ctx context.Context, tx *sql.Tx, accountID, newBalance int64, version int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`,
		newBalance, l.now(), accountID, version)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return apperrors.Conflict("OPTIMISTIC_LOCK", "optimistic lock failed for account %d", accountID)
	}

	return nil
}

// ReconcileResult compares the cached balance with the sum of the log.
type ReconcileResult struct {
	AccountID     int64 `json:"accountId"`
	CachedBalance int64 `json:"cachedBalance"`
	LedgerBalance int64 `json:"ledgerBalance"`
}

// Reconcile re-derives the balance from the transaction log. A mismatch is
// returned as a Conflict together with both figures.
func (l *WalletLedger) Reconcile(ctx context.Context, accountID int64) (*ReconcileResult, error) {
	res := &ReconcileResult{AccountID: accountID}
	err := l.db.QueryRowContext(ctx, `
		SELECT a.balance, COALESCE((SELECT SUM(t.amount) FROM transactions t WHERE t.account_id = a.id), 0)
		FROM accounts a
		WHERE a.id = $1`, accountID).Scan(&res.CachedBalance, &res.LedgerBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("ACCOUNT_NOT_FOUND", "account %d not found", accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("reconcile account %d: %w", accountID, err)
	}

	if res.CachedBalance != res.LedgerBalance {
		log.Printf("[WALLET] balance drift on account %d: cached=%d ledger=%d", accountID, res.CachedBalance, res.LedgerBalance)
		return res, apperrors.Conflict("BALANCE_MISMATCH",
			"account %d balance %d does not match ledger sum %d", accountID, res.CachedBalance, res.LedgerBalance)
	}
	return res, nil
}

// ListTransactions returns an account's ledger lines, newest first.
func (l *WalletLedger) ListTransactions(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var tournamentID, matchID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Reference, &t.AccountID, &t.Amount, &t.Type, &t.Mode, &t.Description,
			&t.Status, &tournamentID, &matchID, &t.Archived, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.TournamentID = int64Ptr(tournamentID)
		t.MatchID = int64Ptr(matchID)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
