package models

import (
	"time"
)

// Transaction is one immutable ledger line. Amount is signed: credits are
// positive and debits negative, so the balance is the sum of all lines.
type Transaction struct {
	ID           int64     `json:"id" db:"id"`
	Reference    string    `json:"reference" db:"reference"`
	AccountID    int64     `json:"accountId" db:"account_id"`
	Amount       int64     `json:"amount" db:"amount"`
	Type         TxType    `json:"type" db:"type"`
	Mode         TxMode    `json:"mode" db:"mode"`
	Description  string    `json:"description" db:"description"`
	Status       TxStatus  `json:"status" db:"status"`
	TournamentID *int64    `json:"tournamentId,omitempty" db:"tournament_id"`
	MatchID      *int64    `json:"matchId,omitempty" db:"match_id"`
	Archived     bool      `json:"archived" db:"archived"`
	BalanceAfter int64     `json:"balanceAfter" db:"balance_after"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// WithdrawalRequest is a payout from the wallet to a bank account.
type WithdrawalRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0,max=1000000"`
	BankCode      string `json:"bankCode" validate:"required,max=11"`
	AccountNumber string `json:"accountNumber" validate:"required,min=6,max=18,numeric"`
	AccountName   string `json:"accountName" validate:"required,max=140"`
}
