package models

type TxType string

const (
	TxCredit TxType = "CREDIT"
	TxDebit  TxType = "DEBIT"
)

type TxMode string

const (
	ModeWalletTopup   TxMode = "WALLET_TOPUP"
	ModeEventFee      TxMode = "EVENT_FEE"
	ModeDirectPayment TxMode = "DIRECT_PAYMENT"
	ModePrize         TxMode = "PRIZE"
	ModeWithdrawal    TxMode = "WITHDRAWAL"
)

func (m TxMode) Valid() bool {
	switch m {
	case ModeWalletTopup, ModeEventFee, ModeDirectPayment, ModePrize, ModeWithdrawal:
		return true
	}
	return false
}

type TxStatus string

const (
	TxPending   TxStatus = "PENDING"
	TxCompleted TxStatus = "COMPLETED"
)

// LedgerEntry is a requested wallet mutation. Amount is always positive; the
// ledger derives the sign from the operation.
type LedgerEntry struct {
	AccountID    int64
	Amount       int64
	Mode         TxMode
	Description  string
	Status       TxStatus // defaults to COMPLETED
	Reference    string   // defaults to a fresh uuid
	TournamentID *int64
	MatchID      *int64
}
