package services

import (
	"context"
	"database/sql"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/audit"
	"github.com/club28/backend/internal/config"
	"github.com/club28/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
)

// SettlementQueue is the redis list the bank connector drains.
const SettlementQueue = "withdrawal_settlement_queue"

// WithdrawalReceipt is returned when a withdrawal is accepted.
type WithdrawalReceipt struct {
	Transaction *models.Transaction `json:"transaction"`
	Bank        Bank                `json:"bank"`
	MessageID   string              `json:"messageId"`
	Queued      bool                `json:"queued"`
}

// WithdrawalService pays wallet funds out to a bank account. The wallet is
// debited immediately with a PENDING line and a pacs.008 credit transfer is
// queued for settlement.
type WithdrawalService struct {
	db     *sql.DB
	redis  *redis.Client
	ledger *WalletLedger
	banks  *BankDirectory
	config *config.LeagueConfig
	audit  *audit.Logger
	now    func() time.Time
	newID  func() string
}

func NewWithdrawalService(db *sql.DB, rdb *redis.Client, ledger *WalletLedger, banks *BankDirectory, cfg *config.LeagueConfig) *WithdrawalService {
	return &WithdrawalService{
		db:     db,
		redis:  rdb,
		ledger: ledger,
		banks:  banks,
		config: cfg,
		audit:  audit.NewLogger(),
		now:    time.Now,
		newID:  func() string { return strings.ReplaceAll(uuid.New().String(), "-", "") },
	}
}

func (s *WithdrawalService) Withdraw(ctx context.Context, accountID int64, req *models.WithdrawalRequest) (*WithdrawalReceipt, error) {
	bank, ok := s.banks.Lookup(req.BankCode)
	if !ok {
		return nil, apperrors.InvalidInput("UNKNOWN_BANK", "bank %s is not a supported payout bank", req.BankCode)
	}

	record, err := s.ledger.Debit(ctx, models.LedgerEntry{
		AccountID:   accountID,
		Amount:      req.Amount,
		Mode:        models.ModeWithdrawal,
		Description: fmt.Sprintf("Withdrawal to %s %s", bank.Name, maskAccount(req.AccountNumber)),
		Status:      models.TxPending,
		Reference:   "WD-" + s.newID(),
	})
	if err != nil {
		return nil, err
	}

	receipt := &WithdrawalReceipt{Transaction: record, Bank: bank}
	doc := s.CreatePacs008(record, req, bank)
	receipt.MessageID = string(doc.GrpHdr.MsgId)

	payload, err := ConvertToXML(doc)
	if err != nil {
		log.Printf("[WITHDRAWAL] %s: build pacs.008: %v", record.Reference, err)
		return receipt, nil
	}
	if s.redis == nil {
		log.Printf("[WITHDRAWAL] %s: no settlement queue, left pending", record.Reference)
		return receipt, nil
	}
	if err := s.redis.RPush(ctx, SettlementQueue, payload).Err(); err != nil {
		log.Printf("[WITHDRAWAL] %s: queue for settlement: %v", record.Reference, err)
		return receipt, nil
	}

	receipt.Queued = true
	s.audit.LogOperation(record.Reference, accountID, "WITHDRAWAL_QUEUED", receipt.MessageID)
	return receipt, nil
}

// CompleteWithdrawal marks a pending withdrawal as settled and returns the
// pacs.002 status report for it.
func (s *WithdrawalService) CompleteWithdrawal(ctx context.Context, reference string) (string, error) {
	var t models.Transaction
	err := s.db.QueryRowContext(ctx, `
		UPDATE transactions
		SET status = $1
		WHERE reference = $2 AND mode = $3 AND status = $4
		RETURNING id, account_id, amount`,
		string(models.TxCompleted), reference, string(models.ModeWithdrawal), string(models.TxPending),
	).Scan(&t.ID, &t.AccountID, &t.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NotFound("WITHDRAWAL_NOT_FOUND", "no pending withdrawal %s", reference)
	}
	if err != nil {
		return "", fmt.Errorf("complete withdrawal: %w", err)
	}
	t.Reference = reference

	report, err := ConvertToXML(s.CreatePacs002(&t, "ACSC"))
	if err != nil {
		return "", err
	}
	s.audit.LogOperation(reference, t.AccountID, "WITHDRAWAL_COMPLETED", "ACSC")
	return report, nil
}

// CreatePacs008 builds the FIToFICustomerCreditTransfer for a withdrawal.
func (s *WithdrawalService) CreatePacs008(t *models.Transaction, req *models.WithdrawalRequest, bank Bank) *pacs_v08.FIToFICustomerCreditTransferV08 {
	msgID := s.newID()
	created := s.now()
	settlementDate := created
	amount := pacs_v08.ActiveCurrencyAndAmount{
		Ccy:   common.ActiveCurrencyCode(s.config.Currency),
		Value: float64(req.Amount),
	}
	instrID := common.Max35Text(fmt.Sprintf("%d", t.ID))
	txID := common.Max35Text(t.Reference)
	debtorBIC := common.BICFIDec2014Identifier(s.config.SettlementBIC)
	creditorBIC := common.BICFIDec2014Identifier(bank.BIC)
	debtorName := common.Max140Text(s.config.UPIPayeeName)
	creditorName := common.Max140Text(req.AccountName)

	return &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:             common.Max35Text(msgID),
			CreDtTm:           common.ISODateTime(created),
			NbOfTxs:           "1",
			TtlIntrBkSttlmAmt: &amount,
			IntrBkSttlmDt:     (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				SttlmMtd: "CLRG",
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    &instrID,
					EndToEndId: common.Max35Text(t.Reference),
					TxId:       &txID,
				},
				IntrBkSttlmAmt: amount,
				IntrBkSttlmDt:  (*common.ISODate)(&settlementDate),
				ChrgBr:         "SLEV",
				DbtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{BICFI: &debtorBIC},
				},
				Dbtr: pacs_v08.PartyIdentification135{Nm: &debtorName},
				CdtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
						BICFI: &creditorBIC,
						ClrSysMmbId: &pacs_v08.ClearingSystemMemberIdentification2{
							MmbId: common.Max35Text(req.BankCode),
						},
					},
				},
				Cdtr: pacs_v08.PartyIdentification135{Nm: &creditorName},
			},
		},
	}
}

// CreatePacs002 builds the payment status report for a withdrawal.
func (s *WithdrawalService) CreatePacs002(t *models.Transaction, status string) *pacs_v08.FIToFIPaymentStatusReportV08 {
	instrID := common.Max35Text(fmt.Sprintf("%d", t.ID))
	ref := common.Max35Text(t.Reference)
	txStatus := pacs_v08.ExternalPaymentTransactionStatus1Code(status)

	return &pacs_v08.FIToFIPaymentStatusReportV08{
		GrpHdr: pacs_v08.GroupHeader53{
			MsgId:   common.Max35Text(s.newID()),
			CreDtTm: common.ISODateTime(s.now()),
		},
		TxInfAndSts: []pacs_v08.PaymentTransaction80{
			{
				OrgnlInstrId:    &instrID,
				OrgnlEndToEndId: &ref,
				OrgnlTxId:       &ref,
				TxSts:           &txStatus,
			},
		},
	}
}

// ConvertToXML renders an ISO 20022 document with the XML header.
func ConvertToXML(doc any) (string, error) {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(data), nil
}

func maskAccount(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "XXXX" + number[len(number)-4:]
}
