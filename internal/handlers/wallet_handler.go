package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/club28/backend/internal/models"
	"github.com/club28/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type Ledger interface {
	ListTransactions(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error)
	Reconcile(ctx context.Context, accountID int64) (*services.ReconcileResult, error)
}

type FeedSource interface {
	NotificationFeed(ctx context.Context, accountID int64) ([]services.FeedItem, error)
}

type Payments interface {
	CreateOrder(ctx context.Context, accountID, amount int64) (*services.PaymentOrder, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Transaction, error)
	AddWalletFunds(ctx context.Context, teamCode string, amount int64) (*models.Transaction, error)
}

type Withdrawals interface {
	Withdraw(ctx context.Context, accountID int64, req *models.WithdrawalRequest) (*services.WithdrawalReceipt, error)
	CompleteWithdrawal(ctx context.Context, reference string) (string, error)
}

type WalletHandler struct {
	ledger      Ledger
	feed        FeedSource
	payments    Payments
	withdrawals Withdrawals
	banks       *services.BankDirectory
	validator   *services.ValidationHelper
}

func NewWalletHandler(ledger Ledger, feed FeedSource, payments Payments, withdrawals Withdrawals, banks *services.BankDirectory) *WalletHandler {
	return &WalletHandler{
		ledger:      ledger,
		feed:        feed,
		payments:    payments,
		withdrawals: withdrawals,
		banks:       banks,
		validator:   services.NewValidationHelper(),
	}
}

type CreateOrderRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0,max=100000"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required,max=35"`
	Signature string `json:"signature" validate:"required,hexadecimal"`
}

type AddFundsRequest struct {
	TeamCode string `json:"teamCode" validate:"required,max=12"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

// Transactions returns the caller's ledger lines
// @Summary Wallet transactions
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max lines (default 100)"
// @Success 200 {array} models.Transaction
// @Router /wallet/transactions [get]
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	txs, err := h.ledger.ListTransactions(r.Context(), claims.AccountID, limit)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, txs)
}

// Reconcile checks the cached balance against the ledger
// @Summary Reconcile wallet
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ReconcileResult
// @Failure 409 {object} services.ErrorResponse
// @Router /wallet/reconcile [get]
func (h *WalletHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}
	res, err := h.ledger.Reconcile(r.Context(), claims.AccountID)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, res)
}

// Feed returns the caller's notification feed
// @Summary Notification feed
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.FeedItem
// @Router /wallet/feed [get]
func (h *WalletHandler) Feed(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}
	items, err := h.feed.NotificationFeed(r.Context(), claims.AccountID)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, items)
}

// CreateOrder opens a UPI top-up order
// @Summary Create top-up order
// @Description Returns the UPI pay link and a base64 PNG QR code
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Amount in rupees"
// @Success 201 {object} services.PaymentOrder
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /wallet/orders [post]
func (h *WalletHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	order, err := h.payments.CreateOrder(r.Context(), claims.AccountID, req.Amount)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, order)
}

// VerifyPayment is the gateway callback
// @Summary Verify payment
// @Description Checks the gateway signature and credits the order amount once
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body VerifyPaymentRequest true "Gateway callback"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /payments/verify [post]
func (h *WalletHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	record, err := h.payments.VerifyPayment(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, record)
}

// AddFunds credits a player's wallet
// @Summary Add wallet funds
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFundsRequest true "Team code and amount"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/wallet/funds [post]
func (h *WalletHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	var req AddFundsRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	record, err := h.payments.AddWalletFunds(r.Context(), req.TeamCode, req.Amount)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, record)
}

// Withdraw pays wallet funds out to a bank account
// @Summary Withdraw
// @Description Debits the wallet (PENDING) and queues an ISO 20022 pacs.008 transfer
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WithdrawalRequest true "Bank details"
// @Success 202 {object} services.WithdrawalReceipt
// @Failure 400 {object} services.ErrorResponse
// @Failure 402 {object} services.ErrorResponse
// @Router /wallet/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req models.WithdrawalRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	receipt, err := h.withdrawals.Withdraw(r.Context(), claims.AccountID, &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusAccepted, receipt)
}

// CompleteWithdrawal marks a settled withdrawal
// @Summary Complete withdrawal
// @Description Returns the pacs.002 status report
// @Tags Admin
// @Produce xml
// @Security BearerAuth
// @Param reference path string true "Withdrawal reference"
// @Success 200 {string} string
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/withdrawals/{reference}/complete [post]
func (h *WalletHandler) CompleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	report, err := h.withdrawals.CompleteWithdrawal(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}

// Banks lists payout banks
// @Summary Payout banks
// @Tags Wallet
// @Produce json
// @Success 200 {array} services.Bank
// @Router /banks [get]
func (h *WalletHandler) Banks(w http.ResponseWriter, r *http.Request) {
	services.WriteJSON(w, http.StatusOK, h.banks.Banks())
}
