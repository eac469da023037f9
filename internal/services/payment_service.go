package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/club28/backend/internal/apperrors"
	"github.com/club28/backend/internal/config"
	"github.com/club28/backend/internal/database"
	"github.com/club28/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// PaymentOrder is a pending wallet top-up waiting for the gateway callback.
type PaymentOrder struct {
	OrderID   string    `json:"orderId"`
	AccountID int64     `json:"accountId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	PayLink   string    `json:"payLink"`
	ExpiresAt time.Time `json:"expiresAt"`
	QRImage   string    `json:"qrImage,omitempty"`
}

// PaymentService creates top-up orders and credits the wallet once the
// gateway confirms them. Orders and rate limits live in redis.
type PaymentService struct {
	redis    *redis.Client
	ledger   *WalletLedger
	accounts *AccountService
	config   *config.LeagueConfig
	now      func() time.Time
	newID    func() string
}

func NewPaymentService(rdb *redis.Client, ledger *WalletLedger, accounts *AccountService, cfg *config.LeagueConfig) *PaymentService {
	return &PaymentService{
		redis:    rdb,
		ledger:   ledger,
		accounts: accounts,
		config:   cfg,
		now:      time.Now,
		newID:    func() string { return "order_" + uuid.New().String() },
	}
}

func orderKey(orderID string) string {
	return "order:" + orderID
}

func orderRateKey(accountID int64) string {
	return fmt.Sprintf("order:ratelimit:%d", accountID)
}

// CreateOrder opens a top-up order and returns it with a UPI QR code.
func (s *PaymentService) CreateOrder(ctx context.Context, accountID, amount int64) (*PaymentOrder, error) {
	if amount <= 0 {
		return nil, apperrors.InvalidInput("INVALID_AMOUNT", "amount must be positive, got %d", amount)
	}
	if s.redis == nil {
		return nil, apperrors.New(apperrors.KindInternal, "PAYMENTS_UNAVAILABLE", "payments are unavailable")
	}

	if err := s.checkRateLimit(ctx, accountID); err != nil {
		log.Printf("[PAYMENT] create order for account %d: %v", accountID, err)
		return nil, err
	}

	order := &PaymentOrder{
		OrderID:   s.newID(),
		AccountID: accountID,
		Amount:    amount,
		Currency:  s.config.Currency,
		ExpiresAt: s.now().Add(s.config.OrderTTL).UTC(),
	}
	order.PayLink = s.payLink(order)

	data, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, orderKey(order.OrderID), data, s.config.OrderTTL).Err(); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	s.incrementRateLimit(ctx, accountID)

	qr, err := qrcode.New(order.PayLink, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return nil, err
	}
	order.QRImage = base64.StdEncoding.EncodeToString(buf.Bytes())

	log.Printf("[PAYMENT] order %s opened for account %d amount %d", order.OrderID, accountID, amount)
	return order, nil
}

func (s *PaymentService) payLink(o *PaymentOrder) string {
	v := url.Values{}
	v.Set("pa", s.config.UPIPayee)
	v.Set("pn", s.config.UPIPayeeName)
	v.Set("am", strconv.FormatInt(o.Amount, 10))
	v.Set("cu", o.Currency)
	v.Set("tr", o.OrderID)
	return "upi://pay?" + v.Encode()
}

// SignPayment is the gateway signature over an order and payment id.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayment checks the gateway signature and credits the order amount.
// The payment id is the ledger reference, so a replayed callback is rejected
// as a duplicate.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Transaction, error) {
	if s.redis == nil {
		return nil, apperrors.New(apperrors.KindInternal, "PAYMENTS_UNAVAILABLE", "payments are unavailable")
	}

	expected, _ := hex.DecodeString(SignPayment(s.config.GatewaySecret, orderID, paymentID))
	given, err := hex.DecodeString(signature)
	if err != nil || !hmac.Equal(expected, given) {
		log.Printf("[PAYMENT] signature mismatch for order %s", orderID)
		return nil, apperrors.InvalidInput("INVALID_SIGNATURE", "payment signature does not match")
	}

	data, err := s.redis.Get(ctx, orderKey(orderID)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NotFound("ORDER_NOT_FOUND", "order %s is unknown or expired", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	var order PaymentOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}

	record, err := s.ledger.Credit(ctx, models.LedgerEntry{
		AccountID:   order.AccountID,
		Amount:      order.Amount,
		Mode:        models.ModeWalletTopup,
		Description: fmt.Sprintf("Wallet top-up via UPI (%s)", order.OrderID),
		Reference:   paymentID,
	})
	if database.IsUniqueViolation(err) {
		return nil, apperrors.Duplicate("PAYMENT_ALREADY_VERIFIED", "payment %s was already credited", paymentID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.redis.Del(ctx, orderKey(orderID)).Err(); err != nil {
		log.Printf("[PAYMENT] could not clear order %s: %v", orderID, err)
	}
	log.Printf("[PAYMENT] order %s credited %d to account %d", orderID, order.Amount, order.AccountID)
	return record, nil
}

// AddWalletFunds credits a player's wallet directly, looked up by team code.
func (s *PaymentService) AddWalletFunds(ctx context.Context, teamCode string, amount int64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.InvalidInput("INVALID_AMOUNT", "amount must be positive, got %d", amount)
	}
	account, err := s.accounts.GetByTeamCode(ctx, teamCode)
	if err != nil {
		return nil, err
	}
	return s.ledger.Credit(ctx, models.LedgerEntry{
		AccountID:   account.ID,
		Amount:      amount,
		Mode:        models.ModeWalletTopup,
		Description: "Wallet top-up by admin",
	})
}

func (s *PaymentService) checkRateLimit(ctx context.Context, accountID int64) error {
	count, err := s.redis.Get(ctx, orderRateKey(accountID)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("read rate limit: %w", err)
	}
	if count >= s.config.MaxOrdersPerWindow {
		return apperrors.Conflict("RATE_LIMITED", "too many payment orders; try again later")
	}
	return nil
}

func (s *PaymentService) incrementRateLimit(ctx context.Context, accountID int64) {
	key := orderRateKey(accountID)
	pipe := s.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.config.OrderRateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[PAYMENT] rate limit update for account %d failed: %v", accountID, err)
	}
}
