package handlers

import (
	"context"
	"net/http"

	mW "github.com/club28/backend/internal/middleware"
	"github.com/club28/backend/internal/models"
	"github.com/club28/backend/internal/services"
	"github.com/stretchr/testify/mock"
)

type mockRegistrar struct{ mock.Mock }

func (m *mockRegistrar) Join(ctx context.Context, phone string, req *models.JoinRequest) (*services.JoinResult, error) {
	args := m.Called(phone, req)
	res, _ := args.Get(0).(*services.JoinResult)
	return res, args.Error(1)
}

func (m *mockRegistrar) ConfirmPartner(ctx context.Context, callerAccountID, registrationID int64, paymentMode string) (*services.JoinResult, error) {
	args := m.Called(callerAccountID, registrationID, paymentMode)
	res, _ := args.Get(0).(*services.JoinResult)
	return res, args.Error(1)
}

func (m *mockRegistrar) AdminRegister(ctx context.Context, req *models.AdminRegisterRequest) (*models.Registration, error) {
	args := m.Called(req)
	res, _ := args.Get(0).(*models.Registration)
	return res, args.Error(1)
}

func (m *mockRegistrar) Profile(ctx context.Context, phone string) (*models.PlayerProfile, error) {
	args := m.Called(phone)
	res, _ := args.Get(0).(*models.PlayerProfile)
	return res, args.Error(1)
}

func (m *mockRegistrar) Players(ctx context.Context) ([]models.Account, error) {
	args := m.Called()
	res, _ := args.Get(0).([]models.Account)
	return res, args.Error(1)
}

func (m *mockRegistrar) TournamentPlayers(ctx context.Context, name, city string) ([]models.PlayerEntry, error) {
	args := m.Called(name, city)
	res, _ := args.Get(0).([]models.PlayerEntry)
	return res, args.Error(1)
}

type mockMatches struct{ mock.Mock }

func (m *mockMatches) SubmitScore(ctx context.Context, matchID int64, score, teamCode string) (*models.Match, error) {
	args := m.Called(matchID, score, teamCode)
	res, _ := args.Get(0).(*models.Match)
	return res, args.Error(1)
}

func (m *mockMatches) Verify(ctx context.Context, matchID int64, action models.VerifyAction, verifierCode string) (*models.Match, error) {
	args := m.Called(matchID, action, verifierCode)
	res, _ := args.Get(0).(*models.Match)
	return res, args.Error(1)
}

func (m *mockMatches) AdminVerify(ctx context.Context, matchID int64, action models.VerifyAction) (*models.Match, error) {
	args := m.Called(matchID, action)
	res, _ := args.Get(0).(*models.Match)
	return res, args.Error(1)
}

func (m *mockMatches) AdminEditMatch(ctx context.Context, matchID int64, req *models.EditMatchRequest) (*models.Match, error) {
	args := m.Called(matchID, req)
	res, _ := args.Get(0).(*models.Match)
	return res, args.Error(1)
}

func (m *mockMatches) AdminCreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	args := m.Called(req)
	res, _ := args.Get(0).(*models.Match)
	return res, args.Error(1)
}

func (m *mockMatches) AdminDeleteMatch(ctx context.Context, matchID int64) error {
	return m.Called(matchID).Error(0)
}

func (m *mockMatches) Get(ctx context.Context, matchID int64) (*models.Match, error) {
	args := m.Called(matchID)
	res, _ := args.Get(0).(*models.Match)
	return res, args.Error(1)
}

func (m *mockMatches) List(ctx context.Context, tournamentID int64, category string) ([]models.Match, error) {
	args := m.Called(tournamentID, category)
	res, _ := args.Get(0).([]models.Match)
	return res, args.Error(1)
}

type mockTournaments struct{ mock.Mock }

func (m *mockTournaments) Create(ctx context.Context, req *models.TournamentRequest) (*models.Tournament, error) {
	args := m.Called(req)
	res, _ := args.Get(0).(*models.Tournament)
	return res, args.Error(1)
}

func (m *mockTournaments) Edit(ctx context.Context, id int64, req *models.TournamentRequest) (*models.Tournament, error) {
	args := m.Called(id, req)
	res, _ := args.Get(0).(*models.Tournament)
	return res, args.Error(1)
}

func (m *mockTournaments) Delete(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

func (m *mockTournaments) Get(ctx context.Context, id int64) (*models.Tournament, error) {
	args := m.Called(id)
	res, _ := args.Get(0).(*models.Tournament)
	return res, args.Error(1)
}

func (m *mockTournaments) List(ctx context.Context, city string) ([]models.Tournament, error) {
	args := m.Called(city)
	res, _ := args.Get(0).([]models.Tournament)
	return res, args.Error(1)
}

type mockStandings struct{ mock.Mock }

func (m *mockStandings) Standings(ctx context.Context, tournamentID int64, city, category string) ([]services.Standing, error) {
	args := m.Called(tournamentID, city, category)
	res, _ := args.Get(0).([]services.Standing)
	return res, args.Error(1)
}

type mockTournamentLedger struct{ mock.Mock }

func (m *mockTournamentLedger) TournamentTransactions(ctx context.Context, tournamentID int64, name string) ([]models.Transaction, error) {
	args := m.Called(tournamentID, name)
	res, _ := args.Get(0).([]models.Transaction)
	return res, args.Error(1)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) ListTransactions(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error) {
	args := m.Called(accountID, limit)
	res, _ := args.Get(0).([]models.Transaction)
	return res, args.Error(1)
}

func (m *mockLedger) Reconcile(ctx context.Context, accountID int64) (*services.ReconcileResult, error) {
	args := m.Called(accountID)
	res, _ := args.Get(0).(*services.ReconcileResult)
	return res, args.Error(1)
}

type mockFeed struct{ mock.Mock }

func (m *mockFeed) NotificationFeed(ctx context.Context, accountID int64) ([]services.FeedItem, error) {
	args := m.Called(accountID)
	res, _ := args.Get(0).([]services.FeedItem)
	return res, args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) CreateOrder(ctx context.Context, accountID, amount int64) (*services.PaymentOrder, error) {
	args := m.Called(accountID, amount)
	res, _ := args.Get(0).(*services.PaymentOrder)
	return res, args.Error(1)
}

func (m *mockPayments) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Transaction, error) {
	args := m.Called(orderID, paymentID, signature)
	res, _ := args.Get(0).(*models.Transaction)
	return res, args.Error(1)
}

func (m *mockPayments) AddWalletFunds(ctx context.Context, teamCode string, amount int64) (*models.Transaction, error) {
	args := m.Called(teamCode, amount)
	res, _ := args.Get(0).(*models.Transaction)
	return res, args.Error(1)
}

type mockWithdrawals struct{ mock.Mock }

func (m *mockWithdrawals) Withdraw(ctx context.Context, accountID int64, req *models.WithdrawalRequest) (*services.WithdrawalReceipt, error) {
	args := m.Called(accountID, req)
	res, _ := args.Get(0).(*services.WithdrawalReceipt)
	return res, args.Error(1)
}

func (m *mockWithdrawals) CompleteWithdrawal(ctx context.Context, reference string) (string, error) {
	args := m.Called(reference)
	return args.String(0), args.Error(1)
}

// fakeAuth trusts the X-Test-* headers instead of a JWT. A missing
// X-Test-Account header means no token; X-Test-Teamless drops the team code.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test-Account") == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}
		claims := &mW.Claims{
			AccountID: 1,
			Phone:     "+919800000001",
			TeamCode:  "AR01",
			Role:      r.Header.Get("X-Test-Role"),
		}
		if r.Header.Get("X-Test-Teamless") != "" {
			claims.TeamCode = ""
		}
		next.ServeHTTP(w, r.WithContext(mW.WithClaims(r.Context(), claims)))
	})
}
