package models

import "time"

type RegistrationStatus string

const (
	StatusConfirmed        RegistrationStatus = "Confirmed"
	StatusPartialConfirmed RegistrationStatus = "Partial_Confirmed"
	StatusPendingPayment   RegistrationStatus = "Pending_Payment"
)

type PaymentScope string

const (
	ScopeTeam       PaymentScope = "TEAM"
	ScopeIndividual PaymentScope = "INDIVIDUAL"
)

type Registration struct {
	ID               int64              `json:"id" db:"id"`
	AccountID        int64              `json:"accountId" db:"account_id"`
	PartnerAccountID *int64             `json:"partnerAccountId,omitempty" db:"partner_account_id"`
	TournamentID     int64              `json:"tournamentId" db:"tournament_id"`
	City             string             `json:"city" db:"city"`
	Category         string             `json:"category" db:"category"`
	Group            *string            `json:"group,omitempty" db:"group_label"`
	Status           RegistrationStatus `json:"status" db:"status"`
	PairID           *string            `json:"pairId,omitempty" db:"pair_id"`
	CreatedAt        time.Time          `json:"createdAt" db:"created_at"`
}

// JoinRequest is the body of a tournament entry. The player's phone comes from
// the verified token, never from the body.
type JoinRequest struct {
	Tournament      string       `json:"tournament" validate:"required,max=120"`
	City            string       `json:"city" validate:"required,max=60"`
	Category        string       `json:"category" validate:"required,max=60"`
	PartnerTeamCode string       `json:"partnerTeamCode" validate:"omitempty,max=12"`
	PaymentMode     string       `json:"paymentMode" validate:"required,oneof=WALLET UPI CASH"`
	PaymentScope    PaymentScope `json:"paymentScope" validate:"omitempty,oneof=TEAM INDIVIDUAL"`
}

// AdminRegisterRequest adds a player directly as a confirmed singles entrant.
type AdminRegisterRequest struct {
	Name       string `json:"name" validate:"required,max=80"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	Tournament string `json:"tournament" validate:"required"`
	City       string `json:"city" validate:"required"`
	Category   string `json:"category" validate:"required"`
}

// PlayerEntry is one registration joined with its player and tournament, as
// shown on a profile or a tournament roster.
type PlayerEntry struct {
	RegistrationID  int64              `json:"registrationId" example:"11"`
	TournamentID    int64              `json:"tournamentId"`
	Tournament      string             `json:"tournament" example:"Summer Smash"`
	City            string             `json:"city" example:"Pune"`
	Category        string             `json:"category"`
	Group           *string            `json:"group,omitempty"`
	Status          RegistrationStatus `json:"status"`
	AccountID       int64              `json:"accountId"`
	Name            string             `json:"name"`
	TeamCode        string             `json:"teamCode"`
	Phone           string             `json:"phone"`
	PartnerTeamCode *string            `json:"partnerTeamCode,omitempty"`
}

// PlayerProfile is the caller's account with every registration it holds.
type PlayerProfile struct {
	Account       Account       `json:"account"`
	Registrations []PlayerEntry `json:"registrations"`
}
