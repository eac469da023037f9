package models

import "time"

// Account is a player identity with a wallet. Balance is in whole rupees and is
// only mutated by the wallet ledger.
type Account struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Phone     string    `json:"phone" db:"phone" example:"+919812345678"`
	Name      string    `json:"name" db:"name" example:"Arjun Rao"`
	TeamCode  string    `json:"teamCode" db:"team_code" example:"AR78"`
	Balance   int64     `json:"balance" db:"balance"`
	Version   int       `json:"-" db:"version"` // for optimistic locking
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
