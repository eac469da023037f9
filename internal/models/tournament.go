package models

import (
	"time"
)

type Format string

const (
	FormatSingles Format = "Singles"
	FormatDoubles Format = "Doubles"
)

type TournamentStatus string

const (
	TournamentOpen      TournamentStatus = "Open"
	TournamentClosed    TournamentStatus = "Closed"
	TournamentCompleted TournamentStatus = "Completed"
)

// Category is one priced entry class of a tournament, e.g. "Men's Open".
// All amounts are whole rupees.
type Category struct {
	Name          string `json:"name" validate:"required,max=60"`
	EntryFee      int64  `json:"entryFee" validate:"gte=0"`
	PerMatchBonus int64  `json:"perMatchBonus" validate:"gte=0"`
	FirstPrize    int64  `json:"firstPrize" validate:"gte=0"`
	SecondPrize   int64  `json:"secondPrize" validate:"gte=0"`
	ThirdPrize    int64  `json:"thirdPrize" validate:"gte=0"`
}

type Tournament struct {
	ID         int64            `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	City       string           `json:"city" db:"city"`
	Sport      string           `json:"sport" db:"sport"`
	Format     Format           `json:"format" db:"format"`
	DrawSize   int              `json:"drawSize" db:"draw_size"`
	Status     TournamentStatus `json:"status" db:"status"`
	Categories []Category       `json:"categories"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
}

// Category looks up a pricing tier by name.
func (t *Tournament) Category(name string) (Category, bool) {
	for _, c := range t.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

type TournamentRequest struct {
	Name       string     `json:"name" validate:"required,max=120"`
	City       string     `json:"city" validate:"required,max=60"`
	Sport      string     `json:"sport" validate:"required,max=40"`
	Format     Format     `json:"format" validate:"required,oneof=Singles Doubles"`
	DrawSize   int        `json:"drawSize" validate:"required,gt=0"`
	Status     string     `json:"status" validate:"omitempty,oneof=Open Closed Completed"`
	Categories []Category `json:"categories" validate:"required,min=1,dive"`
}
