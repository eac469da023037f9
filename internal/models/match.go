package models

import "time"

type MatchStatus string

const (
	MatchScheduled           MatchStatus = "Scheduled"
	MatchPendingVerification MatchStatus = "Pending Verification"
	MatchOfficial            MatchStatus = "Official"
	MatchDisputed            MatchStatus = "Disputed"
)

type Stage string

const (
	StageGroup        Stage = "Group"
	StageRoundOf16    Stage = "Round of 16"
	StageQuarterFinal Stage = "Quarter Final"
	StageSemiFinal    Stage = "Semi Final"
	StageFinal        Stage = "Final"
	StageThirdPlace   Stage = "3rd Place"
)

// Side is one participant of a match: a singles player or a doubles pair.
// Label is display text only; payouts and standings use the ids.
type Side struct {
	Label       string  `json:"label"`
	PrimaryID   int64   `json:"primaryId"`
	PrimaryCode string  `json:"primaryCode"`
	PartnerID   *int64  `json:"partnerId,omitempty"`
	PartnerCode *string `json:"partnerCode,omitempty"`
}

// AccountIDs returns the accounts on this side, primary first.
func (s Side) AccountIDs() []int64 {
	ids := []int64{s.PrimaryID}
	if s.PartnerID != nil && *s.PartnerID != s.PrimaryID {
		ids = append(ids, *s.PartnerID)
	}
	return ids
}

func (s Side) HasTeamCode(code string) bool {
	if code == "" {
		return false
	}
	return s.PrimaryCode == code || (s.PartnerCode != nil && *s.PartnerCode == code)
}

func (s Side) HasAccount(id int64) bool {
	return s.PrimaryID == id || (s.PartnerID != nil && *s.PartnerID == id)
}

type Match struct {
	ID            int64       `json:"id" db:"id"`
	TournamentID  int64       `json:"tournamentId" db:"tournament_id"`
	City          string      `json:"city" db:"city"`
	Category      string      `json:"category" db:"category"`
	Group         string      `json:"group" db:"group_label"`
	Stage         Stage       `json:"stage" db:"stage"`
	Side1         Side        `json:"side1"`
	Side2         Side        `json:"side2"`
	Score         string      `json:"score" db:"score"`
	Status        MatchStatus `json:"status" db:"status"`
	SubmittedBy   string      `json:"submittedBy,omitempty" db:"submitted_by"`
	ScheduledAt   *time.Time  `json:"scheduledAt,omitempty" db:"scheduled_at"`
	PayoutApplied bool        `json:"payoutApplied" db:"payout_applied"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

type VerifyAction string

const (
	VerifyApprove VerifyAction = "APPROVE"
	VerifyReject  VerifyAction = "REJECT"
)

type CreateMatchRequest struct {
	TournamentID int64      `json:"tournamentId" validate:"required,gt=0"`
	Category     string     `json:"category" validate:"required"`
	Group        string     `json:"group" validate:"omitempty,max=2"`
	Stage        Stage      `json:"stage" validate:"required,oneof=Group 'Round of 16' 'Quarter Final' 'Semi Final' Final '3rd Place'"`
	Side1        string     `json:"side1" validate:"required"`
	Side2        string     `json:"side2" validate:"required"`
	ScheduledAt  *time.Time `json:"scheduledAt"`
}

// EditMatchRequest holds optional admin overrides; nil fields are left unchanged.
type EditMatchRequest struct {
	Side1       *string    `json:"side1"`
	Side2       *string    `json:"side2"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Score       *string    `json:"score"`
}
