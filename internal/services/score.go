package services

import (
	"strconv"
	"strings"

	"github.com/club28/backend/internal/apperrors"
)

// SetScore is one set, side one's games first.
type SetScore struct {
	Side1 int
	Side2 int
}

// Outcome is the result of a match score.
type Outcome int

const (
	NoWinner Outcome = iota
	Side1Wins
	Side2Wins
)

// ParseScore reads a comma separated list of "a-b" set scores such as
// "6-3, 4-6, 6-2". An empty score is zero sets. Any malformed token is
// rejected.
func ParseScore(score string) ([]SetScore, error) {
	score = strings.TrimSpace(score)
	if score == "" {
		return nil, nil
	}

	tokens := strings.Split(score, ",")
	sets := make([]SetScore, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		a, b, ok := strings.Cut(token, "-")
		if !ok {
			return nil, apperrors.InvalidInput("MALFORMED_SCORE", "set %q is not in a-b form", token)
		}
		side1, err1 := parseGames(a)
		side2, err2 := parseGames(b)
		if err1 != nil || err2 != nil {
			return nil, apperrors.InvalidInput("MALFORMED_SCORE", "set %q must be two non-negative numbers", token)
		}
		sets = append(sets, SetScore{Side1: side1, Side2: side2})
	}
	return sets, nil
}

func parseGames(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// DecideOutcome counts set wins; the side with more sets wins. Tied sets
// count for neither side, and equal set counts (including zero sets) mean
// there is no winner.
func DecideOutcome(sets []SetScore) Outcome {
	var won1, won2 int
	for _, set := range sets {
		switch {
		case set.Side1 > set.Side2:
			won1++
		case set.Side2 > set.Side1:
			won2++
		}
	}
	switch {
	case won1 > won2:
		return Side1Wins
	case won2 > won1:
		return Side2Wins
	default:
		return NoWinner
	}
}

// ScoreOutcome parses a score and decides the result.
func ScoreOutcome(score string) (Outcome, error) {
	sets, err := ParseScore(score)
	if err != nil {
		return NoWinner, err
	}
	return DecideOutcome(sets), nil
}

// Winner returns the label of the winning side, or "" when there is none.
func Winner(score, side1, side2 string) (string, error) {
	outcome, err := ScoreOutcome(score)
	if err != nil {
		return "", err
	}
	switch outcome {
	case Side1Wins:
		return side1, nil
	case Side2Wins:
		return side2, nil
	default:
		return "", nil
	}
}

// GamesFor sums the games a side took across all sets.
func GamesFor(sets []SetScore, side Outcome) int {
	total := 0
	for _, set := range sets {
		if side == Side1Wins {
			total += set.Side1
		} else if side == Side2Wins {
			total += set.Side2
		}
	}
	return total
}
