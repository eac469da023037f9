package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/club28/backend/internal/apperrors"
)

const (
	groupAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	groupCapacity = 4

	// MaxDrawSize is the largest draw the fixed alphabet can seed.
	MaxDrawSize = len(groupAlphabet) * groupCapacity
)

// GroupLabels returns the group labels for a draw size, in order.
func GroupLabels(drawSize int) []string {
	n := drawSize / groupCapacity
	if n > len(groupAlphabet) {
		n = len(groupAlphabet)
	}
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		labels = append(labels, string(groupAlphabet[i]))
	}
	return labels
}

// PickGroup chooses the group for the next confirmed entrant. occupancy maps a
// label to the number of confirmed entrants already in it.
//
// The target is total mod groupCount so entrants are dealt round-robin; when
// the target is full the first group in label order with room is used. The
// total counts every entry in occupancy, including labels outside the draw.
func PickGroup(occupancy map[string]int, drawSize int) (string, error) {
	labels := GroupLabels(drawSize)
	if len(labels) == 0 {
		return "", apperrors.InvalidInput("INVALID_DRAW_SIZE", "draw size %d cannot hold a group", drawSize)
	}

	total := 0
	for _, n := range occupancy {
		total += n
	}
	if total >= drawSize {
		return "", apperrors.Capacity("DRAW_FULL", "all %d places are taken", drawSize)
	}

	target := labels[total%len(labels)]
	if occupancy[target] < groupCapacity {
		return target, nil
	}
	for _, label := range labels {
		if occupancy[label] < groupCapacity {
			return label, nil
		}
	}
	return "", apperrors.Capacity("DRAW_FULL", "all groups are full")
}

// GroupAllocator assigns confirmed entrants to groups. Allocation for one
// (tournament, city, category) is serialized with a transaction-scoped
// advisory lock, so the count and the caller's insert are atomic as long as
// the caller inserts in the same transaction.
type GroupAllocator struct{}

func NewGroupAllocator() *GroupAllocator {
	return &GroupAllocator{}
}

func allocationScope(tournamentID int64, city, category string) string {
	return fmt.Sprintf("group:%d:%s:%s", tournamentID, city, category)
}

// Allocate takes the scope lock and returns the group for one more entrant.
func (a *GroupAllocator) Allocate(ctx context.Context, tx *sql.Tx, tournamentID int64, city, category string, drawSize int) (string, error) {
	scope := allocationScope(tournamentID, city, category)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, scope); err != nil {
		return "", fmt.Errorf("lock allocation scope %s: %w", scope, err)
	}

	occupancy, err := a.occupancy(ctx, tx, tournamentID, city, category)
	if err != nil {
		return "", err
	}

	group, err := PickGroup(occupancy, drawSize)
	if err != nil {
		log.Printf("[ALLOCATOR] %s: %v", scope, err)
		return "", err
	}
	return group, nil
}

// occupancy counts confirmed entrants per group; a doubles pair is one entrant.
func (a *GroupAllocator) occupancy(ctx context.Context, q queryer, tournamentID int64, city, category string) (map[string]int, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT group_label, COUNT(DISTINCT COALESCE(pair_id::text, id::text))
		FROM registrations
		WHERE tournament_id = $1 AND city = $2 AND category = $3 AND status = 'Confirmed' AND group_label IS NOT NULL
		GROUP BY group_label`, tournamentID, city, category)
	if err != nil {
		return nil, fmt.Errorf("count group occupancy: %w", err)
	}
	defer rows.Close()

	occupancy := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scan group occupancy: %w", err)
		}
		occupancy[label] = count
	}
	return occupancy, rows.Err()
}
