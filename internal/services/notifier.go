package services

import (
	"context"
	"fmt"
	"log"
)

// Notifier delivers a short message to a player. Delivery is best effort:
// failures are logged by the caller and never undo committed state.
type Notifier interface {
	Notify(ctx context.Context, accountID int64, title, message string) error
}

// Broadcaster pushes live updates to everyone watching a tournament.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message any)
}

// LiveEvent is the payload sent to tournament rooms.
type LiveEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	RoomID  string `json:"room_id,omitempty"`
}

const (
	EventMatchUpdated     = "MATCH_UPDATED"
	EventMatchDeleted     = "MATCH_DELETED"
	EventStandingsChanged = "STANDINGS_CHANGED"
	EventEntrantConfirmed = "ENTRANT_CONFIRMED"
)

func TournamentRoom(tournamentID int64) string {
	return fmt.Sprintf("tournament:%d", tournamentID)
}

// LogNotifier writes notifications to the log. It stands in for the push and
// WhatsApp gateways, which live outside this service.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, accountID int64, title, message string) error {
	log.Printf("[NOTIFY] account=%d title=%q message=%q", accountID, title, message)
	return nil
}

// notifyAll sends the same message to every account and logs failures.
func notifyAll(ctx context.Context, n Notifier, accountIDs []int64, title, message string) {
	if n == nil {
		return
	}
	for _, id := range accountIDs {
		if err := n.Notify(ctx, id, title, message); err != nil {
			log.Printf("[NOTIFY] failed to notify account %d: %v", id, err)
		}
	}
}

func broadcast(b Broadcaster, tournamentID int64, eventType string, payload any) {
	if b == nil {
		return
	}
	room := TournamentRoom(tournamentID)
	b.BroadcastToRoom(room, LiveEvent{Type: eventType, Payload: payload, RoomID: room})
}
