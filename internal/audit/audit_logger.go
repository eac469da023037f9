package audit

import (
	"encoding/json"
	"log"
	"strconv"
	"time"
)

// Event is one line of the ledger audit trail.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Reference string    `json:"reference"`
	AccountID int64     `json:"account_id,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
	Status    string    `json:"status"`
	Details   any       `json:"details,omitempty"`
}

// Logger writes audit events as JSON lines to the standard logger.
type Logger struct {
	now func() time.Time
}

func NewLogger() *Logger {
	return &Logger{now: time.Now}
}

func (a *Logger) LogLedger(reference string, accountID, amount int64, mode, status string) {
	a.log(Event{
		EventType: "LEDGER_" + mode,
		Reference: reference,
		AccountID: accountID,
		Amount:    amount,
		Status:    status,
	})
}

func (a *Logger) LogPayout(matchID int64, accountID, amount int64, description string) {
	a.log(Event{
		EventType: "PRIZE_PAYOUT",
		Reference: "match:" + strconv.FormatInt(matchID, 10),
		AccountID: accountID,
		Amount:    amount,
		Status:    "SUCCESS",
		Details:   map[string]string{"description": description},
	})
}

func (a *Logger) LogError(reference string, accountID int64, err error) {
	a.log(Event{
		EventType: "ERROR",
		Reference: reference,
		AccountID: accountID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) LogOperation(reference string, accountID int64, operation, details string) {
	a.log(Event{
		EventType: operation,
		Reference: reference,
		AccountID: accountID,
		Status:    "SUCCESS",
		Details:   map[string]string{"details": details},
	})
}

func (a *Logger) log(event Event) {
	event.Timestamp = a.now()
	data, _ := json.Marshal(event)
	log.Printf("AUDIT: %s", string(data))
}

