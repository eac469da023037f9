package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/club28/backend/internal/config"
	"github.com/club28/backend/internal/models"
	"github.com/go-co-op/gocron/v2"
	"github.com/go-redis/redis/v8"
)

// ReminderService notifies players ahead of their scheduled matches. Each
// lead-time threshold fires at most once per match, tracked in redis.
type ReminderService struct {
	db       *sql.DB
	redis    *redis.Client
	notifier Notifier
	config   *config.LeagueConfig
	now      func() time.Time
}

func NewReminderService(db *sql.DB, rdb *redis.Client, notifier Notifier, cfg *config.LeagueConfig) *ReminderService {
	return &ReminderService{
		db:       db,
		redis:    rdb,
		notifier: notifier,
		config:   cfg,
		now:      time.Now,
	}
}

func reminderKey(matchID int64, threshold time.Duration) string {
	return fmt.Sprintf("reminder:%d:%s", matchID, threshold)
}

// Start schedules the poll job. A run that overlaps the previous one is
// skipped.
func (s *ReminderService) Start(ctx context.Context) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.config.ReminderPollInterval),
		gocron.NewTask(func() {
			if _, err := s.RunOnce(ctx); err != nil {
				log.Printf("[REMINDER] poll failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule reminder job: %w", err)
	}

	sched.Start()
	log.Printf("[REMINDER] polling every %s for thresholds %v", s.config.ReminderPollInterval, s.config.ReminderThresholds)
	return sched, nil
}

// RunOnce checks every upcoming scheduled match and returns how many
// reminders went out.
func (s *ReminderService) RunOnce(ctx context.Context) (int, error) {
	if len(s.config.ReminderThresholds) == 0 {
		return 0, nil
	}
	now := s.now().UTC()
	horizon := now.Add(s.config.ReminderThresholds[0])

	matches, err := listMatches(ctx, s.db, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE status = $1 AND scheduled_at > $2 AND scheduled_at <= $3
		ORDER BY scheduled_at`, string(models.MatchScheduled), now, horizon)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range matches {
		m := &matches[i]
		ok, err := s.remind(ctx, m, m.ScheduledAt.Sub(now))
		if err != nil {
			log.Printf("[REMINDER] match %d: %v", m.ID, err)
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// remind claims every threshold the match has crossed and sends a single
// reminder naming the tightest one, if any claim was new.
func (s *ReminderService) remind(ctx context.Context, m *models.Match, lead time.Duration) (bool, error) {
	var due time.Duration
	for _, threshold := range s.config.ReminderThresholds {
		if lead > threshold {
			continue
		}
		claimed, err := s.redis.SetNX(ctx, reminderKey(m.ID, threshold), "1", s.config.ReminderKeyTTL).Result()
		if err != nil {
			return false, fmt.Errorf("claim reminder: %w", err)
		}
		if claimed {
			due = threshold
		}
	}
	if due == 0 {
		return false, nil
	}

	message := fmt.Sprintf("%s vs %s (%s) starts within %s.", m.Side1.Label, m.Side2.Label, m.Category, due)
	notifyAll(ctx, s.notifier, append(m.Side1.AccountIDs(), m.Side2.AccountIDs()...), "Match reminder", message)
	log.Printf("[REMINDER] match %d reminded at %s lead", m.ID, due)
	return true, nil
}
