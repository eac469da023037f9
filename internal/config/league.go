package config

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LeagueConfig holds the tunables of the league engine that are not tied to a
// single tournament.
type LeagueConfig struct {
	Currency             string
	ReminderPollInterval time.Duration
	ReminderThresholds   []time.Duration
	ReminderKeyTTL       time.Duration
	OrderTTL             time.Duration
	MaxOrdersPerWindow   int
	OrderRateLimitWindow time.Duration
	GatewaySecret        string
	UPIPayee             string
	UPIPayeeName         string
	SettlementBIC        string
}

// BindEnv maps the league keys onto environment variables.
func BindEnv() {
	viper.BindEnv("league.currency", "LEAGUE_CURRENCY")
	viper.BindEnv("reminder.poll_interval", "REMINDER_POLL_INTERVAL")
	viper.BindEnv("reminder.thresholds", "REMINDER_THRESHOLDS")
	viper.BindEnv("reminder.key_ttl", "REMINDER_KEY_TTL")
	viper.BindEnv("gateway.order_ttl", "GATEWAY_ORDER_TTL")
	viper.BindEnv("gateway.max_orders", "GATEWAY_MAX_ORDERS")
	viper.BindEnv("gateway.rate_limit_window", "GATEWAY_RATE_LIMIT_WINDOW")
	viper.BindEnv("gateway.secret", "GATEWAY_SECRET")
	viper.BindEnv("gateway.upi_payee", "GATEWAY_UPI_PAYEE")
	viper.BindEnv("gateway.upi_payee_name", "GATEWAY_UPI_PAYEE_NAME")
	viper.BindEnv("settlement.bic", "SETTLEMENT_BIC")
}

func LoadLeagueConfig() *LeagueConfig {
	viper.SetDefault("league.currency", "INR")
	viper.SetDefault("reminder.poll_interval", time.Minute)
	viper.SetDefault("reminder.thresholds", "24h,2h,30m")
	viper.SetDefault("reminder.key_ttl", 72*time.Hour)
	viper.SetDefault("gateway.order_ttl", 30*time.Minute)
	viper.SetDefault("gateway.max_orders", 10)
	viper.SetDefault("gateway.rate_limit_window", time.Hour)
	viper.SetDefault("gateway.upi_payee", "club28@upi")
	viper.SetDefault("gateway.upi_payee_name", "Club28 League")
	viper.SetDefault("settlement.bic", "CLUBINBBXXX")

	return &LeagueConfig{
		Currency:             viper.GetString("league.currency"),
		ReminderPollInterval: viper.GetDuration("reminder.poll_interval"),
		ReminderThresholds:   ParseThresholds(viper.GetString("reminder.thresholds")),
		ReminderKeyTTL:       viper.GetDuration("reminder.key_ttl"),
		OrderTTL:             viper.GetDuration("gateway.order_ttl"),
		MaxOrdersPerWindow:   viper.GetInt("gateway.max_orders"),
		OrderRateLimitWindow: viper.GetDuration("gateway.rate_limit_window"),
		GatewaySecret:        viper.GetString("gateway.secret"),
		UPIPayee:             viper.GetString("gateway.upi_payee"),
		UPIPayeeName:         viper.GetString("gateway.upi_payee_name"),
		SettlementBIC:        viper.GetString("settlement.bic"),
	}
}

// ParseThresholds reads a comma separated list of durations, drops invalid or
// non-positive entries and returns them sorted longest first.
func ParseThresholds(raw string) []time.Duration {
	var out []time.Duration
	seen := make(map[time.Duration]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil || d <= 0 {
			log.Printf("[CONFIG] ignoring reminder threshold %q", part)
			continue
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
