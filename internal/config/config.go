package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramToken string
	DatabaseURL   string

	// Env switches logging and the digest cadence: "production" runs the
	// digest once a day, anything else every minute.
	Env string

	AdminTGIDs map[int64]bool

	AcceptingSubmissions bool
	BroadcastChatID      int64
	DigestAt             string // "HH:MM" in the reporting timezone

	HTTPAddr string
}

func FromEnv() (Config, error) {
	var c Config
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	c.Env = strings.TrimSpace(os.Getenv("ENV"))
	if c.Env == "" {
		c.Env = "development"
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.DigestAt = strings.TrimSpace(os.Getenv("DIGEST_AT"))
	if c.DigestAt == "" {
		c.DigestAt = "21:00"
	}
	if _, _, err := ParseClock(c.DigestAt); err != nil {
		return c, fmt.Errorf("DIGEST_AT: %w", err)
	}

	c.AcceptingSubmissions = parseBool(os.Getenv("ACCEPTING_SUBMISSIONS"), true)

	if raw := strings.TrimSpace(os.Getenv("BROADCAST_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, fmt.Errorf("BROADCAST_CHAT_ID: %w", err)
		}
		c.BroadcastChatID = id
	}

	admins, err := parseAdminIDs(os.Getenv("ADMIN_TG_IDS"))
	if err != nil {
		return c, fmt.Errorf("ADMIN_TG_IDS: %w", err)
	}
	c.AdminTGIDs = admins

	if c.TelegramToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
	}
	if c.DatabaseURL == "" {
		return c, fmt.Errorf("DATABASE_URL is empty")
	}

	return c, nil
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour, minute, nil
}

// parseAdminIDs reads a JSON list of Telegram ids, e.g. [123, 456].
func parseAdminIDs(raw string) (map[int64]bool, error) {
	m := map[int64]bool{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	for _, id := range ids {
		m[id] = true
	}
	return m, nil
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
