package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	FrameRate          int // frames per second pushed to WebSocket clients
	ComboTimeout       time.Duration
	BulletTimeDuration time.Duration
	ComboMilestone     int
	SessionTTL         time.Duration
	ArenaHalfExtent    float64
}

func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		FrameRate:          getEnvInt("FRAME_RATE", 60),
		ComboTimeout:       time.Duration(getEnvInt("COMBO_TIMEOUT_MS", 2000)) * time.Millisecond,
		BulletTimeDuration: time.Duration(getEnvInt("BULLET_TIME_MS", 2000)) * time.Millisecond,
		ComboMilestone:     getEnvInt("COMBO_MILESTONE", 10),
		SessionTTL:         time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		ArenaHalfExtent:    getEnvFloat("ARENA_HALF_EXTENT", 10),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
