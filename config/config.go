// Package config loads application settings from the environment, with an
// optional .env file for development. Every value has a working default;
// validation happens at load so bad settings fail at startup, not
// mid-frame.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	Display DisplayConfig
	Stars   StarsConfig
	Backend BackendConfig
	Audio   AudioConfig
	Logging LoggingConfig
}

type DisplayConfig struct {
	FPS          int
	PixelDensity int
}

type StarsConfig struct {
	Count       int
	InnerRadius float64
	OuterRadius float64
	Seed        uint64
}

type BackendConfig struct {
	BaseURL   string
	Timeout   time.Duration
	QueryRate float64 // queries per second allowed toward the backend
}

type AudioConfig struct {
	Enabled  bool
	DroneHz  int
	SampleHz int
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
	File       string
}

// Load reads the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Display: DisplayConfig{
			FPS:          getEnvInt("ORRERY_FPS", 30),
			PixelDensity: getEnvInt("ORRERY_PIXEL_DENSITY", 2),
		},
		Stars: StarsConfig{
			Count:       getEnvInt("ORRERY_STAR_COUNT", 1200),
			InnerRadius: getEnvFloat("ORRERY_STAR_INNER", 500),
			OuterRadius: getEnvFloat("ORRERY_STAR_OUTER", 2000),
			Seed:        uint64(getEnvInt("ORRERY_STAR_SEED", 42)),
		},
		Backend: BackendConfig{
			BaseURL:   getEnv("ORRERY_BACKEND_URL", "http://localhost:8000"),
			Timeout:   getEnvDuration("ORRERY_BACKEND_TIMEOUT", 30*time.Second),
			QueryRate: getEnvFloat("ORRERY_BACKEND_QUERY_RATE", 1),
		},
		Audio: AudioConfig{
			Enabled:  getEnvBool("ORRERY_AUDIO", false),
			DroneHz:  getEnvInt("ORRERY_AUDIO_DRONE_HZ", 55),
			SampleHz: getEnvInt("ORRERY_AUDIO_SAMPLE_HZ", 44100),
		},
		Logging: LoggingConfig{
			Level:      getEnv("ORRERY_LOG_LEVEL", "info"),
			JSONFormat: getEnvBool("ORRERY_LOG_JSON", false),
			File:       getEnv("ORRERY_LOG_FILE", "orrery.log"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return fmt.Errorf("config: fps %d out of range [1,240]", c.Display.FPS)
	}
	if c.Display.PixelDensity < 1 {
		return fmt.Errorf("config: pixel density %d must be at least 1", c.Display.PixelDensity)
	}
	if c.Stars.Count <= 0 {
		return fmt.Errorf("config: star count %d must be positive", c.Stars.Count)
	}
	if c.Stars.InnerRadius < 0 {
		return fmt.Errorf("config: star inner radius %v must be non-negative", c.Stars.InnerRadius)
	}
	if c.Stars.OuterRadius <= c.Stars.InnerRadius {
		return fmt.Errorf("config: star outer radius %v must exceed inner radius %v",
			c.Stars.OuterRadius, c.Stars.InnerRadius)
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("config: backend url must not be empty")
	}
	if c.Backend.QueryRate <= 0 {
		return fmt.Errorf("config: backend query rate %v must be positive", c.Backend.QueryRate)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
