package command

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ADVENTURE_"

type Config struct {
	MapPath      string            `json:"map_path"`
	CacheMap     bool              `json:"cache_map"`
	Prompt       string            `json:"prompt"`
	TickInterval string            `json:"tick_interval"`
	Listeners    []ListenerConfig  `json:"listeners"`
	Http         HttpConfig        `json:"http"`
	Leaderboard  LeaderboardConfig `json:"leaderboard"`
	Nats         NatsConfig        `json:"nats"`
}

// envOverrides are the settings that may be replaced from the environment.
type envOverrides struct {
	MapPath           string `env:"MAP_PATH"`
	LeaderboardDriver string `env:"LEADERBOARD_DRIVER"`
	LeaderboardPath   string `env:"LEADERBOARD_PATH"`
	HttpAddr          string `env:"HTTP_ADDR"`
}

// ApplyEnv replaces config values with any ADVENTURE_ environment variables that are set.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	if o.MapPath != "" {
		c.MapPath = o.MapPath
	}
	if o.LeaderboardDriver != "" {
		c.Leaderboard.Driver = o.LeaderboardDriver
	}
	if o.LeaderboardPath != "" {
		c.Leaderboard.Path = o.LeaderboardPath
	}
	if o.HttpAddr != "" {
		c.Http.Addr = o.HttpAddr
	}
	return nil
}

// Validate applies environment overrides and then checks the result.
func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.ApplyEnv())

	if c.MapPath == "" {
		el.Add(fmt.Errorf("map_path is required"))
	} else if _, err := os.Stat(c.MapPath); err != nil {
		el.Add(fmt.Errorf("invalid map_path %q: %w", c.MapPath, err))
	}

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Http.validate())
	el.Add(c.Leaderboard.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}
