package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/sixdegrees.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	GraphServiceURL   string        `env:"GRAPH_SERVICE_URL,notEmpty"`
	GraphServiceToken string        `env:"GRAPH_SERVICE_TOKEN,notEmpty"`
	GraphTimeout      time.Duration `env:"GRAPH_TIMEOUT" envDefault:"10s"`
	GraphCacheTTL     time.Duration `env:"GRAPH_CACHE_TTL" envDefault:"5m"`

	// RedisURL enables caching of graph-service responses when set.
	RedisURL string `env:"REDIS_URL"`

	// DenylistPath points at a YAML file of names excluded from every game.
	DenylistPath string `env:"DENYLIST_PATH"`

	Game Game `envPrefix:"GAME_"`
}

// Game holds the per-session tuning knobs. Every new session copies these,
// so changing them never affects games already in flight.
type Game struct {
	Variant string `env:"VARIANT" envDefault:"any_seed_kill_answer"`

	// DistanceOfWrong1/2 set how many hops away from the seed the two wrong
	// answers are picked. Too close and they are hard to tell apart from the
	// right answer; too far and they are obviously wrong.
	DistanceOfWrong1 int `env:"DISTANCE_OF_WRONG1" envDefault:"2"`
	DistanceOfWrong2 int `env:"DISTANCE_OF_WRONG2" envDefault:"3"`

	// MaxCandidates caps how many names are accepted into a new session's
	// candidate pool. -1 means unlimited.
	MaxCandidates int `env:"MAX_CANDIDATES" envDefault:"-1"`

	// FirstFewMax is the window size for top-of-pool sampling.
	FirstFewMax int `env:"FIRST_FEW_MAX" envDefault:"5"`

	// MaxScoreResetAfter is how long an unbeaten global high score stands
	// before a lower score may replace it.
	MaxScoreResetAfter time.Duration `env:"MAX_SCORE_RESET_AFTER" envDefault:"24h"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Game.DistanceOfWrong1 < 1 {
		return nil, fmt.Errorf("GAME_DISTANCE_OF_WRONG1 must be >= 1, got %d", cfg.Game.DistanceOfWrong1)
	}
	if cfg.Game.DistanceOfWrong2 < 1 {
		return nil, fmt.Errorf("GAME_DISTANCE_OF_WRONG2 must be >= 1, got %d", cfg.Game.DistanceOfWrong2)
	}
	if cfg.Game.FirstFewMax < 1 {
		return nil, fmt.Errorf("GAME_FIRST_FEW_MAX must be >= 1, got %d", cfg.Game.FirstFewMax)
	}

	return &cfg, nil
}
