package engine

import (
	"fmt"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/dungeon"
	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска сервера генерации
type Config struct {
	Port string `env:"CD_PORT" envDefault:"8080"`

	// Seed - мастер-зерно. От него зависят зерна всех сессий.
	// 0 - выбрать случайно при загрузке.
	Seed int64 `env:"CD_SEED" envDefault:"0"`

	Width     int    `env:"CD_WIDTH" envDefault:"80"`
	Height    int    `env:"CD_HEIGHT" envDefault:"50"`
	Architect string `env:"CD_ARCHITECT" envDefault:"random"`
	Theme     string `env:"CD_THEME"`

	Prefab       bool `env:"CD_PREFAB" envDefault:"true"`
	PrefabStrict bool `env:"CD_PREFAB_STRICT" envDefault:"false"`

	ReplayDir string `env:"CD_REPLAY_DIR" envDefault:"replays"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// NewConfig создает конфиг по умолчанию (случайный сид), не читая окружение
func NewConfig() Config {
	return Config{
		Port:      "8080",
		Seed:      time.Now().UnixNano(),
		Width:     domain.MapWidth,
		Height:    domain.MapHeight,
		Architect: "random",
		Prefab:    true,
		ReplayDir: "replays",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig читает конфиг из переменных окружения и проверяет его
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if _, err := cfg.Options(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options переводит конфиг в параметры генерации по умолчанию
func (c Config) Options() (GenerateOptions, error) {
	kind, err := dungeon.ParseArchitect(c.Architect)
	if err != nil {
		return GenerateOptions{}, fmt.Errorf("config: %w", err)
	}
	theme, err := dungeon.ThemeByName(c.Theme)
	if err != nil {
		return GenerateOptions{}, fmt.Errorf("config: %w", err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return GenerateOptions{}, fmt.Errorf("config: invalid map size %dx%d", c.Width, c.Height)
	}

	return GenerateOptions{
		Level:     domain.FirstLevel,
		Width:     c.Width,
		Height:    c.Height,
		Architect: kind,
		Theme:     theme,
		Prefab:    c.Prefab,
		Strict:    c.PrefabStrict,
	}, nil
}
