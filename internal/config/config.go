package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	List   ListConfig   `toml:"list"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type ListConfig struct {
	PageTitle      string   `toml:"page_title"`
	MaxTitleLength int      `toml:"max_title_length"`
	Seed           []string `toml:"seed"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		List: ListConfig{
			PageTitle:      "Tasklist",
			MaxTitleLength: 200,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	if strings.TrimSpace(c.List.PageTitle) == "" {
		return errors.New("list.page_title is required")
	}
	if c.List.MaxTitleLength < 1 {
		return fmt.Errorf("list.max_title_length must be >= 1, got %d", c.List.MaxTitleLength)
	}
	return nil
}
