package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Server.Addr, "127.0.0.1:8080"; got != want {
		t.Fatalf("expected default addr %q, got %q", want, got)
	}
	if got, want := cfg.List.MaxTitleLength, 200; got != want {
		t.Fatalf("expected default max title length %d, got %d", want, got)
	}
	if len(cfg.List.Seed) != 0 {
		t.Fatalf("expected no default seed, got %v", cfg.List.Seed)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("", Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.List.PageTitle, "Tasklist"; got != want {
		t.Fatalf("expected default page title %q, got %q", want, got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.toml")
	body := strings.TrimSpace(`
[server]
addr = ":9191"

[list]
page_title = "Chores"
max_title_length = 80
seed = ["Buy milk", "Walk dog"]
`)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Server.Addr, ":9191"; got != want {
		t.Fatalf("expected addr %q, got %q", want, got)
	}
	if got, want := cfg.List.PageTitle, "Chores"; got != want {
		t.Fatalf("expected page title %q, got %q", want, got)
	}
	if got, want := cfg.List.MaxTitleLength, 80; got != want {
		t.Fatalf("expected max title length %d, got %d", want, got)
	}
	if got, want := len(cfg.List.Seed), 2; got != want {
		t.Fatalf("expected %d seed titles, got %d", want, got)
	}
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":7070\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Server.Addr, ":7070"; got != want {
		t.Fatalf("expected addr %q, got %q", want, got)
	}
	if got, want := cfg.List.MaxTitleLength, 200; got != want {
		t.Fatalf("expected default max title length %d, got %d", want, got)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "  " }},
		{"empty page title", func(c *Config) { c.List.PageTitle = "" }},
		{"zero max title length", func(c *Config) { c.List.MaxTitleLength = 0 }},
		{"negative max title length", func(c *Config) { c.List.MaxTitleLength = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.toml")
	if err := os.WriteFile(path, []byte("[server\naddr=:::"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, Default()); err == nil {
		t.Fatalf("expected decode error")
	}
}
