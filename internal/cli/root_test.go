package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_ShowsHelpByDefault(t *testing.T) {
	out, err := executeCmd(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "serve") {
		t.Fatalf("expected help to list the serve command, got %q", out)
	}
}

func TestServe_BrokenConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[server\naddr"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := executeCmd(t, "serve", "--config", path)
	if err == nil {
		t.Fatalf("expected error for broken config")
	}
}

func TestServe_InvalidConfigValuesFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.toml")
	if err := os.WriteFile(path, []byte("[list]\nmax_title_length = 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := executeCmd(t, "serve", "--config", path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestServe_BadAddrFailsBeforeServing(t *testing.T) {
	_, err := executeCmd(t, "serve", "--addr", "not-an-addr")
	if err == nil {
		t.Fatalf("expected listen error for malformed addr")
	}
}

func TestServe_AddrEnvFallback(t *testing.T) {
	t.Setenv("TASKLIST_ADDR", "not-an-addr")

	_, err := executeCmd(t, "serve")
	if err == nil {
		t.Fatalf("expected listen error from env-supplied addr")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("TASKLIST_TEST_KEY", "from-env")
	if got, want := envOr("TASKLIST_TEST_KEY", "fallback"), "from-env"; got != want {
		t.Fatalf("envOr = %q, want %q", got, want)
	}
	if got, want := envOr("TASKLIST_TEST_MISSING", "fallback"), "fallback"; got != want {
		t.Fatalf("envOr = %q, want %q", got, want)
	}
}
