package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vaultpass/passgen/internal/handler"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	unsetEnv(t, "PASSGEN_LENGTH")
	unsetEnv(t, "PASSGEN_COUNT")

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			args: nil,
			want: Config{Length: 8, Count: 1},
		},
		{
			name: "short flags",
			args: []string{"-l", "12", "-c", "3", "-b"},
			want: Config{Length: 12, Count: 3, Box: true},
		},
		{
			name: "long flags",
			args: []string{"--length=16", "--count", "2", "--no-digit", "--no-symbol", "--no-upper", "--no-lower", "--hash", "-v"},
			want: Config{Length: 16, Count: 2, NoDigit: true, NoSymbol: true, NoUpper: true, NoLower: true, Hash: true, Verbose: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.args)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PASSGEN_LENGTH", "20")
	unsetEnv(t, "PASSGEN_COUNT")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Length != 20 {
		t.Errorf("Length = %d, want 20 from PASSGEN_LENGTH", cfg.Length)
	}

	cfg, err = Load([]string{"-l", "10"})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Length != 10 {
		t.Errorf("Length = %d, want 10 from the flag", cfg.Length)
	}
}

func TestLoadEnvFile(t *testing.T) {
	unsetEnv(t, "PASSGEN_LENGTH")
	unsetEnv(t, "PASSGEN_COUNT")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PASSGEN_COUNT=4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() unexpected error: %v", err)
	}
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Count != 4 {
		t.Errorf("Count = %d, want 4 from the env file", cfg.Count)
	}
}

func TestLoadErrors(t *testing.T) {
	unsetEnv(t, "PASSGEN_LENGTH")
	unsetEnv(t, "PASSGEN_COUNT")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "box with hash", args: []string{"--box", "--hash"}, wantErr: ErrBoxWithHash},
		{name: "verify with hash", args: []string{"--verify", "$argon2id$x", "--hash"}, wantErr: ErrVerifyConflict},
		{name: "verify with box", args: []string{"--verify", "$argon2id$x", "-b"}, wantErr: ErrVerifyConflict},
		{name: "help", args: []string{"--help"}, wantErr: ErrHelp},
		{name: "not a number", args: []string{"-l", "abc"}},
		{name: "unknown flag", args: []string{"--no-emoji"}},
		{name: "positional argument", args: []string{"12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && errors.Is(err, ErrHelp) {
				t.Errorf("Load() error = %v, should not be ErrHelp", err)
			}
		})
	}
}

func TestLoadHelpText(t *testing.T) {
	cfg, err := Load([]string{"-h"})
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("Load() error = %v, want ErrHelp", err)
	}
	for _, flag := range []string{"--length", "--count", "--no-digit", "--no-symbol", "--no-upper", "--no-lower"} {
		if !strings.Contains(cfg.Help, flag) {
			t.Errorf("help text missing %s:\n%s", flag, cfg.Help)
		}
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("LoadEnv() expected error for a missing file")
	}
}

func TestLoadVerify(t *testing.T) {
	cfg, err := Load([]string{"--verify", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5"})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Verify != "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5" {
		t.Errorf("Verify = %q", cfg.Verify)
	}
}

func TestRequest(t *testing.T) {
	cfg := Config{Length: 10, Count: 2, NoSymbol: true, NoLower: true, Hash: true}
	req := cfg.Request()

	if req.Length != 10 || req.Count != 2 || !req.Hash {
		t.Errorf("Request() = %+v", req)
	}
	if !req.Digits || req.Symbols || !req.Uppercase || req.Lowercase {
		t.Errorf("Request() classes = %+v, want digits and uppercase only", req)
	}
}

func TestStyleAndLogLevel(t *testing.T) {
	if got := (Config{}).Style(); got != handler.StylePlain {
		t.Errorf("Style() = %v, want StylePlain", got)
	}
	if got := (Config{Box: true}).Style(); got != handler.StyleBox {
		t.Errorf("Style() = %v, want StyleBox", got)
	}
	if got := (Config{}).LogLevel(); got != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, want info", got)
	}
	if got := (Config{Verbose: true}).LogLevel(); got != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", got)
	}
}
