package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/funvibe/uplc/internal/config"
)

func TestParse(t *testing.T) {
	data := []byte(`
backend: tree-walk
trace: true
log:
  format: json
  level: debug
`)
	cfg, err := config.Parse(data, "uplc.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Backend != "tree-walk" {
		t.Errorf("backend=%q, want tree-walk", cfg.Backend)
	}
	if !cfg.Trace {
		t.Error("trace not set")
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "debug" {
		t.Errorf("log=%+v, want json/debug", cfg.Log)
	}
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("{}"), "uplc.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := config.Default()
	if cfg.Backend != want.Backend || cfg.Log != want.Log {
		t.Errorf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad format", "log:\n  format: xml", `unknown log format "xml"`},
		{"bad level", "log:\n  level: loud", `unknown log level "loud"`},
		{"bad yaml", "backend: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.data), "uplc.yaml")
			if err == nil {
				t.Fatal("Parse succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "uplc.yaml")
	if err := os.WriteFile(cfgPath, []byte("backend: jit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := config.Find(nested)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found != cfgPath {
		t.Errorf("found %q, want %q", found, cfgPath)
	}
}

func TestFindMissesCleanly(t *testing.T) {
	found, err := config.Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found != "" {
		t.Errorf("found %q in an empty tree", found)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "uplc.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("log:\n  format: logfmt\n  level: warn"), "uplc.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	lc, err := cfg.LoggerConfig()
	if err != nil {
		t.Fatalf("LoggerConfig failed: %v", err)
	}
	if lc.Format != "logfmt" || lc.Level != zapcore.WarnLevel {
		t.Errorf("got %+v, want logfmt/warn", lc)
	}
}
