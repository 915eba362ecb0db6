package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xmazu/dotload/dotenv"
)

func TestWritePairs(t *testing.T) {
	pairs := []dotenv.Pair{{Key: "A", Value: "B"}, {Key: "C", Value: "D"}}

	t.Run("text", func(t *testing.T) {
		var sb strings.Builder
		if err := writePairs(&sb, pairs, "text"); err != nil {
			t.Fatalf("writePairs() error = %v", err)
		}
		out := sb.String()
		for _, want := range []string{"A", "=B", "C", "=D"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		var sb strings.Builder
		if err := writePairs(&sb, pairs, "json"); err != nil {
			t.Fatalf("writePairs() error = %v", err)
		}
		out := sb.String()
		if !strings.Contains(out, `"key": "A"`) || !strings.Contains(out, `"value": "B"`) {
			t.Errorf("json output missing pair:\n%s", out)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var sb strings.Builder
		if err := writePairs(&sb, pairs, "yaml"); err != nil {
			t.Fatalf("writePairs() error = %v", err)
		}
		out := sb.String()
		if !strings.Contains(out, "key: A") || !strings.Contains(out, "value: B") {
			t.Errorf("yaml output missing pair:\n%s", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var sb strings.Builder
		if err := writePairs(&sb, pairs, "toml"); err == nil {
			t.Error("writePairs() expected error for unknown format")
		}
	})
}

func TestRunShow(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("A=B\n# comment\nC=D\n"), 0600); err != nil {
			t.Fatalf("write .env: %v", err)
		}
		if err := runShow(nil, []string{path}); err != nil {
			t.Fatalf("runShow() error = %v", err)
		}
	})

	t.Run("masked", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("SECRET=hunter2hunter2\n"), 0600); err != nil {
			t.Fatalf("write .env: %v", err)
		}
		showMask = true
		defer func() { showMask = false }()
		if err := runShow(nil, []string{path}); err != nil {
			t.Fatalf("runShow() error = %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := runShow(nil, []string{filepath.Join(t.TempDir(), "missing.env")}); err == nil {
			t.Error("runShow() expected error for missing file")
		}
	})
}

func TestRunKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=B\nC=D\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := runKeys(nil, []string{path}); err != nil {
		t.Fatalf("runKeys() error = %v", err)
	}
}
