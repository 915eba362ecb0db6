package envfind

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, names []string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(p, []byte(""), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func TestList(t *testing.T) {
	t.Run("default patterns find env files", func(t *testing.T) {
		tmp := t.TempDir()
		writeFiles(t, tmp, []string{
			".env",
			".env.local",
			"sub/.env",
			"sub/config.yaml",
			"node_modules/pkg/.env",
		})

		got, err := List(tmp, nil)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		sort.Strings(got)

		want := []string{".env", ".env.local", "sub/.env"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("List() = %v, want %v", got, want)
		}
	})

	t.Run("path pattern", func(t *testing.T) {
		tmp := t.TempDir()
		writeFiles(t, tmp, []string{".env", "apps/web/.env", "apps/api/.env"})

		got, err := List(tmp, []string{"apps/**/.env"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		sort.Strings(got)

		want := []string{"apps/api/.env", "apps/web/.env"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("List() = %v, want %v", got, want)
		}
	})

	t.Run("bad pattern returns error", func(t *testing.T) {
		tmp := t.TempDir()
		writeFiles(t, tmp, []string{".env"})

		if _, err := List(tmp, []string{"[invalid"}); err == nil {
			t.Error("List() expected error for malformed pattern")
		}
	})
}

func TestBuildTree(t *testing.T) {
	paths := []string{"sub/.env", ".env", "sub/deep/.env.local"}
	root := BuildTree(paths)

	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	// Files sort before directories at each level.
	if root.Children[0].Name != ".env" || root.Children[0].File == "" {
		t.Errorf("first child = %+v, want .env file node", root.Children[0])
	}
	if root.Children[1].Name != "sub" || root.Children[1].File != "" {
		t.Errorf("second child = %+v, want sub directory node", root.Children[1])
	}

	var sb strings.Builder
	RenderTree(&sb, root)
	got := sb.String()
	want := "├─ .env\n" +
		"└─ sub\n" +
		"   ├─ .env\n" +
		"   └─ deep\n" +
		"      └─ .env.local\n"
	if got != want {
		t.Errorf("RenderTree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTreeLastChildConnector(t *testing.T) {
	root := BuildTree([]string{"a/.env", "b/.env"})

	var sb strings.Builder
	RenderTree(&sb, root)
	got := sb.String()
	want := "├─ a\n" +
		"│  └─ .env\n" +
		"└─ b\n" +
		"   └─ .env\n"
	if got != want {
		t.Errorf("RenderTree() =\n%s\nwant:\n%s", got, want)
	}
}
