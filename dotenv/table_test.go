package dotenv

import (
	"sync"
	"testing"
)

func TestOSTable(t *testing.T) {
	table := OS()
	t.Setenv("DOTLOAD_TEST_OS", "initial")

	if v, ok := table.Lookup("DOTLOAD_TEST_OS"); !ok || v != "initial" {
		t.Errorf("Lookup() = %q, %v, want %q, true", v, ok, "initial")
	}

	if err := table.Set("DOTLOAD_TEST_OS", "updated"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := table.Lookup("DOTLOAD_TEST_OS"); v != "updated" {
		t.Errorf("Lookup() = %q, want %q", v, "updated")
	}

	if err := table.Unset("DOTLOAD_TEST_OS"); err != nil {
		t.Fatalf("Unset() error = %v", err)
	}
	if _, ok := table.Lookup("DOTLOAD_TEST_OS"); ok {
		t.Error("Lookup() found key after Unset()")
	}
}

func TestMapTable(t *testing.T) {
	t.Run("set lookup unset", func(t *testing.T) {
		table := NewMapTable()

		table.Set("A", "1")
		if v, ok := table.Lookup("A"); !ok || v != "1" {
			t.Errorf("Lookup(A) = %q, %v, want %q, true", v, ok, "1")
		}

		table.Unset("A")
		if _, ok := table.Lookup("A"); ok {
			t.Error("Lookup(A) found key after Unset")
		}
	})

	t.Run("environ is a copy", func(t *testing.T) {
		table := NewMapTable()
		table.Set("A", "1")

		env := table.Environ()
		env["A"] = "mutated"

		if v, _ := table.Lookup("A"); v != "1" {
			t.Errorf("Lookup(A) = %q, want %q; Environ must not alias internal state", v, "1")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		table := NewMapTable()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				table.Set("A", "1")
				table.Lookup("A")
				table.Unset("A")
			}()
		}
		wg.Wait()
	})
}
