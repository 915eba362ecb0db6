// Package dotenv loads, unloads and snapshots .env files.
//
// A .env file is newline-delimited KEY=VALUE text. Blank lines, comment
// lines and lines without a '=' are skipped rather than treated as errors,
// so a partially malformed file still loads its valid lines. The only error
// the package reports is a failure to read the underlying source.
//
// Load applies pairs to the environment, Unload removes the named keys
// (ignoring the recorded values), and Snapshot parses without mutating
// anything. Load and Unload are symmetric and independently invocable: the
// file itself is the source of truth for what to remove, so no bookkeeping
// of a previous load is required.
package dotenv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultFile is the file name resolved by Load, Unload and Snapshot,
// relative to the current working directory.
const DefaultFile = ".env"

const maxLineCapacity = 512 * 1024

// NewScanner returns a line scanner sized for long env values. Anything
// re-reading a file that this package loads should scan with it so both
// sides agree on what a readable line is.
func NewScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxLineCapacity)
	scanner.Buffer(buf, maxLineCapacity)
	return scanner
}

// Load reads ./.env and applies its pairs to the process environment.
func Load() error { return LoadFile(DefaultFile) }

// LoadFile reads the file at path and applies its pairs to the process
// environment.
func LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader applies the pairs parsed from r to the process environment.
func LoadReader(r io.Reader) error { return LoadReaderInto(r, OS()) }

// LoadReaderInto applies the pairs parsed from r to t, unconditionally
// overwriting existing values. Pairs are applied as each line is read:
// if reading fails mid-stream, pairs from earlier lines stay applied and
// the read error is returned. There is no rollback.
func LoadReaderInto(r io.Reader, t Table) error {
	scanner := NewScanner(r)
	for scanner.Scan() {
		pair, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := t.Set(pair.Key, pair.Value); err != nil {
			return fmt.Errorf("set %s: %w", pair.Key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read env input: %w", err)
	}
	return nil
}

// Unload reads ./.env and removes its keys from the process environment.
func Unload() error { return UnloadFile(DefaultFile) }

// UnloadFile reads the file at path and removes its keys from the process
// environment.
func UnloadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return UnloadReader(f)
}

// UnloadReader removes the keys parsed from r from the process environment.
func UnloadReader(r io.Reader) error { return UnloadReaderInto(r, OS()) }

// UnloadReaderInto removes every key parsed from r from t. The values
// recorded in the input are ignored; only the keys matter.
func UnloadReaderInto(r io.Reader, t Table) error {
	scanner := NewScanner(r)
	for scanner.Scan() {
		pair, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := t.Unset(pair.Key); err != nil {
			return fmt.Errorf("unset %s: %w", pair.Key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read env input: %w", err)
	}
	return nil
}

// Snapshot parses ./.env without mutating the environment.
func Snapshot() ([]Pair, error) { return SnapshotFile(DefaultFile) }

// SnapshotFile parses the file at path without mutating the environment.
func SnapshotFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return SnapshotReader(f)
}

// SnapshotReader parses r and returns the pairs in order of appearance,
// leaving the environment untouched.
func SnapshotReader(r io.Reader) ([]Pair, error) {
	var pairs []Pair
	scanner := NewScanner(r)
	for scanner.Scan() {
		if pair, ok := ParseLine(scanner.Text()); ok {
			pairs = append(pairs, pair)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read env input: %w", err)
	}
	return pairs, nil
}

// Apply sets the given pairs on t. With overload false, keys that already
// have a value in t are left alone.
func Apply(t Table, pairs []Pair, overload bool) error {
	for _, p := range pairs {
		if !overload {
			if _, ok := t.Lookup(p.Key); ok {
				continue
			}
		}
		if err := t.Set(p.Key, p.Value); err != nil {
			return fmt.Errorf("set %s: %w", p.Key, err)
		}
	}
	return nil
}

// Remove unsets the given keys on t.
func Remove(t Table, keys []string) error {
	for _, k := range keys {
		if err := t.Unset(k); err != nil {
			return fmt.Errorf("unset %s: %w", k, err)
		}
	}
	return nil
}

// Key looks up a variable in the process environment.
func Key(name string) (string, bool) { return os.LookupEnv(name) }

// Environ returns the current process environment as a map.
func Environ() map[string]string {
	vars := os.Environ()
	out := make(map[string]string, len(vars))
	for _, kv := range vars {
		if i := strings.IndexByte(kv, '='); i > 0 {
			out[kv[:i]] = kv[i+1:]
		}
	}
	return out
}
