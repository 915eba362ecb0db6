package dotenv

import (
	"os"
	"sync"
)

// Table is the environment variable store the load and unload paths write
// to. The process environment satisfies it via OS; tests and dry runs can
// substitute a MapTable to avoid touching real process state.
type Table interface {
	Set(key, value string) error
	Lookup(key string) (string, bool)
	Unset(key string) error
}

type osTable struct{}

// OS returns a Table backed by the process environment.
func OS() Table { return osTable{} }

func (osTable) Set(key, value string) error { return os.Setenv(key, value) }

func (osTable) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (osTable) Unset(key string) error { return os.Unsetenv(key) }

// MapTable is an in-memory Table. Safe for concurrent use.
type MapTable struct {
	mu   sync.Mutex
	vars map[string]string
}

func NewMapTable() *MapTable {
	return &MapTable{vars: make(map[string]string)}
}

func (m *MapTable) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

func (m *MapTable) Lookup(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapTable) Unset(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, key)
	return nil
}

// Environ returns a copy of the table's contents.
func (m *MapTable) Environ() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}

// Len reports the number of variables in the table.
func (m *MapTable) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.vars)
}
