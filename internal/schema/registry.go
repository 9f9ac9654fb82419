// Package schema defines the import targets records can be committed to:
// each target names a destination table and the ordered column definitions
// that drive mapping and validation.
package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shiftlog/importer/internal/importer"
)

// Target is one import destination.
type Target struct {
	Key     string // unique identifier: "shift_logs"
	Label   string // display name: "Shift Logs"
	Table   string // destination table the writer inserts into
	Columns []importer.ColumnDefinition
}

var (
	registry   = make(map[string]Target)
	registryMu sync.RWMutex
)

// Register adds a target to the registry.
// Panics if a target with the same key is already registered.
func Register(t Target) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[t.Key]; exists {
		panic(fmt.Sprintf("target already registered: %s", t.Key))
	}
	if t.Table == "" {
		t.Table = t.Key
	}
	registry[t.Key] = t
}

// Get returns a target by key.
// Returns false if not found.
func Get(key string) (Target, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[key]
	return t, ok
}

// All returns all registered targets sorted by key.
func All() []Target {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Target, 0, len(registry))
	for _, t := range registry {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// Clear removes all registered targets.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Target)
}
