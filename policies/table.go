package policies

import (
	"encoding/json"
	"fmt"
)

// Table is an arena backed value table. Observation fingerprints map
// to row indices; rows are fixed width float64 slices indexed by
// action slot. The layout bounds memory per state and serializes
// without nested maps.
type Table struct {
	width int
	index map[string]int
	keys  []string
	rows  [][]float64
}

func NewTable(width int) *Table {
	return &Table{
		width: width,
		index: make(map[string]int),
		keys:  make([]string, 0),
		rows:  make([][]float64, 0),
	}
}

// Width is the action slot count per row.
func (t *Table) Width() int {
	return t.width
}

// Len is the number of distinct states seen.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the values for a fingerprint, allocating a zero row on
// first sight.
func (t *Table) Row(key string) []float64 {
	if i, ok := t.index[key]; ok {
		return t.rows[i]
	}
	row := make([]float64, t.width)
	t.index[key] = len(t.rows)
	t.keys = append(t.keys, key)
	t.rows = append(t.rows, row)
	return row
}

// Peek returns the row without allocating.
func (t *Table) Peek(key string) ([]float64, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.rows[i], true
}

// Get reads one cell, returning def for unseen states.
func (t *Table) Get(key string, slot int, def float64) float64 {
	row, ok := t.Peek(key)
	if !ok || slot < 0 || slot >= len(row) {
		return def
	}
	return row[slot]
}

// Set writes one cell.
func (t *Table) Set(key string, slot int, val float64) {
	row := t.Row(key)
	if slot >= 0 && slot < len(row) {
		row[slot] = val
	}
}

// MaxSlot returns the best slot and value among the first n slots of a
// row. Ties resolve to the lowest slot, which keeps greedy selection
// deterministic.
func (t *Table) MaxSlot(key string, n int) (int, float64) {
	row, ok := t.Peek(key)
	if !ok {
		return 0, 0
	}
	if n > len(row) {
		n = len(row)
	}
	best := 0
	bestVal := row[0]
	for i := 1; i < n; i++ {
		if row[i] > bestVal {
			best = i
			bestVal = row[i]
		}
	}
	return best, bestVal
}

// Keys lists fingerprints in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Reset drops every row.
func (t *Table) Reset() {
	t.index = make(map[string]int)
	t.keys = t.keys[:0]
	t.rows = t.rows[:0]
}

type tableSnapshot struct {
	Width int         `json:"width"`
	Keys  []string    `json:"keys"`
	Rows  [][]float64 `json:"rows"`
}

// MarshalJSON serializes the arena losslessly, preserving insertion
// order.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableSnapshot{Width: t.width, Keys: t.keys, Rows: t.rows})
}

// UnmarshalJSON restores a snapshot produced by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var snap tableSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if len(snap.Keys) != len(snap.Rows) {
		return fmt.Errorf("corrupt table snapshot: %d keys, %d rows", len(snap.Keys), len(snap.Rows))
	}
	t.width = snap.Width
	t.keys = snap.Keys
	t.rows = snap.Rows
	t.index = make(map[string]int, len(snap.Keys))
	for i, k := range snap.Keys {
		t.index[k] = i
	}
	return nil
}
