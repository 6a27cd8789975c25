package source

import (
	"context"
	"sync"
)

// Fixture is an in-memory Provider for tests and local development. It
// returns the configured table or error and counts calls.
type Fixture struct {
	mu      sync.Mutex
	table   Table
	err     error
	fetches int
}

// NewFixture creates a fixture serving the given table.
func NewFixture(table Table) *Fixture {
	return &Fixture{table: table}
}

// SetTable replaces the served table and clears any configured error.
func (f *Fixture) SetTable(table Table) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table = table
	f.err = nil
}

// SetError makes every subsequent Fetch fail with err.
func (f *Fixture) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Fetches reports how many times Fetch was called.
func (f *Fixture) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// Fetch implements Provider.
func (f *Fixture) Fetch(_ context.Context) (Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return Table{}, f.err
	}
	return f.table, nil
}
