// Package store persists the budget tree between runs.
package store

import "github.com/ryanisaacg/budget/internal/model"

// Store loads and saves the whole tree as one snapshot. Load returns a
// nil root (and nil error) when nothing has been persisted yet.
type Store interface {
	Load() (*model.Account, error)
	Save(root *model.Account) error
	Close() error
}
