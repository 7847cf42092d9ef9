package store

import "github.com/ryanisaacg/budget/internal/model"

// NoopStore is a no-op implementation used when persistence is disabled
// or a real store fails to open.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Load() (*model.Account, error) { return nil, nil }
func (n *NoopStore) Save(_ *model.Account) error   { return nil }
func (n *NoopStore) Close() error                  { return nil }
