// Package engine applies budget actions against the account tree.
package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/ryanisaacg/budget/internal/allocator"
	"github.com/ryanisaacg/budget/internal/model"
	"github.com/ryanisaacg/budget/internal/store"
)

// Manager owns the budget tree and serializes every action behind a
// single mutex. The tree itself has no internal locking.
type Manager struct {
	mu    sync.Mutex
	root  *model.Account
	store store.Store
}

// NewManager loads the tree from st, starting from a fresh root when
// nothing has been persisted yet.
func NewManager(st store.Store) (*Manager, error) {
	root, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load budget state: %w", err)
	}
	if root == nil {
		root = model.NewRoot()
	}
	return &Manager{root: root, store: st}, nil
}

// Apply executes one action against the tree. Errors surface immediately
// with no local recovery; a failed transfer may still have committed its
// withdraw half, so the state is persisted even on error.
func (m *Manager) Apply(act model.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.apply(act)
	m.save()
	return err
}

func (m *Manager) apply(act model.Action) error {
	switch act.Kind {
	case model.ActionNew:
		parent := m.root.Find(act.Parent)
		if parent == nil {
			return fmt.Errorf("create %q under %q: %w", act.Name, act.Parent, model.ErrNotFound)
		}
		child := &model.Account{Name: act.Name}
		if act.Leaf != nil {
			leaf := *act.Leaf
			child.Leaf = &leaf
		}
		return parent.AddChild(child, act.Inflow)

	case model.ActionWithdraw:
		acct := m.root.Find(act.Account)
		if acct == nil {
			return fmt.Errorf("withdraw from %q: %w", act.Account, model.ErrNotFound)
		}
		return acct.Withdraw(act.Amount)

	case model.ActionDeposit:
		target := m.root
		if act.Account != "" {
			if target = m.root.Find(act.Account); target == nil {
				return fmt.Errorf("deposit to %q: %w", act.Account, model.ErrNotFound)
			}
		}
		allocator.Deposit(target, act.Amount)
		return nil

	case model.ActionTransfer:
		// Two independent steps. The withdraw commits before the deposit
		// is attempted and is not rolled back if the deposit fails.
		withdraw := model.Action{Kind: model.ActionWithdraw, Account: act.From, Amount: act.Amount, Date: act.Date}
		if err := m.apply(withdraw); err != nil {
			return err
		}
		deposit := model.Action{Kind: model.ActionDeposit, Account: act.To, Amount: act.Amount, Date: act.Date}
		return m.apply(deposit)

	default:
		return fmt.Errorf("unknown action kind %q: %w", act.Kind, model.ErrInvalidOperation)
	}
}

// Balance returns the aggregate balance of the named account.
func (m *Manager) Balance(name string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct := m.root.Find(name)
	if acct == nil {
		return 0, fmt.Errorf("balance of %q: %w", name, model.ErrNotFound)
	}
	return acct.Balance(), nil
}

// Tree returns a deep copy of the current tree for rendering or
// inspection.
func (m *Manager) Tree() *model.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.Clone()
}

func (m *Manager) save() {
	if err := m.store.Save(m.root); err != nil {
		log.Printf("[ERROR] save budget state: %v", err)
	}
}
