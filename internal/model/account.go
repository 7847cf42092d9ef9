package model

import "fmt"

// Inflow kinds.
const (
	InflowFixed = "fixed"
	InflowFlex  = "flex"
)

// Inflow is the allocation rule a parent applies to one child when
// distributing a deposit. A fixed inflow claims up to Amount per deposit
// cycle; a flex inflow claims a share of the remaining pool proportional
// to Amount relative to the other unsaturated flex siblings.
type Inflow struct {
	Kind   string  `yaml:"kind"`
	Amount float64 `yaml:"amount"`
}

// Fixed builds a fixed inflow claiming up to amount per deposit.
func Fixed(amount float64) Inflow { return Inflow{Kind: InflowFixed, Amount: amount} }

// Flex builds a proportional inflow with the given weight.
func Flex(weight float64) Inflow { return Inflow{Kind: InflowFlex, Amount: weight} }

// LeafState holds the concrete funds of a terminal account. Max is a soft
// ceiling: ordinary allocation stops there, but overflow redistribution
// and direct deposits may push Balance past it. Balance may go negative
// on overdraft; no floor is enforced.
type LeafState struct {
	Balance float64 `yaml:"balance"`
	Max     float64 `yaml:"max"`
}

// Account is one node of the budget tree: a leaf when Leaf is non-nil,
// otherwise a branch whose balance and capacity are derived from Children.
// Names are matched by exact string equality across the whole tree, so a
// name should appear only once if lookups are to be unambiguous.
type Account struct {
	Name     string        `yaml:"name"`
	Leaf     *LeafState    `yaml:"leaf,omitempty"`
	Children []BranchEntry `yaml:"children,omitempty"`
}

// BranchEntry pairs a child account with the inflow rule its parent
// applies to it. Sibling order is insertion order and is significant: it
// sets fixed-allocation priority and the lookup tie-break.
type BranchEntry struct {
	Account *Account `yaml:"account"`
	Inflow  Inflow   `yaml:"inflow"`
}

// NewRoot returns the empty branch every tree starts from.
func NewRoot() *Account {
	return &Account{Name: "root"}
}

// NewLeaf returns a leaf account with the given starting balance and cap.
func NewLeaf(name string, balance, max float64) *Account {
	return &Account{Name: name, Leaf: &LeafState{Balance: balance, Max: max}}
}

// NewBranch returns an empty branch account.
func NewBranch(name string) *Account {
	return &Account{Name: name}
}

// IsLeaf reports whether the account holds funds directly.
func (a *Account) IsLeaf() bool { return a.Leaf != nil }

// Balance returns the leaf balance, or for a branch the sum over all
// descendants. Pure; runs in O(subtree size).
func (a *Account) Balance() float64 {
	if a.Leaf != nil {
		return a.Leaf.Balance
	}
	total := 0.0
	for i := range a.Children {
		total += a.Children[i].Account.Balance()
	}
	return total
}

// Find resolves a name anywhere in the subtree rooted at a. The traversal
// is depth-first pre-order in sibling order, checking each child's name
// before descending into it; the first match wins, so duplicate names
// resolve deterministically to the earliest pre-order occurrence. Returns
// nil when the name is absent.
func (a *Account) Find(name string) *Account {
	if a.Name == name {
		return a
	}
	for i := range a.Children {
		child := a.Children[i].Account
		if child.Name == name {
			return child
		}
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// AddChild attaches child under a with the given inflow, preserving
// insertion order. Fails on a leaf account.
func (a *Account) AddChild(child *Account, inflow Inflow) error {
	if a.Leaf != nil {
		return fmt.Errorf("cannot add child %q to leaf account %q: %w", child.Name, a.Name, ErrInvalidOperation)
	}
	a.Children = append(a.Children, BranchEntry{Account: child, Inflow: inflow})
	return nil
}

// Withdraw subtracts amount from a leaf's balance. There is no
// sufficiency check: the balance may go negative. Fails on a branch.
func (a *Account) Withdraw(amount float64) error {
	if a.Leaf == nil {
		return fmt.Errorf("cannot withdraw from branch account %q: %w", a.Name, ErrInvalidOperation)
	}
	a.Leaf.Balance -= amount
	return nil
}

// Clone returns a deep copy of the subtree rooted at a.
func (a *Account) Clone() *Account {
	c := &Account{Name: a.Name}
	if a.Leaf != nil {
		leaf := *a.Leaf
		c.Leaf = &leaf
	}
	for i := range a.Children {
		c.Children = append(c.Children, BranchEntry{
			Account: a.Children[i].Account.Clone(),
			Inflow:  a.Children[i].Inflow,
		})
	}
	return c
}

// Max returns the entry's capacity: the leaf cap, or for a branch the sum
// of its children's capacities.
func (e *BranchEntry) Max() float64 {
	if e.Account.Leaf != nil {
		return e.Account.Leaf.Max
	}
	total := 0.0
	for i := range e.Account.Children {
		total += e.Account.Children[i].Max()
	}
	return total
}

// UntilMax returns the remaining headroom before the entry hits its
// capacity. A value <= 0 means the entry is at (or past) capacity.
func (e *BranchEntry) UntilMax() float64 {
	return e.Max() - e.Account.Balance()
}

// AtMax reports whether the entry has no headroom left.
func (e *BranchEntry) AtMax() bool {
	return e.UntilMax() <= 0
}

// FlexWeight is the weight this entry contributes to a flex pass: zero
// for fixed entries and for flex entries already at capacity.
func (e *BranchEntry) FlexWeight() float64 {
	if e.Inflow.Kind != InflowFlex || e.AtMax() {
		return 0
	}
	return e.Inflow.Amount
}
