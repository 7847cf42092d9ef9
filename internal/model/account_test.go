package model

import (
	"errors"
	"testing"
)

func buildTree(t *testing.T) *Account {
	t.Helper()
	root := NewRoot()
	bills := NewBranch("bills")
	if err := root.AddChild(bills, Fixed(500)); err != nil {
		t.Fatalf("add bills: %v", err)
	}
	if err := bills.AddChild(NewLeaf("rent", 0, 1200), Fixed(1200)); err != nil {
		t.Fatalf("add rent: %v", err)
	}
	if err := bills.AddChild(NewLeaf("power", 40, 100), Flex(1)); err != nil {
		t.Fatalf("add power: %v", err)
	}
	if err := root.AddChild(NewLeaf("savings", 250, 10000), Flex(2)); err != nil {
		t.Fatalf("add savings: %v", err)
	}
	return root
}

func TestBalanceAggregatesOverSubtree(t *testing.T) {
	root := buildTree(t)
	if got := root.Balance(); got != 290 {
		t.Errorf("root balance: expected 290, got %.2f", got)
	}
	bills := root.Find("bills")
	if got := bills.Balance(); got != 40 {
		t.Errorf("bills balance: expected 40, got %.2f", got)
	}
}

func TestFindReturnsNilForMissingName(t *testing.T) {
	root := buildTree(t)
	if got := root.Find("vacation"); got != nil {
		t.Errorf("expected nil for missing account, got %q", got.Name)
	}
}

func TestFindPrefersFirstPreOrderMatch(t *testing.T) {
	// Two accounts named "misc": one deep under the first child, one as a
	// direct child of the root. Pre-order reaches the nested one first.
	root := NewRoot()
	bills := NewBranch("bills")
	root.AddChild(bills, Flex(1))
	bills.AddChild(NewLeaf("misc", 10, 100), Flex(1))
	root.AddChild(NewLeaf("misc", 20, 100), Flex(1))

	for i := 0; i < 5; i++ {
		got := root.Find("misc")
		if got == nil {
			t.Fatal("expected a match for duplicate name")
		}
		if got.Leaf.Balance != 10 {
			t.Fatalf("iteration %d: expected the nested account (balance 10), got balance %.2f", i, got.Leaf.Balance)
		}
	}
}

func TestFindChecksSiblingNameBeforeDescending(t *testing.T) {
	// A sibling named "goal" after a branch containing a child also named
	// "goal": the recursion into the earlier branch still wins.
	root := NewRoot()
	first := NewBranch("first")
	root.AddChild(first, Flex(1))
	first.AddChild(NewLeaf("goal", 1, 10), Flex(1))
	root.AddChild(NewLeaf("goal", 2, 10), Flex(1))

	got := root.Find("goal")
	if got.Leaf.Balance != 1 {
		t.Errorf("expected descent into earlier sibling to win, got balance %.2f", got.Leaf.Balance)
	}
}

func TestAddChildToLeafFails(t *testing.T) {
	leaf := NewLeaf("rent", 0, 1200)
	err := leaf.AddChild(NewLeaf("sub", 0, 10), Flex(1))
	if !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestWithdrawAllowsOverdraft(t *testing.T) {
	leaf := NewLeaf("rent", 50, 1200)
	if err := leaf.Withdraw(80); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if leaf.Leaf.Balance != -30 {
		t.Errorf("expected balance -30 after overdraft, got %.2f", leaf.Leaf.Balance)
	}
}

func TestWithdrawFromBranchFails(t *testing.T) {
	root := buildTree(t)
	before := root.Balance()
	err := root.Find("bills").Withdraw(10)
	if !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
	if got := root.Balance(); got != before {
		t.Errorf("balances changed on failed withdraw: %.2f -> %.2f", before, got)
	}
}

func TestEntryCapacityAggregates(t *testing.T) {
	root := buildTree(t)
	bills := &root.Children[0]
	if got := bills.Max(); got != 1300 {
		t.Errorf("bills capacity: expected 1300, got %.2f", got)
	}
	if got := bills.UntilMax(); got != 1260 {
		t.Errorf("bills headroom: expected 1260, got %.2f", got)
	}
	if bills.AtMax() {
		t.Error("bills should not be at capacity")
	}
}

func TestFlexWeightZeroWhenSaturated(t *testing.T) {
	root := NewRoot()
	root.AddChild(NewLeaf("full", 100, 100), Flex(3))
	root.AddChild(NewLeaf("open", 0, 100), Flex(2))
	root.AddChild(NewLeaf("fixed", 0, 100), Fixed(10))

	if got := root.Children[0].FlexWeight(); got != 0 {
		t.Errorf("saturated flex entry: expected weight 0, got %.2f", got)
	}
	if got := root.Children[1].FlexWeight(); got != 2 {
		t.Errorf("open flex entry: expected weight 2, got %.2f", got)
	}
	if got := root.Children[2].FlexWeight(); got != 0 {
		t.Errorf("fixed entry: expected weight 0, got %.2f", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	root := buildTree(t)
	copied := root.Clone()
	if err := root.Find("power").Withdraw(40); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got := copied.Find("power").Leaf.Balance; got != 40 {
		t.Errorf("clone mutated alongside original: expected 40, got %.2f", got)
	}
	if got := copied.Balance(); got != 290 {
		t.Errorf("clone balance: expected 290, got %.2f", got)
	}
}
