// Package allocator implements capacity-aware deposit distribution over
// the budget tree. Money entering a branch is split among its children in
// three stages: fixed entries claim their flat amounts first in sibling
// order, flex entries then water-fill the remainder proportionally to
// their weights, and anything still left over is split evenly across all
// children regardless of capacity.
package allocator

import (
	"math"

	"github.com/ryanisaacg/budget/internal/model"
)

// Tolerance is the residual below which an amount is not worth
// distributing further. It bounds the flex convergence loop and decides
// whether the overflow fallback fires.
const Tolerance = 0.01

// Deposit places amount into acct, mutating acct and its descendants.
// The whole amount is always consumed and Deposit cannot fail. Capacity
// is a soft target: once fixed and flex allocation are exhausted, the
// overflow fallback pushes balances past max.
func Deposit(acct *model.Account, amount float64) {
	if acct.Leaf != nil {
		acct.Leaf.Balance += amount
		return
	}

	children := acct.Children

	for i := range children {
		amount = fixedDeposit(&children[i], amount)
	}

	// Water-fill the flex entries. Each iteration either saturates at
	// least one entry, shrinking totalFlex, or spends the pool down to
	// the tolerance, so the loop terminates.
	totalFlex := totalFlexWeight(children)
	for totalFlex != 0 && amount > Tolerance {
		perFlex := amount / totalFlex
		for i := range children {
			amount = flexDeposit(&children[i], amount, perFlex)
		}
		totalFlex = totalFlexWeight(children)
	}

	// Everyone is saturated (or there were no flex entries). Give up and
	// split the rest evenly, past capacity if need be.
	share := amount / float64(len(children))
	if share > Tolerance {
		for i := range children {
			Deposit(children[i].Account, share)
		}
	}
}

func totalFlexWeight(children []model.BranchEntry) float64 {
	total := 0.0
	for i := range children {
		total += children[i].FlexWeight()
	}
	return total
}

// fixedDeposit lets a fixed entry claim its flat amount, capped by its
// remaining headroom and by the pool. Flex entries pass the pool through.
func fixedDeposit(e *model.BranchEntry, available float64) float64 {
	if e.Inflow.Kind != model.InflowFixed {
		return available
	}
	take := math.Min(e.Inflow.Amount, math.Min(e.UntilMax(), available))
	Deposit(e.Account, take)
	return available - take
}

// flexDeposit lets a flex entry claim its proportional share, capped by
// the pool and by its remaining headroom. Fixed entries pass the pool
// through.
func flexDeposit(e *model.BranchEntry, available, perFlex float64) float64 {
	if e.Inflow.Kind != model.InflowFlex {
		return available
	}
	take := math.Min(perFlex*e.Inflow.Amount, math.Min(available, e.UntilMax()))
	Deposit(e.Account, take)
	return available - take
}
