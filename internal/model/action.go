package model

import "time"

// ActionKind indicates which mutation an Action requests.
type ActionKind string

const (
	ActionNew      ActionKind = "NEW"
	ActionWithdraw ActionKind = "WITHDRAW"
	ActionDeposit  ActionKind = "DEPOSIT"
	ActionTransfer ActionKind = "TRANSFER"
)

// Action is one mutation request against the budget tree. Which fields
// are meaningful depends on Kind:
//
//	NEW:      Name, Parent, Inflow, Leaf (nil creates a branch)
//	WITHDRAW: Account, Amount, Date
//	DEPOSIT:  Account (empty means the root), Amount, Date
//	TRANSFER: From, To (empty means the root), Amount, Date
//
// Date is carried for future reporting and is not consulted by any
// allocation or balance logic.
type Action struct {
	Kind    ActionKind
	Name    string
	Parent  string
	Inflow  Inflow
	Leaf    *LeafState
	Account string
	From    string
	To      string
	Amount  float64
	Date    time.Time
}
