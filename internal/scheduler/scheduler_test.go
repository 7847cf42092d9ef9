package scheduler

import (
	"testing"

	"github.com/ryanisaacg/budget/internal/config"
	"github.com/ryanisaacg/budget/internal/engine"
	"github.com/ryanisaacg/budget/internal/model"
	"github.com/ryanisaacg/budget/internal/store"
)

func TestToAction(t *testing.T) {
	tests := []struct {
		name string
		rule config.Rule
		want model.Action
	}{
		{
			"paycheck deposit to root",
			config.Rule{Action: "deposit", Amount: 3000},
			model.Action{Kind: model.ActionDeposit, Amount: 3000},
		},
		{
			"targeted deposit",
			config.Rule{Action: "deposit", Account: "savings", Amount: 200},
			model.Action{Kind: model.ActionDeposit, Account: "savings", Amount: 200},
		},
		{
			"rent withdrawal",
			config.Rule{Action: "withdraw", Account: "rent", Amount: 1200},
			model.Action{Kind: model.ActionWithdraw, Account: "rent", Amount: 1200},
		},
		{
			"standing transfer",
			config.Rule{Action: "transfer", From: "checking", To: "savings", Amount: 50},
			model.Action{Kind: model.ActionTransfer, From: "checking", To: "savings", Amount: 50},
		},
	}
	for _, tt := range tests {
		got, err := ToAction(tt.rule)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestToActionRejectsUnknown(t *testing.T) {
	if _, err := ToAction(config.Rule{Action: "rebalance"}); err == nil {
		t.Error("expected an error for an unknown action")
	}
}

func TestRegisterAll(t *testing.T) {
	eng, err := engine.NewManager(store.NewNoopStore())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	s := NewScheduler(eng)

	rules := []config.Rule{
		{Cron: "0 0 9 1 * *", Action: "deposit", Amount: 3000},
		{Cron: "0 0 9 1 * *", Action: "withdraw", Account: "rent", Amount: 1200},
	}
	if err := s.RegisterAll(rules); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 2 {
		t.Errorf("expected 2 cron entries, got %d", got)
	}
}

func TestRegisterAllRejectsBadCronSpec(t *testing.T) {
	eng, err := engine.NewManager(store.NewNoopStore())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	s := NewScheduler(eng)
	err = s.RegisterAll([]config.Rule{{Cron: "not a cron spec", Action: "deposit", Amount: 1}})
	if err == nil {
		t.Error("expected an error for a malformed cron spec")
	}
}
