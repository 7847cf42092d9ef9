// Package script parses budget action scripts: YAML files listing the
// mutations to apply against the tree, in order.
package script

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryanisaacg/budget/internal/model"
)

// entry is the on-disk shape of one scripted action. Which fields matter
// depends on the action; unknown ones are rejected during validation.
type entry struct {
	Action  string       `yaml:"action"`
	Name    string       `yaml:"name"`
	Parent  string       `yaml:"parent"`
	Kind    string       `yaml:"kind"`
	Balance float64      `yaml:"balance"`
	Max     float64      `yaml:"max"`
	Inflow  model.Inflow `yaml:"inflow"`
	Account string       `yaml:"account"`
	From    string       `yaml:"from"`
	To      string       `yaml:"to"`
	Amount  float64      `yaml:"amount"`
	Date    string       `yaml:"date"`
}

const dateLayout = "2006-01-02"

// LoadFile reads and parses an action script.
func LoadFile(path string) ([]model.Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse converts script YAML into the actions it describes. The whole
// script is validated before anything is returned, so a malformed entry
// never leaves a prefix of its script applied.
func Parse(data []byte) ([]model.Action, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	actions := make([]model.Action, 0, len(entries))
	for i, e := range entries {
		act, err := e.toAction()
		if err != nil {
			return nil, fmt.Errorf("script entry %d: %w", i+1, err)
		}
		actions = append(actions, act)
	}
	return actions, nil
}

func (e entry) toAction() (model.Action, error) {
	var act model.Action

	if e.Date != "" {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return act, fmt.Errorf("bad date %q: %w", e.Date, err)
		}
		act.Date = date
	}

	switch e.Action {
	case "new":
		if e.Name == "" || e.Parent == "" {
			return act, fmt.Errorf("new requires name and parent")
		}
		if e.Inflow.Kind != model.InflowFixed && e.Inflow.Kind != model.InflowFlex {
			return act, fmt.Errorf("new requires an inflow kind of %q or %q, got %q",
				model.InflowFixed, model.InflowFlex, e.Inflow.Kind)
		}
		act.Kind = model.ActionNew
		act.Name = e.Name
		act.Parent = e.Parent
		act.Inflow = e.Inflow
		switch e.Kind {
		case "", "leaf":
			act.Leaf = &model.LeafState{Balance: e.Balance, Max: e.Max}
		case "branch":
		default:
			return act, fmt.Errorf("unknown account kind %q", e.Kind)
		}
		return act, nil

	case "withdraw":
		if e.Account == "" {
			return act, fmt.Errorf("withdraw requires an account")
		}
		act.Kind = model.ActionWithdraw
		act.Account = e.Account
		act.Amount = e.Amount
		return act, nil

	case "deposit":
		act.Kind = model.ActionDeposit
		act.Account = e.Account
		act.Amount = e.Amount
		return act, nil

	case "transfer":
		if e.From == "" {
			return act, fmt.Errorf("transfer requires a source account")
		}
		act.Kind = model.ActionTransfer
		act.From = e.From
		act.To = e.To
		act.Amount = e.Amount
		return act, nil

	default:
		return act, fmt.Errorf("unknown action %q", e.Action)
	}
}
