package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ryanisaacg/budget/internal/config"
	"github.com/ryanisaacg/budget/internal/engine"
	"github.com/ryanisaacg/budget/internal/model"
)

// Scheduler fires recurring budget actions (paycheck deposits, rent
// withdrawals, standing transfers) on their cron specs.
type Scheduler struct {
	Cron   *cron.Cron
	Engine *engine.Manager
}

// NewScheduler creates a Scheduler driving the given engine.
func NewScheduler(eng *engine.Manager) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Engine: eng,
	}
}

// RegisterAll registers every schedule rule from the config.
func (s *Scheduler) RegisterAll(rules []config.Rule) error {
	for i, rule := range rules {
		act, err := ToAction(rule)
		if err != nil {
			return fmt.Errorf("register rule %d: %w", i, err)
		}
		if _, err := s.Cron.AddFunc(rule.Cron, func() { s.run(act) }); err != nil {
			return fmt.Errorf("register rule %d (%s): %w", i, rule.Cron, err)
		}
	}
	return nil
}

// ToAction translates a schedule rule into the action it applies.
func ToAction(rule config.Rule) (model.Action, error) {
	switch rule.Action {
	case "deposit":
		return model.Action{Kind: model.ActionDeposit, Account: rule.Account, Amount: rule.Amount}, nil
	case "withdraw":
		return model.Action{Kind: model.ActionWithdraw, Account: rule.Account, Amount: rule.Amount}, nil
	case "transfer":
		return model.Action{Kind: model.ActionTransfer, From: rule.From, To: rule.To, Amount: rule.Amount}, nil
	default:
		return model.Action{}, fmt.Errorf("unknown action %q", rule.Action)
	}
}

func (s *Scheduler) run(act model.Action) {
	// Recurring actions stamp the fire time as the action date.
	act.Date = time.Now()
	if err := s.Engine.Apply(act); err != nil {
		log.Printf("[ERROR] scheduled %s: %v", act.Kind, err)
		return
	}
	total, err := s.Engine.Balance("root")
	if err != nil {
		log.Printf("[ERROR] root balance after scheduled %s: %v", act.Kind, err)
		return
	}
	log.Printf("[INFO] scheduled %s applied, total balance %.2f", act.Kind, total)
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
