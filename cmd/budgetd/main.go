package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ryanisaacg/budget/internal/config"
	"github.com/ryanisaacg/budget/internal/engine"
	"github.com/ryanisaacg/budget/internal/render"
	"github.com/ryanisaacg/budget/internal/scheduler"
	"github.com/ryanisaacg/budget/internal/script"
	"github.com/ryanisaacg/budget/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] budgetd starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	switch {
	case cfg.Budget.SQLitePath != "":
		ss, err := store.NewSQLiteStore(cfg.Budget.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, state will not persist: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
		}
	case cfg.Budget.File != "":
		st = store.NewFileStore(cfg.Budget.File)
		log.Printf("[INFO] budget file: %s", cfg.Budget.File)
	default:
		st = store.NewNoopStore()
	}
	defer st.Close()

	// Init engine
	eng, err := engine.NewManager(st)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}

	// Apply the action script, if configured. Each action is
	// independent; a failing one is reported and the rest still run.
	if cfg.Script.Path != "" {
		actions, err := script.LoadFile(cfg.Script.Path)
		if err != nil {
			log.Fatalf("[FATAL] load script %s: %v", cfg.Script.Path, err)
		}
		log.Printf("[INFO] applying %d scripted actions", len(actions))
		for i, act := range actions {
			if err := eng.Apply(act); err != nil {
				log.Printf("[ERROR] script action %d (%s): %v", i+1, act.Kind, err)
			}
		}
	}

	fmt.Print(render.Tree(eng.Tree()))

	if cfg.RunOnce || len(cfg.Schedule) == 0 {
		log.Println("[INFO] nothing scheduled, exiting")
		return
	}

	// Init scheduler
	sched := scheduler.NewScheduler(eng)
	if err := sched.RegisterAll(cfg.Schedule); err != nil {
		log.Fatalf("[FATAL] register schedule: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] budgetd is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	fmt.Print(render.Tree(eng.Tree()))
	log.Println("[INFO] budgetd stopped")
}
