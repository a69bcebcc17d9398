// Package main is the entry point for the studyflow server, which
// tracks focused study sessions and schedules spaced review reminders.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/veleda/studyflow/internal/config"
	"github.com/veleda/studyflow/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studyflow: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and the database, builds the
// application, and serves until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}

	if err := runMigrations(db, log); err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
