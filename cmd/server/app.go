package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/veleda/studyflow/internal/config"
	"github.com/veleda/studyflow/internal/events"
	"github.com/veleda/studyflow/internal/platform/postgres"
	"github.com/veleda/studyflow/internal/service"
	"github.com/veleda/studyflow/internal/service/auth"
	"github.com/veleda/studyflow/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	groupStore    store.GroupStore
	taskStore     store.TaskStore
	sessionStore  store.SessionStore
	reviewStore   store.ReviewTaskStore
	statsStore    store.StatsStore
	settingsStore store.SettingsStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	broker *events.Broker

	settingsService *service.SettingsService
	groupService    *service.GroupService
	taskService     *service.TaskService
	sessionService  *service.SessionService
	reviewService   *service.ReviewService
	statsService    *service.StatsService
	calendarService *service.CalendarService

	stopEventLog func()
}

// newApplication wires stores, services, and the event broker together.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, logger)
	app.groupStore = postgres.NewGroupStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)
	app.sessionStore = postgres.NewSessionStore(db, logger)
	app.reviewStore = postgres.NewReviewTaskStore(db, logger)
	app.statsStore = postgres.NewStatsStore(db, logger)
	app.settingsStore = postgres.NewSettingsStore(db, db, logger)

	app.broker = events.NewBroker(logger)
	app.stopEventLog = app.watchEvents()

	app.settingsService = service.NewSettingsService(app.settingsStore, logger)
	app.groupService = service.NewGroupService(app.groupStore, app.broker, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.groupStore, app.userStore, app.broker, logger)
	app.sessionService = service.NewSessionService(
		db,
		app.sessionStore,
		app.taskStore,
		app.groupStore,
		app.userStore,
		app.statsStore,
		app.reviewStore,
		app.settingsService,
		app.broker,
		logger,
	)
	app.reviewService = service.NewReviewService(app.reviewStore, app.broker, logger)
	app.statsService = service.NewStatsService(app.statsStore, logger)
	app.calendarService = service.NewCalendarService(app.taskStore, app.reviewStore, logger)

	logger.Info("application initialized")
	return app, nil
}

// watchEvents drains the change feed into the debug log so entity
// changes are visible in development. Returns a stop function.
func (app *application) watchEvents() func() {
	ch, cancel := app.broker.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for event := range ch {
			app.logger.Debug("entity changed",
				"entity", event.Entity,
				"change", event.Change,
				"entity_id", event.EntityID,
				"user_id", event.UserID)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if app.stopEventLog != nil {
		app.stopEventLog()
	}
	if app.broker != nil {
		app.broker.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
