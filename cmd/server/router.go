package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/veleda/studyflow/internal/api"
	apimiddleware "github.com/veleda/studyflow/internal/api/middleware"
)

// setupRouter builds the application router with all routes and
// middleware wired to the application's services.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	groupHandler := api.NewGroupHandler(app.groupService)
	taskHandler := api.NewTaskHandler(app.taskService)
	sessionHandler := api.NewSessionHandler(app.sessionService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	statsHandler := api.NewStatsHandler(app.statsService)
	calendarHandler := api.NewCalendarHandler(app.calendarService)
	settingsHandler := api.NewSettingsHandler(app.settingsService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/groups", groupHandler.Create)
			r.Get("/groups", groupHandler.List)
			r.Get("/groups/{id}", groupHandler.Get)
			r.Put("/groups/{id}", groupHandler.Update)
			r.Delete("/groups/{id}", groupHandler.Delete)

			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/deadlines", taskHandler.Deadlines)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)

			r.Post("/sessions", sessionHandler.Start)
			r.Get("/sessions", sessionHandler.History)
			r.Get("/sessions/{id}", sessionHandler.Get)
			r.Post("/sessions/{id}/finish", sessionHandler.Finish)

			r.Get("/reviews", reviewHandler.List)
			r.Get("/reviews/feed", reviewHandler.Feed)
			r.Get("/reviews/counts", reviewHandler.Counts)
			r.Post("/reviews/{id}/complete", reviewHandler.Complete)
			r.Post("/reviews/{id}/incomplete", reviewHandler.Incomplete)
			r.Post("/reviews/{id}/reschedule", reviewHandler.Reschedule)

			r.Get("/stats", statsHandler.Range)
			r.Get("/stats/daily", statsHandler.Daily)
			r.Get("/stats/weekly", statsHandler.Weekly)
			r.Get("/stats/streaks", statsHandler.Streaks)

			r.Get("/calendar", calendarHandler.Counts)

			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
