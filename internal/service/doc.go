// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and stores
// (defined in internal/store) to fulfill application features.
//
// The services map onto the core responsibilities of the system:
//
//   - SessionService drives the study-session lifecycle: starting the timer
//     against a task and finishing it, which updates the task, accumulates
//     daily statistics, and generates spaced-repetition reminders in one
//     transaction.
//   - ReviewService exposes the reminder queries and mutations, deriving
//     pending/overdue/completed counts from one classified set.
//   - StatsService computes streaks and weekly reports from the daily
//     aggregates.
//   - CalendarService merges one-off tasks, weekday-recurring tasks, and
//     review reminders into per-date counts for the calendar view.
//   - SettingsService resolves and persists the per-user configuration,
//     degrading malformed values to defaults.
//   - TaskService and GroupService cover entity CRUD with per-user
//     ownership checks.
//
// Services receive their stores, the settings resolver, and the event
// publisher through constructor injection; none of them holds global state.
// Mutations publish change events through events.Publisher after commit.
package service
