// Package domain defines the core business entities of the studyflow
// application: users, study tasks, timer sessions, generated review
// reminders, and per-day statistics. Entities validate themselves and
// carry no persistence or transport concerns.
package domain
