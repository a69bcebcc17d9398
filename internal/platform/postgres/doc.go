// Package postgres provides the PostgreSQL implementations of the store
// interfaces, built on database/sql over the pgx stdlib driver. Every
// database error is mapped through MapError so callers can match the
// store package's sentinel errors with errors.Is.
package postgres
