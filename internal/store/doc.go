// Package store defines the persistence contracts of the application:
// one interface per entity plus the shared sentinel errors, the DBTX
// database abstraction, and transaction helpers. Implementations live in
// internal/platform; services depend only on these interfaces.
package store
