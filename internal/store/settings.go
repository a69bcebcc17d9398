package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// SettingsStore defines the interface for per-user setting rows. Values
// are stored as strings under named keys; parsing and fallback defaults
// are the settings service's concern.
type SettingsStore interface {
	// GetAll retrieves every stored setting of a user as a key/value map.
	// A user with no stored settings yields an empty map.
	GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, error)

	// Set upserts a single setting key.
	Set(ctx context.Context, userID uuid.UUID, key, value string) error

	// SetMany upserts several setting keys in one all-or-nothing
	// transaction; a failure leaves every prior value intact.
	SetMany(ctx context.Context, userID uuid.UUID, values map[string]string) error

	// WithTx returns a SettingsStore bound to the given transaction.
	WithTx(tx *sql.Tx) SettingsStore
}
