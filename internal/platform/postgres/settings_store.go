package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/store"
)

// SettingsStore implements the store.SettingsStore interface using a
// PostgreSQL database as the storage backend. Each setting is one row
// keyed by (user_id, key).
type SettingsStore struct {
	db     store.DBTX
	sqlDB  *sql.DB
	logger *slog.Logger
}

// NewSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. The *sql.DB is needed for SetMany's own
// transaction; pass nil when the store is already transaction-bound.
func NewSettingsStore(db store.DBTX, sqlDB *sql.DB, logger *slog.Logger) *SettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsStore{
		db:     db,
		sqlDB:  sqlDB,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure SettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*SettingsStore)(nil)

// WithTx implements store.SettingsStore.WithTx
func (s *SettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &SettingsStore{db: tx, logger: s.logger}
}

// GetAll implements store.SettingsStore.GetAll
func (s *SettingsStore) GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, error) {
	query := `SELECT key, value FROM settings WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, MapError(err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return values, nil
}

// Set implements store.SettingsStore.Set
func (s *SettingsStore) Set(ctx context.Context, userID uuid.UUID, key, value string) error {
	query := `
		INSERT INTO settings (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query, userID, key, value)
	return MapError(err)
}

// SetMany implements store.SettingsStore.SetMany
// All keys commit together or not at all; a failure leaves every prior
// value intact via transaction rollback.
func (s *SettingsStore) SetMany(ctx context.Context, userID uuid.UUID, values map[string]string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(values) == 0 {
		return nil
	}

	apply := func(ctx context.Context, bound store.SettingsStore) error {
		for key, value := range values {
			if err := bound.Set(ctx, userID, key, value); err != nil {
				return err
			}
		}
		return nil
	}

	// Already inside a caller-managed transaction.
	if s.sqlDB == nil {
		return apply(ctx, s)
	}

	err := store.RunInTransaction(ctx, s.sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		return apply(ctx, s.WithTx(tx))
	})
	if err != nil {
		log.Error("failed to update settings atomically",
			"error", err,
			"user_id", userID,
			"keys", len(values))
		return err
	}

	return nil
}
