package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// GroupStore implements the store.GroupStore interface using a PostgreSQL
// database as the storage backend.
type GroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewGroupStore creates a new PostgreSQL implementation of the GroupStore
// interface. If logger is nil, a default logger will be used.
func NewGroupStore(db store.DBTX, logger *slog.Logger) *GroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure GroupStore implements store.GroupStore interface
var _ store.GroupStore = (*GroupStore)(nil)

// Create implements store.GroupStore.Create
func (s *GroupStore) Create(ctx context.Context, group *domain.Group) error {
	if err := group.Validate(); err != nil {
		return store.NewStoreError("group", "create", "invalid group", err)
	}

	query := `
		INSERT INTO groups (id, user_id, name, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		group.ID,
		group.UserID,
		group.Name,
		group.SortOrder,
		group.CreatedAt,
		group.UpdatedAt,
	)
	return MapError(err)
}

// GetByID implements store.GroupStore.GetByID
func (s *GroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `
		SELECT id, user_id, name, sort_order, created_at, updated_at
		FROM groups
		WHERE id = $1
	`
	var group domain.Group
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.UserID,
		&group.Name,
		&group.SortOrder,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrGroupNotFound
		}
		return nil, MapError(err)
	}
	return &group, nil
}

// GetByUser implements store.GroupStore.GetByUser
func (s *GroupStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	query := `
		SELECT id, user_id, name, sort_order, created_at, updated_at
		FROM groups
		WHERE user_id = $1
		ORDER BY sort_order, created_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var groups []*domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(
			&group.ID,
			&group.UserID,
			&group.Name,
			&group.SortOrder,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return groups, nil
}

// Update implements store.GroupStore.Update
func (s *GroupStore) Update(ctx context.Context, group *domain.Group) error {
	if err := group.Validate(); err != nil {
		return store.NewStoreError("group", "update", "invalid group", err)
	}

	query := `
		UPDATE groups
		SET name = $1, sort_order = $2, updated_at = now()
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, group.Name, group.SortOrder, group.ID)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrGroupNotFound
	}

	return nil
}

// Delete implements store.GroupStore.Delete
// Tasks owned by the group cascade-delete at the database level.
func (s *GroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrGroupNotFound
	}

	return nil
}
