package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/store"
)

// SettingsStore implements store.SettingsStore for testing. The default
// behavior keeps values in the Values map, keyed per user.
type SettingsStore struct {
	GetAllFn  func(ctx context.Context, userID uuid.UUID) (map[string]string, error)
	SetFn     func(ctx context.Context, userID uuid.UUID, key, value string) error
	SetManyFn func(ctx context.Context, userID uuid.UUID, values map[string]string) error

	Values map[uuid.UUID]map[string]string
}

var _ store.SettingsStore = (*SettingsStore)(nil)

func (m *SettingsStore) GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx, userID)
	}
	values := make(map[string]string, len(m.Values[userID]))
	for k, v := range m.Values[userID] {
		values[k] = v
	}
	return values, nil
}

func (m *SettingsStore) Set(ctx context.Context, userID uuid.UUID, key, value string) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, userID, key, value)
	}
	m.set(userID, map[string]string{key: value})
	return nil
}

func (m *SettingsStore) SetMany(ctx context.Context, userID uuid.UUID, values map[string]string) error {
	if m.SetManyFn != nil {
		return m.SetManyFn(ctx, userID, values)
	}
	m.set(userID, values)
	return nil
}

func (m *SettingsStore) set(userID uuid.UUID, values map[string]string) {
	if m.Values == nil {
		m.Values = make(map[uuid.UUID]map[string]string)
	}
	if m.Values[userID] == nil {
		m.Values[userID] = make(map[string]string)
	}
	for k, v := range values {
		m.Values[userID][k] = v
	}
}

func (m *SettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return m
}
