package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/mocks"
)

func TestSettingsGetDefaultsWhenEmpty(t *testing.T) {
	t.Parallel()

	svc := NewSettingsService(&mocks.SettingsStore{}, nil)

	settings, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsGetParsesStoredValues(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	store := &mocks.SettingsStore{
		Values: map[uuid.UUID]map[string]string{
			userID: {
				"work_minutes":         "50",
				"short_break_minutes":  "10",
				"reviews_enabled":      "false",
				"review_intervals":     "[2,4,8]",
				"default_review_count": "3",
				"allowed_apps":         `["anki","notion"]`,
			},
		},
	}
	svc := NewSettingsService(store, nil)

	settings, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 50, settings.WorkMinutes)
	assert.Equal(t, 10, settings.ShortBreakMinutes)
	assert.False(t, settings.ReviewsEnabled)
	assert.Equal(t, []int{2, 4, 8}, settings.ReviewIntervals)
	assert.Equal(t, 3, settings.DefaultReviewCount)
	assert.Equal(t, []string{"anki", "notion"}, settings.AllowedApps)
}

func TestSettingsGetMalformedValuesFallBack(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	store := &mocks.SettingsStore{
		Values: map[uuid.UUID]map[string]string{
			userID: {
				"work_minutes":     "a lot",
				"reviews_enabled":  "sometimes",
				"review_intervals": "{not json}",
				"allowed_apps":     "also not json",
			},
		},
	}
	svc := NewSettingsService(store, nil)

	settings, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWorkMinutes, settings.WorkMinutes)
	assert.True(t, settings.ReviewsEnabled)
	// A broken interval list degrades to the full default ladder.
	assert.Equal(t, domain.DefaultReviewIntervals(), settings.ReviewIntervals)
	assert.Empty(t, settings.AllowedApps)
}

func TestSettingsGetRejectsNonPositiveIntervals(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	store := &mocks.SettingsStore{
		Values: map[uuid.UUID]map[string]string{
			userID: {"review_intervals": "[1,0,7]"},
		},
	}
	svc := NewSettingsService(store, nil)

	settings, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReviewIntervals(), settings.ReviewIntervals)
}

func TestSettingsUpdateRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	store := &mocks.SettingsStore{}
	svc := NewSettingsService(store, nil)

	want := domain.DefaultSettings()
	want.WorkMinutes = 45
	want.ReviewIntervals = []int{1, 2}
	want.AllowedApps = []string{"calculator"}
	want.NotificationsEnabled = false

	require.NoError(t, svc.Update(context.Background(), userID, want))

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
