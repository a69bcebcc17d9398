package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/store"
)

// Setting keys as stored in the settings table. List-valued settings are
// serialized as JSON arrays.
const (
	keyWorkMinutes           = "work_minutes"
	keyShortBreakMinutes     = "short_break_minutes"
	keyLongBreakMinutes      = "long_break_minutes"
	keyCyclesBeforeLongBreak = "cycles_before_long_break"
	keyFocusModeEnabled      = "focus_mode_enabled"
	keyAllowedApps           = "allowed_apps"
	keyReviewsEnabled        = "reviews_enabled"
	keyReviewIntervals       = "review_intervals"
	keyDefaultReviewCount    = "default_review_count"
	keyNotificationsEnabled  = "notifications_enabled"
)

// SettingsService resolves the per-user study configuration from the
// settings store. Missing or malformed values silently degrade to the
// documented defaults (logged, never surfaced): a broken interval list
// falls back to the full default interval list, a broken allowed-apps
// list to an empty list.
type SettingsService struct {
	settings store.SettingsStore
	logger   *slog.Logger
}

// NewSettingsService creates a SettingsService.
// If logger is nil, a default logger will be used.
func NewSettingsService(settings store.SettingsStore, logger *slog.Logger) *SettingsService {
	if settings == nil {
		panic("settings store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsService{
		settings: settings,
		logger:   logger.With(slog.String("component", "settings_service")),
	}
}

// Get resolves the effective settings of a user, applying defaults for
// every absent or unparseable key.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (domain.Settings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.settings.GetAll(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}

	resolved := domain.DefaultSettings()
	resolved.WorkMinutes = s.parseInt(log, raw, keyWorkMinutes, resolved.WorkMinutes)
	resolved.ShortBreakMinutes = s.parseInt(log, raw, keyShortBreakMinutes, resolved.ShortBreakMinutes)
	resolved.LongBreakMinutes = s.parseInt(log, raw, keyLongBreakMinutes, resolved.LongBreakMinutes)
	resolved.CyclesBeforeLongBreak = s.parseInt(log, raw, keyCyclesBeforeLongBreak, resolved.CyclesBeforeLongBreak)
	resolved.DefaultReviewCount = s.parseInt(log, raw, keyDefaultReviewCount, resolved.DefaultReviewCount)
	resolved.FocusModeEnabled = s.parseBool(log, raw, keyFocusModeEnabled, resolved.FocusModeEnabled)
	resolved.ReviewsEnabled = s.parseBool(log, raw, keyReviewsEnabled, resolved.ReviewsEnabled)
	resolved.NotificationsEnabled = s.parseBool(log, raw, keyNotificationsEnabled, resolved.NotificationsEnabled)

	// Fallback for a malformed interval list is the full default list,
	// not an empty one; premium truncation happens downstream.
	resolved.ReviewIntervals = s.parseIntList(log, raw, keyReviewIntervals, domain.DefaultReviewIntervals())
	resolved.AllowedApps = s.parseStringList(log, raw, keyAllowedApps, []string{})

	return resolved, nil
}

// Update persists the full settings of a user in one all-or-nothing
// write; a storage failure leaves every previous value intact.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, settings domain.Settings) error {
	intervals, err := json.Marshal(settings.ReviewIntervals)
	if err != nil {
		return domain.NewFieldError("review_intervals", "failed to encode interval list")
	}
	apps, err := json.Marshal(settings.AllowedApps)
	if err != nil {
		return domain.NewFieldError("allowed_apps", "failed to encode allowed apps")
	}

	values := map[string]string{
		keyWorkMinutes:           strconv.Itoa(settings.WorkMinutes),
		keyShortBreakMinutes:     strconv.Itoa(settings.ShortBreakMinutes),
		keyLongBreakMinutes:      strconv.Itoa(settings.LongBreakMinutes),
		keyCyclesBeforeLongBreak: strconv.Itoa(settings.CyclesBeforeLongBreak),
		keyDefaultReviewCount:    strconv.Itoa(settings.DefaultReviewCount),
		keyFocusModeEnabled:      strconv.FormatBool(settings.FocusModeEnabled),
		keyReviewsEnabled:        strconv.FormatBool(settings.ReviewsEnabled),
		keyNotificationsEnabled:  strconv.FormatBool(settings.NotificationsEnabled),
		keyReviewIntervals:       string(intervals),
		keyAllowedApps:           string(apps),
	}

	return s.settings.SetMany(ctx, userID, values)
}

func (s *SettingsService) parseInt(log *slog.Logger, raw map[string]string, key string, fallback int) int {
	value, ok := raw[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Warn("malformed setting, using default",
			"key", key,
			"value", value,
			"default", fallback)
		return fallback
	}
	return n
}

func (s *SettingsService) parseBool(log *slog.Logger, raw map[string]string, key string, fallback bool) bool {
	value, ok := raw[key]
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("malformed setting, using default",
			"key", key,
			"value", value,
			"default", fallback)
		return fallback
	}
	return b
}

func (s *SettingsService) parseIntList(log *slog.Logger, raw map[string]string, key string, fallback []int) []int {
	value, ok := raw[key]
	if !ok {
		return fallback
	}
	var list []int
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		log.Warn("malformed list setting, using default",
			"key", key,
			"value", value)
		return fallback
	}
	for _, n := range list {
		if n < 1 {
			log.Warn("non-positive interval in setting, using default",
				"key", key,
				"value", value)
			return fallback
		}
	}
	return list
}

func (s *SettingsService) parseStringList(log *slog.Logger, raw map[string]string, key string, fallback []string) []string {
	value, ok := raw[key]
	if !ok {
		return fallback
	}
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		log.Warn("malformed list setting, using default",
			"key", key,
			"value", value)
		return fallback
	}
	return list
}
