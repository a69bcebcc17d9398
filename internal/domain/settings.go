package domain

// Default values applied when a setting is absent or fails to parse.
const (
	DefaultWorkMinutes           = 25
	DefaultShortBreakMinutes     = 5
	DefaultLongBreakMinutes      = 15
	DefaultCyclesBeforeLongBreak = 4
	DefaultReviewCount           = 6
)

// DefaultReviewIntervals is the full review-interval list in days. It is
// both the premium interval list and the fallback when a stored interval
// list fails to parse.
func DefaultReviewIntervals() []int {
	return []int{1, 3, 7, 14, 30, 60}
}

// Settings holds the per-user study configuration, read at call time by
// the session and review services. Values originate from the settings
// store with documented fallbacks for missing or malformed entries.
type Settings struct {
	WorkMinutes           int      `json:"work_minutes"`
	ShortBreakMinutes     int      `json:"short_break_minutes"`
	LongBreakMinutes      int      `json:"long_break_minutes"`
	CyclesBeforeLongBreak int      `json:"cycles_before_long_break"`
	FocusModeEnabled      bool     `json:"focus_mode_enabled"`
	AllowedApps           []string `json:"allowed_apps"`
	ReviewsEnabled        bool     `json:"reviews_enabled"`
	ReviewIntervals       []int    `json:"review_intervals"`
	DefaultReviewCount    int      `json:"default_review_count"`
	NotificationsEnabled  bool     `json:"notifications_enabled"`
}

// DefaultSettings returns the settings applied to a user with no stored
// configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:           DefaultWorkMinutes,
		ShortBreakMinutes:     DefaultShortBreakMinutes,
		LongBreakMinutes:      DefaultLongBreakMinutes,
		CyclesBeforeLongBreak: DefaultCyclesBeforeLongBreak,
		FocusModeEnabled:      false,
		AllowedApps:           []string{},
		ReviewsEnabled:        true,
		ReviewIntervals:       DefaultReviewIntervals(),
		DefaultReviewCount:    DefaultReviewCount,
		NotificationsEnabled:  true,
	}
}
