// Package config provides configuration loading and defaults for focuswatch.
package config

// DefaultConfigDir is the default location for focuswatch configuration
// and data.
const DefaultConfigDir = "~/.config/focuswatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "focuswatch.db"

// DefaultUsername is the profile name before one is set.
const DefaultUsername = "User"

// DefaultDailyGoalSeconds is the study time that counts as a fully met day:
// three hours.
const DefaultDailyGoalSeconds = 10800

// DefaultRolloverInterval is how often the run loop re-checks the daily
// rollover. Must stay at a minute or less so sessions spanning midnight
// fold promptly.
const DefaultRolloverInterval = "1m"

// DefaultBucketThresholds are the ascending second boundaries between
// heatmap intensity buckets: one per full hour of study up to five hours.
var DefaultBucketThresholds = []int{3600, 7200, 10800, 14400, 18000}

// DefaultLevels is the built-in level-title ladder. Overridable in
// config.yaml under "levels".
var DefaultLevels = []LevelTitle{
	{MinLevel: 1, Title: "Novice", Color: "muted"},
	{MinLevel: 5, Title: "Apprentice", Color: "primary"},
	{MinLevel: 10, Title: "Scholar", Color: "primary"},
	{MinLevel: 20, Title: "Adept", Color: "success"},
	{MinLevel: 35, Title: "Expert", Color: "success"},
	{MinLevel: 50, Title: "Master", Color: "warning"},
	{MinLevel: 75, Title: "Sage", Color: "warning"},
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
