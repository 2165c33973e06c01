// Package config provides configuration loading and defaults for rhythmtrack.
package config

// DefaultConfigDir is the default location for rhythmtrack configuration.
const DefaultConfigDir = "~/.config/rhythmtrack"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "rhythmtrack.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultTimezone is the zone new rhythms default to. "Local" means the
// process-local zone.
const DefaultTimezone = "Local"

// DefaultGoalMinutes is the per-day goal applied when `rhythm add` is
// given no explicit goal.
const DefaultGoalMinutes = 15

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
