// internal/config/constants.go
package config

const (
	AppName    = "tzbi-vo"
	AppVersion = "0.3.1"
)

const (
	DefaultServerPort           = ":8080"
	DefaultLogLevel             = "info"
	DefaultDatabasePath         = "tzbivo.db"
	DefaultRemoteTimeoutSeconds = 10
	DefaultDebounceMS           = 1500
	DefaultDrainIntervalSeconds = 30
	DefaultAdvanceDelayMS       = 400
	DefaultHeatmapWindowDays    = 90
)
