package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// Riot match-v5 caps a single matchlist page at 20 ids.
	MaxSyncLimit     = 20
	DefaultSyncLimit = 5
	RankedSoloQueue  = 420
)

const (
	DefaultRecentLimit = 10
	NemesisLimit       = 5
)

// Reference session policy, overridable through config.
const (
	DefaultStreakWindow    = 3
	DefaultStopThreshold   = 2
	DefaultNemesisMinGames = 2
)
