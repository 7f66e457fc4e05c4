package database

import "time"

// Pool defaults
const (
	DefaultMinConnections = 2
	DefaultMaxConnections = 10
	DefaultMaxIdleTime    = 5 * time.Minute
	DefaultMaxLifetime    = 30 * time.Minute
)

// Error message constants
const (
	ErrMsgParseConnString = "failed to parse database connection string"
	ErrMsgCreatePool      = "failed to open connection pool"
	ErrMsgPingDatabase    = "failed to ping database"
)

// Log message constants
const (
	LogMsgDatabaseConnected = "Connected to database"
)
