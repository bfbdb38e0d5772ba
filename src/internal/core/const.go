// FILE: arsenic/src/internal/core/const.go
package core

import "time"

// Frame window defaults
const (
	DefaultStartDepth   = 3
	ExceptionStartDepth = 4
	DefaultMaxDepth     = 3
)

// Timestamp defaults
const (
	DefaultTimestampPattern = "Mon Jan 02 3:04:05 2006"
	DefaultLocale           = "en"
)

// Stream sink defaults
const (
	DefaultReconnectDelay      = 1000 * time.Millisecond
	DefaultMaxReconnectDelay   = 6000 * time.Millisecond
	DefaultAttemptsBeforeDecay = 5
	DefaultMaximumAttempts     = 25
	DefaultMaxBufferSize       = 1 * 1024 * 1024 // 1MiB
	DefaultKeepAlive           = 15 * time.Second
	DefaultDialTimeout         = 10 * time.Second
	DefaultWriteTimeout        = 30 * time.Second
	DefaultStreamQueueSize     = 1000
)

// HTTP sink defaults
const (
	DefaultHTTPURL       = "http://logger.arsenicsoup.com/api/log"
	DefaultHTTPTimeout   = 1000 * time.Millisecond
	DefaultHTTPAttempts  = 3
	DefaultHTTPQueueSize = 1000
)

// Serializer wrap width for structured arguments
const DefaultWrapWidth = 60
