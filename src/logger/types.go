// FILE: arsenic/src/logger/types.go
package logger

import (
	"arsenic/src/internal/config"
	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"
	"arsenic/src/internal/sink"
	"arsenic/src/internal/stack"
	"arsenic/src/internal/usage"
)

// Level is a log severity
type Level = core.Level

const (
	LevelLog       = core.LevelLog
	LevelDebug     = core.LevelDebug
	LevelInfo      = core.LevelInfo
	LevelWarn      = core.LevelWarn
	LevelError     = core.LevelError
	LevelFatal     = core.LevelFatal
	LevelException = core.LevelException
)

// ParseLevel converts a level name into a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

type (
	Frame           = core.Frame
	Settings        = core.Settings
	FilterOptions   = filter.Options
	Config          = config.Config
	LogConfig       = config.LogConfig
	SinkConfig      = config.SinkConfig
	ConsoleOptions  = config.ConsoleOptions
	FileOptions     = config.FileOptions
	NetworkOptions  = config.NetworkOptions
	HTTPOptions     = config.HTTPOptions
	TLSClientConfig = config.TLSClientConfig
	SinkStats       = sink.SinkStats
	StackCapturer   = stack.Capturer
	UsageSampler    = usage.Sampler
	UsageSnapshot   = usage.Snapshot
)

// Sink kinds accepted by DisableSink
const (
	SinkConsole = "console"
	SinkFile    = "file"
	SinkNetwork = "network"
	SinkHTTP    = "http"
)
