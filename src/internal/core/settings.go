// FILE: arsenic/src/internal/core/settings.go
package core

// Settings is the per-logger configuration consulted on every log call.
type Settings struct {
	MinLevel         Level
	GlobalMinLevel   *Level
	Tag              string
	MaxDepth         int
	Timestamps       bool
	TimestampPattern string
	Locale           string
	EchoMemory       bool
	EchoCPU          bool
	Colorize         bool
	FatalExits       bool
}

// DefaultSettings mirrors the library defaults: everything from debug up, timestamps on.
func DefaultSettings() Settings {
	return Settings{
		MinLevel:         LevelDebug,
		MaxDepth:         DefaultMaxDepth,
		Timestamps:       true,
		TimestampPattern: DefaultTimestampPattern,
		Locale:           DefaultLocale,
		Colorize:         true,
	}
}

// EffectiveMinimum returns the rank entries must reach; the global level wins when set.
func (s *Settings) EffectiveMinimum() int {
	if s.GlobalMinLevel != nil {
		return s.GlobalMinLevel.Rank()
	}
	return s.MinLevel.Rank()
}

// Allows reports whether an entry at level passes the threshold.
func (s *Settings) Allows(level Level) bool {
	return level.Rank() >= s.EffectiveMinimum()
}

// ResolveTags returns the entry tags, falling back to the default tag.
func (s *Settings) ResolveTags(tags []string) []string {
	if len(tags) > 0 {
		return tags
	}
	if s.Tag != "" {
		return []string{s.Tag}
	}
	return nil
}
