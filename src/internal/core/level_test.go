// FILE: arsenic/src/internal/core/level_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected Level
	}{
		{"log", LevelLog},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"exception", LevelException},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseLevel("verbose")
		assert.Error(t, err)
	})
}

func TestLevel_Rank(t *testing.T) {
	assert.Equal(t, 0, LevelLog.Rank())
	assert.Equal(t, 3, LevelWarn.Rank())
	assert.Equal(t, LevelFatal.Rank(), LevelException.Rank())
}

func TestSettings_Allows(t *testing.T) {
	s := DefaultSettings()
	s.MinLevel = LevelWarn

	assert.False(t, s.Allows(LevelInfo))
	assert.True(t, s.Allows(LevelWarn))
	assert.True(t, s.Allows(LevelException))

	t.Run("GlobalLevelOverrides", func(t *testing.T) {
		global := LevelDebug
		s.GlobalMinLevel = &global
		assert.True(t, s.Allows(LevelDebug))
		assert.False(t, s.Allows(LevelLog))
	})
}

func TestSettings_ResolveTags(t *testing.T) {
	s := DefaultSettings()
	assert.Nil(t, s.ResolveTags(nil))

	s.Tag = "api"
	assert.Equal(t, []string{"api"}, s.ResolveTags(nil))
	assert.Equal(t, []string{"db"}, s.ResolveTags([]string{"db"}))
}
