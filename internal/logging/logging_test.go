package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		enabled     zap.AtomicLevel
	}{
		{"info", false, zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"debug", true, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"WARN", false, zap.NewAtomicLevelAt(zap.WarnLevel)},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, tt.development)
		require.NoError(t, err, tt.level)
		assert.True(t, logger.Core().Enabled(tt.enabled.Level()))
		assert.False(t, logger.Core().Enabled(tt.enabled.Level()-1))
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}
