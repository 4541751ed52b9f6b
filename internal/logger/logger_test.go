package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env          string
		debugEnabled bool
	}{
		{"development", true},
		{"production", false},
		{"", true}, // anything non-production logs at debug
	}

	for _, tc := range tests {
		t.Run("env="+tc.env, func(t *testing.T) {
			log := New(tc.env)
			assert.NotNil(t, log)
			assert.Equal(t, tc.debugEnabled, log.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
