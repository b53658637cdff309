package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultIsNop(t *testing.T) {
	Set(nil)
	l := L()
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestSet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Named("binding").Info("initialized", zap.String("backend", "go"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "binding", entries[0].LoggerName)
	assert.Equal(t, "initialized", entries[0].Message)
	assert.Equal(t, "go", entries[0].ContextMap()["backend"])
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		wantErr bool
	}{
		{"production", Config{Level: "warn"}, zapcore.WarnLevel, false},
		{"development", Config{Level: "debug", Development: true}, zapcore.DebugLevel, false},
		{"bad level", Config{Level: "loud"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}
