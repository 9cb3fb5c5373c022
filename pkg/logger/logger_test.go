package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewBuildsASugaredLogger(t *testing.T) {
	log, err := New("dictstring-test", zapcore.InfoLevel)
	require.NoError(t, err)
	require.NotNil(t, log)

	log.Infow("probe", "k", "v")
}

func TestNewNopDiscardsEverything(t *testing.T) {
	log := NewNop()
	require.NotNil(t, log)
	log.Infow("this goes nowhere")
}
