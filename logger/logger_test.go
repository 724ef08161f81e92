package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaweb/tienda/config"
)

func TestLevelFromConfig(t *testing.T) {
	tests := []struct {
		in   config.LogLevel
		want logging.Level
	}{
		{config.Debug, logging.DEBUG},
		{config.Info, logging.INFO},
		{config.Notice, logging.NOTICE},
		{config.Warn, logging.WARNING},
		{config.Error, logging.ERROR},
	}
	for _, tt := range tests {
		got, err := LevelFromConfig(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := LevelFromConfig("loud")
	assert.Error(t, err)
}

func TestFileBackendWritesDebug(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIENDA_LOG_FOLDER", dir)

	InitLogger(logging.ERROR)
	defer CloseLogger()

	Debugf("article %d saved", 7)

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "DEBUG - article 7 saved"))
}
