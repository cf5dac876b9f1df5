package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dualpick.log")
	logger, err := New(Options{Verbose: true, File: path})
	require.NoError(t, err)

	logger.Debug("picker attached")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "picker attached")
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, OrNop(nil))
}
