package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hu19891110/buck/process"
)

func TestIsRunningReportsFalseForUnknownProcess(t *testing.T) {
	t.Parallel()

	manager, err := process.NewManager()
	require.NoError(t, err)

	running, err := manager.IsRunning("definitely-not-a-real-process-name")
	require.NoError(t, err)

	assert.False(t, running)
}

func TestKillUnknownProcessFails(t *testing.T) {
	t.Parallel()

	manager, err := process.NewManager()
	require.NoError(t, err)

	err = manager.Kill("definitely-not-a-real-process-name")
	require.Error(t, err)

	var noProcErr process.NoSuchProcessError
	require.ErrorAs(t, err, &noProcErr)
	assert.Equal(t, "definitely-not-a-real-process-name", noProcErr.Name)
}
