package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
)

func TestParseIDE(t *testing.T) {
	t.Parallel()

	ide, err := options.ParseIDE("intellij")
	require.NoError(t, err)
	assert.Equal(t, options.IDEIntelliJ, ide)

	ide, err = options.ParseIDE("xcode")
	require.NoError(t, err)
	assert.Equal(t, options.IDEXcode, ide)

	_, err = options.ParseIDE("eclipse")
	require.Error(t, err)

	var invalidErr options.InvalidIDEError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "eclipse", invalidErr.Value)
}

func TestNewProjectOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := options.NewProjectOptions("/repo")

	assert.Equal(t, "/repo", opts.WorkingDir)
	assert.Equal(t, options.DefaultBuildFileName, opts.BuildFileName)
	assert.Equal(t, options.DefaultBuildCommand, opts.BuildCommand)
	assert.Equal(t, options.IDEIntelliJ, opts.IDE)
	assert.True(t, opts.IDEPrompt)
	assert.NotNil(t, opts.Logger)
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	t.Parallel()

	opts := options.NewProjectOptionsForTest("/repo")
	opts.ExplicitTargets = []graph.TargetID{"//app:app"}
	opts.BasePathToAliases["app"] = "App"
	opts.Env["PATH"] = "/usr/bin"

	clone := opts.Clone()
	clone.ExplicitTargets[0] = "//other:other"
	clone.ExplicitTargets = append(clone.ExplicitTargets, "//more:more")
	clone.BasePathToAliases["app"] = "Other"
	clone.Env["PATH"] = "/opt/bin"

	assert.Equal(t, []graph.TargetID{"//app:app"}, opts.ExplicitTargets)
	assert.Equal(t, "App", opts.BasePathToAliases["app"])
	assert.Equal(t, "/usr/bin", opts.Env["PATH"])
}
