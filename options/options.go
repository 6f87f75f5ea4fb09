// Package options provides the set of options that configure one invocation of the buck
// project command.
package options

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/util"
)

const (
	// DefaultBuildFileName is the name of the build files the bundled parser discovers.
	DefaultBuildFileName = "BUCK.hcl"

	// DefaultConfigFileName is the per-checkout config override file mentioned in user
	// facing hints.
	DefaultConfigFileName = ".buckconfig.local"

	// DefaultBuildCommand is the executable invoked to build required targets.
	DefaultBuildCommand = "buck-build"

	defaultLogLevel = logrus.InfoLevel
)

// IDE selects which project generator family the command drives.
type IDE string

const (
	IDEIntelliJ IDE = "intellij"
	IDEXcode    IDE = "xcode"
)

// ParseIDE parses the --ide flag value.
func ParseIDE(str string) (IDE, error) {
	switch IDE(str) {
	case IDEIntelliJ, IDEXcode:
		return IDE(str), nil
	default:
		return "", InvalidIDEError{Value: str}
	}
}

// InvalidIDEError is a user-input error for an unrecognized --ide value.
type InvalidIDEError struct {
	Value string
}

func (err InvalidIDEError) Error() string {
	return fmt.Sprintf("unrecognized ide %q: must be one of %q or %q", err.Value, IDEIntelliJ, IDEXcode)
}

// ProjectOptions represents options that configure the behavior of one project command
// invocation.
type ProjectOptions struct {
	// The directory the command runs in; build files are discovered below it.
	WorkingDir string

	// Name of the build files to discover, e.g. BUCK.hcl.
	BuildFileName string

	// Which IDE to generate projects for.
	IDE IDE

	// The targets passed on the command line, already parsed into labels. When non-empty
	// they override predicate-derived project roots.
	ExplicitTargets []graph.TargetID

	// Whether associated tests should be pulled into project scope.
	WithTests bool

	// Whether to generate one combined project instead of separate per-workspace projects.
	CombinedProject bool

	// Whether groupable tests should be combined into shared test bundles.
	CombineTestBundles bool

	// Whether generated project files should be written read-only.
	ReadOnly bool

	// Whether to prompt before killing a running IDE that holds project files open.
	IDEPrompt bool

	// Whether to seed annotation-processing targets into the post-generation build.
	ProcessAnnotations bool

	// When set, print the resolved scope instead of generating or building anything.
	DryRun bool

	// Whether to report scratch output locations instead of cleaning them up.
	Verbose bool

	// Whether we should prompt the user for confirmation or always assume "no".
	NonInteractive bool

	// Path to the default manifest used when a project configuration does not declare one.
	DefaultManifestPath string

	// Path to a script run over the generated flat project output.
	PostProcessScriptPath string

	// Aliases from package base paths to short project names, used in flat generation.
	BasePathToAliases map[string]string

	// The executable the scoped build trigger invokes.
	BuildCommand string

	// Environment variables for spawned processes.
	Env map[string]string

	LogLevel logrus.Level

	Logger *logrus.Entry

	// Console output destination.
	Writer io.Writer

	// Diagnostics output destination.
	ErrWriter io.Writer
}

// NewProjectOptions creates project options with defaults for running in the given
// working directory.
func NewProjectOptions(workingDir string) *ProjectOptions {
	return &ProjectOptions{
		WorkingDir:        workingDir,
		BuildFileName:     DefaultBuildFileName,
		IDE:               IDEIntelliJ,
		IDEPrompt:         true,
		BasePathToAliases: map[string]string{},
		BuildCommand:      DefaultBuildCommand,
		Env:               map[string]string{},
		LogLevel:          defaultLogLevel,
		Logger:            util.CreateLogEntry("", defaultLogLevel, os.Stderr),
		Writer:            os.Stdout,
		ErrWriter:         os.Stderr,
	}
}

// NewProjectOptionsForTest creates project options suitable for unit tests: non-interactive,
// debug logging, console output discarded unless the test overrides the writers.
func NewProjectOptionsForTest(workingDir string) *ProjectOptions {
	opts := NewProjectOptions(workingDir)
	opts.NonInteractive = true
	opts.LogLevel = logrus.DebugLevel
	opts.Logger = util.CreateLogEntry("test", logrus.DebugLevel, io.Discard)
	opts.Writer = io.Discard
	opts.ErrWriter = io.Discard

	return opts
}

// Clone creates a copy of these options. List and map valued fields are copied so the
// clone can be modified independently.
func (opts *ProjectOptions) Clone() *ProjectOptions {
	out := *opts

	out.ExplicitTargets = append([]graph.TargetID(nil), opts.ExplicitTargets...)

	out.BasePathToAliases = make(map[string]string, len(opts.BasePathToAliases))
	for key, value := range opts.BasePathToAliases {
		out.BasePathToAliases[key] = value
	}

	out.Env = make(map[string]string, len(opts.Env))
	for key, value := range opts.Env {
		out.Env[key] = value
	}

	return &out
}
