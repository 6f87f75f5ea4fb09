package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/options"
)

// Prompt the user for text in the CLI. Returns the text entered by the user.
func PromptUserForInput(prompt string, opts *options.ProjectOptions) (string, error) {
	fmt.Fprint(opts.Writer, prompt)

	reader := bufio.NewReader(os.Stdin)

	text, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	return strings.TrimSpace(text), nil
}

// Prompt the user for a yes/no response and return true if they entered yes. An empty
// response counts as the given default, so prompts can advertise "[Y/n]" semantics.
func PromptUserForYesNo(prompt string, defaultYes bool, opts *options.ProjectOptions) (bool, error) {
	suffix := " [y/N] "
	if defaultYes {
		suffix = " [Y/n] "
	}

	resp, err := PromptUserForInput(prompt+suffix, opts)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(resp) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
