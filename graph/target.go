// Package graph defines the build target data model: target labels, immutable target
// nodes, the immutable target graph produced by one parse, and the target specs used to
// request a parse.
package graph

import (
	"fmt"
	"strings"

	"github.com/hu19891110/buck/errors"
)

// TargetID is the canonical label of a build target, e.g. "//app/lib:lib". IDs are plain
// ordered strings so that sets of them can be sorted for reproducible output.
type TargetID string

func (id TargetID) String() string {
	return string(id)
}

// BasePath returns the package path portion of the label, e.g. "app/lib" for "//app/lib:lib".
func (id TargetID) BasePath() string {
	label := strings.TrimPrefix(string(id), "//")
	if i := strings.LastIndex(label, ":"); i >= 0 {
		return label[:i]
	}

	return label
}

// ShortName returns the target name portion of the label, e.g. "lib" for "//app/lib:lib".
func (id TargetID) ShortName() string {
	if i := strings.LastIndex(string(id), ":"); i >= 0 {
		return string(id)[i+1:]
	}

	return string(id)
}

// ParseTargetID parses a fully-qualified target label of the form "//path/to/package:name".
func ParseTargetID(label string) (TargetID, error) {
	if !strings.HasPrefix(label, "//") {
		return "", errors.WithStackTrace(InvalidTargetLabelError{Label: label, Reason: "must start with //"})
	}

	rest := strings.TrimPrefix(label, "//")
	if strings.Count(rest, ":") != 1 {
		return "", errors.WithStackTrace(InvalidTargetLabelError{Label: label, Reason: "must contain exactly one ':' separating package and name"})
	}

	name := rest[strings.Index(rest, ":")+1:]
	if name == "" {
		return "", errors.WithStackTrace(InvalidTargetLabelError{Label: label, Reason: "target name must not be empty"})
	}

	return TargetID(label), nil
}

// ParseTargetIDs parses each of the given labels, failing on the first invalid one.
func ParseTargetIDs(labels []string) ([]TargetID, error) {
	ids := make([]TargetID, 0, len(labels))

	for _, label := range labels {
		id, err := ParseTargetID(label)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// InvalidTargetLabelError is returned when a target label does not follow the
// "//package/path:name" form.
type InvalidTargetLabelError struct {
	Label  string
	Reason string
}

func (err InvalidTargetLabelError) Error() string {
	return fmt.Sprintf("invalid target label %q: %s", err.Label, err.Reason)
}
