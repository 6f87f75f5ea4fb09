// Package config discovers and parses build files, resolving requested target specs into
// an immutable target graph. It is the bundled parser behind the project command; the
// orchestration core only depends on the parser contract, so another target universe
// source can be swapped in.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gruntwork-io/go-commons/collections"
	"github.com/hashicorp/go-version"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	zglob "github.com/mattn/go-zglob"
	"github.com/zclconf/go-cty/cty"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
)

// MaxSupportedSchemaVersion is the newest build-file schema this parser understands.
const MaxSupportedSchemaVersion = "1.0"

const (
	targetBlockName       = "target"
	schemaVersionAttrName = "schema_version"
)

var buildFileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: schemaVersionAttrName, Required: false},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: targetBlockName, LabelNames: []string{"kind", "name"}},
	},
}

// Parser parses the build files below a working directory into target graphs. Parsing has
// no hidden state: the same specs over the same files always produce the same node set.
type Parser struct {
	opts *options.ProjectOptions
}

func NewParser(opts *options.ProjectOptions) *Parser {
	return &Parser{opts: opts}
}

// Parse discovers and parses every build file, then resolves the given specs against the
// parsed universe: an all-targets spec selects every node, an explicit spec selects the
// named target and its transitive dependencies. Fails with a parse error when a build file
// is malformed and with an unresolved-target error when a spec or dependency names a
// target no build file defines.
func (parser *Parser) Parse(specs []graph.TargetSpec) (*graph.TargetGraph, error) {
	universe, err := parser.parseUniverse()
	if err != nil {
		return nil, err
	}

	nodes, err := resolveSpecs(universe, specs)
	if err != nil {
		return nil, err
	}

	result, err := graph.NewTargetGraph(nodes)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	parser.opts.Logger.Debugf("Parsed %d of %d known targets for specs %v", result.Size(), len(universe), specs)

	return result, nil
}

func (parser *Parser) parseUniverse() (map[graph.TargetID]*graph.TargetNode, error) {
	buildFiles, err := parser.findBuildFiles()
	if err != nil {
		return nil, err
	}

	hclParser := hclparse.NewParser()
	universe := map[graph.TargetID]*graph.TargetNode{}

	for _, buildFile := range buildFiles {
		nodes, err := parser.parseBuildFile(hclParser, buildFile)
		if err != nil {
			return nil, err
		}

		for _, node := range nodes {
			if _, ok := universe[node.ID()]; ok {
				return nil, errors.WithStackTrace(graph.DuplicateTargetError{Target: node.ID()})
			}

			universe[node.ID()] = node
		}
	}

	return universe, nil
}

func (parser *Parser) findBuildFiles() ([]string, error) {
	pattern := filepath.Join(parser.opts.WorkingDir, "**", parser.opts.BuildFileName)

	matches, err := zglob.Glob(pattern)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "error discovering build files with pattern %s", pattern)
	}

	rootBuildFile := filepath.Join(parser.opts.WorkingDir, parser.opts.BuildFileName)
	if _, err := os.Stat(rootBuildFile); err == nil && !collections.ListContainsElement(matches, rootBuildFile) {
		matches = append(matches, rootBuildFile)
	}

	sort.Strings(matches)

	return matches, nil
}

func (parser *Parser) parseBuildFile(hclParser *hclparse.Parser, path string) ([]*graph.TargetNode, error) {
	file, diags := hclParser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: diags})
	}

	content, diags := file.Body.Content(buildFileSchema)
	if diags.HasErrors() {
		return nil, errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: diags})
	}

	if err := parser.checkSchemaVersion(path, content); err != nil {
		return nil, err
	}

	basePath, err := parser.basePathOf(path)
	if err != nil {
		return nil, err
	}

	var nodes []*graph.TargetNode

	for _, block := range content.Blocks {
		node, err := decodeTargetBlock(path, basePath, block)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

func (parser *Parser) checkSchemaVersion(path string, content *hcl.BodyContent) error {
	attr, ok := content.Attributes[schemaVersionAttrName]
	if !ok {
		return nil
	}

	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || value.Type() != cty.String {
		return errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: diags})
	}

	declared, err := version.NewVersion(value.AsString())
	if err != nil {
		return errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: err})
	}

	maxSupported := version.Must(version.NewVersion(MaxSupportedSchemaVersion))
	if declared.GreaterThan(maxSupported) {
		return errors.WithStackTrace(UnsupportedSchemaVersionError{Path: path, Declared: declared.String()})
	}

	return nil
}

func (parser *Parser) basePathOf(buildFilePath string) (string, error) {
	rel, err := filepath.Rel(parser.opts.WorkingDir, filepath.Dir(buildFilePath))
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}

	return rel, nil
}

// resolveSpecs computes the node set for the requested specs: the full universe when an
// all-targets spec is present, otherwise the transitive dependency closure of the
// explicitly named targets.
func resolveSpecs(universe map[graph.TargetID]*graph.TargetNode, specs []graph.TargetSpec) ([]*graph.TargetNode, error) {
	for _, spec := range specs {
		if _, ok := spec.(graph.AllTargetsSpec); ok {
			nodes := make([]*graph.TargetNode, 0, len(universe))
			for _, node := range universe {
				nodes = append(nodes, node)
			}

			return nodes, nil
		}
	}

	included := map[graph.TargetID]*graph.TargetNode{}

	var frontier []graph.TargetID

	for _, spec := range specs {
		explicit, ok := spec.(graph.ExplicitTargetSpec)
		if !ok {
			return nil, errors.Errorf("unsupported target spec %s", spec)
		}

		frontier = append(frontier, explicit.Target)
	}

	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]

		if _, ok := included[id]; ok {
			continue
		}

		node, ok := universe[id]
		if !ok {
			return nil, errors.WithStackTrace(graph.TargetNotFoundError{Target: id})
		}

		included[id] = node
		frontier = append(frontier, node.Deps()...)
	}

	nodes := make([]*graph.TargetNode, 0, len(included))
	for _, node := range included {
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// BuildFileParseError is a fatal error parsing one build file.
type BuildFileParseError struct {
	Path       string
	Underlying error
}

func (err BuildFileParseError) Error() string {
	return fmt.Sprintf("error parsing build file %s: %v", err.Path, err.Underlying)
}

func (err BuildFileParseError) Unwrap() error {
	return err.Underlying
}

// UnsupportedSchemaVersionError is returned when a build file declares a schema version
// newer than this binary understands.
type UnsupportedSchemaVersionError struct {
	Path     string
	Declared string
}

func (err UnsupportedSchemaVersionError) Error() string {
	return fmt.Sprintf(
		"build file %s declares schema version %s, but this binary supports at most %s",
		err.Path, err.Declared, MaxSupportedSchemaVersion,
	)
}
