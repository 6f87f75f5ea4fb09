package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
)

// Attribute names with label-list values that feed the target graph's edges rather than
// the node's plain attribute bag.
const (
	depsAttrName                 = "deps"
	testsAttrName                = "tests"
	sourceUnderTestAttrName      = "source_under_test"
	annotationProcessorsAttrName = "annotation_processors"
)

func decodeTargetBlock(path, basePath string, block *hcl.Block) (*graph.TargetNode, error) {
	kind := graph.RuleKind(block.Labels[0])
	name := block.Labels[1]

	id, err := graph.ParseTargetID(fmt.Sprintf("//%s:%s", basePath, name))
	if err != nil {
		return nil, errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: err})
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: diags})
	}

	var (
		deps                 []graph.TargetID
		tests                []graph.TargetID
		sourceUnderTest      []graph.TargetID
		annotationProcessors []string
	)

	attributes := map[string]string{}

	for attrName, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: diags})
		}

		switch attrName {
		case depsAttrName:
			deps, err = decodeLabelList(path, attrName, value)
		case testsAttrName:
			tests, err = decodeLabelList(path, attrName, value)
		case sourceUnderTestAttrName:
			sourceUnderTest, err = decodeLabelList(path, attrName, value)
		case annotationProcessorsAttrName:
			annotationProcessors, err = decodeStringList(path, attrName, value)
		default:
			attributes[attrName], err = decodeScalar(path, attrName, value)
		}

		if err != nil {
			return nil, err
		}
	}

	return graph.NewTargetNode(id, kind, attributes, deps, tests, sourceUnderTest, annotationProcessors), nil
}

func decodeLabelList(path, attrName string, value cty.Value) ([]graph.TargetID, error) {
	labels, err := decodeStringList(path, attrName, value)
	if err != nil {
		return nil, err
	}

	ids, err := graph.ParseTargetIDs(labels)
	if err != nil {
		return nil, errors.WithStackTrace(BuildFileParseError{Path: path, Underlying: err})
	}

	return ids, nil
}

func decodeStringList(path, attrName string, value cty.Value) ([]string, error) {
	if !value.Type().IsTupleType() && !value.Type().IsListType() {
		return nil, errors.WithStackTrace(BuildFileParseError{
			Path:       path,
			Underlying: fmt.Errorf("attribute %q must be a list of strings", attrName),
		})
	}

	var out []string

	for _, element := range value.AsValueSlice() {
		str, err := convert.Convert(element, cty.String)
		if err != nil || str.IsNull() {
			return nil, errors.WithStackTrace(BuildFileParseError{
				Path:       path,
				Underlying: fmt.Errorf("attribute %q must be a list of strings", attrName),
			})
		}

		out = append(out, str.AsString())
	}

	return out, nil
}

func decodeScalar(path, attrName string, value cty.Value) (string, error) {
	str, err := convert.Convert(value, cty.String)
	if err != nil || str.IsNull() {
		return "", errors.WithStackTrace(BuildFileParseError{
			Path:       path,
			Underlying: fmt.Errorf("attribute %q must be a string, number, or bool", attrName),
		})
	}

	return str.AsString(), nil
}
