package graph

import "sort"

// TargetSpec is one element of a parse request: either a single explicit target, or the
// whole declared universe. Orchestration assembles spec sets; the parser resolves them.
type TargetSpec interface {
	// String returns the canonical form of the spec, used for de-duplication and logs.
	String() string
}

// ExplicitTargetSpec requests exactly one target (and, transitively, its dependencies).
type ExplicitTargetSpec struct {
	Target TargetID
}

func (spec ExplicitTargetSpec) String() string {
	return spec.Target.String()
}

// AllTargetsSpec requests every target in the universe of parsed build files.
type AllTargetsSpec struct{}

func (spec AllTargetsSpec) String() string {
	return "//..."
}

// SpecsForTargets returns one explicit spec per given target, sorted and de-duplicated.
func SpecsForTargets(ids []TargetID) []TargetSpec {
	seen := map[TargetID]struct{}{}
	unique := make([]TargetID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	specs := make([]TargetSpec, 0, len(unique))
	for _, id := range unique {
		specs = append(specs, ExplicitTargetSpec{Target: id})
	}

	return specs
}

// MergeSpecs combines spec sets into one, de-duplicating by canonical form and keeping a
// stable order so a re-parse request is identical across runs with the same inputs.
func MergeSpecs(specSets ...[]TargetSpec) []TargetSpec {
	seen := map[string]struct{}{}

	var out []TargetSpec

	for _, specs := range specSets {
		for _, spec := range specs {
			if _, ok := seen[spec.String()]; ok {
				continue
			}

			seen[spec.String()] = struct{}{}
			out = append(out, spec)
		}
	}

	return out
}
