package graph

import "sort"

// BuildRule is one rule instance of the derived build-rule graph that a target graph
// transform produces for flat project generation.
type BuildRule struct {
	ID   TargetID
	Kind RuleKind
}

// ActionGraph is the derived build-rule graph. Like TargetGraph it is immutable once
// produced by a transform.
type ActionGraph struct {
	rules []*BuildRule
}

func NewActionGraph(rules []*BuildRule) *ActionGraph {
	sorted := append([]*BuildRule(nil), rules...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &ActionGraph{rules: sorted}
}

// Rules returns every rule instance, sorted by target label.
func (g *ActionGraph) Rules() []*BuildRule {
	return append([]*BuildRule(nil), g.rules...)
}

// RulesOfKind returns the rule instances with the given kind tag, sorted by target label.
func (g *ActionGraph) RulesOfKind(kind RuleKind) []*BuildRule {
	var out []*BuildRule

	for _, rule := range g.rules {
		if rule.Kind == kind {
			out = append(out, rule)
		}
	}

	return out
}
