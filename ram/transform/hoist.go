// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/CloudDataLab/souffle/ram"
	"github.com/CloudDataLab/souffle/ram/analysis"
)

// HoistConditions migrates filter conditions to the outermost scope their
// level allows: conditions independent of every loop move to the top of the
// enclosing query, and conditions at the level of a search move to
// immediately inside that search.
//
// The pass assumes filter operations are stored verbose, i.e. a conjunction
// is expressed by two consecutive filter operations:
//
//	query {
//	    if C1 then
//	        if C2 then ...
//	}
//
// rather than one filter holding (C1 and C2). Otherwise the levelling
// becomes imprecise: the joint level of both conditions would be sought
// rather than each separately. The translator delivers this format; a
// transformer that splits conjunction filters would be required ahead of
// this pass if an earlier pass introduced them.
//
// Detached conditions are accumulated into a right-nested conjunction in
// detachment order, so the first condition detached (the outermost in
// document order) becomes the leftmost conjunct.
type HoistConditions struct {
	levels analysis.Level
}

// NewHoistConditions returns a condition hoisting pass.
func NewHoistConditions() *HoistConditions {
	return &HoistConditions{}
}

// Name implements Transformer.
func (*HoistConditions) Name() string {
	return "HoistConditions"
}

// Clone implements Transformer.
func (h *HoistConditions) Clone() Transformer {
	return &HoistConditions{}
}

// Transform implements Transformer.
func (h *HoistConditions) Transform(prog *ram.Program) bool {
	changed := false

	ram.WalkQueries(prog.Main, func(query *ram.Query) {
		// hoist conditions that are independent of any search to the
		// outermost level of the query
		if h.hoistScope(query, analysis.UnboundLevel) {
			changed = true
		}

		// hoist conditions for each search operation, outermost first
		ram.WalkSearches(query, func(search ram.Search) {
			if h.hoistScope(search, search.Identifier()) {
				changed = true
			}
		})
	})

	return changed
}

// hoistScope detaches every filter below the target whose condition's level
// equals scope, then reinstalls the accumulated conjunction as one filter
// immediately inside the target. Reports whether the subtree changed.
func (h *HoistConditions) hoistScope(target ram.Node, scope int) bool {
	snapshot := target.Clone()

	var detached []ram.Condition
	var filterRewriter ram.MapperFunc
	filterRewriter = func(node ram.Node) ram.Node {
		if filter, ok := node.(*ram.Filter); ok {
			if h.levels.Of(filter.Condition) == scope {
				// splice out the filter and collect its condition
				detached = append(detached, filter.Condition)
				node.Apply(filterRewriter)
				return filter.Body
			}
		}
		node.Apply(filterRewriter)
		return node
	}
	target.Apply(filterRewriter)

	if len(detached) > 0 {
		insertFilter(target, conjoin(detached))
	}

	// The detached conditions may have come from a filter chain already in
	// place at the target scope, in which case the rewrite reproduced the
	// input and the pass must report no change to terminate fixpoints.
	return !target.Equal(snapshot)
}

// insertFilter wraps the target's immediate child operation in a filter
// carrying the condition.
func insertFilter(target ram.Node, condition ram.Condition) {
	target.Apply(ram.MapperFunc(func(node ram.Node) ram.Node {
		if inner, ok := node.(ram.Operation); ok {
			return ram.NewFilter(condition, inner)
		}
		return node
	}))
}
