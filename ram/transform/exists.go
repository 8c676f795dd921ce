// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import "github.com/CloudDataLab/souffle/ram"

// ConvertExistenceChecks degrades relation searches whose bound tuple is
// never read into pure membership tests. A scan over R whose identifier is
// dead becomes a filter on (not (R = empty)); an index scan becomes a filter
// on an existence check carrying the same column pattern. The search's body
// is preserved untouched beneath the new filter. This is a strict strength
// reduction: a membership probe is cheaper than iterating tuples none of
// which are inspected.
type ConvertExistenceChecks struct{}

// NewConvertExistenceChecks returns an existence-check conversion pass.
func NewConvertExistenceChecks() *ConvertExistenceChecks {
	return &ConvertExistenceChecks{}
}

// Name implements Transformer.
func (*ConvertExistenceChecks) Name() string {
	return "ConvertExistenceChecks"
}

// Clone implements Transformer.
func (t *ConvertExistenceChecks) Clone() Transformer {
	return &ConvertExistenceChecks{}
}

// Transform implements Transformer.
func (t *ConvertExistenceChecks) Transform(prog *ram.Program) bool {
	changed := false

	ram.WalkQueries(prog.Main, func(query *ram.Query) {
		var searchRewriter ram.MapperFunc
		searchRewriter = func(node ram.Node) ram.Node {
			if search, ok := node.(ram.RelationSearch); ok {
				if identifierUnused(search) {
					changed = true
					node = ram.NewFilter(probeCondition(search), search.Nested())
				}
			}
			node.Apply(searchRewriter)
			return node
		}
		query.Apply(searchRewriter)
	})

	return changed
}

// identifierUnused reports whether nothing below the search reads the tuple
// it binds. Element accesses are the only readers of a loop identifier, so a
// single walk over every expression in the body covers projection values,
// record unpack sources, and bare conditions alike.
func identifierUnused(search ram.RelationSearch) bool {
	unused := true
	ram.WalkElementAccesses(search.Nested(), func(e *ram.ElementAccess) {
		if e.ID == search.Identifier() {
			unused = false
		}
	})
	return unused
}

// probeCondition builds the membership test replacing a dead search.
func probeCondition(search ram.RelationSearch) ram.Condition {
	switch s := search.(type) {
	case *ram.Scan:
		return ram.NewNegation(ram.NewEmptinessCheck(s.Ref))
	case *ram.IndexScan:
		// holes in the range pattern stay holes in the existence check
		return ram.NewExistenceCheck(s.Ref, s.Pattern)
	}
	panic("ram/transform: unreachable relation search kind")
}
