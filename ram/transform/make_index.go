// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/CloudDataLab/souffle/ram"
	"github.com/CloudDataLab/souffle/ram/analysis"
)

// MakeIndex converts linear scans whose immediate child is a filter into
// index scans seeded from the filter's equality conditions. A conjunct is
// indexable for a scan if it equates a column of the scanned tuple with an
// expression computable before the scan starts: a constant, or an expression
// whose level is strictly outside the scan. Conjuncts that are not indexable,
// and indexable conjuncts naming a column that already won an index slot,
// remain behind in a residual filter.
type MakeIndex struct {
	levels    analysis.Level
	constants analysis.Constant
}

// NewMakeIndex returns an index selection pass.
func NewMakeIndex() *MakeIndex {
	return &MakeIndex{}
}

// Name implements Transformer.
func (*MakeIndex) Name() string {
	return "MakeIndex"
}

// Clone implements Transformer.
func (t *MakeIndex) Clone() Transformer {
	return &MakeIndex{}
}

// Transform implements Transformer.
func (t *MakeIndex) Transform(prog *ram.Program) bool {
	changed := false

	ram.WalkQueries(prog.Main, func(query *ram.Query) {
		var scanRewriter ram.MapperFunc
		scanRewriter = func(node ram.Node) ram.Node {
			if scan, ok := node.(*ram.Scan); ok {
				if op := t.rewriteScan(scan); op != nil {
					changed = true
					node = op
				}
			}
			node.Apply(scanRewriter)
			return node
		}
		query.Apply(scanRewriter)
	})

	return changed
}

// indexElement matches a conjunct of the form t.e = v or v = t.e where t is
// the tuple bound at identifier and v is computable outside the scan. On a
// match it returns the column e and the value expression.
func (t *MakeIndex) indexElement(c ram.Condition, identifier int) (int, ram.Expression, bool) {
	constraint, ok := c.(*ram.Constraint)
	if !ok || !constraint.Op.IsEquality() {
		return 0, nil, false
	}
	if lhs, ok := constraint.LHS.(*ram.ElementAccess); ok {
		rhs := constraint.RHS
		if lhs.ID == identifier && (t.constants.IsConstant(rhs) || t.levels.Of(rhs) < identifier) {
			return lhs.Element, rhs, true
		}
	}
	if rhs, ok := constraint.RHS.(*ram.ElementAccess); ok {
		lhs := constraint.LHS
		if rhs.ID == identifier && (t.constants.IsConstant(lhs) || t.levels.Of(lhs) < identifier) {
			return rhs.Element, lhs, true
		}
	}
	return 0, nil, false
}

// rewriteScan returns the index scan replacing the scan, or nil if no
// conjunct of the scan's filter is indexable.
func (t *MakeIndex) rewriteScan(scan *ram.Scan) ram.Operation {
	filter, ok := scan.Body.(*ram.Filter)
	if !ok {
		return nil
	}

	identifier := scan.ID

	// values of the index per column of the relation (if indexable)
	queryPattern := make([]ram.Expression, scan.Relation().Arity())

	// remaining conjuncts which weren't handled by an index
	var residual []ram.Condition

	indexable := false
	for _, cond := range conjunctionList(filter.Condition) {
		element, value, ok := t.indexElement(cond, identifier)
		switch {
		case !ok:
			residual = append(residual, cond)
		case queryPattern[element] == nil:
			indexable = true
			queryPattern[element] = value
		default:
			// a later equality on an already-indexed column degrades to a
			// residual conjunct, never dropped
			residual = append(residual, cond)
		}
	}

	if !indexable {
		return nil
	}

	body := filter.Body
	if len(residual) > 0 {
		body = ram.NewFilter(conjoin(residual), body)
	}
	return ram.NewIndexScan(scan.Ref, identifier, queryPattern, body)
}
