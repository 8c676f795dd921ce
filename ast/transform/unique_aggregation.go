// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"strconv"

	"github.com/CloudDataLab/souffle/ast"
)

// UniqueAggregationVariables renames the variables appearing in aggregate
// target expressions so that no two aggregates share them. Each aggregate
// gets a running number and every occurrence of a target-expression variable
// within that aggregate is renamed to " <name><number>". The leading space
// keeps the fresh names disjoint from anything a source program can write.
// Inner aggregates are processed before the aggregates enclosing them.
type UniqueAggregationVariables struct{}

// NewUniqueAggregationVariables returns the renaming pass.
func NewUniqueAggregationVariables() *UniqueAggregationVariables {
	return &UniqueAggregationVariables{}
}

// Name implements Transformer.
func (*UniqueAggregationVariables) Name() string {
	return "UniqueAggregationVariables"
}

// Clone implements Transformer.
func (*UniqueAggregationVariables) Clone() Transformer {
	return &UniqueAggregationVariables{}
}

// Transform implements Transformer.
func (*UniqueAggregationVariables) Transform(unit *ast.TranslationUnit) bool {
	changed := false
	aggNumber := 0
	for _, clause := range unit.Program.Clauses {
		ast.WalkAggregatorsPostOrder(clause, func(agg *ast.Aggregator) {
			if agg.Target == nil {
				return
			}
			names := ast.VarsOf(agg.Target)
			ast.WalkVariables(agg, func(v *ast.Variable) {
				if !names.Contains(v.Name) {
					return
				}
				v.Name = " " + v.Name + strconv.Itoa(aggNumber)
				changed = true
			})
			aggNumber++
		})
	}
	return changed
}
