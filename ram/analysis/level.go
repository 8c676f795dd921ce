// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package analysis provides the read-only analyses that RAM transformation
// passes query: the level of an expression or condition relative to the
// enclosing loop nest, and compile-time constancy.
//
// The analyses are pure and re-derived on every request. Passes must not
// cache results across structural edits since identifiers and nesting shift
// under rewriting.
package analysis

import "github.com/CloudDataLab/souffle/ram"

// UnboundLevel is the sentinel level of a node that reads no loop variable
// and is therefore safe to evaluate at the outermost scope.
const UnboundLevel = -1

// Level computes the innermost enclosing loop a node depends on.
type Level struct{}

// Of returns the maximum loop identifier among all element accesses
// transitively reachable under x, or UnboundLevel if there are none.
//
// Loop identifiers are assigned outermost-first by the translator, so the
// maximum is the innermost loop the node reads from.
func (Level) Of(x ram.Node) int {
	level := UnboundLevel
	ram.WalkElementAccesses(x, func(e *ram.ElementAccess) {
		if e.ID > level {
			level = e.ID
		}
	})
	return level
}
