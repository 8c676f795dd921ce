// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import "github.com/CloudDataLab/souffle/ram"

// Constant determines whether an expression is a compile-time constant.
type Constant struct{}

// IsConstant returns true if the expression's value is independent of every
// enclosing loop. Element accesses are never constant; intrinsic operators
// and record constructions are constant if all their arguments are.
// User-defined operators are treated as non-constant since external functors
// cannot be evaluated at compile time.
func (a Constant) IsConstant(e ram.Expression) bool {
	switch e := e.(type) {
	case *ram.Constant:
		return true
	case *ram.ElementAccess:
		return false
	case *ram.IntrinsicOperator:
		for _, arg := range e.Args {
			if !a.IsConstant(arg) {
				return false
			}
		}
		return true
	case *ram.PackRecord:
		for _, arg := range e.Args {
			if !a.IsConstant(arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
