// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import "github.com/CloudDataLab/souffle/ram"

// conjunctionList flattens a condition into its conjuncts in left-to-right
// document order. A non-conjunction condition is its own single conjunct.
func conjunctionList(c ram.Condition) []ram.Condition {
	if conj, ok := c.(*ram.Conjunction); ok {
		return append(conjunctionList(conj.LHS), conjunctionList(conj.RHS)...)
	}
	return []ram.Condition{c}
}

// conjoin folds a list of conditions into a right-nested conjunction, the
// first condition becoming the leftmost (outermost) conjunct. An empty list
// yields nil, a singleton list yields its sole element.
func conjoin(conds []ram.Condition) ram.Condition {
	if len(conds) == 0 {
		return nil
	}
	out := conds[len(conds)-1]
	for i := len(conds) - 2; i >= 0; i-- {
		out = ram.NewConjunction(conds[i], out)
	}
	return out
}
