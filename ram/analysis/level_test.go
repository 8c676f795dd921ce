// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package analysis

import (
	"testing"

	"github.com/CloudDataLab/souffle/ops"
	"github.com/CloudDataLab/souffle/ram"
)

func TestLevelOf(t *testing.T) {
	var levels Level

	tests := []struct {
		note string
		node ram.Node
		want int
	}{
		{"constant", ram.NewConstant(5), UnboundLevel},
		{"element access", ram.NewElementAccess(2, 0), 2},
		{"intrinsic mixing levels", ram.NewIntrinsicOperator("+", ram.NewElementAccess(0, 0), ram.NewElementAccess(3, 1)), 3},
		{"constraint on constants", ram.NewConstraint(ops.EQ, ram.NewConstant(1), ram.NewConstant(1)), UnboundLevel},
		{"constraint on tuple", ram.NewConstraint(ops.EQ, ram.NewElementAccess(1, 0), ram.NewConstant(5)), 1},
		{"pack record", ram.NewPackRecord(ram.NewConstant(1), ram.NewElementAccess(4, 2)), 4},
	}

	for _, tc := range tests {
		if got := levels.Of(tc.node); got != tc.want {
			t.Fatalf("%s: expected level %d, got %d", tc.note, tc.want, got)
		}
	}
}

func TestLevelOfConjunctionIsJoint(t *testing.T) {
	var levels Level
	cond := ram.NewConjunction(
		ram.NewConstraint(ops.EQ, ram.NewElementAccess(0, 0), ram.NewConstant(5)),
		ram.NewConstraint(ops.GT, ram.NewElementAccess(2, 0), ram.NewConstant(0)))
	if got := levels.Of(cond); got != 2 {
		t.Fatalf("expected joint level 2, got %d", got)
	}
}
