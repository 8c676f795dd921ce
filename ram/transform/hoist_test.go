// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"testing"

	"github.com/CloudDataLab/souffle/ops"
	"github.com/CloudDataLab/souffle/ram"
)

func TestHoistLoopIndependentCondition(t *testing.T) {
	a := ram.NewRelation("A", "x", "y")
	out := ram.NewRelation("Out", "x")

	// the inner filter reads no loop variable and belongs at the query top
	free := ram.NewConstraint(ops.EQ, ram.NewConstant(1), ram.NewConstant(1))
	prog := ram.NewProgram(ram.NewQuery(
		ram.NewScan(ram.NewRelationReference(a), 0,
			ram.NewFilter(free,
				ram.NewProject(ram.NewRelationReference(out), ram.NewElementAccess(0, 0))))),
		a, out)

	if !NewHoistConditions().Transform(prog) {
		t.Fatalf("expected hoisting to report a change")
	}

	query := prog.Main.(*ram.Query)
	filter, ok := query.Root.(*ram.Filter)
	if !ok || !filter.Condition.Equal(free) {
		t.Fatalf("expected loop-independent filter at query top, got %v", query.Root)
	}
	if _, ok := filter.Body.(*ram.Scan); !ok {
		t.Fatalf("expected scan beneath the hoisted filter, got %v", filter.Body)
	}
}

func TestHoistToSearchLevel(t *testing.T) {
	a := ram.NewRelation("A", "x")
	b := ram.NewRelation("B", "x")
	out := ram.NewRelation("Out", "x")

	// the condition only depends on the outer scan but sits inside the inner
	outerCond := ram.NewConstraint(ops.GT, ram.NewElementAccess(0, 0), ram.NewConstant(2))
	prog := ram.NewProgram(ram.NewQuery(
		ram.NewScan(ram.NewRelationReference(a), 0,
			ram.NewScan(ram.NewRelationReference(b), 1,
				ram.NewFilter(outerCond,
					ram.NewProject(ram.NewRelationReference(out), ram.NewElementAccess(1, 0)))))),
		a, b, out)

	if !NewHoistConditions().Transform(prog) {
		t.Fatalf("expected hoisting to report a change")
	}

	outer := prog.Main.(*ram.Query).Root.(*ram.Scan)
	filter, ok := outer.Body.(*ram.Filter)
	if !ok || !filter.Condition.Equal(outerCond) {
		t.Fatalf("expected condition immediately inside outer scan, got %v", outer.Body)
	}
	inner, ok := filter.Body.(*ram.Scan)
	if !ok || inner.ID != 1 {
		t.Fatalf("expected inner scan beneath the filter, got %v", filter.Body)
	}
}

func TestHoistPreservesConjunctOrder(t *testing.T) {
	a := ram.NewRelation("A", "x", "y")
	out := ram.NewRelation("Out", "x")

	c1 := ram.NewConstraint(ops.EQ, ram.NewElementAccess(0, 0), ram.NewConstant(5))
	c2 := ram.NewConstraint(ops.GT, ram.NewElementAccess(0, 1), ram.NewConstant(0))
	prog := ram.NewProgram(ram.NewQuery(
		ram.NewScan(ram.NewRelationReference(a), 0,
			ram.NewFilter(c1,
				ram.NewFilter(c2,
					ram.NewProject(ram.NewRelationReference(out), ram.NewElementAccess(0, 0)))))),
		a, out)

	if !NewHoistConditions().Transform(prog) {
		t.Fatalf("expected hoisting to report a change")
	}

	scan := prog.Main.(*ram.Query).Root.(*ram.Scan)
	filter, ok := scan.Body.(*ram.Filter)
	if !ok {
		t.Fatalf("expected merged filter inside scan, got %v", scan.Body)
	}
	if !filter.Condition.Equal(ram.NewConjunction(c1, c2)) {
		t.Fatalf("expected (c1 and c2) preserving document order, got %v", filter.Condition)
	}
}

func TestHoistIdempotent(t *testing.T) {
	a := ram.NewRelation("A", "x", "y")
	out := ram.NewRelation("Out", "x")

	prog := ram.NewProgram(ram.NewQuery(
		ram.NewScan(ram.NewRelationReference(a), 0,
			ram.NewFilter(ram.NewConstraint(ops.EQ, ram.NewConstant(1), ram.NewConstant(1)),
				ram.NewFilter(ram.NewConstraint(ops.EQ, ram.NewElementAccess(0, 0), ram.NewConstant(5)),
					ram.NewProject(ram.NewRelationReference(out), ram.NewElementAccess(0, 0)))))),
		a, out)

	pass := NewHoistConditions()
	if !pass.Transform(prog) {
		t.Fatalf("expected first application to change the program")
	}
	settled := prog.Clone().(*ram.Program)
	if pass.Transform(prog) {
		t.Fatalf("expected second application to be a no-op")
	}
	if !prog.Equal(settled) {
		t.Fatalf("second application altered the program:\n%v\nvs:\n%v", prog, settled)
	}
}

func TestHoistUnderFixpointTerminates(t *testing.T) {
	a := ram.NewRelation("A", "x")
	out := ram.NewRelation("Out", "x")

	prog := ram.NewProgram(ram.NewQuery(
		ram.NewScan(ram.NewRelationReference(a), 0,
			ram.NewFilter(ram.NewConstraint(ops.EQ, ram.NewElementAccess(0, 0), ram.NewConstant(1)),
				ram.NewProject(ram.NewRelationReference(out), ram.NewElementAccess(0, 0))))),
		a, out)

	fp := NewFixpoint(NewHoistConditions())
	fp.Limit = 10
	fp.Transform(prog)

	// a second fixpoint finds nothing left to do
	if fp.Transform(prog) {
		t.Fatalf("expected hoisting fixpoint to have settled")
	}
}
