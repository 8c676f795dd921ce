// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"testing"

	"github.com/CloudDataLab/souffle/ast"
)

func TestPartitionIOSplitsDualRelations(t *testing.T) {
	r := ast.NewRelation(ast.Name("r"), "x", "y")
	r.Input = true
	r.Output = true
	unit := ast.NewTranslationUnit(ast.NewProgram([]*ast.Relation{r}))

	if !NewPartitionIO().Transform(unit) {
		t.Fatalf("expected partitioning to report a change")
	}

	if r.Input || !r.Output {
		t.Fatalf("expected original relation to become output only, got %v", r)
	}

	inputName := ast.Name("r").Qualify("@input")
	inputRel := unit.Program.Relation(inputName)
	if inputRel == nil {
		t.Fatalf("expected split input relation to be declared")
	}
	if !inputRel.Input || inputRel.Output || inputRel.Arity() != 2 {
		t.Fatalf("expected binary input-only relation, got %v", inputRel)
	}

	// the bridge copies the input facts into the output relation
	clauses := unit.Program.ClausesFor(ast.Name("r"))
	if len(clauses) != 1 {
		t.Fatalf("expected one bridging clause, got %d", len(clauses))
	}
	bridge := clauses[0]
	if len(bridge.Body) != 1 || !bridge.Body[0].(*ast.Atom).Name.Equal(inputName) {
		t.Fatalf("unexpected bridge body: %v", bridge)
	}
	if len(bridge.Head.Args) != 2 || !bridge.Head.Args[0].Equal(bridge.Body[0].(*ast.Atom).Args[0]) {
		t.Fatalf("expected head and body to share variables, got %v", bridge)
	}
}

func TestPartitionIOLeavesSingleDirectionAlone(t *testing.T) {
	in := ast.NewRelation(ast.Name("in"), "x")
	in.Input = true
	out := ast.NewRelation(ast.Name("out"), "x")
	out.Output = true

	unit := ast.NewTranslationUnit(ast.NewProgram([]*ast.Relation{in, out}))
	if NewPartitionIO().Transform(unit) {
		t.Fatalf("expected no change without dual relations")
	}
	if got := len(unit.Program.Relations()); got != 2 {
		t.Fatalf("expected relation count unchanged, got %d", got)
	}
}
