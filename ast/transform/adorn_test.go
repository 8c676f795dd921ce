// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"testing"

	"github.com/CloudDataLab/souffle/ast"
	"github.com/CloudDataLab/souffle/ops"
)

func transitiveClosure() *ast.Program {
	edge := ast.NewRelation(ast.Name("edge"), "x", "y")
	edge.Input = true
	path := ast.NewRelation(ast.Name("path"), "x", "y")
	path.Output = true
	return ast.NewProgram([]*ast.Relation{edge, path},
		ast.NewClause(
			ast.NewAtom(ast.Name("path"), ast.NewVariable("x"), ast.NewVariable("y")),
			ast.NewAtom(ast.Name("edge"), ast.NewVariable("x"), ast.NewVariable("y"))),
		ast.NewClause(
			ast.NewAtom(ast.Name("path"), ast.NewVariable("x"), ast.NewVariable("z")),
			ast.NewAtom(ast.Name("edge"), ast.NewVariable("x"), ast.NewVariable("y")),
			ast.NewAtom(ast.Name("path"), ast.NewVariable("y"), ast.NewVariable("z"))))
}

func TestAdornTransitiveClosure(t *testing.T) {
	unit := ast.NewTranslationUnit(transitiveClosure())

	if !NewAdornDatabase().Transform(unit) {
		t.Fatalf("expected adornment to report a change")
	}
	if unit.Failed() {
		t.Fatalf("unexpected diagnostics: %v", unit.Errors)
	}

	prog := unit.Program
	adorned := ast.Name("path").Qualify("{bf}")

	// the recursive occurrence is queried with its first argument bound
	rel := prog.Relation(adorned)
	if rel == nil {
		t.Fatalf("expected relation %v to be declared", adorned)
	}
	if rel.Input || rel.Output || rel.Arity() != 2 {
		t.Fatalf("expected internal binary relation, got %v", rel)
	}

	// both path clauses are specialized for the bound-free pattern
	if got := len(prog.ClausesFor(adorned)); got != 2 {
		t.Fatalf("expected 2 clauses for %v, got %d", adorned, got)
	}
	// the entry clauses keep the original name
	if got := len(prog.ClausesFor(ast.Name("path"))); got != 2 {
		t.Fatalf("expected 2 entry clauses for path, got %d", got)
	}

	// the recursive body atom now references the adorned variant
	for _, clause := range prog.Clauses {
		for _, atom := range clause.Atoms() {
			if atom.Name.Equal(ast.Name("path")) {
				t.Fatalf("expected recursive occurrences renamed, got %v", clause)
			}
		}
	}
}

func TestAdornFixpointTerminates(t *testing.T) {
	// mutual recursion: variants of p request variants of q and vice versa
	p := ast.NewRelation(ast.Name("p"), "x", "y")
	p.Output = true
	q := ast.NewRelation(ast.Name("q"), "x", "y")
	e := ast.NewRelation(ast.Name("e"), "x", "y")
	e.Input = true
	prog := ast.NewProgram([]*ast.Relation{p, q, e},
		ast.NewClause(
			ast.NewAtom(ast.Name("p"), ast.NewVariable("x"), ast.NewVariable("y")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x"), ast.NewVariable("y"))),
		ast.NewClause(
			ast.NewAtom(ast.Name("p"), ast.NewVariable("x"), ast.NewVariable("z")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x"), ast.NewVariable("y")),
			ast.NewAtom(ast.Name("q"), ast.NewVariable("y"), ast.NewVariable("z"))),
		ast.NewClause(
			ast.NewAtom(ast.Name("q"), ast.NewVariable("x"), ast.NewVariable("z")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x"), ast.NewVariable("y")),
			ast.NewAtom(ast.Name("p"), ast.NewVariable("y"), ast.NewVariable("z"))))

	unit := ast.NewTranslationUnit(prog)
	if !NewAdornDatabase().Transform(unit) {
		t.Fatalf("expected adornment to report a change")
	}
	if unit.Failed() {
		t.Fatalf("unexpected diagnostics: %v", unit.Errors)
	}

	if unit.Program.Relation(ast.Name("q").Qualify("{bf}")) == nil {
		t.Fatalf("expected adorned variant of q to be declared")
	}
	if unit.Program.Relation(ast.Name("p").Qualify("{bf}")) == nil {
		t.Fatalf("expected adorned variant of p to be declared")
	}
}

func TestAdornIdempotent(t *testing.T) {
	unit := ast.NewTranslationUnit(transitiveClosure())

	pass := NewAdornDatabase()
	if !pass.Transform(unit) {
		t.Fatalf("expected first application to change the program")
	}
	settled := unit.Program.String()

	// adorned variants are never specialized further
	if pass.Transform(unit) {
		t.Fatalf("expected second application to be a no-op")
	}
	if unit.Failed() {
		t.Fatalf("unexpected diagnostics: %v", unit.Errors)
	}
	if got := unit.Program.String(); got != settled {
		t.Fatalf("second application altered the program:\n%s\nvs:\n%s", got, settled)
	}
}

func TestAdornNoOutputsIsNoOp(t *testing.T) {
	e := ast.NewRelation(ast.Name("e"), "x")
	e.Input = true
	p := ast.NewRelation(ast.Name("p"), "x")
	prog := ast.NewProgram([]*ast.Relation{e, p},
		ast.NewClause(
			ast.NewAtom(ast.Name("p"), ast.NewVariable("x")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x"))))

	unit := ast.NewTranslationUnit(prog)
	if NewAdornDatabase().Transform(unit) {
		t.Fatalf("expected a program without outputs to stay untouched")
	}
	if got := len(unit.Program.Clauses); got != 1 {
		t.Fatalf("expected clauses preserved, got %d", got)
	}
}

func TestAdornReportsUnboundHeadVariable(t *testing.T) {
	// q(x, w) :- e(x, y): w can never be bound
	e := ast.NewRelation(ast.Name("e"), "x", "y")
	e.Input = true
	q := ast.NewRelation(ast.Name("q"), "x", "w")
	q.Output = true
	prog := ast.NewProgram([]*ast.Relation{e, q},
		ast.NewClause(
			ast.NewAtom(ast.Name("q"), ast.NewVariable("x"), ast.NewVariable("w")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x"), ast.NewVariable("y"))))

	unit := ast.NewTranslationUnit(prog)
	NewAdornDatabase().Transform(unit)

	if !unit.Failed() {
		t.Fatalf("expected a diagnostic for the unbound head variable")
	}
	if unit.Errors[0].Code != ast.UnboundVarErr {
		t.Fatalf("expected unbound variable error, got %v", unit.Errors[0])
	}
}

func TestAdornKeepsNegatedOccurrencesUnspecialized(t *testing.T) {
	// p(x) :- e(x), not q(x).   q(x) :- f(x).
	e := ast.NewRelation(ast.Name("e"), "x")
	e.Input = true
	f := ast.NewRelation(ast.Name("f"), "x")
	f.Input = true
	p := ast.NewRelation(ast.Name("p"), "x")
	p.Output = true
	q := ast.NewRelation(ast.Name("q"), "x")
	prog := ast.NewProgram([]*ast.Relation{e, f, p, q},
		ast.NewClause(
			ast.NewAtom(ast.Name("p"), ast.NewVariable("x")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x")),
			ast.NewNegation(ast.NewAtom(ast.Name("q"), ast.NewVariable("x")))),
		ast.NewClause(
			ast.NewAtom(ast.Name("q"), ast.NewVariable("x")),
			ast.NewAtom(ast.Name("f"), ast.NewVariable("x"))))

	unit := ast.NewTranslationUnit(prog)
	NewAdornDatabase().Transform(unit)
	if unit.Failed() {
		t.Fatalf("unexpected diagnostics: %v", unit.Errors)
	}

	// the negated atom keeps its name and q's clause stays reachable
	if got := len(unit.Program.ClausesFor(ast.Name("q"))); got != 1 {
		t.Fatalf("expected q's clause preserved, got %d", got)
	}
	neg := unit.Program.ClausesFor(ast.Name("p"))[0].Body[1].(*ast.Negation)
	if !neg.Atom.Name.Equal(ast.Name("q")) {
		t.Fatalf("expected negated occurrence unspecialized, got %v", neg.Atom.Name)
	}
}

func TestAdornedConstraintEquality(t *testing.T) {
	// g(x) :- e(x, y), y = 1, h(y).   h(y) :- e(y, y).
	// the equality binds y before h is scheduled
	e := ast.NewRelation(ast.Name("e"), "x", "y")
	e.Input = true
	g := ast.NewRelation(ast.Name("g"), "x")
	g.Output = true
	h := ast.NewRelation(ast.Name("h"), "y")
	prog := ast.NewProgram([]*ast.Relation{e, g, h},
		ast.NewClause(
			ast.NewAtom(ast.Name("g"), ast.NewVariable("x")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("x"), ast.NewVariable("y")),
			ast.NewBinaryConstraint(ops.EQ, ast.NewVariable("y"), ast.NewNumberConstant(1)),
			ast.NewAtom(ast.Name("h"), ast.NewVariable("y"))),
		ast.NewClause(
			ast.NewAtom(ast.Name("h"), ast.NewVariable("y")),
			ast.NewAtom(ast.Name("e"), ast.NewVariable("y"), ast.NewVariable("y"))))

	unit := ast.NewTranslationUnit(prog)
	NewAdornDatabase().Transform(unit)
	if unit.Failed() {
		t.Fatalf("unexpected diagnostics: %v", unit.Errors)
	}

	if unit.Program.Relation(ast.Name("h").Qualify("{b}")) == nil {
		t.Fatalf("expected h queried fully bound")
	}
}
