// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"testing"

	"github.com/CloudDataLab/souffle/ops"
)

func testProgram() *Program {
	edge := NewRelation("edge", "x", "y")
	path := NewRelation("path", "x", "y")
	query := NewQuery(
		NewScan(NewRelationReference(edge), 0,
			NewFilter(NewConstraint(ops.EQ, NewElementAccess(0, 0), NewConstant(1)),
				NewProject(NewRelationReference(path), NewElementAccess(0, 0), NewElementAccess(0, 1)))))
	return NewProgram(query, edge, path)
}

func TestCloneIndependence(t *testing.T) {
	prog := testProgram()
	cpy := prog.Clone().(*Program)

	if !prog.Equal(cpy) {
		t.Fatalf("expected clone to equal original, got:\n%v\nvs:\n%v", cpy, prog)
	}

	// mutating the clone must not leak into the original
	WalkFilters(cpy.Main, func(f *Filter) {
		f.Condition = NewConstraint(ops.NE, NewConstant(0), NewConstant(0))
	})
	if prog.Equal(cpy) {
		t.Fatalf("expected mutated clone to differ from original")
	}

	var orig *Constraint
	WalkFilters(prog.Main, func(f *Filter) {
		orig = f.Condition.(*Constraint)
	})
	if orig.Op != ops.EQ {
		t.Fatalf("original filter condition changed: %v", orig)
	}
}

func TestCloneRebindsRelationReferences(t *testing.T) {
	prog := testProgram()
	cpy := prog.Clone().(*Program)

	WalkScans(cpy.Main, func(s *Scan) {
		if s.Relation() == prog.Relation("edge") {
			t.Fatalf("cloned scan still references the original relation")
		}
		if s.Relation() != cpy.Relation("edge") {
			t.Fatalf("cloned scan does not reference the cloned relation")
		}
	})
}

func TestEqualStructural(t *testing.T) {
	if !testProgram().Equal(testProgram()) {
		t.Fatalf("expected independently built programs to be equal")
	}

	other := testProgram()
	WalkProjects(other.Main, func(p *Project) {
		p.Values = p.Values[:1]
	})
	if testProgram().Equal(other) {
		t.Fatalf("expected programs with different projections to differ")
	}
}

func TestRelationReferenceEqualByName(t *testing.T) {
	// two programs hold their own relation objects; references to relations
	// of the same name must still compare equal
	a := NewRelationReference(NewRelation("edge", "x", "y"))
	b := NewRelationReference(NewRelation("edge", "x", "y"))
	if !a.Equal(b) {
		t.Fatalf("expected references naming the same relation to be equal")
	}

	c := NewRelationReference(NewRelation("path", "x", "y"))
	if a.Equal(c) {
		t.Fatalf("expected references naming different relations to differ")
	}
}

func TestMapperReplacesConstants(t *testing.T) {
	prog := testProgram()

	var bump MapperFunc
	bump = func(n Node) Node {
		if c, ok := n.(*Constant); ok {
			return NewConstant(c.Value + 1)
		}
		n.Apply(bump)
		return n
	}
	prog.Apply(bump)

	var got *Constraint
	WalkFilters(prog.Main, func(f *Filter) {
		got = f.Condition.(*Constraint)
	})
	if c, ok := got.RHS.(*Constant); !ok || c.Value != 2 {
		t.Fatalf("expected filter constant to become 2, got %v", got.RHS)
	}
}

func TestIndexScanArityChecked(t *testing.T) {
	edge := NewRelation("edge", "x", "y")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on short index pattern")
		}
	}()
	NewIndexScan(NewRelationReference(edge), 0,
		[]Expression{NewConstant(1)},
		NewProject(NewRelationReference(edge), NewConstant(1), NewConstant(2)))
}
