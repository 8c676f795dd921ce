// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"slices"
	"strings"

	"github.com/CloudDataLab/souffle/ast"
)

// adornedPredicate is a work item of the adornment fixpoint: a relation
// together with a binding pattern for its attributes. The marker holds one
// character per attribute, 'b' for bound and 'f' for free. The empty marker
// denotes the unadorned relation itself.
type adornedPredicate struct {
	name   ast.QualifiedName
	marker string
}

// adornmentID returns the qualified name of an adorned relation. The empty
// marker maps a relation to itself.
func adornmentID(name ast.QualifiedName, marker string) ast.QualifiedName {
	if marker == "" {
		return name
	}
	return name.Qualify("{" + marker + "}")
}

// adornedName reports whether the name already carries a binding-pattern
// qualifier.
func adornedName(name ast.QualifiedName) bool {
	s := name.String()
	return strings.HasSuffix(s, "}") && strings.Contains(s, ".{")
}

// AdornDatabase specializes every derived relation reachable from an output
// relation by the binding patterns it is queried with. Starting from the
// output relations, each clause body is scheduled with a SIPS and every
// derived atom is replaced by a variant of its relation adorned with the
// bound/free pattern of its arguments at that point of the schedule. Newly
// requested variants are processed in turn until no pattern is new.
//
// Negated and aggregated occurrences of derived relations are not
// specialized; they request the unadorned variant so their clauses stay
// reachable. Variants produced by an earlier application already carry a
// binding-pattern qualifier and are never specialized further, so the pass
// is idempotent.
type AdornDatabase struct {
	sips     SIPS
	sipsName string
}

// NewAdornDatabase returns an adornment pass using the default SIPS.
func NewAdornDatabase() *AdornDatabase {
	sips, _ := GetSIPS("all-bound")
	return &AdornDatabase{sips: sips, sipsName: "all-bound"}
}

// WithSIPS configures the scheduling strategy by name.
func (t *AdornDatabase) WithSIPS(name string) *AdornDatabase {
	t.sips, _ = GetSIPS(name)
	t.sipsName = name
	return t
}

// Name implements Transformer.
func (*AdornDatabase) Name() string {
	return "AdornDatabase"
}

// Clone implements Transformer.
func (t *AdornDatabase) Clone() Transformer {
	return &AdornDatabase{sips: t.sips, sipsName: t.sipsName}
}

// Transform implements Transformer.
func (t *AdornDatabase) Transform(unit *ast.TranslationUnit) bool {
	prog := unit.Program

	var worklist []adornedPredicate
	seen := map[uint64]struct{}{}
	var newRelations []*ast.Relation

	request := func(name ast.QualifiedName, marker string) {
		id := adornmentID(name, marker)
		if _, ok := seen[id.Hash()]; ok {
			return
		}
		seen[id.Hash()] = struct{}{}
		worklist = append(worklist, adornedPredicate{name: name, marker: marker})
		if marker != "" {
			rel := prog.Relation(name).Clone()
			rel.Name = id
			rel.Input, rel.Output = false, false
			newRelations = append(newRelations, rel)
		}
	}

	// outputs are queried with all attributes free
	for _, rel := range prog.Relations() {
		if rel.Output && prog.IsIDB(rel.Name) {
			request(rel.Name, "")
		}
	}
	if len(worklist) == 0 {
		return false
	}

	changed := false
	var adorned []*ast.Clause
	for len(worklist) > 0 {
		pred := worklist[0]
		worklist = worklist[1:]
		for _, clause := range prog.ClausesFor(pred.name) {
			cpy := clause.CloneClause()
			if !t.adornClause(unit, cpy, pred.marker, request) {
				continue
			}
			if !cpy.Equal(clause) {
				changed = true
			}
			adorned = append(adorned, cpy)
		}
	}

	kept := make([]*ast.Clause, 0, len(prog.Clauses))
	dropped := 0
	for _, clause := range prog.Clauses {
		if prog.IsIDB(clause.Head.Name) {
			dropped++
		} else {
			kept = append(kept, clause)
		}
	}
	if len(adorned) != dropped {
		changed = true
	}

	prog.Clauses = append(kept, adorned...)
	for _, rel := range newRelations {
		prog.AddRelation(rel)
	}
	return changed
}

// adornClause rewrites one clause of an adorned predicate in place: it binds
// the head variables at bound positions, schedules the body atoms with the
// SIPS, renames every derived atom to the variant matching its binding
// pattern at schedule time, and finally renames the head. It reports false
// if the clause cannot be adorned.
func (t *AdornDatabase) adornClause(unit *ast.TranslationUnit, clause *ast.Clause, marker string, request func(ast.QualifiedName, string)) bool {
	head := clause.Head
	if marker != "" && len(marker) != len(head.Args) {
		unit.Report(ast.NewError(ast.AdornmentErr, clause, "binding pattern %q does not match arity %d of %v", marker, len(head.Args), head.Name))
		return false
	}

	store := NewBindingStore(clause)
	for i, arg := range head.Args {
		if marker != "" && marker[i] == 'b' {
			if v, ok := arg.(*ast.Variable); ok {
				store.BindHeadVariable(v.Name)
			}
		}
	}

	atoms := clause.Atoms()
	remaining := slices.Clone(atoms)
	scheduled := make([]*ast.Atom, 0, len(atoms))
	for range atoms {
		idx := t.sips(remaining, store)
		atom := remaining[idx]
		remaining[idx] = nil
		if unit.Program.IsIDB(atom.Name) {
			if adornedName(atom.Name) {
				// already specialized by an earlier application
				request(atom.Name, "")
			} else {
				m := atomMarker(store, atom)
				request(atom.Name, m)
				atom.Name = adornmentID(atom.Name, m)
			}
		}
		for v := range ast.VarsOf(atom) {
			store.BindVariable(v)
		}
		scheduled = append(scheduled, atom)
	}

	body := make([]ast.Literal, 0, len(clause.Body))
	for _, atom := range scheduled {
		body = append(body, atom)
	}
	for _, l := range clause.Body {
		if _, ok := l.(*ast.Atom); !ok {
			body = append(body, l)
		}
	}
	clause.Body = body

	for v := range ast.VarsOf(head) {
		if !store.IsBound(v) {
			unit.Report(ast.NewError(ast.UnboundVarErr, clause, "head variable %s is never bound in the body", v))
		}
	}

	clause.Head.Name = adornmentID(head.Name, marker)

	// negated and aggregated occurrences request the unadorned variant
	ast.WalkAtoms(clause, func(atom *ast.Atom) {
		if unit.Program.IsIDB(atom.Name) {
			request(atom.Name, "")
		}
	})
	return true
}

// atomMarker renders the binding pattern of an atom under the current
// binding state.
func atomMarker(store *BindingStore, atom *ast.Atom) string {
	var sb strings.Builder
	for _, arg := range atom.Args {
		if argumentBound(store, arg) {
			sb.WriteByte('b')
		} else {
			sb.WriteByte('f')
		}
	}
	return sb.String()
}
