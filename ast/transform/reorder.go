// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"slices"

	"github.com/CloudDataLab/souffle/ast"
)

// SIPS is a sideways information passing strategy: given the not yet
// scheduled atoms of a clause body (scheduled slots are nil) and the current
// binding state, it returns the index of the best atom to schedule next. The
// index must refer to a non-nil candidate.
type SIPS func(atoms []*ast.Atom, store *BindingStore) int

// GetSIPS returns the named strategy. The default strategy is "all-bound".
func GetSIPS(name string) (SIPS, bool) {
	switch name {
	case "strict":
		return StrictSIPS, true
	case "all-bound":
		return AllBoundSIPS, true
	case "max-bound":
		return MaxBoundSIPS, true
	case "least-free":
		return LeastFreeSIPS, true
	}
	return AllBoundSIPS, false
}

// StrictSIPS schedules atoms in their original order.
func StrictSIPS(atoms []*ast.Atom, _ *BindingStore) int {
	for i, atom := range atoms {
		if atom != nil {
			return i
		}
	}
	panic("ast/transform: no atom left to schedule")
}

// AllBoundSIPS prefers the first atom whose arguments are all bound, falling
// back to original order.
func AllBoundSIPS(atoms []*ast.Atom, store *BindingStore) int {
	for i, atom := range atoms {
		if atom == nil {
			continue
		}
		allBound := true
		for _, arg := range atom.Args {
			if !argumentBound(store, arg) {
				allBound = false
				break
			}
		}
		if allBound {
			return i
		}
	}
	return StrictSIPS(atoms, store)
}

// MaxBoundSIPS prefers the atom with the most bound arguments, earliest
// first on ties.
func MaxBoundSIPS(atoms []*ast.Atom, store *BindingStore) int {
	best, bestBound := -1, -1
	for i, atom := range atoms {
		if atom == nil {
			continue
		}
		bound := 0
		for _, arg := range atom.Args {
			if argumentBound(store, arg) {
				bound++
			}
		}
		if bound > bestBound {
			best, bestBound = i, bound
		}
	}
	if best < 0 {
		panic("ast/transform: no atom left to schedule")
	}
	return best
}

// LeastFreeSIPS prefers the atom introducing the fewest unbound variables,
// earliest first on ties.
func LeastFreeSIPS(atoms []*ast.Atom, store *BindingStore) int {
	best, bestFree := -1, -1
	for i, atom := range atoms {
		if atom == nil {
			continue
		}
		free := 0
		for v := range ast.VarsOf(atom) {
			if !store.IsBound(v) {
				free++
			}
		}
		if best < 0 || free < bestFree {
			best, bestFree = i, free
		}
	}
	if best < 0 {
		panic("ast/transform: no atom left to schedule")
	}
	return best
}

// argumentBound returns true if the argument holds no unbound variable: all
// named variables under it are bound and it contains no anonymous variable.
func argumentBound(store *BindingStore, arg ast.Argument) bool {
	bound := true
	ast.WalkNodes(arg, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Variable:
			if !store.IsBound(n.Name) {
				bound = false
			}
		case *ast.UnnamedVariable:
			bound = false
		}
		return false
	})
	return bound
}

// ReorderLiterals reorders the atoms of every clause body according to a
// SIPS, so that atoms binding variables early come first. Non-atom literals
// keep their positions; only the atoms permute among the atom slots.
type ReorderLiterals struct {
	sips     SIPS
	sipsName string
}

// NewReorderLiterals returns a reordering pass using the default strategy.
func NewReorderLiterals() *ReorderLiterals {
	sips, _ := GetSIPS("all-bound")
	return &ReorderLiterals{sips: sips, sipsName: "all-bound"}
}

// WithSIPS configures the strategy by name. Unknown names select the
// default.
func (t *ReorderLiterals) WithSIPS(name string) *ReorderLiterals {
	t.sips, _ = GetSIPS(name)
	t.sipsName = name
	return t
}

// Name implements Transformer.
func (*ReorderLiterals) Name() string {
	return "ReorderLiterals"
}

// Clone implements Transformer.
func (t *ReorderLiterals) Clone() Transformer {
	return &ReorderLiterals{sips: t.sips, sipsName: t.sipsName}
}

// Transform implements Transformer.
func (t *ReorderLiterals) Transform(unit *ast.TranslationUnit) bool {
	changed := false
	for _, clause := range unit.Program.Clauses {
		if reorderClauseWithSips(t.sips, clause) {
			changed = true
		}
	}
	return changed
}

// orderingAfterSIPS determines the new ordering of the clause's atoms: the
// returned vector v satisfies v[i] = j iff atom j moves to position i.
func orderingAfterSIPS(sips SIPS, clause *ast.Clause) []int {
	store := NewBindingStore(clause)
	atoms := clause.Atoms()
	remaining := slices.Clone(atoms)

	order := make([]int, 0, len(atoms))
	for range atoms {
		idx := sips(remaining, store)
		if idx < 0 || idx >= len(remaining) || remaining[idx] == nil {
			panic("ast/transform: sips returned an invalid candidate index")
		}
		order = append(order, idx)
		// a scheduled atom binds every variable it mentions
		for v := range ast.VarsOf(remaining[idx]) {
			store.BindVariable(v)
		}
		remaining[idx] = nil
	}
	return order
}

// reorderClauseWithSips permutes the clause's atoms in place according to
// the SIPS and reports whether the order changed.
func reorderClauseWithSips(sips SIPS, clause *ast.Clause) bool {
	order := orderingAfterSIPS(sips, clause)

	identity := true
	for i, j := range order {
		if i != j {
			identity = false
			break
		}
	}
	if identity {
		return false
	}

	atoms := clause.Atoms()
	slot := 0
	for i, l := range clause.Body {
		if _, ok := l.(*ast.Atom); ok {
			clause.Body[i] = atoms[order[slot]]
			slot++
		}
	}
	return true
}
