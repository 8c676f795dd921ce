// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import "github.com/CloudDataLab/souffle/ast"

// BindingStore tracks which variables of a single clause are known bound.
// Equality constraints seed binding dependencies: an entry
//
//	x -> {s1, s2, ...}
//
// means x becomes bound as soon as every variable of any one set si is
// bound. Dependencies only ever shrink toward bound: binding is a one-way
// fixpoint, never revoked. The store is transient, scoped to one clause's
// adornment or reordering computation.
type BindingStore struct {
	boundVariables     ast.VarSet
	boundHeadVariables ast.VarSet
	dependencies       map[string][]ast.VarSet
}

// NewBindingStore returns a store seeded from the clause's equality
// constraints, with no variables bound yet.
func NewBindingStore(clause *ast.Clause) *BindingStore {
	s := &BindingStore{
		boundVariables:     ast.VarSet{},
		boundHeadVariables: ast.VarSet{},
		dependencies:       map[string][]ast.VarSet{},
	}
	s.generateBindingDependencies(clause)
	s.reduceDependencies()
	return s
}

// BindVariable marks the variable bound and propagates through the
// dependency store.
func (s *BindingStore) BindVariable(name string) {
	s.boundVariables.Add(name)
	s.reduceDependencies()
}

// BindHeadVariable marks a head variable as bound by the caller. Head
// bindings are assumptions, not derived facts, and do not propagate through
// the dependency store.
func (s *BindingStore) BindHeadVariable(name string) {
	s.boundHeadVariables.Add(name)
}

// IsBound returns true if the variable is bound or assumed bound.
func (s *BindingStore) IsBound(name string) bool {
	return s.boundVariables.Contains(name) || s.boundHeadVariables.Contains(name)
}

// BoundVariables returns the set of variables bound so far, head assumptions
// excluded.
func (s *BindingStore) BoundVariables() ast.VarSet {
	return s.boundVariables.Copy()
}

func (s *BindingStore) addBindingDependency(variable string, dep ast.VarSet) {
	for _, existing := range s.dependencies[variable] {
		if existing.Hash() == dep.Hash() && existing.Equal(dep) {
			return
		}
	}
	s.dependencies[variable] = append(s.dependencies[variable], dep)
}

// processEqualityBindings seeds the dependencies arising from lhs = rhs: the
// left variable becomes bound once all variables of the right side are, and
// a record construction on the right additionally binds each field variable
// once the left variable is bound (fields of a bound record are bound).
func (s *BindingStore) processEqualityBindings(lhs, rhs ast.Argument) {
	v, ok := lhs.(*ast.Variable)
	if !ok {
		return
	}
	s.addBindingDependency(v.Name, ast.VarsOf(rhs))
	if rec, ok := rhs.(*ast.RecordInit); ok {
		for _, arg := range rec.Args {
			// constant record fields carry no binding obligation
			if field, ok := arg.(*ast.Variable); ok {
				s.addBindingDependency(field.Name, ast.NewVarSet(v.Name))
			}
		}
	}
}

// generateBindingDependencies collects the equality constraints of the
// clause that sit outside aggregations and mention no aggregator, and seeds
// dependencies in both directions.
func (s *BindingStore) generateBindingDependencies(clause *ast.Clause) {
	var constraints []*ast.BinaryConstraint
	ast.WalkNodes(clause, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Aggregator:
			return true
		case *ast.BinaryConstraint:
			if n.Op.IsEquality() && !containsAggregator(n) {
				constraints = append(constraints, n)
			}
		}
		return false
	})

	for _, bc := range constraints {
		s.processEqualityBindings(bc.LHS, bc.RHS)
		s.processEqualityBindings(bc.RHS, bc.LHS)
	}
}

// reduceDependencies repeatedly drops dependency sets that are fully
// satisfied, binding their owning variable, and strips bound members from
// the rest. Each iteration either binds a variable or removes a variable
// from the dependency universe, so the loop terminates after at most one
// iteration per clause variable.
func (s *BindingStore) reduceDependencies() {
	for {
		changed := false
		newDependencies := map[string][]ast.VarSet{}
		var variablesToBind []string

		for headVar, alternatives := range s.dependencies {
			if s.boundVariables.Contains(headVar) {
				// no need to keep the dependencies of already-bound variables
				changed = true
				continue
			}

			nowBound := false
			var kept []ast.VarSet
			for _, dep := range alternatives {
				// only keep unbound variables in the dependency
				newDep := ast.VarSet{}
				for v := range dep {
					if !s.boundVariables.Contains(v) {
						newDep.Add(v)
					} else {
						changed = true
					}
				}
				if len(newDep) == 0 {
					// dependency satisfied
					nowBound = true
					break
				}
				kept = append(kept, newDep)
			}

			if nowBound {
				variablesToBind = append(variablesToBind, headVar)
				changed = true
			} else {
				newDependencies[headVar] = kept
			}
		}

		for _, v := range variablesToBind {
			s.boundVariables.Add(v)
		}
		s.dependencies = newDependencies

		if !changed {
			return
		}
	}
}

func containsAggregator(n ast.Node) bool {
	found := false
	ast.WalkAggregators(n, func(*ast.Aggregator) {
		found = true
	})
	return found
}
