// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// VarSet represents a set of variable names.
type VarSet map[string]struct{}

// NewVarSet returns a set containing the given names.
func NewVarSet(names ...string) VarSet {
	s := VarSet{}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// VarsOf returns the set of named variables appearing under x.
func VarsOf(x Node) VarSet {
	s := VarSet{}
	WalkVariables(x, func(v *Variable) {
		s.Add(v.Name)
	})
	return s
}

// Add adds the name to the set.
func (s VarSet) Add(name string) {
	s[name] = struct{}{}
}

// Contains returns true if the name is in the set.
func (s VarSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Copy returns a shallow copy of the set.
func (s VarSet) Copy() VarSet {
	cpy := make(VarSet, len(s))
	for name := range s {
		cpy[name] = struct{}{}
	}
	return cpy
}

// Sorted returns the names in the set in sorted order.
func (s VarSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Equal returns true if both sets hold the same names.
func (s VarSet) Equal(other VarSet) bool {
	if len(s) != len(other) {
		return false
	}
	for name := range s {
		if !other.Contains(name) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the canonical (sorted) form of the set, usable to
// deduplicate sets of sets.
func (s VarSet) Hash() uint64 {
	return xxhash.Sum64String(strings.Join(s.Sorted(), "\x00"))
}

func (s VarSet) String() string {
	return "{" + strings.Join(s.Sorted(), ",") + "}"
}
