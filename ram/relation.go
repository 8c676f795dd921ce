// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"fmt"
	"strings"
)

// Relation describes a relation (table) in the RAM program: its name and the
// number and names of its attributes. Relations are owned by the Program;
// everything else refers to them through RelationReference handles and never
// mutates them.
type Relation struct {
	Name       string
	Attributes []string
}

// NewRelation constructs a relation with the given attribute names.
func NewRelation(name string, attributes ...string) *Relation {
	return &Relation{Name: name, Attributes: attributes}
}

// Arity returns the number of attributes of the relation.
func (r *Relation) Arity() int {
	return len(r.Attributes)
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s(%s)", r.Name, strings.Join(r.Attributes, ","))
}

// RelationReference is a non-owning handle naming a relation.
// Conditions and operations hold references so that relations have exactly
// one owner. Cloning a reference copies the handle, not the relation.
type RelationReference struct {
	relation *Relation
}

// NewRelationReference returns a reference to the given relation. A nil
// relation is a caller bug.
func NewRelationReference(relation *Relation) *RelationReference {
	if relation == nil {
		panic("ram: relation reference requires a relation")
	}
	return &RelationReference{relation: relation}
}

// Relation returns the referenced relation.
func (r *RelationReference) Relation() *Relation {
	return r.relation
}

// Children implements Node. A reference is a leaf.
func (r *RelationReference) Children() []Node {
	return nil
}

// Clone implements Node. The clone aliases the same relation.
func (r *RelationReference) Clone() Node {
	return &RelationReference{relation: r.relation}
}

// Equal implements Node. References are equal if they name the same
// relation. Comparison is by name so that structurally identical programs
// holding their own relation objects compare equal.
func (r *RelationReference) Equal(other Node) bool {
	o, ok := other.(*RelationReference)
	return ok && r.relation.Name == o.relation.Name
}

// Apply implements Node. A reference has no children to rewrite.
func (r *RelationReference) Apply(NodeMapper) {}

func (r *RelationReference) String() string {
	return r.relation.Name
}

// mapRelationReference maps a required relation reference child.
func mapRelationReference(m NodeMapper, r *RelationReference) *RelationReference {
	if r == nil {
		panic("ram: nil relation reference handed to mapper")
	}
	out, ok := m.Map(r).(*RelationReference)
	if !ok {
		panic("ram: mapper replaced a relation reference with another node kind")
	}
	return out
}
