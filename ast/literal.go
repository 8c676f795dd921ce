// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"

	"github.com/CloudDataLab/souffle/ops"
)

// Atom is a positive use of a relation over an ordered argument list.
type Atom struct {
	Name QualifiedName
	Args []Argument
}

// NewAtom returns an atom for the relation name over the arguments.
func NewAtom(name QualifiedName, args ...Argument) *Atom {
	return &Atom{Name: name, Args: args}
}

func (a *Atom) isLiteral() {}

// Arity returns the number of arguments of the atom.
func (a *Atom) Arity() int {
	return len(a.Args)
}

// Children implements Node.
func (a *Atom) Children() []Node {
	nodes := make([]Node, len(a.Args))
	for i, arg := range a.Args {
		nodes[i] = arg
	}
	return nodes
}

// Clone implements Node.
func (a *Atom) Clone() Node {
	return &Atom{Name: a.Name, Args: cloneArguments(a.Args)}
}

// Equal implements Node.
func (a *Atom) Equal(other Node) bool {
	o, ok := other.(*Atom)
	return ok && a.Name.Equal(o.Name) && equalArguments(a.Args, o.Args)
}

// Apply implements Node.
func (a *Atom) Apply(m NodeMapper) {
	for i := range a.Args {
		a.Args[i] = mapArgument(m, a.Args[i])
	}
}

func (a *Atom) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%v(%s)", a.Name, strings.Join(parts, ","))
}

// Negation is a negated atom.
type Negation struct {
	Atom *Atom
}

// NewNegation returns the negation of the atom.
func NewNegation(atom *Atom) *Negation {
	if atom == nil {
		panic("ast: negation requires an atom")
	}
	return &Negation{Atom: atom}
}

func (n *Negation) isLiteral() {}

// Children implements Node.
func (n *Negation) Children() []Node {
	return []Node{n.Atom}
}

// Clone implements Node.
func (n *Negation) Clone() Node {
	return &Negation{Atom: n.Atom.Clone().(*Atom)}
}

// Equal implements Node.
func (n *Negation) Equal(other Node) bool {
	o, ok := other.(*Negation)
	return ok && n.Atom.Equal(o.Atom)
}

// Apply implements Node.
func (n *Negation) Apply(m NodeMapper) {
	out, ok := m.Map(n.Atom).(*Atom)
	if !ok {
		panic("ast: mapper replaced a negated atom with a non-atom")
	}
	n.Atom = out
}

func (n *Negation) String() string {
	return "!" + n.Atom.String()
}

// BinaryConstraint compares two arguments with a binary constraint operator.
type BinaryConstraint struct {
	Op  ops.BinaryConstraintOp
	LHS Argument
	RHS Argument
}

// NewBinaryConstraint returns a constraint over the two operands.
func NewBinaryConstraint(op ops.BinaryConstraintOp, lhs, rhs Argument) *BinaryConstraint {
	if lhs == nil || rhs == nil {
		panic("ast: binary constraint requires two operands")
	}
	return &BinaryConstraint{Op: op, LHS: lhs, RHS: rhs}
}

func (c *BinaryConstraint) isLiteral() {}

// Children implements Node.
func (c *BinaryConstraint) Children() []Node {
	return []Node{c.LHS, c.RHS}
}

// Clone implements Node.
func (c *BinaryConstraint) Clone() Node {
	return &BinaryConstraint{
		Op:  c.Op,
		LHS: c.LHS.Clone().(Argument),
		RHS: c.RHS.Clone().(Argument),
	}
}

// Equal implements Node.
func (c *BinaryConstraint) Equal(other Node) bool {
	o, ok := other.(*BinaryConstraint)
	return ok && c.Op == o.Op && c.LHS.Equal(o.LHS) && c.RHS.Equal(o.RHS)
}

// Apply implements Node.
func (c *BinaryConstraint) Apply(m NodeMapper) {
	c.LHS = mapArgument(m, c.LHS)
	c.RHS = mapArgument(m, c.RHS)
}

func (c *BinaryConstraint) String() string {
	return fmt.Sprintf("%v %s %v", c.LHS, c.Op.Symbol(), c.RHS)
}
