// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ast defines the logical AST of a Datalog program: relations,
// clauses, literals, and arguments, together with the visitation and
// rewriting machinery shared by the AST transformation passes.
package ast

import "fmt"

// Node is implemented by every element of the AST. Cloning produces a fully
// independent subtree; equality is structural.
type Node interface {
	fmt.Stringer

	// Children returns the ordered list of direct child nodes.
	Children() []Node

	// Clone returns a deep copy of the node.
	Clone() Node

	// Equal returns true if the other node is structurally equal.
	Equal(Node) bool

	// Apply rewrites each direct child of the node through the mapper.
	Apply(NodeMapper)
}

// Argument is a term appearing in an atom or constraint: a variable, a
// constant, a record construction, or an aggregation.
type Argument interface {
	Node
	isArgument()
}

// Literal is an element of a clause body: an atom, a negated atom, or a
// binary constraint.
type Literal interface {
	Node
	isLiteral()
}

// NodeMapper transforms nodes handed to it by Node.Apply, taking ownership
// of its argument and returning the node to install in its place.
type NodeMapper interface {
	Map(Node) Node
}

// MapperFunc adapts a function to the NodeMapper interface.
type MapperFunc func(Node) Node

// Map invokes the function.
func (f MapperFunc) Map(n Node) Node {
	return f(n)
}

func mapArgument(m NodeMapper, a Argument) Argument {
	if a == nil {
		panic("ast: nil argument handed to mapper")
	}
	out, ok := m.Map(a).(Argument)
	if !ok {
		panic("ast: mapper replaced an argument with a non-argument")
	}
	return out
}

func mapLiteral(m NodeMapper, l Literal) Literal {
	if l == nil {
		panic("ast: nil literal handed to mapper")
	}
	out, ok := m.Map(l).(Literal)
	if !ok {
		panic("ast: mapper replaced a literal with a non-literal")
	}
	return out
}

func cloneArguments(args []Argument) []Argument {
	cpy := make([]Argument, len(args))
	for i, a := range args {
		cpy[i] = a.Clone().(Argument)
	}
	return cpy
}

func cloneLiterals(literals []Literal) []Literal {
	cpy := make([]Literal, len(literals))
	for i, l := range literals {
		cpy[i] = l.Clone().(Literal)
	}
	return cpy
}

func equalArguments(a, b []Argument) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalLiterals(a, b []Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
