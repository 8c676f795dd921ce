// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ram defines the relational algebra machine (RAM) intermediate
// representation: the tree of conditions, expressions, operations, and
// statements produced by lowering a Datalog program, and the generic
// rewriting machinery that optimization passes are built on.
package ram

import "fmt"

// Node is implemented by every element of the RAM tree.
//
// Cloning produces a fully independent copy of the subtree: mutating the
// clone never affects the original. Equality is structural, by node kind and
// children, never by identity. Relation references are the one exception to
// deep copying: they are non-owning handles and a clone aliases the same
// underlying relation.
type Node interface {
	fmt.Stringer

	// Children returns the ordered list of direct child nodes. Unbound
	// pattern columns are not children and do not appear.
	Children() []Node

	// Clone returns a deep copy of the node.
	Clone() Node

	// Equal returns true if the other node is structurally equal.
	Equal(Node) bool

	// Apply rewrites each direct child of the node through the mapper,
	// installing whatever the mapper returns in its place. The mapper takes
	// ownership of the child it is handed and the node takes ownership of
	// the result; the old child is unreachable afterwards unless the mapper
	// returned it.
	Apply(NodeMapper)
}

// Expression is a RAM value computation.
type Expression interface {
	Node
	isExpression()
}

// Condition is a RAM truth-valued test.
type Condition interface {
	Node
	isCondition()
}

// Operation is a nested loop/filter/projection inside a query.
type Operation interface {
	Node
	isOperation()
}

// Statement is a top-level RAM instruction.
type Statement interface {
	Node
	isStatement()
}

// Search is an operation that introduces a loop over tuples or record fields.
// The identifier scopes which element accesses below it read the bound tuple.
type Search interface {
	Operation

	// Identifier returns the loop identifier introduced by the search.
	Identifier() int

	// Nested returns the operation executed for each binding.
	Nested() Operation
}

// RelationSearch is a search backed by a relation (a scan or an index scan).
type RelationSearch interface {
	Search

	// Relation returns the relation being searched.
	Relation() *Relation
}

// NodeMapper transforms nodes handed to it by Node.Apply. A mapper takes
// ownership of its argument and returns the (possibly identical, possibly
// replaced) node to install. Mappers drive their own recursion: a mapper that
// wants to descend calls Apply on the node before or after rewriting it.
type NodeMapper interface {
	Map(Node) Node
}

// MapperFunc adapts a function to the NodeMapper interface.
type MapperFunc func(Node) Node

// Map invokes the function.
func (f MapperFunc) Map(n Node) Node {
	return f(n)
}

// mapExpression maps a required expression child. A nil child or a mapper
// result of the wrong family is a caller bug.
func mapExpression(m NodeMapper, e Expression) Expression {
	if e == nil {
		panic("ram: nil expression handed to mapper")
	}
	out, ok := m.Map(e).(Expression)
	if !ok {
		panic("ram: mapper replaced an expression with a non-expression")
	}
	return out
}

func mapCondition(m NodeMapper, c Condition) Condition {
	if c == nil {
		panic("ram: nil condition handed to mapper")
	}
	out, ok := m.Map(c).(Condition)
	if !ok {
		panic("ram: mapper replaced a condition with a non-condition")
	}
	return out
}

func mapOperation(m NodeMapper, o Operation) Operation {
	if o == nil {
		panic("ram: nil operation handed to mapper")
	}
	out, ok := m.Map(o).(Operation)
	if !ok {
		panic("ram: mapper replaced an operation with a non-operation")
	}
	return out
}

func mapStatement(m NodeMapper, s Statement) Statement {
	if s == nil {
		panic("ram: nil statement handed to mapper")
	}
	out, ok := m.Map(s).(Statement)
	if !ok {
		panic("ram: mapper replaced a statement with a non-statement")
	}
	return out
}

// mapPattern maps the bound columns of an index pattern in place. Unbound
// (nil) columns are preserved.
func mapPattern(m NodeMapper, pattern []Expression) {
	for i, e := range pattern {
		if e != nil {
			pattern[i] = mapExpression(m, e)
		}
	}
}

// clonePattern deep copies an index pattern, keeping unbound columns unbound.
func clonePattern(pattern []Expression) []Expression {
	cpy := make([]Expression, len(pattern))
	for i, e := range pattern {
		if e != nil {
			cpy[i] = e.Clone().(Expression)
		}
	}
	return cpy
}

// equalPattern compares two index patterns column by column. Columns are
// equal if both are unbound or both hold structurally equal expressions.
func equalPattern(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch {
		case a[i] == nil && b[i] == nil:
		case a[i] == nil || b[i] == nil:
			return false
		case !a[i].Equal(b[i]):
			return false
		}
	}
	return true
}

// patternChildren appends the bound columns of a pattern to dst.
func patternChildren(dst []Node, pattern []Expression) []Node {
	for _, e := range pattern {
		if e != nil {
			dst = append(dst, e)
		}
	}
	return dst
}
