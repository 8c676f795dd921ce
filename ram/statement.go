// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"fmt"
	"strings"
)

// Query evaluates a loop nest: the single rule body lowered from a clause.
type Query struct {
	Root Operation
}

// NewQuery returns a query statement executing the operation.
func NewQuery(root Operation) *Query {
	if root == nil {
		panic("ram: query requires a root operation")
	}
	return &Query{Root: root}
}

func (q *Query) isStatement() {}

// Children implements Node.
func (q *Query) Children() []Node {
	return []Node{q.Root}
}

// Clone implements Node.
func (q *Query) Clone() Node {
	return &Query{Root: q.Root.Clone().(Operation)}
}

// Equal implements Node.
func (q *Query) Equal(other Node) bool {
	o, ok := other.(*Query)
	return ok && q.Root.Equal(o.Root)
}

// Apply implements Node.
func (q *Query) Apply(m NodeMapper) {
	q.Root = mapOperation(m, q.Root)
}

func (q *Query) String() string {
	return fmt.Sprintf("query { %v }", q.Root)
}

// Sequence executes its statements in order.
type Sequence struct {
	Statements []Statement
}

// NewSequence returns a sequence of the statements.
func NewSequence(statements ...Statement) *Sequence {
	for _, s := range statements {
		if s == nil {
			panic("ram: sequence requires non-nil statements")
		}
	}
	return &Sequence{Statements: statements}
}

func (s *Sequence) isStatement() {}

// Children implements Node.
func (s *Sequence) Children() []Node {
	nodes := make([]Node, len(s.Statements))
	for i, st := range s.Statements {
		nodes[i] = st
	}
	return nodes
}

// Clone implements Node.
func (s *Sequence) Clone() Node {
	statements := make([]Statement, len(s.Statements))
	for i, st := range s.Statements {
		statements[i] = st.Clone().(Statement)
	}
	return &Sequence{Statements: statements}
}

// Equal implements Node.
func (s *Sequence) Equal(other Node) bool {
	o, ok := other.(*Sequence)
	if !ok || len(s.Statements) != len(o.Statements) {
		return false
	}
	for i := range s.Statements {
		if !s.Statements[i].Equal(o.Statements[i]) {
			return false
		}
	}
	return true
}

// Apply implements Node.
func (s *Sequence) Apply(m NodeMapper) {
	for i := range s.Statements {
		s.Statements[i] = mapStatement(m, s.Statements[i])
	}
}

func (s *Sequence) String() string {
	parts := make([]string, len(s.Statements))
	for i, st := range s.Statements {
		parts[i] = st.String()
	}
	return strings.Join(parts, "; ")
}

// Loop executes its body until an exit statement inside the body fires.
type Loop struct {
	Body Statement
}

// NewLoop returns a loop over the statement.
func NewLoop(body Statement) *Loop {
	if body == nil {
		panic("ram: loop requires a body")
	}
	return &Loop{Body: body}
}

func (l *Loop) isStatement() {}

// Children implements Node.
func (l *Loop) Children() []Node {
	return []Node{l.Body}
}

// Clone implements Node.
func (l *Loop) Clone() Node {
	return &Loop{Body: l.Body.Clone().(Statement)}
}

// Equal implements Node.
func (l *Loop) Equal(other Node) bool {
	o, ok := other.(*Loop)
	return ok && l.Body.Equal(o.Body)
}

// Apply implements Node.
func (l *Loop) Apply(m NodeMapper) {
	l.Body = mapStatement(m, l.Body)
}

func (l *Loop) String() string {
	return fmt.Sprintf("loop { %v }", l.Body)
}

// Exit terminates the innermost enclosing loop when its condition holds.
type Exit struct {
	Condition Condition
}

// NewExit returns an exit statement guarded by the condition.
func NewExit(condition Condition) *Exit {
	if condition == nil {
		panic("ram: exit requires a condition")
	}
	return &Exit{Condition: condition}
}

func (e *Exit) isStatement() {}

// Children implements Node.
func (e *Exit) Children() []Node {
	return []Node{e.Condition}
}

// Clone implements Node.
func (e *Exit) Clone() Node {
	return &Exit{Condition: e.Condition.Clone().(Condition)}
}

// Equal implements Node.
func (e *Exit) Equal(other Node) bool {
	o, ok := other.(*Exit)
	return ok && e.Condition.Equal(o.Condition)
}

// Apply implements Node.
func (e *Exit) Apply(m NodeMapper) {
	e.Condition = mapCondition(m, e.Condition)
}

func (e *Exit) String() string {
	return fmt.Sprintf("exit %v", e.Condition)
}

// Clear removes all tuples from a relation.
type Clear struct {
	Ref *RelationReference
}

// NewClear returns a clear statement for the relation.
func NewClear(ref *RelationReference) *Clear {
	if ref == nil {
		panic("ram: clear requires a relation reference")
	}
	return &Clear{Ref: ref}
}

func (c *Clear) isStatement() {}

// Relation returns the cleared relation.
func (c *Clear) Relation() *Relation {
	return c.Ref.Relation()
}

// Children implements Node.
func (c *Clear) Children() []Node {
	return []Node{c.Ref}
}

// Clone implements Node.
func (c *Clear) Clone() Node {
	return &Clear{Ref: c.Ref.Clone().(*RelationReference)}
}

// Equal implements Node.
func (c *Clear) Equal(other Node) bool {
	o, ok := other.(*Clear)
	return ok && c.Ref.Equal(o.Ref)
}

// Apply implements Node.
func (c *Clear) Apply(m NodeMapper) {
	c.Ref = mapRelationReference(m, c.Ref)
}

func (c *Clear) String() string {
	return fmt.Sprintf("clear %s", c.Relation().Name)
}

var (
	_ RelationSearch = (*Scan)(nil)
	_ RelationSearch = (*IndexScan)(nil)
	_ Search         = (*UnpackRecord)(nil)
	_ Operation      = (*Filter)(nil)
	_ Operation      = (*Project)(nil)
	_ Statement      = (*Query)(nil)
	_ Statement      = (*Sequence)(nil)
	_ Statement      = (*Loop)(nil)
	_ Statement      = (*Exit)(nil)
	_ Statement      = (*Clear)(nil)
)
