// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"fmt"

	"github.com/CloudDataLab/souffle/ops"
)

// Conjunction is the logical and of exactly two conditions. Multi-way
// conjunctions are represented as right-nested binary conjunctions; the
// translator additionally keeps filter conditions verbose (one filter per
// conjunct), which the hoisting pass depends on.
type Conjunction struct {
	LHS Condition
	RHS Condition
}

// NewConjunction returns the conjunction of the two conditions.
func NewConjunction(lhs, rhs Condition) *Conjunction {
	if lhs == nil || rhs == nil {
		panic("ram: conjunction requires two conditions")
	}
	return &Conjunction{LHS: lhs, RHS: rhs}
}

func (c *Conjunction) isCondition() {}

// Children implements Node.
func (c *Conjunction) Children() []Node {
	return []Node{c.LHS, c.RHS}
}

// Clone implements Node.
func (c *Conjunction) Clone() Node {
	return &Conjunction{
		LHS: c.LHS.Clone().(Condition),
		RHS: c.RHS.Clone().(Condition),
	}
}

// Equal implements Node.
func (c *Conjunction) Equal(other Node) bool {
	o, ok := other.(*Conjunction)
	return ok && c.LHS.Equal(o.LHS) && c.RHS.Equal(o.RHS)
}

// Apply implements Node.
func (c *Conjunction) Apply(m NodeMapper) {
	c.LHS = mapCondition(m, c.LHS)
	c.RHS = mapCondition(m, c.RHS)
}

func (c *Conjunction) String() string {
	return fmt.Sprintf("(%v and %v)", c.LHS, c.RHS)
}

// Constraint compares two expressions with a binary constraint operator.
type Constraint struct {
	Op  ops.BinaryConstraintOp
	LHS Expression
	RHS Expression
}

// NewConstraint returns a binary constraint over the two operands.
func NewConstraint(op ops.BinaryConstraintOp, lhs, rhs Expression) *Constraint {
	if lhs == nil || rhs == nil {
		panic("ram: constraint requires two operands")
	}
	return &Constraint{Op: op, LHS: lhs, RHS: rhs}
}

func (c *Constraint) isCondition() {}

// Children implements Node.
func (c *Constraint) Children() []Node {
	return []Node{c.LHS, c.RHS}
}

// Clone implements Node.
func (c *Constraint) Clone() Node {
	return &Constraint{
		Op:  c.Op,
		LHS: c.LHS.Clone().(Expression),
		RHS: c.RHS.Clone().(Expression),
	}
}

// Equal implements Node.
func (c *Constraint) Equal(other Node) bool {
	o, ok := other.(*Constraint)
	return ok && c.Op == o.Op && c.LHS.Equal(o.LHS) && c.RHS.Equal(o.RHS)
}

// Apply implements Node.
func (c *Constraint) Apply(m NodeMapper) {
	c.LHS = mapExpression(m, c.LHS)
	c.RHS = mapExpression(m, c.RHS)
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%v %s %v", c.LHS, c.Op.Symbol(), c.RHS)
}

// Negation negates a condition.
type Negation struct {
	Operand Condition
}

// NewNegation returns the negation of the condition.
func NewNegation(operand Condition) *Negation {
	if operand == nil {
		panic("ram: negation requires a condition")
	}
	return &Negation{Operand: operand}
}

func (c *Negation) isCondition() {}

// Children implements Node.
func (c *Negation) Children() []Node {
	return []Node{c.Operand}
}

// Clone implements Node.
func (c *Negation) Clone() Node {
	return &Negation{Operand: c.Operand.Clone().(Condition)}
}

// Equal implements Node.
func (c *Negation) Equal(other Node) bool {
	o, ok := other.(*Negation)
	return ok && c.Operand.Equal(o.Operand)
}

// Apply implements Node.
func (c *Negation) Apply(m NodeMapper) {
	c.Operand = mapCondition(m, c.Operand)
}

func (c *Negation) String() string {
	return fmt.Sprintf("(not %v)", c.Operand)
}

// EmptinessCheck evaluates to true if the referenced relation holds no
// tuples.
type EmptinessCheck struct {
	Ref *RelationReference
}

// NewEmptinessCheck returns an emptiness check of the relation.
func NewEmptinessCheck(ref *RelationReference) *EmptinessCheck {
	if ref == nil {
		panic("ram: emptiness check requires a relation reference")
	}
	return &EmptinessCheck{Ref: ref}
}

func (c *EmptinessCheck) isCondition() {}

// Relation returns the checked relation.
func (c *EmptinessCheck) Relation() *Relation {
	return c.Ref.Relation()
}

// Children implements Node.
func (c *EmptinessCheck) Children() []Node {
	return []Node{c.Ref}
}

// Clone implements Node.
func (c *EmptinessCheck) Clone() Node {
	return &EmptinessCheck{Ref: c.Ref.Clone().(*RelationReference)}
}

// Equal implements Node.
func (c *EmptinessCheck) Equal(other Node) bool {
	o, ok := other.(*EmptinessCheck)
	return ok && c.Ref.Equal(o.Ref)
}

// Apply implements Node.
func (c *EmptinessCheck) Apply(m NodeMapper) {
	c.Ref = mapRelationReference(m, c.Ref)
}

func (c *EmptinessCheck) String() string {
	return fmt.Sprintf("(%s = empty)", c.Relation().Name)
}

// ExistenceCheck evaluates to true if the relation holds a tuple matching
// the column pattern. Unbound (nil) columns match any value.
type ExistenceCheck struct {
	Ref    *RelationReference
	Values []Expression
}

// NewExistenceCheck returns a membership test of the pattern against the
// relation. The pattern must cover every attribute of the relation.
func NewExistenceCheck(ref *RelationReference, values []Expression) *ExistenceCheck {
	if ref == nil {
		panic("ram: existence check requires a relation reference")
	}
	if len(values) != ref.Relation().Arity() {
		panic(fmt.Sprintf("ram: existence check pattern has %d columns, relation %s has arity %d",
			len(values), ref.Relation().Name, ref.Relation().Arity()))
	}
	return &ExistenceCheck{Ref: ref, Values: values}
}

func (c *ExistenceCheck) isCondition() {}

// Relation returns the checked relation.
func (c *ExistenceCheck) Relation() *Relation {
	return c.Ref.Relation()
}

// Children implements Node.
func (c *ExistenceCheck) Children() []Node {
	return patternChildren([]Node{c.Ref}, c.Values)
}

// Clone implements Node.
func (c *ExistenceCheck) Clone() Node {
	return &ExistenceCheck{
		Ref:    c.Ref.Clone().(*RelationReference),
		Values: clonePattern(c.Values),
	}
}

// Equal implements Node.
func (c *ExistenceCheck) Equal(other Node) bool {
	o, ok := other.(*ExistenceCheck)
	return ok && c.Ref.Equal(o.Ref) && equalPattern(c.Values, o.Values)
}

// Apply implements Node.
func (c *ExistenceCheck) Apply(m NodeMapper) {
	c.Ref = mapRelationReference(m, c.Ref)
	mapPattern(m, c.Values)
}

func (c *ExistenceCheck) String() string {
	return fmt.Sprintf("(%s) in %s", exprList(c.Values), c.Relation().Name)
}
