// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"fmt"
	"strings"
)

// ElementAccess reads the element-th attribute of the tuple bound by the
// enclosing search carrying the same identifier.
type ElementAccess struct {
	ID      int
	Element int
}

// NewElementAccess returns an access to column element of the tuple bound at
// the given loop identifier.
func NewElementAccess(id, element int) *ElementAccess {
	return &ElementAccess{ID: id, Element: element}
}

func (e *ElementAccess) isExpression() {}

// Children implements Node.
func (e *ElementAccess) Children() []Node {
	return nil
}

// Clone implements Node.
func (e *ElementAccess) Clone() Node {
	return &ElementAccess{ID: e.ID, Element: e.Element}
}

// Equal implements Node.
func (e *ElementAccess) Equal(other Node) bool {
	o, ok := other.(*ElementAccess)
	return ok && e.ID == o.ID && e.Element == o.Element
}

// Apply implements Node.
func (e *ElementAccess) Apply(NodeMapper) {}

func (e *ElementAccess) String() string {
	return fmt.Sprintf("t%d.%d", e.ID, e.Element)
}

// Constant is a compile-time constant value.
type Constant struct {
	Value int64
}

// NewConstant returns a constant expression.
func NewConstant(value int64) *Constant {
	return &Constant{Value: value}
}

func (c *Constant) isExpression() {}

// Children implements Node.
func (c *Constant) Children() []Node {
	return nil
}

// Clone implements Node.
func (c *Constant) Clone() Node {
	return &Constant{Value: c.Value}
}

// Equal implements Node.
func (c *Constant) Equal(other Node) bool {
	o, ok := other.(*Constant)
	return ok && c.Value == o.Value
}

// Apply implements Node.
func (c *Constant) Apply(NodeMapper) {}

func (c *Constant) String() string {
	return fmt.Sprintf("number(%d)", c.Value)
}

// IntrinsicOperator applies a built-in operator to an ordered argument list.
type IntrinsicOperator struct {
	Op   string
	Args []Expression
}

// NewIntrinsicOperator returns an application of a built-in operator.
func NewIntrinsicOperator(op string, args ...Expression) *IntrinsicOperator {
	return &IntrinsicOperator{Op: op, Args: args}
}

func (e *IntrinsicOperator) isExpression() {}

// Children implements Node.
func (e *IntrinsicOperator) Children() []Node {
	nodes := make([]Node, len(e.Args))
	for i, a := range e.Args {
		nodes[i] = a
	}
	return nodes
}

// Clone implements Node.
func (e *IntrinsicOperator) Clone() Node {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Clone().(Expression)
	}
	return &IntrinsicOperator{Op: e.Op, Args: args}
}

// Equal implements Node.
func (e *IntrinsicOperator) Equal(other Node) bool {
	o, ok := other.(*IntrinsicOperator)
	if !ok || e.Op != o.Op || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Apply implements Node.
func (e *IntrinsicOperator) Apply(m NodeMapper) {
	for i := range e.Args {
		e.Args[i] = mapExpression(m, e.Args[i])
	}
}

func (e *IntrinsicOperator) String() string {
	return fmt.Sprintf("(%s %s)", e.Op, exprList(e.Args))
}

// UserDefinedOperator applies an externally defined functor to an ordered
// argument list.
type UserDefinedOperator struct {
	Name string
	Args []Expression
}

// NewUserDefinedOperator returns an application of a user-defined functor.
func NewUserDefinedOperator(name string, args ...Expression) *UserDefinedOperator {
	return &UserDefinedOperator{Name: name, Args: args}
}

func (e *UserDefinedOperator) isExpression() {}

// Children implements Node.
func (e *UserDefinedOperator) Children() []Node {
	nodes := make([]Node, len(e.Args))
	for i, a := range e.Args {
		nodes[i] = a
	}
	return nodes
}

// Clone implements Node.
func (e *UserDefinedOperator) Clone() Node {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Clone().(Expression)
	}
	return &UserDefinedOperator{Name: e.Name, Args: args}
}

// Equal implements Node.
func (e *UserDefinedOperator) Equal(other Node) bool {
	o, ok := other.(*UserDefinedOperator)
	if !ok || e.Name != o.Name || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Apply implements Node.
func (e *UserDefinedOperator) Apply(m NodeMapper) {
	for i := range e.Args {
		e.Args[i] = mapExpression(m, e.Args[i])
	}
}

func (e *UserDefinedOperator) String() string {
	return fmt.Sprintf("@%s(%s)", e.Name, exprList(e.Args))
}

// PackRecord constructs a record value from an ordered list of field
// expressions.
type PackRecord struct {
	Args []Expression
}

// NewPackRecord returns a record construction over the given fields.
func NewPackRecord(args ...Expression) *PackRecord {
	return &PackRecord{Args: args}
}

func (e *PackRecord) isExpression() {}

// Children implements Node.
func (e *PackRecord) Children() []Node {
	nodes := make([]Node, len(e.Args))
	for i, a := range e.Args {
		nodes[i] = a
	}
	return nodes
}

// Clone implements Node.
func (e *PackRecord) Clone() Node {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Clone().(Expression)
	}
	return &PackRecord{Args: args}
}

// Equal implements Node.
func (e *PackRecord) Equal(other Node) bool {
	o, ok := other.(*PackRecord)
	if !ok || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Apply implements Node.
func (e *PackRecord) Apply(m NodeMapper) {
	for i := range e.Args {
		e.Args[i] = mapExpression(m, e.Args[i])
	}
}

func (e *PackRecord) String() string {
	return fmt.Sprintf("[%s]", exprList(e.Args))
}

func exprList(args []Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "_"
		} else {
			parts[i] = a.String()
		}
	}
	return strings.Join(parts, ",")
}
