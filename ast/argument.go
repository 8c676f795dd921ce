// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"
)

// Variable is a named logic variable.
type Variable struct {
	Name string
}

// NewVariable returns a variable with the given name.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

func (v *Variable) isArgument() {}

// Children implements Node.
func (v *Variable) Children() []Node {
	return nil
}

// Clone implements Node.
func (v *Variable) Clone() Node {
	return &Variable{Name: v.Name}
}

// Equal implements Node.
func (v *Variable) Equal(other Node) bool {
	o, ok := other.(*Variable)
	return ok && v.Name == o.Name
}

// Apply implements Node.
func (v *Variable) Apply(NodeMapper) {}

func (v *Variable) String() string {
	return v.Name
}

// UnnamedVariable is the anonymous variable; every occurrence is distinct.
type UnnamedVariable struct{}

// NewUnnamedVariable returns an anonymous variable.
func NewUnnamedVariable() *UnnamedVariable {
	return &UnnamedVariable{}
}

func (v *UnnamedVariable) isArgument() {}

// Children implements Node.
func (v *UnnamedVariable) Children() []Node {
	return nil
}

// Clone implements Node.
func (v *UnnamedVariable) Clone() Node {
	return &UnnamedVariable{}
}

// Equal implements Node.
func (v *UnnamedVariable) Equal(other Node) bool {
	_, ok := other.(*UnnamedVariable)
	return ok
}

// Apply implements Node.
func (v *UnnamedVariable) Apply(NodeMapper) {}

func (v *UnnamedVariable) String() string {
	return "_"
}

// NumberConstant is a numeric literal.
type NumberConstant struct {
	Value int64
}

// NewNumberConstant returns a numeric constant.
func NewNumberConstant(value int64) *NumberConstant {
	return &NumberConstant{Value: value}
}

func (c *NumberConstant) isArgument() {}

// Children implements Node.
func (c *NumberConstant) Children() []Node {
	return nil
}

// Clone implements Node.
func (c *NumberConstant) Clone() Node {
	return &NumberConstant{Value: c.Value}
}

// Equal implements Node.
func (c *NumberConstant) Equal(other Node) bool {
	o, ok := other.(*NumberConstant)
	return ok && c.Value == o.Value
}

// Apply implements Node.
func (c *NumberConstant) Apply(NodeMapper) {}

func (c *NumberConstant) String() string {
	return fmt.Sprintf("%d", c.Value)
}

// StringConstant is a symbol literal.
type StringConstant struct {
	Value string
}

// NewStringConstant returns a string constant.
func NewStringConstant(value string) *StringConstant {
	return &StringConstant{Value: value}
}

func (c *StringConstant) isArgument() {}

// Children implements Node.
func (c *StringConstant) Children() []Node {
	return nil
}

// Clone implements Node.
func (c *StringConstant) Clone() Node {
	return &StringConstant{Value: c.Value}
}

// Equal implements Node.
func (c *StringConstant) Equal(other Node) bool {
	o, ok := other.(*StringConstant)
	return ok && c.Value == o.Value
}

// Apply implements Node.
func (c *StringConstant) Apply(NodeMapper) {}

func (c *StringConstant) String() string {
	return fmt.Sprintf("%q", c.Value)
}

// RecordInit constructs a record from an ordered list of field arguments.
type RecordInit struct {
	Args []Argument
}

// NewRecordInit returns a record construction over the fields.
func NewRecordInit(args ...Argument) *RecordInit {
	return &RecordInit{Args: args}
}

func (r *RecordInit) isArgument() {}

// Children implements Node.
func (r *RecordInit) Children() []Node {
	nodes := make([]Node, len(r.Args))
	for i, a := range r.Args {
		nodes[i] = a
	}
	return nodes
}

// Clone implements Node.
func (r *RecordInit) Clone() Node {
	return &RecordInit{Args: cloneArguments(r.Args)}
}

// Equal implements Node.
func (r *RecordInit) Equal(other Node) bool {
	o, ok := other.(*RecordInit)
	return ok && equalArguments(r.Args, o.Args)
}

// Apply implements Node.
func (r *RecordInit) Apply(m NodeMapper) {
	for i := range r.Args {
		r.Args[i] = mapArgument(m, r.Args[i])
	}
}

func (r *RecordInit) String() string {
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// AggregateOp enumerates the aggregation operators.
type AggregateOp int

const (
	// CountOp counts the tuples satisfying the aggregate body.
	CountOp AggregateOp = iota

	// MinOp computes the minimum of the target expression.
	MinOp

	// MaxOp computes the maximum of the target expression.
	MaxOp

	// SumOp computes the sum of the target expression.
	SumOp
)

func (op AggregateOp) String() string {
	switch op {
	case CountOp:
		return "count"
	case MinOp:
		return "min"
	case MaxOp:
		return "max"
	case SumOp:
		return "sum"
	}
	panic(fmt.Sprintf("illegal aggregate operator: %d", int(op)))
}

// Aggregator evaluates an aggregate over the tuples satisfying its body
// literals. The target expression is the value being aggregated; it is nil
// for count.
type Aggregator struct {
	Op     AggregateOp
	Target Argument
	Body   []Literal
}

// NewAggregator returns an aggregation of the target expression over the
// body.
func NewAggregator(op AggregateOp, target Argument, body ...Literal) *Aggregator {
	return &Aggregator{Op: op, Target: target, Body: body}
}

func (a *Aggregator) isArgument() {}

// Children implements Node.
func (a *Aggregator) Children() []Node {
	var nodes []Node
	if a.Target != nil {
		nodes = append(nodes, a.Target)
	}
	for _, l := range a.Body {
		nodes = append(nodes, l)
	}
	return nodes
}

// Clone implements Node.
func (a *Aggregator) Clone() Node {
	cpy := &Aggregator{Op: a.Op, Body: cloneLiterals(a.Body)}
	if a.Target != nil {
		cpy.Target = a.Target.Clone().(Argument)
	}
	return cpy
}

// Equal implements Node.
func (a *Aggregator) Equal(other Node) bool {
	o, ok := other.(*Aggregator)
	if !ok || a.Op != o.Op || !equalLiterals(a.Body, o.Body) {
		return false
	}
	if a.Target == nil || o.Target == nil {
		return a.Target == nil && o.Target == nil
	}
	return a.Target.Equal(o.Target)
}

// Apply implements Node.
func (a *Aggregator) Apply(m NodeMapper) {
	if a.Target != nil {
		a.Target = mapArgument(m, a.Target)
	}
	for i := range a.Body {
		a.Body[i] = mapLiteral(m, a.Body[i])
	}
}

func (a *Aggregator) String() string {
	parts := make([]string, len(a.Body))
	for i, l := range a.Body {
		parts[i] = l.String()
	}
	body := strings.Join(parts, ", ")
	if a.Target == nil {
		return fmt.Sprintf("%v : { %s }", a.Op, body)
	}
	return fmt.Sprintf("%v %v : { %s }", a.Op, a.Target, body)
}
