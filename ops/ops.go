// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ops defines the binary constraint operators shared by the logical
// AST and the relational algebra IR.
package ops

import "fmt"

// BinaryConstraintOp enumerates the comparison operators that may appear in a
// binary constraint.
type BinaryConstraintOp int

const (
	// EQ is the equality operator.
	EQ BinaryConstraintOp = iota

	// NE is the inequality operator.
	NE

	// LT is the less-than operator.
	LT

	// LE is the less-than-or-equal operator.
	LE

	// GT is the greater-than operator.
	GT

	// GE is the greater-than-or-equal operator.
	GE
)

var symbols = [...]string{
	EQ: "=",
	NE: "!=",
	LT: "<",
	LE: "<=",
	GT: ">",
	GE: ">=",
}

// Symbol returns the concrete syntax of the operator.
func (op BinaryConstraintOp) Symbol() string {
	if int(op) < 0 || int(op) >= len(symbols) {
		panic(fmt.Sprintf("illegal binary constraint operator: %d", int(op)))
	}
	return symbols[op]
}

func (op BinaryConstraintOp) String() string {
	return op.Symbol()
}

// IsEquality returns true if the operator is the equality operator. Equality
// constraints are the ones index selection and binding analysis can exploit.
func (op BinaryConstraintOp) IsEquality() bool {
	return op == EQ
}

// Negate returns the operator with the opposite truth table.
func (op BinaryConstraintOp) Negate() BinaryConstraintOp {
	switch op {
	case EQ:
		return NE
	case NE:
		return EQ
	case LT:
		return GE
	case LE:
		return GT
	case GT:
		return LE
	case GE:
		return LT
	}
	panic(fmt.Sprintf("illegal binary constraint operator: %d", int(op)))
}
