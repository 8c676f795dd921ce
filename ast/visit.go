// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

type (
	// GenericVisitor provides a utility to walk over AST nodes using a
	// closure. If the closure returns true, the visitor will not walk over
	// nodes under x.
	GenericVisitor struct {
		f func(x Node) bool
	}

	// BeforeAfterVisitor provides a utility to walk over AST nodes using
	// closures. If the before closure returns true, the visitor will not
	// walk over nodes under x. The after closure is invoked always after
	// visiting a node.
	BeforeAfterVisitor struct {
		before func(x Node) bool
		after  func(x Node)
	}
)

// NewGenericVisitor returns a new GenericVisitor that will invoke the
// function f on each node in pre-order.
func NewGenericVisitor(f func(x Node) bool) *GenericVisitor {
	return &GenericVisitor{f}
}

// Walk iterates the AST under x, invoking the closure for every node before
// recursing into its children.
func (vis *GenericVisitor) Walk(x Node) {
	if vis.f(x) {
		return
	}
	for _, child := range x.Children() {
		vis.Walk(child)
	}
}

// NewBeforeAfterVisitor returns a new BeforeAfterVisitor invoking the before
// closure pre-order and the after closure post-order.
func NewBeforeAfterVisitor(before func(x Node) bool, after func(x Node)) *BeforeAfterVisitor {
	return &BeforeAfterVisitor{before, after}
}

// Walk iterates the AST under x, invoking the closures for every node.
func (vis *BeforeAfterVisitor) Walk(x Node) {
	defer vis.after(x)
	if vis.before(x) {
		return
	}
	for _, child := range x.Children() {
		vis.Walk(child)
	}
}

// WalkNodes calls the function f on all nodes under x in pre-order. If f
// returns true, nodes under the last node will not be visited.
func WalkNodes(x Node, f func(Node) bool) {
	NewGenericVisitor(f).Walk(x)
}

// WalkNodesPostOrder calls the function f on all nodes under x after their
// children have been visited.
func WalkNodesPostOrder(x Node, f func(Node)) {
	NewBeforeAfterVisitor(func(Node) bool { return false }, f).Walk(x)
}

// walkType calls f on every node of type T under x without requiring the
// callback to handle unrelated node kinds.
func walkType[T Node](x Node, f func(T)) {
	NewGenericVisitor(func(n Node) bool {
		if t, ok := n.(T); ok {
			f(t)
		}
		return false
	}).Walk(x)
}

// WalkVariables calls the function f on all named variables under x.
func WalkVariables(x Node, f func(*Variable)) {
	walkType(x, f)
}

// WalkAtoms calls the function f on all positive atoms under x, including
// atoms inside negations and aggregate bodies.
func WalkAtoms(x Node, f func(*Atom)) {
	walkType(x, f)
}

// WalkConstraints calls the function f on all binary constraints under x.
func WalkConstraints(x Node, f func(*BinaryConstraint)) {
	walkType(x, f)
}

// WalkAggregators calls the function f on all aggregators under x.
func WalkAggregators(x Node, f func(*Aggregator)) {
	walkType(x, f)
}

// WalkAggregatorsPostOrder calls the function f on all aggregators under x
// after their nested aggregators have been visited.
func WalkAggregatorsPostOrder(x Node, f func(*Aggregator)) {
	WalkNodesPostOrder(x, func(n Node) {
		if agg, ok := n.(*Aggregator); ok {
			f(agg)
		}
	})
}

// WalkLiterals calls the function f on all body literals under x.
func WalkLiterals(x Node, f func(Literal)) {
	walkType(x, f)
}

// WalkRecordInits calls the function f on all record constructions under x.
func WalkRecordInits(x Node, f func(*RecordInit)) {
	walkType(x, f)
}
