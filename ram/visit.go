// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

type (
	// GenericVisitor provides a utility to walk over RAM nodes using a
	// closure. If the closure returns true, the visitor will not walk over
	// nodes under x.
	GenericVisitor struct {
		f func(x Node) bool
	}

	// BeforeAfterVisitor provides a utility to walk over RAM nodes using
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

// Walk iterates the RAM tree under x, invoking the closure for every node
// before recursing into its children.
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

// Walk iterates the RAM tree under x, invoking the closures for every node.
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

// WalkQueries calls the function f on all query statements under x.
func WalkQueries(x Node, f func(*Query)) {
	walkType(x, f)
}

// WalkFilters calls the function f on all filter operations under x.
func WalkFilters(x Node, f func(*Filter)) {
	walkType(x, f)
}

// WalkScans calls the function f on all linear scans under x.
func WalkScans(x Node, f func(*Scan)) {
	walkType(x, f)
}

// WalkSearches calls the function f on all loop-introducing operations under
// x (scans, index scans, and record unpacks).
func WalkSearches(x Node, f func(Search)) {
	walkType(x, f)
}

// WalkRelationSearches calls the function f on all relation-backed searches
// under x.
func WalkRelationSearches(x Node, f func(RelationSearch)) {
	walkType(x, f)
}

// WalkProjects calls the function f on all projections under x.
func WalkProjects(x Node, f func(*Project)) {
	walkType(x, f)
}

// WalkUnpackRecords calls the function f on all record unpacks under x.
func WalkUnpackRecords(x Node, f func(*UnpackRecord)) {
	walkType(x, f)
}

// WalkConditions calls the function f on all conditions under x.
func WalkConditions(x Node, f func(Condition)) {
	walkType(x, f)
}

// WalkExpressions calls the function f on all expressions under x.
func WalkExpressions(x Node, f func(Expression)) {
	walkType(x, f)
}

// WalkElementAccesses calls the function f on all element accesses under x.
func WalkElementAccesses(x Node, f func(*ElementAccess)) {
	walkType(x, f)
}
