// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"fmt"
	"strings"
)

// Scan iterates linearly over every tuple of a relation, binding each tuple
// at the scan's loop identifier before executing the nested operation.
type Scan struct {
	Ref  *RelationReference
	ID   int
	Body Operation
}

// NewScan returns a linear scan over the relation.
func NewScan(ref *RelationReference, id int, body Operation) *Scan {
	if ref == nil || body == nil {
		panic("ram: scan requires a relation reference and a nested operation")
	}
	return &Scan{Ref: ref, ID: id, Body: body}
}

func (s *Scan) isOperation() {}

// Identifier implements Search.
func (s *Scan) Identifier() int {
	return s.ID
}

// Nested implements Search.
func (s *Scan) Nested() Operation {
	return s.Body
}

// Relation implements RelationSearch.
func (s *Scan) Relation() *Relation {
	return s.Ref.Relation()
}

// Children implements Node.
func (s *Scan) Children() []Node {
	return []Node{s.Ref, s.Body}
}

// Clone implements Node.
func (s *Scan) Clone() Node {
	return &Scan{
		Ref:  s.Ref.Clone().(*RelationReference),
		ID:   s.ID,
		Body: s.Body.Clone().(Operation),
	}
}

// Equal implements Node.
func (s *Scan) Equal(other Node) bool {
	o, ok := other.(*Scan)
	return ok && s.ID == o.ID && s.Ref.Equal(o.Ref) && s.Body.Equal(o.Body)
}

// Apply implements Node.
func (s *Scan) Apply(m NodeMapper) {
	s.Ref = mapRelationReference(m, s.Ref)
	s.Body = mapOperation(m, s.Body)
}

func (s *Scan) String() string {
	return fmt.Sprintf("for t%d in %s do %v", s.ID, s.Relation().Name, s.Body)
}

// IndexScan iterates over the tuples of a relation matching a per-column
// pattern: every bound column must equal its pattern expression, unbound
// (nil) columns are wildcards. The pattern expressions must be computable
// before the scan starts, i.e. their level is strictly outside the scan.
type IndexScan struct {
	Ref     *RelationReference
	ID      int
	Pattern []Expression
	Body    Operation
}

// NewIndexScan returns an index scan with the given column pattern. The
// pattern must cover every attribute of the relation.
func NewIndexScan(ref *RelationReference, id int, pattern []Expression, body Operation) *IndexScan {
	if ref == nil || body == nil {
		panic("ram: index scan requires a relation reference and a nested operation")
	}
	if len(pattern) != ref.Relation().Arity() {
		panic(fmt.Sprintf("ram: index pattern has %d columns, relation %s has arity %d",
			len(pattern), ref.Relation().Name, ref.Relation().Arity()))
	}
	return &IndexScan{Ref: ref, ID: id, Pattern: pattern, Body: body}
}

func (s *IndexScan) isOperation() {}

// Identifier implements Search.
func (s *IndexScan) Identifier() int {
	return s.ID
}

// Nested implements Search.
func (s *IndexScan) Nested() Operation {
	return s.Body
}

// Relation implements RelationSearch.
func (s *IndexScan) Relation() *Relation {
	return s.Ref.Relation()
}

// Children implements Node.
func (s *IndexScan) Children() []Node {
	return append(patternChildren([]Node{s.Ref}, s.Pattern), s.Body)
}

// Clone implements Node.
func (s *IndexScan) Clone() Node {
	return &IndexScan{
		Ref:     s.Ref.Clone().(*RelationReference),
		ID:      s.ID,
		Pattern: clonePattern(s.Pattern),
		Body:    s.Body.Clone().(Operation),
	}
}

// Equal implements Node.
func (s *IndexScan) Equal(other Node) bool {
	o, ok := other.(*IndexScan)
	return ok && s.ID == o.ID && s.Ref.Equal(o.Ref) &&
		equalPattern(s.Pattern, o.Pattern) && s.Body.Equal(o.Body)
}

// Apply implements Node.
func (s *IndexScan) Apply(m NodeMapper) {
	s.Ref = mapRelationReference(m, s.Ref)
	mapPattern(m, s.Pattern)
	s.Body = mapOperation(m, s.Body)
}

func (s *IndexScan) String() string {
	return fmt.Sprintf("for t%d in %s on index (%s) do %v",
		s.ID, s.Relation().Name, exprList(s.Pattern), s.Body)
}

// Filter executes the nested operation only if the condition holds.
type Filter struct {
	Condition Condition
	Body      Operation
}

// NewFilter returns a filter guarding the nested operation.
func NewFilter(condition Condition, body Operation) *Filter {
	if condition == nil || body == nil {
		panic("ram: filter requires a condition and a nested operation")
	}
	return &Filter{Condition: condition, Body: body}
}

func (f *Filter) isOperation() {}

// Nested returns the guarded operation.
func (f *Filter) Nested() Operation {
	return f.Body
}

// Children implements Node.
func (f *Filter) Children() []Node {
	return []Node{f.Condition, f.Body}
}

// Clone implements Node.
func (f *Filter) Clone() Node {
	return &Filter{
		Condition: f.Condition.Clone().(Condition),
		Body:      f.Body.Clone().(Operation),
	}
}

// Equal implements Node.
func (f *Filter) Equal(other Node) bool {
	o, ok := other.(*Filter)
	return ok && f.Condition.Equal(o.Condition) && f.Body.Equal(o.Body)
}

// Apply implements Node.
func (f *Filter) Apply(m NodeMapper) {
	f.Condition = mapCondition(m, f.Condition)
	f.Body = mapOperation(m, f.Body)
}

func (f *Filter) String() string {
	return fmt.Sprintf("if %v then %v", f.Condition, f.Body)
}

// Project writes a tuple into a relation. It is the leaf of every query's
// loop nest.
type Project struct {
	Ref    *RelationReference
	Values []Expression
}

// NewProject returns a projection of the values into the relation.
func NewProject(ref *RelationReference, values ...Expression) *Project {
	if ref == nil {
		panic("ram: project requires a relation reference")
	}
	for _, v := range values {
		if v == nil {
			panic("ram: project requires non-nil values")
		}
	}
	return &Project{Ref: ref, Values: values}
}

func (p *Project) isOperation() {}

// Relation returns the target relation.
func (p *Project) Relation() *Relation {
	return p.Ref.Relation()
}

// Children implements Node.
func (p *Project) Children() []Node {
	nodes := []Node{p.Ref}
	for _, v := range p.Values {
		nodes = append(nodes, v)
	}
	return nodes
}

// Clone implements Node.
func (p *Project) Clone() Node {
	values := make([]Expression, len(p.Values))
	for i, v := range p.Values {
		values[i] = v.Clone().(Expression)
	}
	return &Project{Ref: p.Ref.Clone().(*RelationReference), Values: values}
}

// Equal implements Node.
func (p *Project) Equal(other Node) bool {
	o, ok := other.(*Project)
	if !ok || !p.Ref.Equal(o.Ref) || len(p.Values) != len(o.Values) {
		return false
	}
	for i := range p.Values {
		if !p.Values[i].Equal(o.Values[i]) {
			return false
		}
	}
	return true
}

// Apply implements Node.
func (p *Project) Apply(m NodeMapper) {
	p.Ref = mapRelationReference(m, p.Ref)
	for i := range p.Values {
		p.Values[i] = mapExpression(m, p.Values[i])
	}
}

func (p *Project) String() string {
	parts := make([]string, len(p.Values))
	for i, v := range p.Values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("project (%s) into %s", strings.Join(parts, ","), p.Relation().Name)
}

// UnpackRecord destructures the record referenced by the source expression,
// binding its fields as a tuple at the operation's loop identifier. If the
// source is not a record the nested operation does not execute.
type UnpackRecord struct {
	Source Expression
	ID     int
	Arity  int
	Body   Operation
}

// NewUnpackRecord returns a record destructuring of the source expression.
func NewUnpackRecord(source Expression, id, arity int, body Operation) *UnpackRecord {
	if source == nil || body == nil {
		panic("ram: unpack record requires a source expression and a nested operation")
	}
	return &UnpackRecord{Source: source, ID: id, Arity: arity, Body: body}
}

func (u *UnpackRecord) isOperation() {}

// Identifier implements Search.
func (u *UnpackRecord) Identifier() int {
	return u.ID
}

// Nested implements Search.
func (u *UnpackRecord) Nested() Operation {
	return u.Body
}

// Children implements Node.
func (u *UnpackRecord) Children() []Node {
	return []Node{u.Source, u.Body}
}

// Clone implements Node.
func (u *UnpackRecord) Clone() Node {
	return &UnpackRecord{
		Source: u.Source.Clone().(Expression),
		ID:     u.ID,
		Arity:  u.Arity,
		Body:   u.Body.Clone().(Operation),
	}
}

// Equal implements Node.
func (u *UnpackRecord) Equal(other Node) bool {
	o, ok := other.(*UnpackRecord)
	return ok && u.ID == o.ID && u.Arity == o.Arity &&
		u.Source.Equal(o.Source) && u.Body.Equal(o.Body)
}

// Apply implements Node.
func (u *UnpackRecord) Apply(m NodeMapper) {
	u.Source = mapExpression(m, u.Source)
	u.Body = mapOperation(m, u.Body)
}

func (u *UnpackRecord) String() string {
	return fmt.Sprintf("unpack t%d arity %d from %v do %v", u.ID, u.Arity, u.Source, u.Body)
}
