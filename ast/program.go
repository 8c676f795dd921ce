// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// QualifiedName identifies a relation. Names are value types and compare by
// their qualified parts.
type QualifiedName struct {
	parts string
}

// Name returns the qualified name assembled from the parts.
func Name(parts ...string) QualifiedName {
	return QualifiedName{parts: strings.Join(parts, ".")}
}

// Qualify returns a copy of the name with the extra part appended.
func (q QualifiedName) Qualify(part string) QualifiedName {
	if q.parts == "" {
		return QualifiedName{parts: part}
	}
	return QualifiedName{parts: q.parts + "." + part}
}

// Equal returns true if the names have the same parts.
func (q QualifiedName) Equal(other QualifiedName) bool {
	return q.parts == other.parts
}

// Hash returns a hash of the name, usable as a map key where names are
// deduplicated.
func (q QualifiedName) Hash() uint64 {
	return xxhash.Sum64String(q.parts)
}

func (q QualifiedName) String() string {
	return q.parts
}

// Relation declares a relation: its name, attribute names, and whether it is
// read from or written to the outside world.
type Relation struct {
	Name       QualifiedName
	Attributes []string
	Input      bool
	Output     bool
}

// NewRelation returns a relation declaration.
func NewRelation(name QualifiedName, attributes ...string) *Relation {
	return &Relation{Name: name, Attributes: attributes}
}

// Arity returns the number of attributes of the relation.
func (r *Relation) Arity() int {
	return len(r.Attributes)
}

// Clone returns a deep copy of the declaration.
func (r *Relation) Clone() *Relation {
	return &Relation{
		Name:       r.Name,
		Attributes: slices.Clone(r.Attributes),
		Input:      r.Input,
		Output:     r.Output,
	}
}

func (r *Relation) String() string {
	s := fmt.Sprintf(".decl %v(%s)", r.Name, strings.Join(r.Attributes, ","))
	if r.Input {
		s += " input"
	}
	if r.Output {
		s += " output"
	}
	return s
}

// Clause is a rule: a head atom implied by a conjunction of body literals. A
// clause with an empty body is a fact.
type Clause struct {
	Head *Atom
	Body []Literal
}

// NewClause returns a clause with the given head and body.
func NewClause(head *Atom, body ...Literal) *Clause {
	if head == nil {
		panic("ast: clause requires a head atom")
	}
	return &Clause{Head: head, Body: body}
}

// Children implements Node.
func (c *Clause) Children() []Node {
	nodes := []Node{c.Head}
	for _, l := range c.Body {
		nodes = append(nodes, l)
	}
	return nodes
}

// Clone implements Node.
func (c *Clause) Clone() Node {
	return &Clause{Head: c.Head.Clone().(*Atom), Body: cloneLiterals(c.Body)}
}

// CloneClause returns a deep copy with its concrete type.
func (c *Clause) CloneClause() *Clause {
	return c.Clone().(*Clause)
}

// Equal implements Node.
func (c *Clause) Equal(other Node) bool {
	o, ok := other.(*Clause)
	return ok && c.Head.Equal(o.Head) && equalLiterals(c.Body, o.Body)
}

// Apply implements Node.
func (c *Clause) Apply(m NodeMapper) {
	head, ok := m.Map(c.Head).(*Atom)
	if !ok {
		panic("ast: mapper replaced a clause head with a non-atom")
	}
	c.Head = head
	for i := range c.Body {
		c.Body[i] = mapLiteral(m, c.Body[i])
	}
}

// Atoms returns the positive atoms of the clause body in document order.
func (c *Clause) Atoms() []*Atom {
	var atoms []*Atom
	for _, l := range c.Body {
		if a, ok := l.(*Atom); ok {
			atoms = append(atoms, a)
		}
	}
	return atoms
}

func (c *Clause) String() string {
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	parts := make([]string, len(c.Body))
	for i, l := range c.Body {
		parts[i] = l.String()
	}
	return fmt.Sprintf("%v :- %s.", c.Head, strings.Join(parts, ", "))
}

// Program is the root of a Datalog translation: the relation declarations
// and the clauses over them.
type Program struct {
	relations map[QualifiedName]*Relation
	Clauses   []*Clause
}

// NewProgram returns a program over the given relations and clauses.
func NewProgram(relations []*Relation, clauses ...*Clause) *Program {
	p := &Program{relations: map[QualifiedName]*Relation{}, Clauses: clauses}
	for _, r := range relations {
		p.AddRelation(r)
	}
	return p
}

// AddRelation registers a relation declaration. Duplicate names are a caller
// bug.
func (p *Program) AddRelation(r *Relation) {
	if _, ok := p.relations[r.Name]; ok {
		panic(fmt.Sprintf("ast: duplicate relation %v", r.Name))
	}
	p.relations[r.Name] = r
}

// Relation returns the declaration registered under name, or nil.
func (p *Program) Relation(name QualifiedName) *Relation {
	return p.relations[name]
}

// Relations returns the declarations in name order.
func (p *Program) Relations() []*Relation {
	rels := make([]*Relation, 0, len(p.relations))
	for _, r := range p.relations {
		rels = append(rels, r)
	}
	slices.SortFunc(rels, func(a, b *Relation) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	return rels
}

// ClausesFor returns the clauses whose head is the named relation, in
// document order.
func (p *Program) ClausesFor(name QualifiedName) []*Clause {
	var out []*Clause
	for _, c := range p.Clauses {
		if c.Head.Name.Equal(name) {
			out = append(out, c)
		}
	}
	return out
}

// IsIDB returns true if the named relation is intensional: defined by
// clauses rather than supplied as input.
func (p *Program) IsIDB(name QualifiedName) bool {
	if r := p.Relation(name); r != nil && r.Input {
		return false
	}
	return len(p.ClausesFor(name)) > 0
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() *Program {
	cpy := &Program{relations: map[QualifiedName]*Relation{}}
	for name, r := range p.relations {
		cpy.relations[name] = r.Clone()
	}
	cpy.Clauses = make([]*Clause, len(p.Clauses))
	for i, c := range p.Clauses {
		cpy.Clauses[i] = c.CloneClause()
	}
	return cpy
}

func (p *Program) String() string {
	var b strings.Builder
	for _, r := range p.Relations() {
		fmt.Fprintf(&b, "%v\n", r)
	}
	for _, c := range p.Clauses {
		fmt.Fprintf(&b, "%v\n", c)
	}
	return b.String()
}
