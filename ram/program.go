// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ram

import (
	"fmt"
	"slices"
	"strings"
)

// Program is the root of a RAM translation: it owns the relations and the
// main statement. Transformation passes receive the program by exclusive
// mutable access and report whether they changed it.
type Program struct {
	relations map[string]*Relation
	Main      Statement
}

// NewProgram returns a program executing the main statement over the given
// relations. Duplicate relation names are a caller bug.
func NewProgram(main Statement, relations ...*Relation) *Program {
	if main == nil {
		panic("ram: program requires a main statement")
	}
	p := &Program{relations: map[string]*Relation{}, Main: main}
	for _, r := range relations {
		p.AddRelation(r)
	}
	return p
}

// AddRelation registers a relation with the program.
func (p *Program) AddRelation(r *Relation) {
	if _, ok := p.relations[r.Name]; ok {
		panic(fmt.Sprintf("ram: duplicate relation %q", r.Name))
	}
	p.relations[r.Name] = r
}

// Relation returns the relation registered under name, or nil.
func (p *Program) Relation(name string) *Relation {
	return p.relations[name]
}

// Relations returns the program's relations in name order.
func (p *Program) Relations() []*Relation {
	names := make([]string, 0, len(p.relations))
	for name := range p.relations {
		names = append(names, name)
	}
	slices.Sort(names)
	rels := make([]*Relation, len(names))
	for i, name := range names {
		rels[i] = p.relations[name]
	}
	return rels
}

// Children implements Node.
func (p *Program) Children() []Node {
	return []Node{p.Main}
}

// Clone implements Node. Relations are cloned along with the main statement;
// references inside the cloned statement are rebound to the cloned relations
// so the copy shares nothing with the original.
func (p *Program) Clone() Node {
	cpy := &Program{relations: map[string]*Relation{}, Main: p.Main.Clone().(Statement)}
	for name, r := range p.relations {
		cpy.relations[name] = &Relation{Name: r.Name, Attributes: slices.Clone(r.Attributes)}
	}
	var rebind MapperFunc
	rebind = func(n Node) Node {
		if ref, ok := n.(*RelationReference); ok {
			return NewRelationReference(cpy.relations[ref.Relation().Name])
		}
		n.Apply(rebind)
		return n
	}
	cpy.Apply(rebind)
	return cpy
}

// Equal implements Node.
func (p *Program) Equal(other Node) bool {
	o, ok := other.(*Program)
	if !ok || len(p.relations) != len(o.relations) {
		return false
	}
	for name, r := range p.relations {
		or, ok := o.relations[name]
		if !ok || r.Arity() != or.Arity() {
			return false
		}
	}
	return p.Main.Equal(o.Main)
}

// Apply implements Node.
func (p *Program) Apply(m NodeMapper) {
	p.Main = mapStatement(m, p.Main)
}

func (p *Program) String() string {
	var b strings.Builder
	for _, r := range p.Relations() {
		fmt.Fprintf(&b, "relation %v\n", r)
	}
	fmt.Fprintf(&b, "%v\n", p.Main)
	return b.String()
}
