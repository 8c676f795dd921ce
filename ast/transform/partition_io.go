// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"strconv"

	"github.com/CloudDataLab/souffle/ast"
)

// PartitionIO splits every relation that is both read from the outside and
// written to the outside. The input side moves to a fresh relation qualified
// with "@input" and a bridging clause copies its facts into the original,
// which stays output only. Afterwards no relation is both input and output,
// which the adornment fixpoint relies on to tell source facts from derived
// ones.
type PartitionIO struct{}

// NewPartitionIO returns the partitioning pass.
func NewPartitionIO() *PartitionIO {
	return &PartitionIO{}
}

// Name implements Transformer.
func (*PartitionIO) Name() string {
	return "PartitionIO"
}

// Clone implements Transformer.
func (*PartitionIO) Clone() Transformer {
	return &PartitionIO{}
}

// Transform implements Transformer.
func (*PartitionIO) Transform(unit *ast.TranslationUnit) bool {
	prog := unit.Program
	changed := false
	for _, rel := range prog.Relations() {
		if !rel.Input || !rel.Output {
			continue
		}

		inputRel := rel.Clone()
		inputRel.Name = rel.Name.Qualify("@input")
		inputRel.Output = false
		prog.AddRelation(inputRel)
		rel.Input = false

		head := &ast.Atom{Name: rel.Name}
		body := &ast.Atom{Name: inputRel.Name}
		for i := range rel.Attributes {
			v := "@x" + strconv.Itoa(i)
			head.Args = append(head.Args, &ast.Variable{Name: v})
			body.Args = append(body.Args, &ast.Variable{Name: v})
		}
		prog.Clauses = append(prog.Clauses, &ast.Clause{Head: head, Body: []ast.Literal{body}})
		changed = true
	}
	return changed
}
