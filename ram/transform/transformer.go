// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package transform implements the RAM optimization passes: condition
// hoisting, index selection, and existence-check conversion, together with
// the metatransformers used to compose them into pipelines.
package transform

import (
	"time"

	go_metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/CloudDataLab/souffle/ram"
)

// Transformer is a RAM transformation pass. A pass receives the program by
// exclusive mutable access, either completes a fully formed rewrite of the
// portions it touches or leaves them untouched, and reports whether anything
// changed. Passes are values: Clone supports pipeline composition and reuse
// without aliasing.
type Transformer interface {
	// Name returns the name of the transformer.
	Name() string

	// Transform applies the pass to the program and returns true if the
	// program was modified.
	Transform(*ram.Program) bool

	// Clone returns an independent copy of the transformer.
	Clone() Transformer
}

// Driver applies transformers to a program, optionally logging each
// application and recording per-pass timers.
type Driver struct {
	logger   logrus.FieldLogger
	registry go_metrics.Registry
}

// NewDriver returns a driver with logging and metrics disabled.
func NewDriver() *Driver {
	return &Driver{}
}

// WithLogger configures the driver to log each pass application at debug
// level.
func (d *Driver) WithLogger(logger logrus.FieldLogger) *Driver {
	d.logger = logger
	return d
}

// WithMetrics configures the driver to record a timer per pass in the given
// registry.
func (d *Driver) WithMetrics(registry go_metrics.Registry) *Driver {
	d.registry = registry
	return d
}

// Apply runs a single transformer on the program and returns whether the
// program changed.
func (d *Driver) Apply(t Transformer, prog *ram.Program) bool {
	t0 := time.Now()
	changed := t.Transform(prog)
	elapsed := time.Since(t0)
	if d.registry != nil {
		go_metrics.GetOrRegisterTimer("ram.transform."+t.Name(), d.registry).Update(elapsed)
	}
	if d.logger != nil {
		d.logger.WithFields(logrus.Fields{
			"pass":     t.Name(),
			"changed":  changed,
			"duration": elapsed,
		}).Debug("Applied RAM transformer.")
	}
	return changed
}

// Sequence applies a list of transformers in order. It reports a change if
// any pass in the list reported one.
type Sequence struct {
	transformers []Transformer
	name         string
}

// NewSequence returns a sequence over the transformers.
func NewSequence(transformers ...Transformer) *Sequence {
	return &Sequence{transformers: transformers, name: "Sequence"}
}

// Name implements Transformer.
func (s *Sequence) Name() string {
	return s.name
}

// Transform implements Transformer.
func (s *Sequence) Transform(prog *ram.Program) bool {
	changed := false
	for _, t := range s.transformers {
		if t.Transform(prog) {
			changed = true
		}
	}
	return changed
}

// Clone implements Transformer.
func (s *Sequence) Clone() Transformer {
	transformers := make([]Transformer, len(s.transformers))
	for i, t := range s.transformers {
		transformers[i] = t.Clone()
	}
	return &Sequence{transformers: transformers, name: s.name}
}

// Fixpoint reapplies a transformer until it reports no change. Termination
// relies on the wrapped pass being idempotent once nothing qualifies; the
// iteration limit guards against passes that keep reporting changes.
type Fixpoint struct {
	inner Transformer

	// Limit bounds the number of iterations. Zero means no bound.
	Limit int
}

// NewFixpoint returns a fixpoint wrapper around the transformer.
func NewFixpoint(inner Transformer) *Fixpoint {
	return &Fixpoint{inner: inner}
}

// Name implements Transformer.
func (f *Fixpoint) Name() string {
	return "Fixpoint(" + f.inner.Name() + ")"
}

// Transform implements Transformer.
func (f *Fixpoint) Transform(prog *ram.Program) bool {
	changed := false
	for i := 0; f.Limit == 0 || i < f.Limit; i++ {
		if !f.inner.Transform(prog) {
			break
		}
		changed = true
	}
	return changed
}

// Clone implements Transformer.
func (f *Fixpoint) Clone() Transformer {
	return &Fixpoint{inner: f.inner.Clone(), Limit: f.Limit}
}

// Conditional applies a transformer only while the predicate holds.
type Conditional struct {
	cond  func() bool
	inner Transformer
}

// NewConditional returns a conditional wrapper around the transformer.
func NewConditional(cond func() bool, inner Transformer) *Conditional {
	return &Conditional{cond: cond, inner: inner}
}

// Name implements Transformer.
func (c *Conditional) Name() string {
	return "Conditional(" + c.inner.Name() + ")"
}

// Transform implements Transformer.
func (c *Conditional) Transform(prog *ram.Program) bool {
	if !c.cond() {
		return false
	}
	return c.inner.Transform(prog)
}

// Clone implements Transformer.
func (c *Conditional) Clone() Transformer {
	return &Conditional{cond: c.cond, inner: c.inner.Clone()}
}
