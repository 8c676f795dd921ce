// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"testing"

	go_metrics "github.com/rcrowley/go-metrics"

	"github.com/CloudDataLab/souffle/ram"
)

// countdown reports a change on its first n applications.
type countdown struct {
	n       int
	applied int
}

func (c *countdown) Name() string { return "countdown" }

func (c *countdown) Transform(*ram.Program) bool {
	c.applied++
	if c.n > 0 {
		c.n--
		return true
	}
	return false
}

func (c *countdown) Clone() Transformer {
	return &countdown{n: c.n}
}

func emptyProgram() *ram.Program {
	r := ram.NewRelation("R", "x")
	return ram.NewProgram(ram.NewQuery(
		ram.NewScan(ram.NewRelationReference(r), 0,
			ram.NewProject(ram.NewRelationReference(r), ram.NewElementAccess(0, 0)))), r)
}

func TestFixpointRunsUntilSettled(t *testing.T) {
	inner := &countdown{n: 3}
	fp := NewFixpoint(inner)

	if !fp.Transform(emptyProgram()) {
		t.Fatalf("expected fixpoint to report a change")
	}
	if inner.applied != 4 {
		t.Fatalf("expected 3 changing applications plus 1 settling, got %d", inner.applied)
	}
}

func TestFixpointLimit(t *testing.T) {
	inner := &countdown{n: 100}
	fp := NewFixpoint(inner)
	fp.Limit = 5

	fp.Transform(emptyProgram())
	if inner.applied != 5 {
		t.Fatalf("expected the limit to cap applications at 5, got %d", inner.applied)
	}
}

func TestSequenceReportsAnyChange(t *testing.T) {
	changing := &countdown{n: 1}
	settled := &countdown{n: 0}

	if !NewSequence(settled, changing).Transform(emptyProgram()) {
		t.Fatalf("expected sequence to propagate the change")
	}
	if NewSequence(&countdown{n: 0}, &countdown{n: 0}).Transform(emptyProgram()) {
		t.Fatalf("expected unchanged sequence to report no change")
	}
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	inner := &countdown{n: 1}
	seq := NewSequence(inner)
	cpy := seq.Clone()

	cpy.Transform(emptyProgram())
	if inner.applied != 0 {
		t.Fatalf("expected clone to run its own copies, original applied %d times", inner.applied)
	}
}

func TestConditional(t *testing.T) {
	inner := &countdown{n: 10}
	enabled := false
	cond := NewConditional(func() bool { return enabled }, inner)

	if cond.Transform(emptyProgram()) {
		t.Fatalf("expected disabled conditional to report no change")
	}
	enabled = true
	if !cond.Transform(emptyProgram()) {
		t.Fatalf("expected enabled conditional to apply the pass")
	}
}

func TestDriverRecordsTimers(t *testing.T) {
	registry := go_metrics.NewRegistry()
	driver := NewDriver().WithMetrics(registry)

	driver.Apply(&countdown{n: 1}, emptyProgram())

	timer, ok := registry.Get("ram.transform.countdown").(go_metrics.Timer)
	if !ok {
		t.Fatalf("expected a timer registered for the pass")
	}
	if timer.Count() != 1 {
		t.Fatalf("expected 1 recorded application, got %d", timer.Count())
	}
}
