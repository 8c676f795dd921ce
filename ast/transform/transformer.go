// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package transform implements the AST transformation passes: magic-set
// adornment, SIPS-driven literal reordering, and the normalization passes
// they depend on.
package transform

import (
	"time"

	go_metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/CloudDataLab/souffle/ast"
)

// Transformer is an AST transformation pass. A pass mutates the unit's
// program in place, records diagnostics about the input program on the unit,
// and reports whether the program changed. Passes are cloneable values so
// pipelines can be composed and reused without aliasing.
type Transformer interface {
	// Name returns the name of the transformer.
	Name() string

	// Transform applies the pass to the translation unit and returns true
	// if the program was modified.
	Transform(*ast.TranslationUnit) bool

	// Clone returns an independent copy of the transformer.
	Clone() Transformer
}

// Driver applies transformers to a translation unit, optionally logging each
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

// Apply runs a single transformer on the unit and returns whether the
// program changed.
func (d *Driver) Apply(t Transformer, unit *ast.TranslationUnit) bool {
	t0 := time.Now()
	changed := t.Transform(unit)
	elapsed := time.Since(t0)
	if d.registry != nil {
		go_metrics.GetOrRegisterTimer("ast.transform."+t.Name(), d.registry).Update(elapsed)
	}
	if d.logger != nil {
		d.logger.WithFields(logrus.Fields{
			"pass":     t.Name(),
			"changed":  changed,
			"errors":   len(unit.Errors),
			"duration": elapsed,
		}).Debug("Applied AST transformer.")
	}
	return changed
}
