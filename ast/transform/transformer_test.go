// Copyright 2018 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package transform

import (
	"testing"

	go_metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
	logrus_test "github.com/sirupsen/logrus/hooks/test"

	"github.com/CloudDataLab/souffle/ast"
)

func TestDriverRecordsTimers(t *testing.T) {
	registry := go_metrics.NewRegistry()
	driver := NewDriver().WithMetrics(registry)

	unit := ast.NewTranslationUnit(ast.NewProgram(nil))
	driver.Apply(NewPartitionIO(), unit)

	timer, ok := registry.Get("ast.transform.PartitionIO").(go_metrics.Timer)
	if !ok {
		t.Fatalf("expected a timer registered for the pass")
	}
	if timer.Count() != 1 {
		t.Fatalf("expected 1 recorded application, got %d", timer.Count())
	}
}

func TestDriverLogsApplications(t *testing.T) {
	logger, hook := logrus_test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	driver := NewDriver().WithLogger(logger)

	unit := ast.NewTranslationUnit(ast.NewProgram(nil))
	driver.Apply(NewUniqueAggregationVariables(), unit)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("expected a log entry per application")
	}
	if entry.Data["pass"] != "UniqueAggregationVariables" {
		t.Fatalf("unexpected pass field: %v", entry.Data["pass"])
	}
	if entry.Data["changed"] != false {
		t.Fatalf("unexpected changed field: %v", entry.Data["changed"])
	}
}

func TestTransformerClones(t *testing.T) {
	passes := []Transformer{
		NewAdornDatabase().WithSIPS("max-bound"),
		NewReorderLiterals(),
		NewUniqueAggregationVariables(),
		NewPartitionIO(),
	}
	for _, p := range passes {
		cpy := p.Clone()
		if cpy == nil || cpy.Name() != p.Name() {
			t.Fatalf("expected clone of %s to carry the same name", p.Name())
		}
	}
}
