// Copyright 2017 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

// TranslationUnit bundles a program with the diagnostics accumulated while
// transforming it. Passes receive the unit by exclusive mutable access;
// errors they report describe problems with the input program, not internal
// faults, and are surfaced to the external driver after the pass returns.
type TranslationUnit struct {
	Program *Program
	Errors  Errors
}

// NewTranslationUnit returns a unit wrapping the program.
func NewTranslationUnit(program *Program) *TranslationUnit {
	if program == nil {
		panic("ast: translation unit requires a program")
	}
	return &TranslationUnit{Program: program}
}

// Report records a diagnostic against the unit.
func (u *TranslationUnit) Report(err *Error) {
	u.Errors = append(u.Errors, err)
}

// Failed returns true if any diagnostic has been reported.
func (u *TranslationUnit) Failed() bool {
	return len(u.Errors) > 0
}
