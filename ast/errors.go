// Copyright 2016 The CloudDataLab Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"
)

// Errors represents a series of errors encountered during transformation.
type Errors []*Error

func (e Errors) Error() string {

	if len(e) == 0 {
		return "no error(s)"
	}

	if len(e) == 1 {
		return fmt.Sprintf("1 error occurred: %v", e[0].Error())
	}

	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}

	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(s, "\n"))
}

// ErrCode defines the types of errors surfaced by the transformation passes.
type ErrCode int

const (
	// CompileErr indicates an unclassified compile error occurred.
	CompileErr ErrCode = iota

	// AdornmentErr indicates a relation could not be adorned, e.g. a head
	// adornment marker does not fit the relation.
	AdornmentErr

	// UnboundVarErr indicates a variable that can never become bound was
	// found during binding analysis.
	UnboundVarErr
)

// IsError returns true if err is an AST error with code.
func IsError(code ErrCode, err error) bool {
	if err, ok := err.(*Error); ok {
		return err.Code == code
	}
	return false
}

// Error represents a single error caught during transformation. If the error
// concerns a specific clause, the clause is attached for reporting.
type Error struct {
	Code    ErrCode
	Clause  *Clause
	Message string
}

func (e *Error) Error() string {
	if e.Clause == nil {
		return e.Message
	}
	return fmt.Sprintf("%v: %v", e.Clause, e.Message)
}

// NewError returns a new Error object.
func NewError(code ErrCode, clause *Clause, f string, a ...any) *Error {
	return &Error{
		Code:    code,
		Clause:  clause,
		Message: fmt.Sprintf(f, a...),
	}
}
