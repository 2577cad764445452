// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import "time"

// ResultStatus is the outcome of a single step.
type ResultStatus int

const (
	// ResultStatusUnknown is the zero value, the step has not finished.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means the step exited with code zero.
	ResultStatusSuccess
	// ResultStatusError means the step could not be started, exited non-zero or was killed.
	ResultStatusError
)

// String implements fmt.Stringer.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is what a ShellCommand produced.
type Result struct {
	Label    string
	Step     string
	ExitCode int
	Error    error
	StdOut   []byte
	StdErr   []byte
	Status   ResultStatus
	Duration time.Duration
}

// Output returns stdout followed by stderr.
func (r *Result) Output() string {
	return string(r.StdOut) + string(r.StdErr)
}

func (r *Result) fail(err error) *Result {
	r.Error = err
	r.ExitCode = -1
	r.Status = ResultStatusError

	return r
}
