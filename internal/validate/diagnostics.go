// SPDX-License-Identifier: MIT

// Package validate applies the fixed OpenAPIA schema rules to an effective
// document: section presence, per-entity required fields, enum values, ID
// uniqueness, and cross-section references. Findings accumulate; validation
// never stops at the first error, so one pass surfaces the complete defect
// list.
package validate

import "fmt"

// Diagnostics collects errors and warnings in discovery order. Warnings
// never affect validity. A fresh Diagnostics is built per call and returned
// as a value; nothing is shared between calls.
type Diagnostics struct {
	Errors   []string
	Warnings []string
}

func (d *Diagnostics) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Diagnostics) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// OK reports whether no errors were recorded.
func (d *Diagnostics) OK() bool { return len(d.Errors) == 0 }
