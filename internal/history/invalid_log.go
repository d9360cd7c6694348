// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"fmt"

	"ownerparse/internal/observability"
	"ownerparse/internal/owners"
)

// InvalidLog collects the segments of one run that could not be turned into
// owner records. It is append-only.
type InvalidLog struct {
	records []owners.InvalidOwner
	debug   *observability.DebugObserver
}

// NewInvalidLog creates an empty log. debug may be nil.
func NewInvalidLog(debug *observability.DebugObserver) *InvalidLog {
	return &InvalidLog{debug: debug}
}

// Add records one rejected segment. rule names the classifier rule or
// resolution step that rejected it.
func (l *InvalidLog) Add(raw string, reason owners.Reason, date, rule string) {
	l.records = append(l.records, owners.InvalidOwner{Raw: raw, Reason: reason, Date: date})
	if l.debug != nil {
		l.debug.LogDetail(componentName, fmt.Sprintf("invalid %q [%s] reason=%s rule=%s", raw, date, reason, rule))
	}
}

// Len returns the number of records.
func (l *InvalidLog) Len() int { return len(l.records) }

// Records returns a copy of the records in insertion order.
func (l *InvalidLog) Records() []owners.InvalidOwner {
	out := make([]owners.InvalidOwner, len(l.records))
	copy(out, l.records)
	return out
}
