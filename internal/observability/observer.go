// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// StandardObserver implements observability for all components
type StandardObserver struct {
	mu            sync.Mutex
	level         ObservabilityLevel
	writer        io.Writer
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

func (l ObservabilityLevel) String() string {
	switch l {
	case ObservabilityMetrics:
		return "metrics"
	case ObservabilityDebug:
		return "debug"
	default:
		return "off"
	}
}

// ParseLevel converts a level name from config or flags
func ParseLevel(name string) (ObservabilityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off":
		return ObservabilityOff, nil
	case "metrics":
		return ObservabilityMetrics, nil
	case "debug":
		return ObservabilityDebug, nil
	default:
		return ObservabilityOff, fmt.Errorf("unknown observability level %q", name)
	}
}

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// Level returns the configured level
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, propertyID string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		data := StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			PropertyID: propertyID,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}
		if n, ok := metadata["owners"].(int); ok {
			data.OwnerCount = n
		}
		if n, ok := metadata["invalid"].(int); ok {
			data.InvalidCount = n
		}

		o.LogOperation(data)
	}
}

// LogOperation logs operation data as one JSON line
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}

	data.RequestID = "req-" + time.Now().Format("20060102-150405")

	o.mu.Lock()
	defer o.mu.Unlock()
	json.NewEncoder(o.writer).Encode(data)
}

// Debug returns the debug observer, or nil when not in debug mode
func (o *StandardObserver) Debug() *DebugObserver {
	if o == nil {
		return nil
	}
	return o.DebugObserver
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component    string                 `json:"component"`
	Operation    string                 `json:"operation"`
	RequestID    string                 `json:"request_id"`
	PropertyID   string                 `json:"property_id,omitempty"`
	DurationMs   int64                  `json:"duration_ms,omitempty"`
	Success      bool                   `json:"success"`
	Error        string                 `json:"error,omitempty"`
	OwnerCount   int                    `json:"owner_count,omitempty"`
	InvalidCount int                    `json:"invalid_count,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}
