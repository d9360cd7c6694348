// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package personname

import (
	"fmt"
	"strings"
	"unicode"
)

// Order is the position of the surname within a person segment.
type Order int

const (
	// FirstLast is "John Q Smith".
	FirstLast Order = iota
	// LastFirst is "SMITH JOHN Q", the order used on recorded instruments.
	LastFirst
)

func (o Order) String() string {
	if o == LastFirst {
		return "last_first"
	}
	return "first_last"
}

// OrderDetector picks the token order for a person segment. segment is the
// full cleaned text; tokens are the name tokens left after prefix and suffix
// removal.
type OrderDetector interface {
	Detect(segment string, tokens []string) Order
}

// CaseOrder treats an all-uppercase segment as LastFirst and anything else as
// FirstLast.
type CaseOrder struct{}

func (CaseOrder) Detect(segment string, _ []string) Order {
	if isAllUpper(segment) {
		return LastFirst
	}
	return FirstLast
}

// CommaOrder returns LastFirst when the first name token ends in a comma
// ("Smith, John") and otherwise defers to Fallback.
type CommaOrder struct {
	Fallback OrderDetector
}

func (c CommaOrder) Detect(segment string, tokens []string) Order {
	if len(tokens) > 0 && strings.HasSuffix(tokens[0], ",") {
		return LastFirst
	}
	if c.Fallback == nil {
		return FirstLast
	}
	return c.Fallback.Detect(segment, tokens)
}

// FixedOrder always returns the same order. Useful for sources known to use
// one convention regardless of case.
type FixedOrder struct {
	Order Order
}

func (f FixedOrder) Detect(string, []string) Order { return f.Order }

// DefaultOrder is the detector used when a profile does not choose one.
func DefaultOrder() OrderDetector {
	return CaseOrder{}
}

// OrderNames lists the detector names accepted by ParseOrder.
var OrderNames = []string{"case", "comma", "first_last", "last_first"}

// ParseOrder resolves a configured detector name. The empty string selects
// the default.
func ParseOrder(name string) (OrderDetector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "case":
		return DefaultOrder(), nil
	case "comma":
		return CommaOrder{Fallback: CaseOrder{}}, nil
	case "first_last":
		return FixedOrder{Order: FirstLast}, nil
	case "last_first":
		return FixedOrder{Order: LastFirst}, nil
	default:
		return nil, fmt.Errorf("unknown name order %q (valid: %s)", name, strings.Join(OrderNames, ", "))
	}
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
