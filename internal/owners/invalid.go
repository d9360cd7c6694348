// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package owners

// Reason is the fixed enumeration of invalid-record causes.
type Reason string

const (
	ReasonNonName              Reason = "non_name"
	ReasonInsufficientParts    Reason = "insufficient_parts"
	ReasonCouldNotParsePerson  Reason = "could_not_parse_person"
	ReasonTruncatedTrust       Reason = "truncated_trust_designation"
	ReasonUnrecognizedFormat   Reason = "unrecognized_owner_format"
	ReasonInvalidSharedSurname Reason = "invalid_shared_last_name"
)

// Reasons lists every reason code in declaration order.
var Reasons = []Reason{
	ReasonNonName,
	ReasonInsufficientParts,
	ReasonCouldNotParsePerson,
	ReasonTruncatedTrust,
	ReasonUnrecognizedFormat,
	ReasonInvalidSharedSurname,
}

// Valid reports whether r is one of the fixed reason codes.
func (r Reason) Valid() bool {
	for _, known := range Reasons {
		if r == known {
			return true
		}
	}
	return false
}

// InvalidOwner records a segment that could not be classified or parsed.
// Date is the bucket the segment was read for (an ISO date or CurrentKey).
type InvalidOwner struct {
	Raw    string `json:"raw" yaml:"raw"`
	Reason Reason `json:"reason" yaml:"reason"`
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
}
