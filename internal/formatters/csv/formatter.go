// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"ownerparse/internal/formatters"
	"ownerparse/internal/formatters/shared"
	"ownerparse/internal/history"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import, one row per owner"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Headers are the CSV column names
var Headers = []string{
	"property_id", "bucket", "status", "type", "name",
	"prefix_name", "first_name", "middle_name", "last_name", "suffix_name",
	"raw", "reason",
}

func (f *Formatter) Format(results []history.Result, options formatters.FormatterOptions) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(Headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, r := range results {
		for _, row := range shared.Rows(r) {
			if err := w.Write(f.record(row)); err != nil {
				return "", fmt.Errorf("error writing CSV row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV: %w", err)
	}
	return sb.String(), nil
}

// record creates a CSV record for a row
func (f *Formatter) record(row shared.Row) []string {
	o := row.Owner
	return []string{
		row.PropertyID,
		row.Bucket,
		row.Status,
		string(o.Type),
		o.Name,
		o.PrefixName,
		o.FirstName,
		o.MiddleName,
		o.LastName,
		o.SuffixName,
		row.Raw,
		string(row.Reason),
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
