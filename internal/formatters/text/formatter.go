// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"ownerparse/internal/formatters"
	"ownerparse/internal/formatters/shared"
	"ownerparse/internal/history"
	"ownerparse/internal/owners"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable ownership timeline with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(results []history.Result, options formatters.FormatterOptions) (string, error) {
	if len(results) == 0 {
		return "No properties processed.", nil
	}

	var builder strings.Builder
	for i, r := range results {
		if i > 0 {
			builder.WriteString("\n")
		}
		f.appendResult(&builder, r, options)
	}
	f.appendSummary(&builder, shared.Summarize(results), options)
	return builder.String(), nil
}

// paint renders s with the named color unless colors are disabled
func (f *Formatter) paint(name, s string, options formatters.FormatterOptions) string {
	if options.NoColor {
		return s
	}
	return f.colors[name].Sprint(s)
}

// appendResult writes the timeline and invalid owners of one property
func (f *Formatter) appendResult(builder *strings.Builder, r history.Result, options formatters.FormatterOptions) {
	title := fmt.Sprintf("=== Property %s ===", r.PropertyID)
	builder.WriteString(f.paint("white", title, options))
	builder.WriteString("\n")

	for _, key := range r.Timeline.Keys() {
		list, _ := r.Timeline.Get(key)
		label := key
		if key == owners.CurrentKey && r.CurrentSource != "" && (options.Verbose || r.CurrentSource != history.SourceCurrentBlock) {
			label = fmt.Sprintf("%s (%s)", key, r.CurrentSource)
		}
		builder.WriteString("  ")
		builder.WriteString(f.paint("magenta", label, options))
		builder.WriteString("\n")

		if len(list) == 0 {
			fmt.Fprintf(builder, "    %s\n", f.paint("yellow", "(no owners)", options))
			continue
		}
		for _, o := range list {
			f.appendOwner(builder, o, options)
		}
	}

	if len(r.Invalid) == 0 {
		return
	}
	builder.WriteString("  ")
	builder.WriteString(f.paint("red", fmt.Sprintf("invalid owners (%d)", len(r.Invalid)), options))
	builder.WriteString("\n")
	for _, inv := range r.Invalid {
		reason := fmt.Sprintf("%-28s", inv.Reason)
		fmt.Fprintf(builder, "    %s %q %s\n",
			f.paint("red", reason, options),
			inv.Raw,
			f.paint("blue", inv.Date, options))
	}
}

// appendOwner writes one owner line; verbose mode adds the parsed name parts
func (f *Formatter) appendOwner(builder *strings.Builder, o owners.Owner, options formatters.FormatterOptions) {
	kind := fmt.Sprintf("[%-7s]", strings.ToUpper(string(o.Type)))
	kindColor := "green"
	if o.IsCompany() {
		kindColor = "cyan"
	}
	fmt.Fprintf(builder, "    %s %s\n", f.paint(kindColor, kind, options), o.DisplayName())

	if !options.Verbose || !o.IsPerson() {
		return
	}
	parts := []struct{ label, value string }{
		{"prefix", o.PrefixName},
		{"first", o.FirstName},
		{"middle", o.MiddleName},
		{"last", o.LastName},
		{"suffix", o.SuffixName},
	}
	var fields []string
	for _, p := range parts {
		if p.value != "" {
			fields = append(fields, p.label+"="+p.value)
		}
	}
	fmt.Fprintf(builder, "              %s\n", f.paint("blue", strings.Join(fields, " "), options))
}

// appendSummary writes the totals line and, in verbose mode, the per-reason counts
func (f *Formatter) appendSummary(builder *strings.Builder, s shared.Summary, options formatters.FormatterOptions) {
	line := fmt.Sprintf("%d properties, %d person records, %d company records, %d invalid",
		s.Properties, s.Persons, s.Companies, s.Invalid)
	builder.WriteString("\n")
	builder.WriteString(f.paint("white", line, options))
	builder.WriteString("\n")

	if !options.Verbose {
		return
	}
	for _, reason := range s.SortedReasons() {
		fmt.Fprintf(builder, "  %-28s %d\n", reason, s.ByReason[reason])
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
