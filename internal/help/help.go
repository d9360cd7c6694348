// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// TopicInfo contains standardized information about a classification rule
type TopicInfo struct {
	Name                string   // Name of the rule (e.g., "organization_keyword")
	ShortDescription    string   // Short description for the rules list
	DetailedDescription string   // Detailed description of what the rule does
	Outcome             string   // Verdict produced when the rule matches
	Reason              string   // Invalid reason recorded, if any
	Examples            []string // Sample owner text the rule applies to
}

// Provider defines the interface for help content providers
type Provider interface {
	GetTopicInfo() TopicInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	order     []string
	noColor   bool
	out       io.Writer
	colors    map[string]*color.Color
}

// NewSystem creates a new help system writing to stdout
func NewSystem(noColor bool) *System {
	return NewSystemTo(os.Stdout, noColor)
}

// NewSystemTo creates a help system writing to out
func NewSystemTo(out io.Writer, noColor bool) *System {
	colors := map[string]*color.Color{
		"title":    color.New(color.FgWhite, color.Bold),
		"subtitle": color.New(color.FgCyan, color.Bold),
		"header":   color.New(color.FgBlue, color.Bold),
		"item":     color.New(color.FgCyan),
		"emphasis": color.New(color.FgWhite, color.Bold),
		"positive": color.New(color.FgGreen),
		"negative": color.New(color.FgRed),
		"warning":  color.New(color.FgYellow),
		"example":  color.New(color.FgMagenta),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}

	return &System{
		providers: make(map[string]Provider),
		noColor:   noColor,
		out:       out,
		colors:    colors,
	}
}

// RegisterProvider adds a help provider to the system. Rules keep their registration order.
func (h *System) RegisterProvider(provider Provider) {
	key := strings.ToLower(provider.GetTopicInfo().Name)
	if _, exists := h.providers[key]; !exists {
		h.order = append(h.order, key)
	}
	h.providers[key] = provider
}

func (h *System) println(a ...interface{}) {
	fmt.Fprintln(h.out, a...)
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Fprintln(h.out, "ownerparse - Property Owner Text Parser")
	h.println("=======================================")
	h.println()
	h.colors["header"].Fprintln(h.out, "USAGE:")
	h.println("  ownerparse --file <path> [options]")
	h.println()

	h.colors["header"].Fprintln(h.out, "OPTIONS:")

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tProperty record file, directory or glob: .json, .yaml, .yml, .html, .htm (required)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --recursive\t\tRecursively process directories")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv, yaml (default: text)")
	fmt.Fprintln(w, "  --name-order\t<order>\tPerson name order: case, comma, first_last, last_first (default: case)")
	fmt.Fprintln(w, "  --workers\t<n>\tNumber of properties processed in parallel (default: 4)")
	fmt.Fprintln(w, "  --compact\t\tCompact JSON output")
	fmt.Fprintln(w, "  --verbose\t\tShow name parts, current-owner source and invalid counts per reason")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of cleaning, splitting and classification steps")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --quiet\t\tSuppress progress output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help rules\t\tList the owner classification rules")
	fmt.Fprintln(w, "  --help <rule>\t\tShow detailed help for a specific rule")
	w.Flush()

	h.println()
	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	h.println("  Basic Usage:")
	h.colors["example"].Fprintln(h.out, "    ownerparse --file parcel-1001.json")
	h.colors["example"].Fprintln(h.out, "    ownerparse --file records/ --recursive --format csv --output owners.csv")
	h.colors["example"].Fprintln(h.out, "    ownerparse --file 'pages/*.html' --format json --verbose")
	h.println("  Configuration and Profiles:")
	h.colors["example"].Fprintln(h.out, "    ownerparse --file records/ --config ownerparse.yaml --profile county")
	h.colors["example"].Fprintln(h.out, "    ownerparse --list-profiles --config ownerparse.yaml")

	h.println()
	h.colors["header"].Fprintln(h.out, "CONFIGURATION:")
	h.println("  Default config: <user config dir>/ownerparse/config.yaml")
	h.println("  Project config: ownerparse.yaml or .ownerparse.yaml (in current directory)")
	h.println("  Environment: OWNERPARSE_CONFIG - config file, OWNERPARSE_CONFIG_DIR - config directory")
	h.println("  A .env file in the current directory is loaded before flags are parsed")
}

// ShowRulesHelp displays information about all classification rules in evaluation order
func (h *System) ShowRulesHelp() {
	h.colors["title"].Fprintln(h.out, "Owner Classification Rules")
	h.println("==========================")
	h.println()
	h.println("Each owner segment is checked against these rules in order; the first match decides it:")
	h.println()

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  RULE\tOUTCOME\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  ----\t-------\t-----------")
	for _, key := range h.order {
		info := h.providers[key].GetTopicInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\t%s\n", info.Outcome, info.ShortDescription)
	}
	w.Flush()

	h.println()
	h.println("For detailed information about a specific rule, use:")
	h.colors["example"].Fprintln(h.out, "  ownerparse --help <rule>")

	exampleRule := "<rule>"
	if len(h.order) > 0 {
		exampleRule = h.order[0]
	}
	h.println()
	h.println("Example:")
	h.colors["example"].Fprintf(h.out, "  ownerparse --help %s\n", exampleRule)
}

// ShowRuleHelp displays detailed help for a specific rule
func (h *System) ShowRuleHelp(name string) bool {
	provider, exists := h.providers[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: Rule '%s' not found.\n", name)
		h.println("Use 'ownerparse --help rules' to see a list of available rules.")
		return false
	}

	info := provider.GetTopicInfo()

	h.colors["title"].Fprintf(h.out, "%s Rule\n", info.Name)
	h.println(strings.Repeat("=", len(info.Name)+5))
	h.println()
	h.println(info.DetailedDescription)
	h.println()

	h.colors["header"].Fprintln(h.out, "OUTCOME:")
	fmt.Fprint(h.out, "  ")
	if info.Reason == "" {
		h.colors["positive"].Fprintln(h.out, info.Outcome)
	} else {
		h.colors["warning"].Fprintf(h.out, "%s ", info.Outcome)
		fmt.Fprint(h.out, "(recorded as invalid: ")
		h.colors["negative"].Fprint(h.out, info.Reason)
		fmt.Fprintln(h.out, ")")
	}
	h.println()

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Fprint(h.out, "  ")
			h.colors["example"].Fprintln(h.out, example)
		}
	}

	return true
}

// ShowFormatsHelp lists the output formats with their file extensions
func (h *System) ShowFormatsHelp(formats map[string]string) {
	h.colors["header"].Fprintln(h.out, "OUTPUT FORMATS:")
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, formats[name])
	}
	w.Flush()
}
