// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package personname parses a person segment into prefix, first, middle,
// last and suffix name parts, and resolves shared surnames between joint
// owners.
package personname

import (
	"strings"

	"ownerparse/internal/owners"
	"ownerparse/internal/vocabulary"
)

// Parser turns a person segment into an owner record.
type Parser struct {
	vocab *vocabulary.Vocabulary
	order OrderDetector
}

// Option configures a Parser.
type Option func(*Parser)

// WithOrder replaces the token order detector.
func WithOrder(d OrderDetector) Option {
	return func(p *Parser) {
		if d != nil {
			p.order = d
		}
	}
}

// NewParser creates a parser over v. The default order detector is
// DefaultOrder.
func NewParser(v *vocabulary.Vocabulary, opts ...Option) *Parser {
	p := &Parser{vocab: v, order: DefaultOrder()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Components holds the raw name parts before re-casing.
type Components struct {
	Prefix string
	First  string
	Middle string
	Last   string
	Suffix string
	Order  Order
}

// Split separates segment into name parts without validating them. It
// reports false when fewer than two name tokens remain after the prefix and
// suffix are taken off.
func (p *Parser) Split(segment string) (Components, bool) {
	var c Components
	tokens := strings.Fields(segment)
	if len(tokens) == 0 {
		return c, false
	}

	if display, ok := p.vocab.Prefix(tokens[0]); ok {
		c.Prefix = display
		tokens = tokens[1:]
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		if display, ok := p.vocab.Suffix(tokens[i]); ok {
			c.Suffix = display
			tokens = append(tokens[:i:i], tokens[i+1:]...)
			break
		}
	}

	if len(tokens) < 2 {
		return c, false
	}

	c.Order = p.order.Detect(segment, tokens)

	names := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if t := cleanToken(tok); t != "" {
			names = append(names, t)
		}
	}
	if len(names) < 2 {
		return c, false
	}

	switch c.Order {
	case LastFirst:
		c.Last = names[0]
		c.First = names[1]
		c.Middle = strings.Join(names[2:], " ")
	default:
		c.First = names[0]
		c.Last = names[len(names)-1]
		c.Middle = strings.Join(names[1:len(names)-1], " ")
	}
	return c, true
}

// Parse returns the person record for segment. It reports false when the
// segment has too few name tokens or any re-cased field fails ValidName.
func (p *Parser) Parse(segment string) (owners.Owner, bool) {
	c, ok := p.Split(segment)
	if !ok {
		return owners.Owner{}, false
	}

	first, last, middle := Recase(c.First), Recase(c.Last), Recase(c.Middle)
	if !ValidName(first) || !ValidName(last) {
		return owners.Owner{}, false
	}
	if middle != "" && !ValidName(middle) {
		return owners.Owner{}, false
	}

	o := owners.NewPerson(first, middle, last)
	o.PrefixName = c.Prefix
	o.SuffixName = c.Suffix
	return o, true
}
