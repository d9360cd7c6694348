// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract isolates owner text from appraisal-district HTML pages:
// the grantee column of the sales-history table and the current-owner block.
package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ownerparse/internal/history"
)

// ErrNoOwnerText is returned when a page has neither a usable sales table nor
// a current-owner block.
var ErrNoOwnerText = errors.New("no owner text found")

// Selectors locates owner text on a page. Header lists are matched
// case-insensitively as substrings of the table header cells.
type Selectors struct {
	PropertyID     string   `yaml:"property_id"`
	SalesTable     string   `yaml:"sales_table"`
	DateHeaders    []string `yaml:"date_headers"`
	GranteeHeaders []string `yaml:"grantee_headers"`
	CurrentOwner   string   `yaml:"current_owner"`
}

// DefaultSelectors matches the common layout of county appraisal pages.
func DefaultSelectors() Selectors {
	return Selectors{
		PropertyID:     "#property-id, .property-id, [data-property-id]",
		SalesTable:     "table",
		DateHeaders:    []string{"sale date", "deed date", "date"},
		GranteeHeaders: []string{"grantee", "buyer", "new owner"},
		CurrentOwner:   "#owner, .owner, .owner-name, .current-owner",
	}
}

// dateLayouts are tried in order when normalizing a sales row date.
var dateLayouts = []string{
	history.DateLayout,
	"1/2/2006",
	"1-2-2006",
	"01/02/06",
}

// Property reads one page and returns its transfers and current-owner lines.
func Property(r io.Reader, sel Selectors) (history.Property, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return history.Property{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var p history.Property
	if sel.PropertyID != "" {
		p.ID = propertyID(doc.Find(sel.PropertyID).First())
	}
	if sel.SalesTable != "" {
		p.Transfers = transfers(doc.Find(sel.SalesTable), sel)
	}
	if sel.CurrentOwner != "" {
		doc.Find(sel.CurrentOwner).Each(func(_ int, s *goquery.Selection) {
			for _, line := range Lines(s) {
				if !IsAddressLine(line) {
					p.CurrentOwners = append(p.CurrentOwners, line)
				}
			}
		})
	}

	if len(p.Transfers) == 0 && len(p.CurrentOwners) == 0 {
		return p, ErrNoOwnerText
	}
	return p, nil
}

func propertyID(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if id, ok := s.Attr("data-property-id"); ok && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id)
	}
	return collapse(s.Text())
}

// transfers reads every matching table that has both a date and a grantee column.
func transfers(tables *goquery.Selection, sel Selectors) []history.Transfer {
	var out []history.Transfer
	tables.Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}

		dateCol, granteeCol := -1, -1
		headerRow := -1
		rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
			cells := row.Find("th, td")
			cells.Each(func(j int, cell *goquery.Selection) {
				h := strings.ToLower(collapse(cell.Text()))
				if granteeCol < 0 && matchesAny(h, sel.GranteeHeaders) {
					granteeCol = j
				} else if dateCol < 0 && matchesAny(h, sel.DateHeaders) {
					dateCol = j
				}
			})
			if dateCol >= 0 && granteeCol >= 0 {
				headerRow = i
				return false
			}
			dateCol, granteeCol = -1, -1
			// headers live in the first rows only
			return i < 2
		})
		if headerRow < 0 {
			return
		}

		rows.Slice(headerRow+1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() <= dateCol || cells.Length() <= granteeCol {
				return
			}
			date, ok := NormalizeDate(cells.Eq(dateCol).Text())
			grantee := collapse(cells.Eq(granteeCol).Text())
			if !ok || grantee == "" {
				return
			}
			out = append(out, history.Transfer{Date: date, Grantee: grantee})
		})
	})
	return out
}

// Lines splits an element's text on <br> and block boundaries.
func Lines(s *goquery.Selection) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if line := collapse(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "br":
			flush()
		case "div", "p", "li":
			flush()
			lines = append(lines, Lines(c)...)
		default:
			cur.WriteString(c.Text())
			cur.WriteString(" ")
		}
	})
	flush()
	return lines
}

// NormalizeDate converts a sales-table date to ISO form.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(history.DateLayout), true
		}
	}
	return "", false
}

func matchesAny(header string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(header, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
