// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package history assembles a property's ownership timeline from its transfer
// records and current-owner lines.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ownerparse/internal/classifier"
	"ownerparse/internal/cleaner"
	"ownerparse/internal/observability"
	"ownerparse/internal/owners"
	"ownerparse/internal/personname"
	"ownerparse/internal/vocabulary"
)

const componentName = "history"

// Builder runs the owner-text pipeline over whole properties. A Builder holds
// no per-run state and may be shared between goroutines.
type Builder struct {
	vocab      *vocabulary.Vocabulary
	cleaner    *cleaner.Cleaner
	classifier *classifier.Classifier
	parser     *personname.Parser
	observer   *observability.StandardObserver
	order      personname.OrderDetector
}

// Option configures a Builder.
type Option func(*Builder)

// WithOrder sets the person token order detector.
func WithOrder(d personname.OrderDetector) Option {
	return func(b *Builder) { b.order = d }
}

// WithObserver attaches an observer for timing and debug output.
func WithObserver(o *observability.StandardObserver) Option {
	return func(b *Builder) { b.observer = o }
}

// NewBuilder creates a builder over the vocabulary v.
func NewBuilder(v *vocabulary.Vocabulary, opts ...Option) *Builder {
	b := &Builder{vocab: v}
	for _, opt := range opts {
		opt(b)
	}
	b.cleaner = cleaner.New(v)
	b.classifier = classifier.New(v)
	b.parser = personname.NewParser(v, personname.WithOrder(b.order))
	return b
}

// Build produces the timeline and invalid list for p. Unusable owner text
// never fails the build; only a malformed transfer date does.
func (b *Builder) Build(p Property) (Result, error) {
	finishTiming := b.observer.StartTiming(componentName, "build", p.ID)
	var finishStep func(bool, string)
	if dbg := b.observer.Debug(); dbg != nil {
		finishStep = dbg.StartStep(componentName, "build", p.ID)
	}

	res, err := b.build(p)

	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		if finishStep != nil {
			finishStep(false, err.Error())
		}
		return Result{}, err
	}
	finishTiming(true, map[string]interface{}{
		"owners":         res.OwnerCount(),
		"invalid":        len(res.Invalid),
		"current_source": string(res.CurrentSource),
	})
	if dbg := b.observer.Debug(); dbg != nil {
		dbg.LogMetric(componentName, "owners", res.OwnerCount())
		dbg.LogMetric(componentName, "invalid", len(res.Invalid))
		dbg.LogMetric(componentName, "dated_buckets", len(res.Timeline.Dates))
	}
	if finishStep != nil {
		finishStep(true, fmt.Sprintf("%d owners, %d invalid, current from %s",
			res.OwnerCount(), len(res.Invalid), res.CurrentSource))
	}
	return res, nil
}

func (b *Builder) build(p Property) (Result, error) {
	transfers, err := sortTransfers(p.Transfers)
	if err != nil {
		return Result{}, fmt.Errorf("property %q: %w", p.ID, err)
	}

	log := NewInvalidLog(b.observer.Debug())

	var (
		dates   []string
		buckets = make(map[string]*owners.Bucket)
		latest  []owners.Owner
	)
	for _, t := range transfers {
		bucket, ok := buckets[t.Date]
		if !ok {
			bucket = owners.NewBucket()
			buckets[t.Date] = bucket
			dates = append(dates, t.Date)
		}
		latest = b.resolve(t.Grantee, t.Date, log)
		for _, o := range latest {
			bucket.Add(o)
		}
	}

	current := owners.NewBucket()
	for _, line := range p.CurrentOwners {
		for _, o := range b.resolve(line, owners.CurrentKey, log) {
			current.Add(o)
		}
	}

	res := Result{PropertyID: p.ID, Invalid: log.Records()}
	for _, d := range dates {
		res.Timeline.Dates = append(res.Timeline.Dates, owners.DatedOwners{Date: d, Owners: buckets[d].Owners()})
	}
	res.Timeline.Current, res.CurrentSource = b.selectCurrent(current, latest)
	return res, nil
}

// selectCurrent applies the snapshot policy: the current-owner block when it
// produced anything, else the latest transfer's grantee. A latest grantee that
// is a single organization overrides both.
func (b *Builder) selectCurrent(block *owners.Bucket, latestGrantee []owners.Owner) ([]owners.Owner, CurrentSource) {
	if len(latestGrantee) == 1 && latestGrantee[0].IsCompany() {
		return []owners.Owner{latestGrantee[0]}, SourceOrganizationOverride
	}
	if block.Len() > 0 {
		return block.Owners(), SourceCurrentBlock
	}
	if len(latestGrantee) > 0 {
		return owners.Dedupe(latestGrantee), SourceLatestTransfer
	}
	return []owners.Owner{}, SourceNone
}

// groupState is the accumulator threaded through one joint group.
type groupState struct {
	owners     []owners.Owner
	lastPerson owners.Owner
	hasPerson  bool
}

// resolve turns one raw owner string into its owner records, logging every
// segment that fails.
func (b *Builder) resolve(raw, date string, log *InvalidLog) []owners.Owner {
	cleaned := b.cleaner.Clean(raw)

	segments := cleaner.Split(cleaned)
	if len(segments) == 0 {
		log.Add(strings.TrimSpace(raw), owners.ReasonNonName, date, "empty")
		return nil
	}

	joint := len(segments) > 1
	if joint {
		if rule, ok := b.singleEntity(cleaned, segments); ok {
			b.detail("%q [%s] -> company (rule %s, whole string)", cleaned, date, rule)
			return []owners.Owner{owners.NewCompany(companyName(cleaned))}
		}
	}

	state := groupState{}
	for _, seg := range segments {
		state = b.step(state, seg, joint, date, log)
	}
	return state.owners
}

// singleEntity reports whether a joint string names one organization. That is
// the case for the acronym slash notation, and for an organization string
// whose pieces cannot stand alone once split ("SMITH & SONS INC").
func (b *Builder) singleEntity(cleaned string, segments []string) (string, bool) {
	if b.classifier.HasAcronymSlash(cleaned) {
		return "acronym_slash", true
	}
	d, ok := b.classifier.IsOrganization(cleaned)
	if !ok {
		return "", false
	}
	if b.splitsCleanly(segments) {
		return "", false
	}
	return d.Rule, true
}

// splitsCleanly reports whether every segment of an organization string is an
// owner on its own: a person, a named organization, or a first name following
// a person.
func (b *Builder) splitsCleanly(segments []string) bool {
	hasPerson := false
	for _, seg := range segments {
		switch b.classifier.Classify(seg).Verdict {
		case classifier.Person:
			hasPerson = true
		case classifier.Organization:
			if b.vocab.OnlyOrganizationKeywords(seg) {
				return false
			}
		case classifier.SingleName:
			if !hasPerson {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// step classifies one segment and folds its outcome into the group state.
func (b *Builder) step(state groupState, seg string, joint bool, date string, log *InvalidLog) groupState {
	d := b.classifier.Classify(seg)

	switch d.Verdict {
	case classifier.Organization:
		state.owners = append(state.owners, owners.NewCompany(companyName(seg)))
		if kw, ok := b.vocab.OrganizationKeyword(seg); ok {
			b.detail("%q [%s] -> organization (keyword %q)", seg, date, kw)
			return state
		}

	case classifier.Person:
		o, ok := b.parser.Parse(seg)
		if !ok {
			log.Add(seg, owners.ReasonCouldNotParsePerson, date, d.Rule)
			break
		}
		state.owners = append(state.owners, o)
		state.lastPerson, state.hasPerson = o, true

	case classifier.SingleName:
		if !joint {
			log.Add(seg, owners.ReasonInsufficientParts, date, d.Rule)
			break
		}
		if !state.hasPerson {
			log.Add(seg, owners.ReasonInvalidSharedSurname, date, "no_prior_sibling")
			break
		}
		o, ok := personname.ResolveSharedSurname(seg, state.lastPerson)
		if !ok {
			log.Add(seg, owners.ReasonInvalidSharedSurname, date, "shared_surname")
			break
		}
		state.owners = append(state.owners, o)
		state.lastPerson = o

	default:
		reason, _ := d.Verdict.Reason()
		log.Add(seg, reason, date, d.Rule)
	}

	b.detail("%q [%s] -> %s (rule %s)", seg, date, d.Verdict, d.Rule)
	return state
}

func (b *Builder) detail(format string, args ...interface{}) {
	if dbg := b.observer.Debug(); dbg != nil {
		dbg.LogDetail(componentName, fmt.Sprintf(format, args...))
	}
}

// sortTransfers validates dates and orders transfers by date, keeping input
// order for transfers recorded on the same day.
func sortTransfers(in []Transfer) ([]Transfer, error) {
	out := make([]Transfer, len(in))
	for i, t := range in {
		t.Date = strings.TrimSpace(t.Date)
		if _, err := time.Parse(DateLayout, t.Date); err != nil {
			return nil, fmt.Errorf("transfer %d: %w: %q", i, ErrInvalidDate, t.Date)
		}
		out[i] = t
	}
	// ISO dates sort lexically
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// companyName title-cases an organization name: "ACME PROPERTIES LLC"
// becomes "Acme Properties Llc".
func companyName(s string) string {
	return cases.Title(language.English).String(s)
}
