// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownerparse/internal/observability"
	"ownerparse/internal/owners"
	"ownerparse/internal/personname"
	"ownerparse/internal/vocabulary"
)

func newTestBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	v, err := vocabulary.Default()
	require.NoError(t, err)
	return NewBuilder(v, opts...)
}

func owner(t *testing.T, res Result, key string) []owners.Owner {
	t.Helper()
	list, ok := res.Timeline.Get(key)
	require.True(t, ok, "missing key %s", key)
	return list
}

func TestJointOwnersShareSurname(t *testing.T) {
	b := newTestBuilder(t)

	res, err := b.Build(Property{
		ID:        "a",
		Transfers: []Transfer{{Date: "2020-01-15", Grantee: "SMITH JOHN & MARY"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []owners.Owner{
		owners.NewPerson("John", "", "Smith"),
		owners.NewPerson("Mary", "", "Smith"),
	}, owner(t, res, "2020-01-15"))
	assert.Empty(t, res.Invalid)
}

func TestOrganizationGrantee(t *testing.T) {
	b := newTestBuilder(t)

	res, err := b.Build(Property{
		ID:        "b",
		Transfers: []Transfer{{Date: "2018-03-02", Grantee: "ACME PROPERTIES LLC"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []owners.Owner{owners.NewCompany("Acme Properties Llc")}, owner(t, res, "2018-03-02"))
}

func TestAliasMarkerLeavesSingleToken(t *testing.T) {
	b := newTestBuilder(t)

	res, err := b.Build(Property{
		ID:        "c",
		Transfers: []Transfer{{Date: "2015-06-30", Grantee: "Jane F/K/A Doe Smith"}},
	})
	require.NoError(t, err)

	assert.Empty(t, owner(t, res, "2015-06-30"))
	assert.Equal(t, []owners.InvalidOwner{
		{Raw: "Jane", Reason: owners.ReasonInsufficientParts, Date: "2015-06-30"},
	}, res.Invalid)
}

func TestLatestOrganizationBecomesCurrent(t *testing.T) {
	b := newTestBuilder(t)

	res, err := b.Build(Property{
		ID: "d",
		Transfers: []Transfer{
			{Date: "2019-05-01", Grantee: "John Smith"},
			{Date: "2021-07-10", Grantee: "XYZ TRUST"},
		},
		CurrentOwners: []string{"DOE JANE"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2019-05-01", "2021-07-10", owners.CurrentKey}, res.Timeline.Keys())
	assert.Equal(t, []owners.Owner{owners.NewPerson("John", "", "Smith")}, owner(t, res, "2019-05-01"))
	assert.Equal(t, []owners.Owner{owners.NewCompany("Xyz Trust")}, owner(t, res, "2021-07-10"))
	assert.Equal(t, []owners.Owner{owners.NewCompany("Xyz Trust")}, res.Timeline.Current)
	assert.Equal(t, SourceOrganizationOverride, res.CurrentSource)
}

func TestCurrentSelection(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("current block wins over latest person", func(t *testing.T) {
		res, err := b.Build(Property{
			Transfers:     []Transfer{{Date: "2019-05-01", Grantee: "John Smith"}},
			CurrentOwners: []string{"DOE JANE", "DOE JANE"},
		})
		require.NoError(t, err)
		assert.Equal(t, []owners.Owner{owners.NewPerson("Jane", "", "Doe")}, res.Timeline.Current)
		assert.Equal(t, SourceCurrentBlock, res.CurrentSource)
	})

	t.Run("falls back to latest transfer", func(t *testing.T) {
		res, err := b.Build(Property{
			Transfers: []Transfer{
				{Date: "2021-01-01", Grantee: "ROE RICHARD & ANN"},
				{Date: "2010-01-01", Grantee: "John Smith"},
			},
			CurrentOwners: []string{"12345"},
		})
		require.NoError(t, err)
		assert.Equal(t, []owners.Owner{
			owners.NewPerson("Richard", "", "Roe"),
			owners.NewPerson("Ann", "", "Roe"),
		}, res.Timeline.Current)
		assert.Equal(t, SourceLatestTransfer, res.CurrentSource)
		// the fallback does not re-log the latest grantee
		assert.Len(t, res.Invalid, 1)
	})

	t.Run("fallback uses the latest grantee only", func(t *testing.T) {
		res, err := b.Build(Property{
			Transfers: []Transfer{
				{Date: "2021-01-01", Grantee: "John Smith"},
				{Date: "2021-01-01", Grantee: "Jane Doe"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, owner(t, res, "2021-01-01"), 2)
		assert.Equal(t, []owners.Owner{owners.NewPerson("Jane", "", "Doe")}, res.Timeline.Current)
		assert.Equal(t, SourceLatestTransfer, res.CurrentSource)
	})

	t.Run("nothing to select", func(t *testing.T) {
		res, err := b.Build(Property{ID: "empty"})
		require.NoError(t, err)
		assert.Empty(t, res.Timeline.Current)
		assert.Equal(t, SourceNone, res.CurrentSource)
		assert.Equal(t, []string{owners.CurrentKey}, res.Timeline.Keys())
	})
}

func TestSameDateSharesBucket(t *testing.T) {
	b := newTestBuilder(t)

	res, err := b.Build(Property{
		Transfers: []Transfer{
			{Date: "2020-02-02", Grantee: "John Smith"},
			{Date: "2020-02-02", Grantee: "SMITH JOHN & MARY"},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Timeline.Dates, 1)
	assert.Equal(t, []owners.Owner{
		owners.NewPerson("John", "", "Smith"),
		owners.NewPerson("Mary", "", "Smith"),
	}, res.Timeline.Dates[0].Owners)
}

func TestInvalidReasons(t *testing.T) {
	b := newTestBuilder(t)

	tests := []struct {
		grantee string
		raw     string
		reason  owners.Reason
	}{
		{"SMITH JOHN TR", "SMITH JOHN TR", owners.ReasonTruncatedTrust},
		{"123 MAIN ST", "123 MAIN ST", owners.ReasonNonName},
		{"Jane", "Jane", owners.ReasonInsufficientParts},
		{"A B C D E F", "A B C D E F", owners.ReasonUnrecognizedFormat},
		{"J@hn Smith", "J@hn Smith", owners.ReasonNonName},
		{"MARY & SMITH JOHN", "MARY", owners.ReasonInvalidSharedSurname},
		{"Jørgen Ørsted", "Jørgen Ørsted", owners.ReasonCouldNotParsePerson},
	}

	for _, tt := range tests {
		t.Run(tt.grantee, func(t *testing.T) {
			res, err := b.Build(Property{Transfers: []Transfer{{Date: "2020-01-01", Grantee: tt.grantee}}})
			require.NoError(t, err)
			require.NotEmpty(t, res.Invalid)
			assert.Equal(t, tt.raw, res.Invalid[0].Raw)
			assert.Equal(t, tt.reason, res.Invalid[0].Reason)
			assert.Equal(t, "2020-01-01", res.Invalid[0].Date)
		})
	}
}

func TestJointOrganizationStaysWhole(t *testing.T) {
	b := newTestBuilder(t)

	tests := []struct {
		grantee string
		want    string
	}{
		{"SMITH & SONS INC", "Smith & Sons Inc"},
		{"FIRST NATIONAL BANK & TRUST", "First National Bank & Trust"},
		{"Doe Jane/FNMA", "Doe Jane/Fnma"},
		{"JONES MARY/FHA", "Jones Mary/Fha"},
	}
	for _, tt := range tests {
		t.Run(tt.grantee, func(t *testing.T) {
			res, err := b.Build(Property{Transfers: []Transfer{{Date: "2020-01-01", Grantee: tt.grantee}}})
			require.NoError(t, err)
			assert.Equal(t, []owners.Owner{owners.NewCompany(tt.want)}, owner(t, res, "2020-01-01"))
			assert.Empty(t, res.Invalid)
		})
	}
}

func TestPersonAndCompanyGrantee(t *testing.T) {
	b := newTestBuilder(t)

	tests := []struct {
		grantee string
		want    []owners.Owner
	}{
		{"John Smith and Acme Holdings LLC", []owners.Owner{
			owners.NewPerson("John", "", "Smith"),
			owners.NewCompany("Acme Holdings Llc"),
		}},
		{"SMITH JOHN & FIRST NATIONAL BANK", []owners.Owner{
			owners.NewPerson("John", "", "Smith"),
			owners.NewCompany("First National Bank"),
		}},
		{"SMITH JOHN & MARY & SMITH FAMILY TRUST", []owners.Owner{
			owners.NewPerson("John", "", "Smith"),
			owners.NewPerson("Mary", "", "Smith"),
			owners.NewCompany("Smith Family Trust"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.grantee, func(t *testing.T) {
			res, err := b.Build(Property{
				Transfers:     []Transfer{{Date: "2020-01-01", Grantee: tt.grantee}},
				CurrentOwners: []string{"DOE JANE"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, owner(t, res, "2020-01-01"))
			assert.Empty(t, res.Invalid)
			// a mixed grantee is not a single organization
			assert.Equal(t, SourceCurrentBlock, res.CurrentSource)
		})
	}
}

func TestInvalidDate(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.Build(Property{ID: "x", Transfers: []Transfer{{Date: "05/01/2019", Grantee: "John Smith"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))
	assert.Contains(t, err.Error(), `"x"`)
}

func TestBuildProperties(t *testing.T) {
	b := newTestBuilder(t)

	p := Property{
		ID: "props",
		Transfers: []Transfer{
			{Date: "2001-01-01", Grantee: "SMITH JOHN & MARY & SMITH JOHN"},
			{Date: "2005-05-05", Grantee: "Dr. Ann Lee Jr and Bob and 42"},
			{Date: "2009-09-09", Grantee: "JONES PAT/JONES KIM/TR"},
		},
		CurrentOwners: []string{"JONES PAT", "Pat Jones", "FIRST BAPTIST CHURCH"},
	}

	first, err := b.Build(p)
	require.NoError(t, err)

	t.Run("idempotent", func(t *testing.T) {
		second, err := b.Build(p)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("no duplicates", func(t *testing.T) {
		for _, key := range first.Timeline.Keys() {
			list, _ := first.Timeline.Get(key)
			seen := map[string]bool{}
			for _, o := range list {
				assert.False(t, seen[o.IdentityKey()], "duplicate %s in %s", o.IdentityKey(), key)
				seen[o.IdentityKey()] = true
			}
		}
	})

	t.Run("valid person names", func(t *testing.T) {
		for _, key := range first.Timeline.Keys() {
			list, _ := first.Timeline.Get(key)
			for _, o := range list {
				if !o.IsPerson() {
					continue
				}
				assert.True(t, personname.ValidName(o.FirstName), o.FirstName)
				assert.True(t, personname.ValidName(o.LastName), o.LastName)
			}
		}
	})

	t.Run("segment accounting", func(t *testing.T) {
		// 3 segments on 2005-05-05: two people, one invalid
		assert.Len(t, owner(t, first, "2005-05-05"), 2)
		var invalid2005 int
		for _, inv := range first.Invalid {
			if inv.Date == "2005-05-05" {
				invalid2005++
			}
		}
		assert.Equal(t, 1, invalid2005)
	})

	t.Run("shared surname", func(t *testing.T) {
		assert.Equal(t, owners.Owner{
			Type: owners.KindPerson, PrefixName: "Dr.", FirstName: "Ann", LastName: "Lee", SuffixName: "Jr.",
		}, owner(t, first, "2005-05-05")[0])
		assert.Equal(t, owners.NewPerson("Bob", "", "Lee"), owner(t, first, "2005-05-05")[1])
	})
}

func TestOrderOption(t *testing.T) {
	p := Property{Transfers: []Transfer{{Date: "2020-01-01", Grantee: "Smith, John"}}}

	res, err := newTestBuilder(t).Build(p)
	require.NoError(t, err)
	// mixed case reads first-last by default
	assert.Equal(t, []owners.Owner{owners.NewPerson("Smith", "", "John")}, owner(t, res, "2020-01-01"))

	res, err = newTestBuilder(t, WithOrder(personname.CommaOrder{Fallback: personname.CaseOrder{}})).Build(p)
	require.NoError(t, err)
	assert.Equal(t, []owners.Owner{owners.NewPerson("John", "", "Smith")}, owner(t, res, "2020-01-01"))
}

func TestObserverOutput(t *testing.T) {
	var buf bytes.Buffer
	dbg := observability.NewDebugObserver(&buf)
	b := newTestBuilder(t, WithObserver(dbg.StandardObserver))

	_, err := b.Build(Property{ID: "obs", Transfers: []Transfer{{Date: "2020-01-01", Grantee: "SMITH JOHN TR"}}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "history: build (obs)")
	assert.Contains(t, out, "truncated_trust_designation")
	assert.Contains(t, out, `"property_id":"obs"`)
	assert.Contains(t, out, "history: invalid = 1")
}

func TestObserverNamesOrganizationKeyword(t *testing.T) {
	var buf bytes.Buffer
	dbg := observability.NewDebugObserver(&buf)
	b := newTestBuilder(t, WithObserver(dbg.StandardObserver))

	_, err := b.Build(Property{ID: "kw", Transfers: []Transfer{{Date: "2020-01-01", Grantee: "John Smith & Acme LLC"}}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"Acme LLC" [2020-01-01] -> organization (keyword "LLC")`)
	assert.Contains(t, out, "history: owners = 4")
}

func TestInvalidLogRecordsCopy(t *testing.T) {
	log := NewInvalidLog(nil)
	log.Add("TR", owners.ReasonTruncatedTrust, "2020-01-01", "truncated_trust")

	recs := log.Records()
	recs[0].Raw = "changed"
	assert.Equal(t, "TR", log.Records()[0].Raw)
	assert.Equal(t, 1, log.Len())
}
