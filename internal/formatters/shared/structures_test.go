// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"testing"

	"ownerparse/internal/history"
	"ownerparse/internal/owners"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() history.Result {
	return history.Result{
		PropertyID: "R100",
		Timeline: owners.Timeline{
			Dates: []owners.DatedOwners{
				{Date: "2001-03-04", Owners: []owners.Owner{owners.NewPerson("John", "", "Smith")}},
			},
			Current: []owners.Owner{owners.NewCompany("Acme Holdings Llc")},
		},
		Invalid: []owners.InvalidOwner{
			{Raw: "TR", Reason: owners.ReasonTruncatedTrust, Date: "2001-03-04"},
		},
	}
}

func TestDocument(t *testing.T) {
	r := sampleResult()

	single := Document([]history.Result{r})
	assert.Equal(t, r, single)

	many := Document([]history.Result{r, r})
	assert.Len(t, many, 2)

	empty := Document(nil)
	assert.Equal(t, []history.Result{}, empty)
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult())
	require.Len(t, rows, 3)

	assert.Equal(t, "2001-03-04", rows[0].Bucket)
	assert.Equal(t, "owner", rows[0].Status)
	assert.Equal(t, "Smith", rows[0].Owner.LastName)

	assert.Equal(t, owners.CurrentKey, rows[1].Bucket)
	assert.Equal(t, "Acme Holdings Llc", rows[1].Owner.Name)

	assert.Equal(t, "invalid", rows[2].Status)
	assert.Equal(t, owners.ReasonTruncatedTrust, rows[2].Reason)
	assert.Equal(t, "TR", rows[2].Raw)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]history.Result{sampleResult(), sampleResult()})
	assert.Equal(t, 2, s.Properties)
	assert.Equal(t, 2, s.Persons)
	assert.Equal(t, 2, s.Companies)
	assert.Equal(t, 2, s.Invalid)
	assert.Equal(t, []owners.Reason{owners.ReasonTruncatedTrust}, s.SortedReasons())
}
