// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownerparse/internal/history"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "04112345.json", `{
	  "transfers": [{"date": "2019-05-01", "grantee": "John Smith"}],
	  "current_owners": ["SMITH JOHN"]
	}`)

	p, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, history.Property{
		ID:            "04112345",
		Transfers:     []history.Transfer{{Date: "2019-05-01", Grantee: "John Smith"}},
		CurrentOwners: []string{"SMITH JOHN"},
	}, p)
}

func TestLoadYAMLKeepsExplicitID(t *testing.T) {
	path := writeFile(t, t.TempDir(), "record.yml", `
id: R-77
transfers:
  - date: "2021-07-10"
    grantee: XYZ TRUST
`)

	p, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "R-77", p.ID)
	require.Len(t, p.Transfers, 1)
	assert.Equal(t, "XYZ TRUST", p.Transfers[0].Grantee)
}

func TestLoadHTML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "acct.html", `<table>
	  <tr><th>Sale Date</th><th>Grantee</th></tr>
	  <tr><td>01/15/2020</td><td>SMITH JOHN &amp; MARY</td></tr>
	</table>`)

	p, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "acct", p.ID)
	assert.Equal(t, []history.Transfer{{Date: "2020-01-15", Grantee: "SMITH JOHN & MARY"}}, p.Transfers)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader().Load(writeFile(t, dir, "notes.txt", "hello"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = NewLoader().Load(writeFile(t, dir, "bad.json", `{"transfers": [`))
	assert.Error(t, err)

	_, err = NewLoader().Load(writeFile(t, dir, "typo.yaml", "transfer: []\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = NewLoader().Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", "{}")
	writeFile(t, dir, "a.yaml", "{}")
	writeFile(t, dir, "readme.md", "#")
	writeFile(t, dir, "nested/c.html", "<p>")

	t.Run("directory", func(t *testing.T) {
		d, err := Discover(dir, false)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.json")}, d.Files)
		require.Len(t, d.Skipped, 1)
		assert.Equal(t, filepath.Join(dir, "readme.md"), d.Skipped[0].Path)
	})

	t.Run("recursive", func(t *testing.T) {
		d, err := Discover(dir, true)
		require.NoError(t, err)
		assert.Contains(t, d.Files, filepath.Join(dir, "nested", "c.html"))
		assert.Len(t, d.Files, 3)
	})

	t.Run("glob", func(t *testing.T) {
		d, err := Discover(filepath.Join(dir, "*.json"), false)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "b.json")}, d.Files)
	})

	t.Run("single file", func(t *testing.T) {
		d, err := Discover(filepath.Join(dir, "a.yaml"), false)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.yaml")}, d.Files)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Discover(filepath.Join(dir, "*.csv"), false)
		assert.Error(t, err)
		_, err = Discover(filepath.Join(dir, "missing"), false)
		assert.Error(t, err)
		_, err = Discover("../etc", false)
		assert.Error(t, err)
	})
}
