// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no user configuration
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("OWNERPARSE_CONFIG", "")
	t.Setenv("OWNERPARSE_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv(ObservabilityEnv, "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const parcelJSON = `{
  "id": "R-1",
  "transfers": [
    {"date": "2021-07-10", "grantee": "XYZ TRUST"},
    {"date": "2019-05-01", "grantee": "John Smith"}
  ],
  "current_owners": []
}`

func TestRunJSONSingleProperty(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "r1.json"), parcelJSON)

	code, out, errOut := runCLI("--file", "r1.json", "--format", "json")
	require.Equal(t, exitOK, code, errOut)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "R-1", doc["property_id"])

	timeline := doc["owners_by_date"].(map[string]interface{})
	current := timeline["current"].([]interface{})
	require.Len(t, current, 1)
	assert.Equal(t, "Xyz Trust", current[0].(map[string]interface{})["name"])
}

func TestRunDirectoryKeepsOrderAndReportsErrors(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "in", "a.json"), parcelJSON)
	writeFile(t, filepath.Join(dir, "in", "b.yaml"), "id: B-2\ncurrent_owners:\n  - SMITH JOHN & MARY\n")
	writeFile(t, filepath.Join(dir, "in", "c.json"), `{"id": "C", "transfers": [{"date": "07/10/2021", "grantee": "X"}]}`)
	writeFile(t, filepath.Join(dir, "in", "notes.txt"), "ignored")

	code, out, errOut := runCLI("--file", "in", "--format", "json", "--compact", "--workers", "2")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "c.json")
	assert.Contains(t, errOut, "invalid transfer date")

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "R-1", docs[0]["property_id"])
	assert.Equal(t, "B-2", docs[1]["property_id"])
}

func TestRunTextOutputToFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "r1.json"), parcelJSON)

	code, out, errOut := runCLI("--file", "r1.json", "--output", "out/report.txt")
	require.Equal(t, exitOK, code, errOut)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Wrote 1 properties to out/report.txt")

	data, err := os.ReadFile(filepath.Join(dir, "out", "report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== Property R-1 ===")
	assert.Contains(t, string(data), "[COMPANY] Xyz Trust")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestRunProfileFromConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "ownerparse.yaml"), `
defaults:
  format: csv
profiles:
  county:
    description: Test county
    name_order: last_first
    vocabulary:
      organization_keywords: [ranch]
`)
	writeFile(t, filepath.Join(dir, "p.yaml"), "id: P\ncurrent_owners:\n  - Lazy K Ranch\n  - Jones Mary\n")

	code, out, errOut := runCLI("--file", "p.yaml", "--profile", "county")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "property_id,bucket,status")
	assert.Contains(t, out, "P,current,owner,company,Lazy K Ranch")
	assert.Contains(t, out, "P,current,owner,person,,,Mary,,Jones")
}

func TestRunListProfiles(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI("--list-profiles")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Built-in profiles")
	assert.Contains(t, out, "recorded")
}

func TestRunErrors(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "r1.json"), parcelJSON)
	writeFile(t, filepath.Join(dir, "only.txt"), "x")

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing file flag", nil, exitFailure, "--file is required"},
		{"unknown format", []string{"--file", "r1.json", "--format", "xml"}, exitFailure, "unsupported format 'xml'"},
		{"unknown profile", []string{"--file", "r1.json", "--profile", "nope"}, exitFailure, "profile 'nope' not found"},
		{"bad name order", []string{"--file", "r1.json", "--name-order", "sideways"}, exitFailure, "sideways"},
		{"bad workers", []string{"--file", "r1.json", "--workers", "0"}, exitFailure, "--workers must be positive"},
		{"missing path", []string{"--file", "nothing.json"}, exitFailure, "does not exist"},
		{"no supported files", []string{"--file", "only.txt"}, exitNoFiles, "no supported property files"},
		{"missing config", []string{"--file", "r1.json", "--config", "absent.yaml"}, exitFailure, "error reading config file"},
		{"unknown flag", []string{"--bogus"}, exitFailure, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, errOut, tt.msg)
		})
	}
}

func TestRunPositionalInput(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "r1.json"), parcelJSON)

	code, out, errOut := runCLI("--format", "yaml", "r1.json")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "property_id: R-1")
}

func TestRunDebugWritesSteps(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "r1.json"), parcelJSON)

	code, _, errOut := runCLI("--file", "r1.json", "--debug", "--quiet")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "history: build (R-1)")
}

func TestRunDotEnvObservability(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv(ObservabilityEnv)
	writeFile(t, filepath.Join(dir, "r1.json"), parcelJSON)
	writeFile(t, filepath.Join(dir, ".env"), ObservabilityEnv+"=metrics\n")
	t.Cleanup(func() { os.Unsetenv(ObservabilityEnv) })

	code, _, errOut := runCLI("--file", "r1.json", "--quiet")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, `"component":"history"`)
	assert.Contains(t, errOut, `"property_id":"R-1"`)
}

func TestRunHelpAndVersion(t *testing.T) {
	isolate(t)

	code, out, _ := runCLI("--version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "ownerparse ")

	code, out, _ = runCLI("--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "USAGE:")

	code, out, _ = runCLI("--help", "rules")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "organization_keyword")

	code, out, _ = runCLI("--help", "truncated_trust")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "truncated_trust_designation")

	code, out, _ = runCLI("--help", "formats")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "text/csv")

	code, _, _ = runCLI("--help", "nonexistent")
	assert.Equal(t, exitFailure, code)
}
