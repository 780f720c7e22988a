package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 1},
		{"{}", 2},
		{"abcd", 1},
		{"abcde", 2},
		{"12345678", 2},
		{`{"a":1}`, 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, estimateTokens(tt.in))
		})
	}
}

func TestMeasure(t *testing.T) {
	data := []byte(`[
		{"id":1,"name":"Alice","tags":["a","b"]},
		{"id":2,"name":"Bob","tags":[]},
		{"id":3,"name":"Carol","tags":["c"]}
	]`)

	r, err := measure("users.json", data, "users")
	require.NoError(t, err)
	assert.Equal(t, "users.json", r.Name)
	assert.Equal(t, 1, r.Schemas)
	assert.Greater(t, r.JSONBytes, 0)
	assert.Greater(t, r.AONBytes, 0)

	_, err = measure("bad.json", []byte(`{`), "users")
	assert.Error(t, err)

	_, err = measure("empty.json", []byte(`[]`), "users")
	assert.Error(t, err)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0o644))
	}

	files, err := collectFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, files)

	_, err = collectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestWriteReports(t *testing.T) {
	results := []caseResult{{Name: "x.json", JSONBytes: 100, AONBytes: 60, JSONTokens: 40, AONTokens: 30, Schemas: 2}}

	var csv bytes.Buffer
	require.NoError(t, writeCSV(&csv, results))
	assert.Equal(t, "name,schemas,json_bytes,aon_bytes,bytes_pct,json_tokens,aon_tokens,tokens_pct\n"+
		"x.json,2,100,60,40.0,40,30,25.0\n", csv.String())

	var md bytes.Buffer
	writeMarkdown(&md, results)
	assert.Contains(t, md.String(), "| **Bytes** | 100 | 60 | 40 (40.0%) |")
	assert.Contains(t, md.String(), "| x.json | 2 | 100 | 60 | +40.0% | 40 | 30 | +25.0% |")
}

func TestWriteCSV_QuotesNames(t *testing.T) {
	results := []caseResult{{Name: `a,b "c".json`, JSONBytes: 10, AONBytes: 5, JSONTokens: 4, AONTokens: 2, Schemas: 1}}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, results))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"a,b ""c"".json",1,10,5,50.0,4,2,50.0`, lines[1])
}
