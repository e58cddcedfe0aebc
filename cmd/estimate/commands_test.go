package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/reno.works/internal/pricing"
)

const inputJSON = `{
	"propertyLocation": "Spain",
	"propertyCity": "Other city",
	"propertyAge": "6 - 10 Years",
	"rooms": [{
		"roomType": "Living Room",
		"width": 4,
		"length": 3,
		"floorFinish": "Hardwood",
		"wallFinish": "Paint (Standard)",
		"builtInFurniture": "None"
	}]
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(append([]string{"--pricebook", ""}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte(inputJSON), 0o644))
	return path
}

func TestRun_JSONFromFile(t *testing.T) {
	out, err := execute(t, "", "run", "--input", writeInput(t))
	require.NoError(t, err)

	var result pricing.ItemizedEstimateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3595.33, result.Summary.Total)
	assert.Equal(t, "Spain / Other city", result.Multipliers.Location.Label)
}

func TestRun_TextFromStdin(t *testing.T) {
	out, err := execute(t, inputJSON, "run", "--format", "text", "--locale", "en-US", "--title", "Flat refurb")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Flat refurb\n"))
	assert.Contains(t, out, "EUR 3,595.33")
}

func TestRun_XLSXNeedsOut(t *testing.T) {
	_, err := execute(t, inputJSON, "run", "--format", "xlsx")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "boq.xlsx")
	_, err = execute(t, inputJSON, "run", "--format", "xlsx", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestRun_RejectsBadInput(t *testing.T) {
	_, err := execute(t, `{"rooms":[{"width":-1,"length":2}]}`, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")

	_, err = execute(t, inputJSON, "run", "--format", "pdf")
	require.Error(t, err)
}

func TestCatalogAndOptions(t *testing.T) {
	out, err := execute(t, "", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "PREP-FLOOR")

	out, err = execute(t, "", "options")
	require.NoError(t, err)
	var opts pricing.OptionSet
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Contains(t, opts.FloorFinish, "Hardwood")
}

func TestOptions_PriceBookOverrides(t *testing.T) {
	book := `
items:
  - {code: PRJ-SETUP, name: Setup, unit: unit, category: equipment, baseUnitCost: 100}
  - {code: PRJ-PROTECT, name: Protect, unit: m2, category: material, baseUnitCost: 1}
  - {code: PRJ-CLEAN, name: Clean, unit: m2, category: labor, baseUnitCost: 1}
multipliers:
  countries:
    Ireland:
      factor: 1.25
      cities: {Dublin: 1.2}
`
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(book), 0o644))

	out, err := execute(t, "", "options", "--pricebook", path)
	require.NoError(t, err)

	var opts pricing.OptionSet
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	require.NotEmpty(t, opts.Locations)
	last := opts.Locations[len(opts.Locations)-1]
	assert.Equal(t, "Ireland", last.Country)
	assert.Equal(t, []string{"Dublin"}, last.Cities)
	assert.Equal(t, "Spain", opts.Locations[0].Country)
}
