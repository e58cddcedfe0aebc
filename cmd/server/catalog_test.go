package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/reno.works/internal/pricing"
)

func TestHandleOptionsListsEnumeratedChoices(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv.routes(0), http.MethodGet, "/options", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var opts pricing.OptionSet
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))

	require.NotEmpty(t, opts.Locations)
	assert.Equal(t, "Spain", opts.Locations[0].Country)
	assert.Contains(t, opts.Locations[0].Cities, "Madrid")
	assert.Contains(t, opts.FloorFinish, "Hardwood")
	assert.Contains(t, opts.WallFinish, "Paint (Standard)")
	assert.Equal(t, "None", opts.BuiltInFurniture[0])
	assert.Equal(t, pricing.CeilingBands(), opts.CeilingHeight)
	assert.Equal(t, []string{"0 - 5 Years", "6 - 10 Years", "11 - 20 Years", "21 - 40 Years", "40+ Years"}, opts.PropertyAge)
}

func TestHandleCatalogAndAssemblies(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes(0)

	rr := do(t, h, http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var cat catalogResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cat))
	assert.Equal(t, pricing.DefaultVersion, cat.Version)
	assert.Equal(t, "EUR", cat.Currency)
	assert.Len(t, cat.Items, srv.engine.Catalog().Len())

	rr = do(t, h, http.MethodGet, "/assemblies", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var asm assembliesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &asm))
	assert.Len(t, asm.Assemblies, srv.engine.Assemblies().Len())
}
