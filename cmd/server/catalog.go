package main

import (
	"net/http"

	"github.com/Simplici0/reno.works/internal/catalog"
)

type catalogResponse struct {
	Version  string         `json:"version"`
	Currency string         `json:"currency"`
	Items    []catalog.Item `json:"items"`
}

type assembliesResponse struct {
	Version    string             `json:"version"`
	Assemblies []catalog.Assembly `json:"assemblies"`
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Version:  s.engine.Version(),
		Currency: s.engine.Currency(),
		Items:    s.engine.Catalog().Items(),
	})
}

func (s *server) handleAssemblies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assembliesResponse{
		Version:    s.engine.Version(),
		Assemblies: s.engine.Assemblies().Assemblies(),
	})
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Options())
}
