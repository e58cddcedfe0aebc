package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/reno.works/internal/format"
	"github.com/Simplici0/reno.works/internal/metrics"
	"github.com/Simplici0/reno.works/internal/pricing"
	"github.com/Simplici0/reno.works/internal/report"
	"github.com/Simplici0/reno.works/internal/store"
)

const maxEstimateBody = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *server) handleEstimateCreate(w http.ResponseWriter, r *http.Request) {
	var in pricing.ProjectInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEstimateBody)).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := pricing.ValidateInput(in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "fields": err})
		return
	}

	timer := metrics.NewTimer()
	result := s.engine.Estimate(in)
	s.observe(r, result, timer)

	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))
	if !save {
		writeJSON(w, http.StatusOK, result)
		return
	}

	saved, err := s.store.Save(r.Context(), r.URL.Query().Get("title"), r.URL.Query().Get("notes"), result)
	s.metrics.RecordStore("save", err)
	if err != nil {
		s.logger.Error("failed to save estimate", zap.Error(err))
		http.Error(w, "failed to save estimate", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Location", "/estimates/"+saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// observe records metrics and logs the diagnostics channel of one estimate.
func (s *server) observe(r *http.Request, result pricing.ItemizedEstimateResult, timer *metrics.Timer) {
	codes := make([]string, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		codes = append(codes, d.Code)
		s.logger.Warn("estimate diagnostic",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("code", d.Code),
			zap.String("message", d.Message),
		)
	}
	s.metrics.RecordEstimate("http", len(result.LineItems), result.Summary.Total, codes, timer.Duration())
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := s.store.List(r.Context(), store.ListQuery{Search: r.URL.Query().Get("q"), Limit: limit})
	s.metrics.RecordStore("list", err)
	if err != nil {
		s.logger.Error("failed to list estimates", zap.Error(err))
		http.Error(w, "failed to load estimates", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleEstimateGet(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleEstimateText(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}

	formatter := s.formatter
	if locale := r.URL.Query().Get("locale"); locale != "" {
		f, err := format.New(locale)
		if err != nil {
			http.Error(w, "invalid locale", http.StatusBadRequest)
			return
		}
		formatter = f
	}

	out, err := report.Text(saved.Result, metaFor(saved), formatter)
	if err != nil {
		s.logger.Error("failed to render estimate", zap.String("id", saved.ID), zap.Error(err))
		http.Error(w, "failed to render estimate", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func (s *server) handleEstimateExcel(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	data, err := report.Excel(saved.Result, metaFor(saved))
	if err != nil {
		s.logger.Error("failed to build workbook", zap.String("id", saved.ID), zap.Error(err))
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="estimate-`+saved.ID+`.xlsx"`)
	_, _ = w.Write(data)
}

func (s *server) handleEstimateDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	s.metrics.RecordStore("delete", err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "estimate not found", http.StatusNotFound)
	case err != nil:
		s.logger.Error("failed to delete estimate", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to delete estimate", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// loadEstimate writes the error response itself and reports whether the
// handler should continue.
func (s *server) loadEstimate(w http.ResponseWriter, r *http.Request) (store.SavedEstimate, bool) {
	id := chi.URLParam(r, "id")
	saved, err := s.store.Get(r.Context(), id)
	s.metrics.RecordStore("get", err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "estimate not found", http.StatusNotFound)
		return store.SavedEstimate{}, false
	case err != nil:
		s.logger.Error("failed to load estimate", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to load estimate", http.StatusInternalServerError)
		return store.SavedEstimate{}, false
	}
	return saved, true
}

func metaFor(saved store.SavedEstimate) report.Meta {
	return report.Meta{
		Title:       saved.Title,
		Reference:   saved.ID,
		CreatedDate: saved.CreatedAt.Format("2006-01-02"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
