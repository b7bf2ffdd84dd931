package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rickgao/futures-data/internal/model"
	"github.com/rickgao/futures-data/internal/version"
)

type planResponse struct {
	Request model.DataRequest `json:"request"`
	Plan    model.ReadPlan    `json:"plan"`
	Columns []string          `json:"usecols,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := struct {
		Status  string       `json:"status"`
		Version version.Info `json:"version"`
		Planner any          `json:"planner"`
	}{
		Status:  "healthy",
		Version: version.Get(),
		Planner: s.planner.Stats(),
	}
	writeJSON(w, http.StatusOK, health)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := s.planner.Plan(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := planResponse{Request: req, Plan: plan}
	if raw := r.URL.Query().Get("columns"); raw != "" {
		cols, err := plan.SelectColumns(strings.Split(raw, ","))
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Columns = cols
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if len(q) == 0 {
		n := s.planner.InvalidateAll()
		writeJSON(w, http.StatusOK, map[string]int{"cleared": n})
		return
	}

	req, err := requestFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"request": req,
		"cleared": s.planner.Invalidate(req),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	if s.scan == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "catalog scan not configured"})
		return
	}
	entries, err := s.scan()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

// requestFromQuery builds a DataRequest from source, symbol, month and
// year query parameters.
func requestFromQuery(q url.Values) (model.DataRequest, error) {
	rawYear := q.Get("year")
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return model.DataRequest{}, &model.ValidationError{
			Field:  "year",
			Reason: fmt.Sprintf("%q is not a year", rawYear),
		}
	}
	return model.ParseDataRequest(q.Get("source"), q.Get("symbol"), q.Get("month"), year)
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidEnumValue), errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnregisteredSourceType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Retryable: model.IsRetryable(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
