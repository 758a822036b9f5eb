package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/server/models"
	"github.com/asorokin/decat/internal/server/repositories/entries"
	"github.com/gorilla/mux"
)

type entriesResponse struct {
	Entries []models.Entry `json:"entries"`
	Count   int64          `json:"count"`
}

type entryRequest struct {
	WorstCase         string `json:"worst_case"`
	WorstConsequences string `json:"worst_consequences"`
	WhatCanIDo        string `json:"what_can_i_do"`
	HowWillICope      string `json:"how_will_i_cope"`
}

type exportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// parseListQuery turns the query string into a repository page request.
// Supported parameters: "order" ("created_at.asc" or "created_at.desc",
// newest first by default), "offset", "limit", and "or" (see parseOrFilter).
func parseListQuery(r *http.Request) (entries.ListQuery, error) {
	q := entries.ListQuery{}

	switch order := r.URL.Query().Get("order"); order {
	case "", "created_at.desc":
	case "created_at.asc":
		q.Ascending = true
	default:
		return q, fmt.Errorf("unsupported order %q", order)
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return q, fmt.Errorf("invalid offset %q", raw)
		}
		q.Offset = offset
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return q, fmt.Errorf("invalid limit %q", raw)
		}
		q.Limit = limit
	}

	pattern, err := parseOrFilter(r.URL.Query().Get("or"))
	if err != nil {
		return q, err
	}
	q.Pattern = pattern

	return q, nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	items, count, err := s.entries.List(r.Context(), userID, q)
	if err != nil {
		s.logger.Error(r.Context(), "listing entries failed", "error", err)
		respondError(w, err)
		return
	}

	if items == nil {
		items = []models.Entry{}
	}
	respondJSON(w, http.StatusOK, entriesResponse{Entries: items, Count: count})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, common.ErrorEmptyField)
		return
	}

	entry, err := s.entries.Create(r.Context(), userID, &models.Entry{
		WorstCase:         req.WorstCase,
		WorstConsequences: req.WorstConsequences,
		WhatCanIDo:        req.WhatCanIDo,
		HowWillICope:      req.HowWillICope,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, common.ErrorNotFound)
		return
	}

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, common.ErrorEmptyField)
		return
	}

	entry, err := s.entries.Update(r.Context(), userID, &models.Entry{
		ID:                id,
		WorstCase:         req.WorstCase,
		WorstConsequences: req.WorstConsequences,
		WhatCanIDo:        req.WhatCanIDo,
		HowWillICope:      req.HowWillICope,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, common.ErrorNotFound)
		return
	}

	if err := s.entries.Delete(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	key, url, err := s.exports.Export(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "export failed", "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, exportResponse{Key: key, URL: url})
}
