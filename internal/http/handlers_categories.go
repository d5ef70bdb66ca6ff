package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gastos/internal/core"
)

// handleListCategories returns all categories, or only one type when the
// ?type= query parameter is present.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	typ := core.TransactionType(r.URL.Query().Get("type"))

	var (
		cats []core.Category
		err  error
	)
	if typ != "" {
		if !typ.Valid() {
			respondError(w, r, &core.ValidationError{Violations: []string{"Type must be 'income' or 'expense'"}})
			return
		}
		cats, err = s.categories.ListByType(r.Context(), typ)
	} else {
		cats, err = s.categories.List(r.Context())
	}
	if err != nil {
		respondFetchError(w, r, "categories", err)
		return
	}

	writeJSON(w, http.StatusOK, nonNil(cats))
}

// handleGetCategory returns the category, or a null body when absent.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := s.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFetchError(w, r, "category", err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in core.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "Invalid request body"})
		return
	}

	id, err := s.categories.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()

	cat, err := s.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in core.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "Invalid request body"})
		return
	}

	if _, err := s.categories.Update(r.Context(), id, in); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()

	cat, err := s.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondData(w, http.StatusOK, nil)
}

// nonNil keeps empty collections as [] instead of null in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
