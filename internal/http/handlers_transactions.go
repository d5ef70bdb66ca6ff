package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gastos/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		respondFetchError(w, r, "transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "Invalid request body"})
		return
	}

	id, err := s.transactions.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()

	tx, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in core.TransactionInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "Invalid request body"})
		return
	}

	if _, err := s.transactions.Update(r.Context(), id, in); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()

	tx, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateStats()
	respondData(w, http.StatusOK, nil)
}
