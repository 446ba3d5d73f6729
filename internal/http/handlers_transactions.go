package http

import (
	"net/http"
	"strings"

	"budgetbook/internal/core"
)

type transactionRequest struct {
	Date       string `json:"date"`
	AccountID  int64  `json:"account_id"`
	CategoryID int64  `json:"category_id"`
	Payee      string `json:"payee,omitempty"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
	Planned    bool   `json:"planned,omitempty"`
}

type transactionResponse struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	AccountID  int64  `json:"account_id"`
	CategoryID int64  `json:"category_id"`
	Payee      string `json:"payee,omitempty"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
	Planned    bool   `json:"planned"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:         t.ID,
		Date:       t.Date.String(),
		AccountID:  t.AccountID,
		CategoryID: t.CategoryID,
		Payee:      t.Payee,
		Amount:     t.Amount.String(),
		Note:       t.Note,
		Planned:    t.Planned,
	}
}

func (r transactionRequest) toDomain() (core.Transaction, error) {
	date, err := core.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:       date,
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		Payee:      sanitizeInput(r.Payee),
		Amount:     amount,
		Note:       sanitizeInput(r.Note),
		Planned:    r.Planned,
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	txn, err := req.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), txn)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := s.ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

// handleListTransactions lists the whole ledger, or one month when month
// and/or year query parameters are present.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		txns []core.Transaction
		err  error
	)
	if r.URL.Query().Get("month") != "" || r.URL.Query().Get("year") != "" {
		var p core.Period
		p, err = periodFromQuery(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		txns, err = s.ledger.ListTransactionsByPeriod(r.Context(), p)
	} else {
		txns, err = s.ledger.ListTransactions(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	txn, err := req.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	txn.ID = id

	updated, err := s.ledger.UpdateTransaction(r.Context(), txn)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
