package http

import (
	"net/http"

	"budgetbook/internal/core"
)

type budgetRequest struct {
	CategoryID int64  `json:"category_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Target     string `json:"target"`
}

type budgetResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Target     string `json:"target"`
}

type budgetLineResponse struct {
	BudgetID   int64  `json:"budget_id"`
	CategoryID int64  `json:"category_id"`
	Category   string `json:"category"`
	Target     string `json:"target"`
	Spent      string `json:"spent"`
	Remaining  string `json:"remaining"`
	Status     string `json:"status"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Month:      b.Period.Month,
		Year:       b.Period.Year,
		Target:     b.Target.String(),
	}
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	target, err := parseAmount("target", req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.budgets.CreateBudget(r.Context(), core.Budget{
		CategoryID: req.CategoryID,
		Period:     core.Period{Month: req.Month, Year: req.Year},
		Target:     target,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(created))
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.budgets.GetBudget(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

// handleEvaluateBudgets returns every budget of the requested month joined
// with its posted spend.
func (s *Server) handleEvaluateBudgets(w http.ResponseWriter, r *http.Request) {
	p, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	lines, err := s.budgets.Evaluate(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]budgetLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, budgetLineResponse{
			BudgetID:   line.BudgetID,
			CategoryID: line.CategoryID,
			Category:   line.Category,
			Target:     line.Target.String(),
			Spent:      line.Spent.String(),
			Remaining:  line.Remaining.String(),
			Status:     line.Status,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type budgetTargetRequest struct {
	Target string `json:"target"`
}

func (s *Server) handleSetBudgetTarget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req budgetTargetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	target, err := parseAmount("target", req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}

	b, err := s.budgets.SetTarget(r.Context(), id, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.budgets.DeleteBudget(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
