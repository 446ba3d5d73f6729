package http

import (
	"net/http"
)

type statusResponse struct {
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	MonthSpend   string `json:"month_spend"`
	PlannedTotal string `json:"planned_total"`
	AlarmCount   int    `json:"alarm_count"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	p, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	st, err := s.status.ComputeStatus(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Month:        st.Period.Month,
		Year:         st.Period.Year,
		MonthSpend:   st.MonthSpend.String(),
		PlannedTotal: st.PlannedTotal.String(),
		AlarmCount:   st.AlarmCount,
	})
}
