package rest

import (
	"encoding/json"
	"net/http"
)

type advanceClockRequest struct {
	Timestamp int `json:"timestamp"`
}

// GetClock handles GET /clock
func (h *Handler) GetClock(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{"timestamp": h.svc.Clock()})
}

// AdvanceClock handles POST /clock
func (h *Handler) AdvanceClock(w http.ResponseWriter, r *http.Request) {
	var req advanceClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.AdvanceClock(req.Timestamp); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"timestamp": req.Timestamp})
}

// WrappedListener handles GET /listeners/{username}/wrapped
func (h *Handler) WrappedListener(w http.ResponseWriter, r *http.Request) {
	wrap, err := h.svc.WrappedListener(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wrap)
}

// WrappedArtist handles GET /artists/{artist}/wrapped
func (h *Handler) WrappedArtist(w http.ResponseWriter, r *http.Request) {
	wrap, err := h.svc.WrappedArtist(r.PathValue("artist"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wrap)
}

// FanListens handles GET /artists/{artist}/fans
func (h *Handler) FanListens(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.FanListens(r.PathValue("artist"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

// EndOfRun handles POST /monetization/settle
func (h *Handler) EndOfRun(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.svc.EndOfRun(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payouts)
}

// Report handles GET /monetization/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.svc.Report(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payouts)
}
