package rest

import (
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Username string `json:"username"`
}

// AddListener handles POST /listeners
func (h *Handler) AddListener(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.AddListener(req.Username); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

// AddArtist handles POST /artists
func (h *Handler) AddArtist(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.AddArtist(req.Username); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

// ToggleOnline handles POST /listeners/{username}/online
func (h *Handler) ToggleOnline(w http.ResponseWriter, r *http.Request) {
	online, err := h.svc.ToggleOnline(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"online": online})
}

// BuyPremium handles POST /listeners/{username}/premium
func (h *Handler) BuyPremium(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.BuyPremium(r.PathValue("username")); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"premium": true})
}

// CancelPremium handles DELETE /listeners/{username}/premium
func (h *Handler) CancelPremium(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CancelPremium(r.PathValue("username")); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"premium": false})
}

type subscribeRequest struct {
	Creator string `json:"creator"`
}

// Subscribe handles POST /listeners/{username}/subscriptions
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	subscribed, err := h.svc.Subscribe(r.PathValue("username"), req.Creator)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"subscribed": subscribed})
}

// Notifications handles GET /listeners/{username}/notifications
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	inbox, err := h.svc.Notifications(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, inbox)
}

type buyMerchRequest struct {
	Artist string `json:"artist"`
	Item   string `json:"item"`
}

// BuyMerch handles POST /listeners/{username}/purchases
func (h *Handler) BuyMerch(w http.ResponseWriter, r *http.Request) {
	var req buyMerchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.BuyMerch(r.PathValue("username"), req.Artist, req.Item); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"item": req.Item})
}
