package rest

import (
	"encoding/json"
	"net/http"

	"github.com/solara-labs/cadenza/internal/core/domain"
)

// PlayerStatus handles GET /listeners/{username}/player
func (h *Handler) PlayerStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type loadRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// LoadSource handles POST /listeners/{username}/player/load
func (h *Handler) LoadSource(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	kind := domain.SourceKind(req.Kind)
	switch kind {
	case domain.KindSong, domain.KindPlaylist, domain.KindAlbum, domain.KindPodcast:
	default:
		http.Error(w, "Unknown source kind", http.StatusBadRequest)
		return
	}
	if err := h.svc.Load(r.PathValue("username"), kind, req.Name); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"loaded": req.Name})
}

// PlayPause handles POST /listeners/{username}/player/play-pause
func (h *Handler) PlayPause(w http.ResponseWriter, r *http.Request) {
	paused, err := h.svc.PlayPause(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"paused": paused})
}

// NextTrack handles POST /listeners/{username}/player/next
func (h *Handler) NextTrack(w http.ResponseWriter, r *http.Request) {
	name, err := h.svc.Next(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"name": name})
}

// PrevTrack handles POST /listeners/{username}/player/prev
func (h *Handler) PrevTrack(w http.ResponseWriter, r *http.Request) {
	name, err := h.svc.Prev(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"name": name})
}

// CycleRepeat handles POST /listeners/{username}/player/repeat
func (h *Handler) CycleRepeat(w http.ResponseWriter, r *http.Request) {
	mode, err := h.svc.CycleRepeat(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"repeat": mode})
}

type shuffleRequest struct {
	Seed *int64 `json:"seed"`
}

// ToggleShuffle handles POST /listeners/{username}/player/shuffle
func (h *Handler) ToggleShuffle(w http.ResponseWriter, r *http.Request) {
	var req shuffleRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	shuffled, err := h.svc.ToggleShuffle(r.PathValue("username"), req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"shuffle": shuffled})
}

// SkipForward handles POST /listeners/{username}/player/forward
func (h *Handler) SkipForward(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SkipForward(r.PathValue("username")); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"skipped": true})
}

// SkipBackward handles POST /listeners/{username}/player/backward
func (h *Handler) SkipBackward(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SkipBackward(r.PathValue("username")); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"skipped": true})
}

type adBreakRequest struct {
	Price float64 `json:"price"`
}

// InsertAd handles POST /listeners/{username}/player/adbreak
func (h *Handler) InsertAd(w http.ResponseWriter, r *http.Request) {
	var req adBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.InsertAd(r.PathValue("username"), req.Price); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"queued": true})
}
