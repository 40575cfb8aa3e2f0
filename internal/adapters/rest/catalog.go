package rest

import (
	"encoding/json"
	"net/http"

	"github.com/solara-labs/cadenza/internal/core/services"
)

type songPayload struct {
	Name     string  `json:"name"`
	Album    string  `json:"album,omitempty"`
	Genre    string  `json:"genre"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

func (p songPayload) input() services.SongInput {
	return services.SongInput{
		Name:     p.Name,
		Album:    p.Album,
		Genre:    p.Genre,
		Duration: p.Duration,
		Price:    p.Price,
	}
}

// AddSong handles POST /artists/{artist}/songs
func (h *Handler) AddSong(w http.ResponseWriter, r *http.Request) {
	var req songPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	track, err := h.svc.AddSong(r.PathValue("artist"), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, track)
}

type addAlbumRequest struct {
	Name  string        `json:"name"`
	Songs []songPayload `json:"songs"`
}

// AddAlbum handles POST /artists/{artist}/albums
func (h *Handler) AddAlbum(w http.ResponseWriter, r *http.Request) {
	var req addAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	songs := make([]services.SongInput, 0, len(req.Songs))
	for _, s := range req.Songs {
		songs = append(songs, s.input())
	}
	album, err := h.svc.AddAlbum(r.PathValue("artist"), req.Name, songs)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, album)
}

type addPodcastRequest struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	Episodes []struct {
		Name     string `json:"name"`
		Duration int    `json:"duration"`
	} `json:"episodes"`
}

// AddPodcast handles POST /podcasts
func (h *Handler) AddPodcast(w http.ResponseWriter, r *http.Request) {
	var req addPodcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	episodes := make([]services.EpisodeInput, 0, len(req.Episodes))
	for _, e := range req.Episodes {
		episodes = append(episodes, services.EpisodeInput{Name: e.Name, Duration: e.Duration})
	}
	podcast, err := h.svc.AddPodcast(req.Owner, req.Name, episodes)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, podcast)
}

type createPlaylistRequest struct {
	Name  string   `json:"name"`
	Songs []string `json:"songs"`
}

// CreatePlaylist handles POST /listeners/{username}/playlists
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	playlist, err := h.svc.Catalog().CreatePlaylist(r.PathValue("username"), req.Name, req.Songs)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, playlist)
}

type addMerchRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddMerch handles POST /artists/{artist}/merch
func (h *Handler) AddMerch(w http.ResponseWriter, r *http.Request) {
	var req addMerchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.AddMerch(r.PathValue("artist"), req.Name, req.Price); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}
