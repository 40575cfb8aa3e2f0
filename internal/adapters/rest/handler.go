package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/solara-labs/cadenza/internal/core/domain"
	"github.com/solara-labs/cadenza/internal/core/services"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Platform // Dependency on the Core Service
	router *http.ServeMux     // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Platform) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Accounts
	h.router.HandleFunc("POST /listeners", h.AddListener)
	h.router.HandleFunc("POST /artists", h.AddArtist)
	h.router.HandleFunc("POST /listeners/{username}/online", h.ToggleOnline)
	h.router.HandleFunc("POST /listeners/{username}/premium", h.BuyPremium)
	h.router.HandleFunc("DELETE /listeners/{username}/premium", h.CancelPremium)
	h.router.HandleFunc("POST /listeners/{username}/subscriptions", h.Subscribe)
	h.router.HandleFunc("GET /listeners/{username}/notifications", h.Notifications)
	h.router.HandleFunc("POST /listeners/{username}/purchases", h.BuyMerch)

	// Catalog
	h.router.HandleFunc("POST /artists/{artist}/songs", h.AddSong)
	h.router.HandleFunc("POST /artists/{artist}/albums", h.AddAlbum)
	h.router.HandleFunc("POST /artists/{artist}/merch", h.AddMerch)
	h.router.HandleFunc("POST /podcasts", h.AddPodcast)
	h.router.HandleFunc("POST /listeners/{username}/playlists", h.CreatePlaylist)

	// Player
	h.router.HandleFunc("GET /listeners/{username}/player", h.PlayerStatus)
	h.router.HandleFunc("POST /listeners/{username}/player/load", h.LoadSource)
	h.router.HandleFunc("POST /listeners/{username}/player/play-pause", h.PlayPause)
	h.router.HandleFunc("POST /listeners/{username}/player/next", h.NextTrack)
	h.router.HandleFunc("POST /listeners/{username}/player/prev", h.PrevTrack)
	h.router.HandleFunc("POST /listeners/{username}/player/repeat", h.CycleRepeat)
	h.router.HandleFunc("POST /listeners/{username}/player/shuffle", h.ToggleShuffle)
	h.router.HandleFunc("POST /listeners/{username}/player/forward", h.SkipForward)
	h.router.HandleFunc("POST /listeners/{username}/player/backward", h.SkipBackward)
	h.router.HandleFunc("POST /listeners/{username}/player/adbreak", h.InsertAd)

	// Clock and reports
	h.router.HandleFunc("GET /clock", h.GetClock)
	h.router.HandleFunc("POST /clock", h.AdvanceClock)
	h.router.HandleFunc("GET /listeners/{username}/wrapped", h.WrappedListener)
	h.router.HandleFunc("GET /artists/{artist}/wrapped", h.WrappedArtist)
	h.router.HandleFunc("GET /artists/{artist}/fans", h.FanListens)
	h.router.HandleFunc("POST /monetization/settle", h.EndOfRun)
	h.router.HandleFunc("GET /monetization/report", h.Report)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Cadenza is live 🎶"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeError maps core sentinel errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrOffline):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrEmptyCollection),
		errors.Is(err, domain.ErrNothingPlaying),
		errors.Is(err, domain.ErrNoMusicPlaying),
		errors.Is(err, domain.ErrNotPodcast),
		errors.Is(err, domain.ErrNotShuffleable),
		errors.Is(err, domain.ErrBackwardClock),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidDuration):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
