package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/solara-labs/cadenza/internal/core/services"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc := services.NewPlatform(services.NewCatalog(), nil, nil, 100)
	return NewHandler(svc)
}

func doJSON(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d, body: %s", rec.Code, want, strings.TrimSpace(rec.Body.String()))
	}
}

func seedCatalog(t *testing.T, h *Handler) {
	t.Helper()
	mustStatus(t, doJSON(t, h, http.MethodPost, "/artists", map[string]string{"username": "Artist"}), http.StatusCreated)
	mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners", map[string]string{"username": "lena"}), http.StatusCreated)
	mustStatus(t, doJSON(t, h, http.MethodPost, "/artists/Artist/albums", map[string]any{
		"name": "Debut",
		"songs": []map[string]any{
			{"name": "One", "genre": "pop", "duration": 30},
			{"name": "Two", "genre": "pop", "duration": 30},
		},
	}), http.StatusCreated)
}

func TestHandler_HealthCheck(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestHandler_PlaybackFlow(t *testing.T) {
	h := newTestHandler(t)
	seedCatalog(t, h)

	mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners/lena/player/load",
		map[string]string{"kind": "album", "name": "Debut"}), http.StatusOK)

	rec := doJSON(t, h, http.MethodPost, "/listeners/lena/player/play-pause", nil)
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"paused":false`) {
		t.Fatalf("play-pause body: %s", rec.Body.String())
	}

	mustStatus(t, doJSON(t, h, http.MethodPost, "/clock", map[string]int{"timestamp": 30}), http.StatusOK)

	rec = doJSON(t, h, http.MethodGet, "/listeners/lena/player", nil)
	mustStatus(t, rec, http.StatusOK)
	var status services.PlayerStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Track != "Two" || status.Remaining != 30 {
		t.Fatalf("status after 30s: %+v", status)
	}

	rec = doJSON(t, h, http.MethodPost, "/listeners/lena/player/repeat", nil)
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "repeat all") {
		t.Fatalf("repeat body: %s", rec.Body.String())
	}
}

func TestHandler_SettlementFlow(t *testing.T) {
	h := newTestHandler(t)
	seedCatalog(t, h)

	mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners/lena/premium", nil), http.StatusOK)
	mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners/lena/player/load",
		map[string]string{"kind": "album", "name": "Debut"}), http.StatusOK)
	mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners/lena/player/play-pause", nil), http.StatusOK)
	mustStatus(t, doJSON(t, h, http.MethodPost, "/clock", map[string]int{"timestamp": 30}), http.StatusOK)

	rec := doJSON(t, h, http.MethodPost, "/monetization/settle", nil)
	mustStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, `"username":"Artist"`) || !strings.Contains(body, `"songRevenue":100`) {
		t.Fatalf("settlement body: %s", body)
	}
	if !strings.Contains(body, `"mostProfitableSong":"One"`) {
		t.Fatalf("settlement body: %s", body)
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, h *Handler)
		method     string
		path       string
		body       any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown listener is 404",
			method:     http.MethodGet,
			path:       "/listeners/ghost/player",
			wantStatus: http.StatusNotFound,
			wantBody:   "not found",
		},
		{
			name: "duplicate listener is 409",
			setup: func(t *testing.T, h *Handler) {
				mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners",
					map[string]string{"username": "lena"}), http.StatusCreated)
			},
			method:     http.MethodPost,
			path:       "/listeners",
			body:       map[string]string{"username": "lena"},
			wantStatus: http.StatusConflict,
			wantBody:   "name already in use",
		},
		{
			name: "backward clock is 400",
			setup: func(t *testing.T, h *Handler) {
				mustStatus(t, doJSON(t, h, http.MethodPost, "/clock",
					map[string]int{"timestamp": 100}), http.StatusOK)
			},
			method:     http.MethodPost,
			path:       "/clock",
			body:       map[string]int{"timestamp": 50},
			wantStatus: http.StatusBadRequest,
			wantBody:   "clock cannot move backwards",
		},
		{
			name: "offline listener is 403",
			setup: func(t *testing.T, h *Handler) {
				seedCatalog(t, h)
				mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners/lena/online", nil), http.StatusOK)
			},
			method:     http.MethodPost,
			path:       "/listeners/lena/player/load",
			body:       map[string]string{"kind": "album", "name": "Debut"},
			wantStatus: http.StatusForbidden,
			wantBody:   "offline",
		},
		{
			name:       "malformed json is 400",
			method:     http.MethodPost,
			path:       "/listeners",
			body:       nil,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body",
		},
		{
			name: "zero-duration song is 400",
			setup: func(t *testing.T, h *Handler) {
				mustStatus(t, doJSON(t, h, http.MethodPost, "/artists",
					map[string]string{"username": "Artist"}), http.StatusCreated)
			},
			method:     http.MethodPost,
			path:       "/artists/Artist/songs",
			body:       map[string]any{"name": "Silence", "genre": "pop", "duration": 0},
			wantStatus: http.StatusBadRequest,
			wantBody:   "duration must be positive",
		},
		{
			name: "negative ad price is 400",
			setup: func(t *testing.T, h *Handler) {
				seedCatalog(t, h)
			},
			method:     http.MethodPost,
			path:       "/listeners/lena/player/adbreak",
			body:       map[string]float64{"price": -1},
			wantStatus: http.StatusBadRequest,
			wantBody:   "price cannot be negative",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t)
			if tc.setup != nil {
				tc.setup(t, h)
			}
			rec := doJSON(t, h, tc.method, tc.path, tc.body)
			mustStatus(t, rec, tc.wantStatus)
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Fatalf("body: got %q, want substring %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestHandler_WrappedListener(t *testing.T) {
	h := newTestHandler(t)
	seedCatalog(t, h)

	// nothing played yet
	mustStatus(t, doJSON(t, h, http.MethodGet, "/listeners/lena/wrapped", nil), http.StatusNotFound)

	mustStatus(t, doJSON(t, h, http.MethodPost, "/listeners/lena/player/load",
		map[string]string{"kind": "album", "name": "Debut"}), http.StatusOK)

	rec := doJSON(t, h, http.MethodGet, "/listeners/lena/wrapped", nil)
	mustStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, `"topArtists"`) || !strings.Contains(body, `"name":"One"`) {
		t.Fatalf("wrapped body: %s", body)
	}
}
