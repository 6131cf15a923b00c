package relay

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/talkpad/talkpad/internal/logging"
)

const maxBroadcastBytes = 1 << 20

// Handler serves the relay's HTTP surface:
//
//	POST /broadcast  forward the JSON body to every listener
//	GET  /events     Server-Sent Events stream of broadcasts
//	GET  /healthz    liveness
//
// Extra routes, such as the SMS webhook, are mounted with Handle. Anything
// else answers 404 with a JSON body.
type Handler struct {
	hub *Hub
	mux *http.ServeMux
}

// NewHandler builds the HTTP surface around hub.
func NewHandler(hub *Hub) *Handler {
	h := &Handler{hub: hub, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /broadcast", h.handleBroadcast)
	h.mux.HandleFunc("GET /events", h.handleEvents)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	h.mux.HandleFunc("/", h.handleNotFound)
	return h
}

// Handle mounts an extra route.
func (h *Handler) Handle(pattern string, handler http.Handler) {
	h.mux.Handle(pattern, handler)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBroadcastBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Unreadable body"})
		return
	}
	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}
	delivered, _ := h.hub.Broadcast(body)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Broadcasted successfully",
		"delivered": delivered,
	})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Streaming unsupported"})
		return
	}
	_, ch, cancel := h.hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case data, ok := <-ch:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "subscribers": h.hub.Subscribers()})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not Found"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error(fmt.Errorf("write json response: %w", err))
	}
}
