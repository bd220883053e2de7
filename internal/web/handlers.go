package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cjeanneret/WebcamShot/internal/trigger"
)

// Requester accepts burst and quit requests for the capture loop.
type Requester interface {
	Submit(a trigger.Action) bool
}

// BurstInfo describes the configured burst for GET /config.
type BurstInfo struct {
	Count      int      `json:"count"`
	IntervalMs int      `json:"interval_ms"`
	Files      []string `json:"files"`
	Run        string   `json:"run"`
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Broadcaster *StatusBroadcaster
	Requests    Requester
	Info        BurstInfo
	FilePath    func(i int) string
	staticFS    fs.FS
}

// NewHandlers creates handlers with the given dependencies.
// If requests is nil, POST /burst and POST /quit return 503 Service Unavailable.
func NewHandlers(broadcaster *StatusBroadcaster, requests Requester, info BurstInfo, filePath func(int) string, staticFS fs.FS) *Handlers {
	info.Run = broadcaster.RunID()
	return &Handlers{
		Broadcaster: broadcaster,
		Requests:    requests,
		Info:        info,
		FilePath:    filePath,
		staticFS:    staticFS,
	}
}

// HandleConfig returns the burst configuration as JSON.
func (h *Handlers) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Info)
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleBurst handles POST /burst, the remote equivalent of SPACE.
func (h *Handlers) HandleBurst(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, trigger.Burst)
}

// HandleQuit handles POST /quit, the remote equivalent of ESC.
func (h *Handlers) HandleQuit(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, trigger.Quit)
}

func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, a trigger.Action) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.Requests == nil {
		http.Error(w, "capture not configured", http.StatusServiceUnavailable)
		return
	}
	if !h.Requests.Submit(a) {
		http.Error(w, "a request is already pending", http.StatusConflict)
		return
	}
	h.Broadcaster.Broadcast("info", "Remote request: "+a.String())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "queued", "action": a.String()})
}

// HandleFrame serves GET /frames/{index}: the image saved for that burst index.
func (h *Handlers) HandleFrame(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || i < 0 || i >= h.Info.Count {
		http.Error(w, "index must be between 0 and "+strconv.Itoa(h.Info.Count-1), http.StatusBadRequest)
		return
	}
	path := h.FilePath(i)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "frame not captured yet", http.StatusNotFound)
			return
		}
		http.Error(w, "stat frame failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, path)
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Broadcaster.Subscribe()
	defer unsub()

	// Send initial comment to establish connection
	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Heartbeat while idle
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()
		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
