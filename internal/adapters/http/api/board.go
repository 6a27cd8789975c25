// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// BoardHandler serves the rendered leaderboard page.
type BoardHandler struct {
	deps Dependencies
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps Dependencies) *BoardHandler {
	return &BoardHandler{deps: deps}
}

// HandleBoard handles GET / requests. The page is pre-rendered by the
// refresh loop; the handler only copies out the latest bytes, so a slow
// display client never blocks a tick.
func (h *BoardHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	html, _ := h.deps.BoardHTML()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(html)
}
