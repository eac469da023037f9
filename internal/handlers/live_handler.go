package handlers

import (
	"net/http"

	"github.com/club28/backend/internal/live"
	"github.com/club28/backend/internal/services"
)

type LiveHandler struct {
	hub *live.Hub
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// ServeWs subscribes to a tournament's live updates
// @Summary Live tournament feed
// @Description WebSocket stream of MATCH_UPDATED, MATCH_DELETED, STANDINGS_CHANGED and ENTRANT_CONFIRMED events
// @Tags Live
// @Param id path int true "Tournament ID"
// @Router /ws/tournaments/{id} [get]
func (h *LiveHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.hub.ServeRoom(w, r, services.TournamentRoom(id))
}
