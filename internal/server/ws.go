package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/puzzleworks/daily-riddle/internal/game"
	"github.com/puzzleworks/daily-riddle/internal/schedule"
)

// WSUpgrader handles WebSocket upgrades for the countdown stream.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type countdownMessage struct {
	Type      string `json:"type"`
	Remaining string `json:"remaining"`
	Date      string `json:"date"`
}

// Countdown streams the time until the next local midnight, once per second,
// for the terminal "all done" screen. The stream is pure recomputation off
// the clock, no shared mutable state, and it ends at the day rollover so a
// reconnecting client picks up the fresh day.
func (h *Handlers) Countdown(w http.ResponseWriter, r *http.Request) {
	conn, err := WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	started := h.manager.Now()
	today := schedule.DateKey(started)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		now := h.manager.Now()
		if schedule.DateKey(now) != today {
			_ = conn.WriteJSON(countdownMessage{Type: "rollover", Date: schedule.DateKey(now)})
			return
		}
		msg := countdownMessage{
			Type:      "countdown",
			Remaining: game.FormatCountdown(game.UntilNextDay(now)),
			Date:      today,
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		}
	}
}
