package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/sink"
)

// streamMessage is one websocket text message. The last message of a run
// carries Status and Reason instead of a pattern.
type streamMessage struct {
	Pattern *sink.Record `json:"pattern,omitempty"`
	Status  string       `json:"status,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Count   int          `json:"count,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// handleGenStream runs a generator search and writes each pattern to the
// websocket as soon as it is found. Closing the socket cancels the search.
func (s *Server) handleGenStream(w http.ResponseWriter, r *http.Request) {
	cfg, err := genConfig(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client sends nothing; a read error means it went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ch := sink.NewChannel(ctx, 64, sink.NewRunID())
	done := make(chan streamMessage, 1)
	go func() {
		res, err := s.runner.Generate(ctx, cfg, ch)
		ch.Close()
		if err != nil {
			s.logger.Error("stream search failed", "err", err)
			done <- streamMessage{Error: errors.UserMessage(err)}
			return
		}
		done <- streamMessage{Reason: res.Outcome.Reason.String(), Count: res.Outcome.Count}
	}()

	var status string
	for ev := range ch.C {
		if ev.Status != "" {
			status = ev.Status
			continue
		}
		if ctx.Err() != nil {
			continue
		}
		rec := ev.Record
		if err := conn.WriteJSON(streamMessage{Pattern: &rec}); err != nil {
			s.logger.Debug("websocket write failed", "err", err)
			cancel()
		}
	}

	final := <-done
	final.Status = status
	if ctx.Err() != nil {
		return
	}
	if err := conn.WriteJSON(final); err != nil {
		s.logger.Debug("websocket write failed", "err", err)
		return
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
