package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// Stream message types sent by the server.
const (
	wsTypeLoading  = "loading"
	wsTypePalettes = "palettes"
	wsTypeError    = "error"
)

// wsRequest asks the stream for one batch.
type wsRequest struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// wsMessage is every message the stream sends. Palettes-type messages
// embed the batch.
type wsMessage struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
	*PalettesResponse
}

// handleWS upgrades to a WebSocket and serves batches on request: each
// {"category","search"} message is answered with a loading notice, a pause
// of GenerationDelay, then the batch. A newer request supersedes one still
// waiting out its delay.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		tuilog.Log.Error("WebSocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	wsConnectionsActive.Inc()
	defer wsConnectionsActive.Dec()
	tuilog.Log.Info("WebSocket client connected", "remote", r.RemoteAddr)

	ctx := r.Context()
	requests := make(chan wsRequest, 1)
	readErr := make(chan error, 1)
	go func() {
		readErr <- pumpRequests(ctx, func(ctx context.Context) (wsRequest, error) {
			var req wsRequest
			err := wsjson.Read(ctx, conn, &req)
			return req, err
		}, requests)
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case err := <-readErr:
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				tuilog.Log.Debug("WebSocket read failed", "error", err)
			}
			return
		case req := <-requests:
			if err := s.serveWSRequest(ctx, conn, req, requests); err != nil {
				tuilog.Log.Debug("WebSocket write failed", "error", err)
				return
			}
		}
	}
}

// pumpRequests forwards requests from read to pending, keeping only the
// newest one unclaimed. It returns when read fails or ctx ends.
func pumpRequests(ctx context.Context, read func(context.Context) (wsRequest, error), pending chan wsRequest) error {
	for {
		req, err := read(ctx)
		if err != nil {
			return err
		}
		select {
		case <-pending:
		default:
		}
		select {
		case pending <- req:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// serveWSRequest answers one request. If another request arrives during
// the delay it is pushed back onto pending and this one is abandoned.
func (s *Server) serveWSRequest(ctx context.Context, conn *websocket.Conn, req wsRequest, pending chan wsRequest) error {
	if err := wsjson.Write(ctx, conn, wsMessage{Type: wsTypeLoading}); err != nil {
		return err
	}

	if d := s.config.GenerationDelay; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next := <-pending:
			select {
			case pending <- next:
			default:
			}
			return nil
		case <-timer.C:
		}
	}

	c := palette.All
	if name := strings.TrimSpace(req.Category); name != "" {
		resolved, ok := s.gallery.Generator().Registry().Resolve(name)
		if !ok {
			return wsjson.Write(ctx, conn, wsMessage{Type: wsTypeError, Error: "unknown category: " + name})
		}
		c = resolved
	}

	resp, err := s.buildBatch(c, strings.TrimSpace(req.Search))
	if err != nil {
		return wsjson.Write(ctx, conn, wsMessage{Type: wsTypeError, Error: err.Error()})
	}
	palettesGeneratedTotal.WithLabelValues("ws").Add(float64(len(resp.Palettes)))
	if err := wsjson.Write(ctx, conn, wsMessage{Type: wsTypePalettes, PalettesResponse: &resp}); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
