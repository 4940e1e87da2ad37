package server

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func dialWS(t *testing.T, s *Server) (context.Context, *websocket.Conn) {
	t.Helper()
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("websocket.Dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return ctx, conn
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) wsMessage {
	t.Helper()
	var msg wsMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("wsjson.Read: %v", err)
	}
	return msg
}

func TestWS_LoadingThenPalettes(t *testing.T) {
	s := newTestServer(t, Config{GenerationDelay: 0})
	ctx, conn := dialWS(t, s)

	if err := wsjson.Write(ctx, conn, wsRequest{Category: "Sunset"}); err != nil {
		t.Fatal(err)
	}

	if msg := readMessage(t, ctx, conn); msg.Type != wsTypeLoading {
		t.Fatalf("first message type = %q, want %q", msg.Type, wsTypeLoading)
	}
	msg := readMessage(t, ctx, conn)
	if msg.Type != wsTypePalettes || msg.PalettesResponse == nil {
		t.Fatalf("second message = %+v, want palettes", msg)
	}
	if msg.Category != "Sunset" || len(msg.Palettes) != 24 || msg.Title != "Sunset Gradients" {
		t.Errorf("batch: category=%q len=%d title=%q", msg.Category, len(msg.Palettes), msg.Title)
	}
}

func TestWS_UnknownCategory(t *testing.T) {
	s := newTestServer(t, Config{GenerationDelay: 0})
	ctx, conn := dialWS(t, s)

	if err := wsjson.Write(ctx, conn, wsRequest{Category: "plaid"}); err != nil {
		t.Fatal(err)
	}
	readMessage(t, ctx, conn)
	msg := readMessage(t, ctx, conn)
	if msg.Type != wsTypeError || !strings.Contains(msg.Error, "plaid") {
		t.Errorf("message = %+v, want error naming the category", msg)
	}
}

func TestWS_NewerRequestSupersedes(t *testing.T) {
	s := newTestServer(t, Config{GenerationDelay: 200 * time.Millisecond})
	ctx, conn := dialWS(t, s)

	if err := wsjson.Write(ctx, conn, wsRequest{Category: "Neon"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, ctx, conn); msg.Type != wsTypeLoading {
		t.Fatalf("message type = %q, want loading", msg.Type)
	}
	if err := wsjson.Write(ctx, conn, wsRequest{Category: "Pastel"}); err != nil {
		t.Fatal(err)
	}

	// The Neon batch is abandoned; the next batch delivered is Pastel.
	for {
		msg := readMessage(t, ctx, conn)
		if msg.Type == wsTypeLoading {
			continue
		}
		if msg.Type != wsTypePalettes || msg.Category != "Pastel" {
			t.Fatalf("message = %+v, want Pastel palettes", msg)
		}
		return
	}
}

func TestPumpRequests_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	read := func(context.Context) (wsRequest, error) {
		return wsRequest{Category: "Neon"}, nil
	}
	// Nobody receives from pending, so the forward can only end via ctx.
	pending := make(chan wsRequest)

	done := make(chan error, 1)
	go func() { done <- pumpRequests(ctx, read, pending) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("pumpRequests() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pumpRequests did not return after cancel")
	}
}

func TestPumpRequests_KeepsNewest(t *testing.T) {
	reqs := []wsRequest{{Category: "Neon"}, {Category: "Ocean"}}
	errDone := errors.New("done")
	read := func(context.Context) (wsRequest, error) {
		if len(reqs) == 0 {
			return wsRequest{}, errDone
		}
		r := reqs[0]
		reqs = reqs[1:]
		return r, nil
	}
	pending := make(chan wsRequest, 1)

	if err := pumpRequests(context.Background(), read, pending); !errors.Is(err, errDone) {
		t.Fatalf("pumpRequests() error = %v", err)
	}
	if got := <-pending; got.Category != "Ocean" {
		t.Errorf("pending = %q, want Ocean", got.Category)
	}
}
