package hostbridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/tidwall/sjson"

	"github.com/linkdock/linkdock/host"
)

// newTestBridge starts an httptest server running shim as the plugin side
// of the protocol and returns a bridge dialed into it.
func newTestBridge(t *testing.T, timeout time.Duration, shim func(ctx context.Context, conn *websocket.Conn)) *Bridge {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		shim(r.Context(), conn)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.Dial(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	b := New(conn, timeout)
	go b.ReadLoop(context.Background())
	t.Cleanup(func() { b.Close() })
	return b
}

// answerWith replies to every command using fixture(req); an empty string
// means stay silent.
func answerWith(t *testing.T, fixture func(req request) string) func(context.Context, *websocket.Conn) {
	return func(ctx context.Context, conn *websocket.Conn) {
		for {
			var req request
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				return
			}
			raw := fixture(req)
			if raw == "" {
				continue
			}
			var resp response
			if err := json.Unmarshal([]byte(raw), &resp); err != nil {
				t.Errorf("bad reply fixture: %v", err)
				return
			}
			if err := wsjson.Write(ctx, conn, resp); err != nil {
				return
			}
		}
	}
}

const selectionReply = `{"id":0,"ok":true,"result":{"nodes":[{"id":"7:1","name":"Login Screen","x":12.5,"y":-40,"width":375,"height":812}]}}`

func TestSelectionRoundTrip(t *testing.T) {
	var gotOp string
	b := newTestBridge(t, time.Second, answerWith(t, func(req request) string {
		gotOp = req.Op
		raw, err := sjson.Set(selectionReply, "id", req.ID)
		if err != nil {
			t.Fatalf("sjson.Set failed: %v", err)
		}
		return raw
	}))

	nodes, err := b.Selection(context.Background())
	if err != nil {
		t.Fatalf("Selection() error = %v", err)
	}
	if gotOp != "selection" {
		t.Errorf("op on wire = %q, want %q", gotOp, "selection")
	}
	if len(nodes) != 1 {
		t.Fatalf("Selection() returned %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.ID != "7:1" || n.Name != "Login Screen" {
		t.Errorf("node = %+v", n)
	}
	if n.X != 12.5 || n.Y != -40 {
		t.Errorf("node position = (%v, %v), want (12.5, -40)", n.X, n.Y)
	}
}

func TestMoveNodeParamsOnWire(t *testing.T) {
	var got map[string]any
	b := newTestBridge(t, time.Second, answerWith(t, func(req request) string {
		got, _ = req.Params.(map[string]any)
		raw, _ := sjson.Set(`{"id":0,"ok":true}`, "id", req.ID)
		return raw
	}))

	if err := b.MoveNode(context.Background(), "3:9", -189.5, 120); err != nil {
		t.Fatalf("MoveNode() error = %v", err)
	}
	if got["id"] != "3:9" {
		t.Errorf("params.id = %v, want %q", got["id"], "3:9")
	}
	if got["x"] != -189.5 || got["y"] != float64(120) {
		t.Errorf("params position = (%v, %v), want (-189.5, 120)", got["x"], got["y"])
	}
}

func TestOutOfOrderRepliesCorrelate(t *testing.T) {
	// The shim holds both commands, then answers newest first.
	shim := func(ctx context.Context, conn *websocket.Conn) {
		var reqs []request
		for len(reqs) < 2 {
			var req request
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				return
			}
			reqs = append(reqs, req)
		}
		for i := len(reqs) - 1; i >= 0; i-- {
			req := reqs[i]
			var raw string
			switch req.Op {
			case "viewportCenter":
				raw, _ = sjson.Set(`{"id":0,"ok":true,"result":{"x":111,"y":222}}`, "id", req.ID)
			case "selection":
				raw, _ = sjson.Set(selectionReply, "id", req.ID)
			default:
				t.Errorf("unexpected op %q", req.Op)
				return
			}
			var resp response
			json.Unmarshal([]byte(raw), &resp)
			if err := wsjson.Write(ctx, conn, resp); err != nil {
				return
			}
		}
	}
	b := newTestBridge(t, 5*time.Second, shim)

	var wg sync.WaitGroup
	var center struct {
		x, y float64
		err  error
	}
	var sel struct {
		count int
		err   error
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := b.ViewportCenter(context.Background())
		center.x, center.y, center.err = p.X, p.Y, err
	}()
	go func() {
		defer wg.Done()
		nodes, err := b.Selection(context.Background())
		sel.count, sel.err = len(nodes), err
	}()
	wg.Wait()

	if center.err != nil {
		t.Fatalf("ViewportCenter() error = %v", center.err)
	}
	if center.x != 111 || center.y != 222 {
		t.Errorf("ViewportCenter() = (%v, %v), want (111, 222)", center.x, center.y)
	}
	if sel.err != nil {
		t.Fatalf("Selection() error = %v", sel.err)
	}
	if sel.count != 1 {
		t.Errorf("Selection() returned %d nodes, want 1", sel.count)
	}
}

func TestShimFailureBecomesCallError(t *testing.T) {
	b := newTestBridge(t, time.Second, answerWith(t, func(req request) string {
		raw, _ := sjson.Set(`{"id":0,"ok":false,"error":"font not found"}`, "id", req.ID)
		return raw
	}))

	err := b.LoadFont(context.Background(), host.Font{Family: "Inter", Style: "Regular"})
	if err == nil {
		t.Fatal("LoadFont() succeeded, want error")
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want *CallError", err)
	}
	if ce.Op != "loadFont" {
		t.Errorf("CallError.Op = %q, want %q", ce.Op, "loadFont")
	}
	if ce.Message != "font not found" {
		t.Errorf("CallError.Message = %q, want %q", ce.Message, "font not found")
	}
	if err.Error() != "font not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "font not found")
	}
}

func TestShimFailureWithoutMessage(t *testing.T) {
	// The shim is allowed to fail without saying why; the raw message
	// stays empty and the dispatcher supplies its fallback wording.
	b := newTestBridge(t, time.Second, answerWith(t, func(req request) string {
		raw, _ := sjson.Set(`{"id":0,"ok":false}`, "id", req.ID)
		return raw
	}))

	err := b.Notify(context.Background(), "hello")
	if err == nil {
		t.Fatal("Notify() succeeded, want error")
	}
	if err.Error() != "" {
		t.Errorf("Error() = %q, want empty", err.Error())
	}
}

func TestCallTimeout(t *testing.T) {
	b := newTestBridge(t, 50*time.Millisecond, answerWith(t, func(req request) string {
		return "" // never answer
	}))

	err := b.Notify(context.Background(), "hello")
	if err == nil {
		t.Fatal("Notify() succeeded, want timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestConnectionDropFailsInFlightCalls(t *testing.T) {
	b := newTestBridge(t, 5*time.Second, func(ctx context.Context, conn *websocket.Conn) {
		var req request
		wsjson.Read(ctx, conn, &req)
		// Drop the connection without answering.
	})

	err := b.Notify(context.Background(), "hello")
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("in-flight error = %v, want ErrClosed", err)
	}

	// Later calls fail fast.
	if err := b.Notify(context.Background(), "again"); !errors.Is(err, ErrClosed) {
		t.Errorf("post-close error = %v, want ErrClosed", err)
	}
}

func TestUnknownReplyIDIsIgnored(t *testing.T) {
	b := newTestBridge(t, time.Second, answerWith(t, func(req request) string {
		// A stale reply first, then the real one.
		return `{"id":99999,"ok":true}`
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := b.Notify(ctx, "hello")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded (stale reply must not settle the call)", err)
	}
}
