// Package hostbridge exposes a design-tool plugin shim, reached over a
// websocket, as a host.Host. Each method sends one command envelope and
// waits for the correlated reply.
package hostbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/linkdock/linkdock/host"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/metrics"
)

// ErrClosed is returned for calls made after the shim connection dropped.
var ErrClosed = errors.New("host connection closed")

// CallError is a failure reported by the shim. Message is the raw string
// off the wire and may be empty; callers that show it to the user supply
// their own fallback for that case.
type CallError struct {
	Op      string
	Message string
}

func (e *CallError) Error() string { return e.Message }

type callResult struct {
	result json.RawMessage
	err    error
}

// Bridge drives the plugin shim over one websocket connection. Safe for
// concurrent use; ReadLoop must be running for calls to complete.
type Bridge struct {
	conn    *websocket.Conn
	timeout time.Duration
	nextID  atomic.Int64

	mu       sync.Mutex
	pending  map[int64]chan callResult
	closeErr error
}

var _ host.Host = (*Bridge)(nil)

// New wraps an accepted shim connection. callTimeout bounds each command
// round trip; zero means calls wait as long as their context allows.
func New(conn *websocket.Conn, callTimeout time.Duration) *Bridge {
	return &Bridge{
		conn:    conn,
		timeout: callTimeout,
		pending: make(map[int64]chan callResult),
	}
}

// ReadLoop consumes reply envelopes until the connection drops, then fails
// every in-flight call with ErrClosed.
func (b *Bridge) ReadLoop(ctx context.Context) error {
	for {
		var resp response
		if err := wsjson.Read(ctx, b.conn, &resp); err != nil {
			b.shutdown(err)
			return err
		}
		b.settle(resp)
	}
}

func (b *Bridge) settle(resp response) {
	b.mu.Lock()
	ch, ok := b.pending[resp.ID]
	if ok {
		delete(b.pending, resp.ID)
	}
	b.mu.Unlock()

	if !ok {
		logger.Debug("reply for unknown call", "id", resp.ID)
		return
	}

	res := callResult{result: resp.Result}
	if !resp.OK {
		res.err = &CallError{Message: resp.Error}
	}
	// Buffered; never blocks.
	ch <- res
}

func (b *Bridge) shutdown(cause error) {
	b.mu.Lock()
	if b.closeErr == nil {
		b.closeErr = cause
	}
	orphaned := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, ch := range orphaned {
		ch <- callResult{err: ErrClosed}
	}
}

// Close tears the connection down and fails in-flight calls.
func (b *Bridge) Close() error {
	b.shutdown(ErrClosed)
	return b.conn.Close(websocket.StatusNormalClosure, "session closed")
}

// call performs one command round trip and decodes the reply into result
// when result is non-nil.
func (b *Bridge) call(ctx context.Context, op string, params, result any) error {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	id := b.nextID.Add(1)
	ch := make(chan callResult, 1)

	b.mu.Lock()
	if b.pending == nil {
		b.mu.Unlock()
		metrics.HostCall(op, metrics.OutcomeError)
		return ErrClosed
	}
	b.pending[id] = ch
	b.mu.Unlock()

	req := request{ID: id, Op: op, Params: params}
	if err := wsjson.Write(ctx, b.conn, req); err != nil {
		b.forget(id)
		metrics.HostCall(op, metrics.OutcomeError)
		return fmt.Errorf("failed to send %s: %w", op, err)
	}

	select {
	case res := <-ch:
		if res.err != nil {
			if ce, ok := res.err.(*CallError); ok {
				ce.Op = op
				logger.Debug("host call failed", "op", op, "err", ce.Message)
			}
			metrics.HostCall(op, metrics.OutcomeError)
			return res.err
		}
		if result != nil && len(res.result) > 0 {
			if err := json.Unmarshal(res.result, result); err != nil {
				metrics.HostCall(op, metrics.OutcomeError)
				return fmt.Errorf("failed to decode %s reply: %w", op, err)
			}
		}
		metrics.HostCall(op, metrics.OutcomeOK)
		return nil
	case <-ctx.Done():
		b.forget(id)
		metrics.HostCall(op, metrics.OutcomeError)
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

func (b *Bridge) forget(id int64) {
	b.mu.Lock()
	if b.pending != nil {
		delete(b.pending, id)
	}
	b.mu.Unlock()
}

func (b *Bridge) Selection(ctx context.Context) ([]host.Node, error) {
	var out nodesResult
	if err := b.call(ctx, opSelection, nil, &out); err != nil {
		return nil, err
	}
	return out.Nodes, nil
}

func (b *Bridge) SetSelection(ctx context.Context, ids []string) error {
	return b.call(ctx, opSetSelection, nodeIDsParams{IDs: ids}, nil)
}

func (b *Bridge) CloneNode(ctx context.Context, id string) (host.Node, error) {
	var out nodeResult
	if err := b.call(ctx, opCloneNode, nodeIDParams{ID: id}, &out); err != nil {
		return host.Node{}, err
	}
	return out.Node, nil
}

func (b *Bridge) CreateFrame(ctx context.Context) (host.Node, error) {
	var out nodeResult
	if err := b.call(ctx, opCreateFrame, nil, &out); err != nil {
		return host.Node{}, err
	}
	return out.Node, nil
}

func (b *Bridge) CreateText(ctx context.Context) (host.Node, error) {
	var out nodeResult
	if err := b.call(ctx, opCreateText, nil, &out); err != nil {
		return host.Node{}, err
	}
	return out.Node, nil
}

func (b *Bridge) SetNodeName(ctx context.Context, id, name string) error {
	return b.call(ctx, opSetNodeName, setNodeNameParams{ID: id, Name: name}, nil)
}

func (b *Bridge) MoveNode(ctx context.Context, id string, x, y float64) error {
	return b.call(ctx, opMoveNode, moveNodeParams{ID: id, X: x, Y: y}, nil)
}

func (b *Bridge) ResizeNode(ctx context.Context, id string, width, height float64) error {
	return b.call(ctx, opResizeNode, resizeNodeParams{ID: id, Width: width, Height: height}, nil)
}

func (b *Bridge) SetFills(ctx context.Context, id string, fills []host.Paint) error {
	return b.call(ctx, opSetFills, setFillsParams{ID: id, Fills: fills}, nil)
}

func (b *Bridge) LoadFont(ctx context.Context, font host.Font) error {
	return b.call(ctx, opLoadFont, loadFontParams{Family: font.Family, Style: font.Style}, nil)
}

func (b *Bridge) SetCharacters(ctx context.Context, id, characters string) error {
	return b.call(ctx, opSetCharacters, setCharactersParams{ID: id, Characters: characters}, nil)
}

func (b *Bridge) AppendChild(ctx context.Context, parentID, childID string) error {
	return b.call(ctx, opAppendChild, appendChildParams{ParentID: parentID, ChildID: childID}, nil)
}

func (b *Bridge) AppendToPage(ctx context.Context, id string) error {
	return b.call(ctx, opAppendToPage, nodeIDParams{ID: id}, nil)
}

func (b *Bridge) ViewportCenter(ctx context.Context) (host.Point, error) {
	var out pointResult
	if err := b.call(ctx, opViewportCenter, nil, &out); err != nil {
		return host.Point{}, err
	}
	return host.Point{X: out.X, Y: out.Y}, nil
}

func (b *Bridge) ScrollAndZoomIntoView(ctx context.Context, ids []string) error {
	return b.call(ctx, opScrollAndZoomIntoView, nodeIDsParams{IDs: ids}, nil)
}

func (b *Bridge) Notify(ctx context.Context, message string) error {
	return b.call(ctx, opNotify, notifyParams{Message: message}, nil)
}

func (b *Bridge) OpenURL(ctx context.Context, url string) error {
	return b.call(ctx, opOpenURL, openURLParams{URL: url}, nil)
}
