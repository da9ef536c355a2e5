package panel

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/hostbridge"
	"github.com/linkdock/linkdock/intent"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/panelmd"
	"github.com/linkdock/linkdock/session"
)

// Panel surface dimensions, fixed by the plugin manifest.
const (
	panelWidth  = 400
	panelHeight = 600
)

// bootstrapMessage is the first frame on a panel socket. The panel sizes
// itself from it and adopts the editor theme colors.
type bootstrapMessage struct {
	Type        string `json:"type"`
	Session     string `json:"session"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ThemeColors bool   `json:"themeColors"`
}

// resultsMessage pushes search results to the panel.
type resultsMessage struct {
	Type    string       `json:"type"`
	Results []resultCard `json:"results"`
}

// resultCard is one rendered link preview. Summary holds the restricted
// HTML subset the panel renders.
type resultCard struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Kind    string `json:"kind,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// errorMessage reports a rejected frame back to the panel.
type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func renderCards(results []finder.Result) []resultCard {
	cards := make([]resultCard, 0, len(results))
	for _, res := range results {
		cards = append(cards, resultCard{
			Title:   res.Title,
			URL:     res.URL,
			Kind:    res.Kind,
			Summary: panelmd.Render(res.Summary),
		})
	}
	return cards
}

// handlePanelSocket serves one panel connection: bootstrap frame first,
// then a reader loop feeding intents to the session's dispatcher one at a
// time. Replies and error reports share the loop goroutine, so the socket
// has a single writer.
func (s *Server) handlePanelSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.Warn("panel websocket accept failed", "err", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(maxIntentBytes)

	sess := s.sessions.Ensure(id)
	sess.AttachPanel()
	defer sess.DetachPanel()
	logger.Info("panel attached", "session", id)

	ctx := r.Context()
	bootstrap := bootstrapMessage{
		Type:        "bootstrap",
		Session:     id,
		Width:       panelWidth,
		Height:      panelHeight,
		ThemeColors: true,
	}
	if err := wsjson.Write(ctx, conn, bootstrap); err != nil {
		logger.Warn("bootstrap write failed", "session", id, "err", err)
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			logger.Info("panel detached", "session", id)
			return
		}
		s.handleIntent(ctx, sess, conn, data)
	}
}

// handleIntent parses and dispatches one frame. Malformed frames and
// frames arriving before a shim connects are reported back; neither ends
// the connection.
func (s *Server) handleIntent(ctx context.Context, sess *session.Session, conn *websocket.Conn, data []byte) {
	msg, err := intent.Parse(data)
	if err != nil {
		logger.Warn("discarding malformed intent", "session", sess.ID, "err", err)
		s.reportError(ctx, conn, "message not understood: "+err.Error())
		return
	}

	d, ok := sess.Dispatcher()
	if !ok {
		logger.Info("intent dropped, no host attached", "session", sess.ID)
		s.reportError(ctx, conn, "no design tool attached to this session")
		return
	}

	sess.Touch()
	d.Dispatch(ctx, msg, func(ctx context.Context, results []finder.Result) error {
		return wsjson.Write(ctx, conn, resultsMessage{
			Type:    "results",
			Results: renderCards(results),
		})
	})
}

func (s *Server) reportError(ctx context.Context, conn *websocket.Conn, message string) {
	err := wsjson.Write(ctx, conn, errorMessage{Type: "error", Message: message})
	if err != nil {
		logger.Debug("error report write failed", "err", err)
	}
}

// handleHostSocket serves one shim connection, exposing it to the session
// as its host document until the socket drops.
func (s *Server) handleHostSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.Warn("host websocket accept failed", "err", err)
		return
	}

	sess := s.sessions.Ensure(id)
	bridge := hostbridge.New(conn, s.callTimeout)
	sess.AttachHost(bridge, bridge.Close)
	logger.Info("host shim attached", "session", id)

	err = bridge.ReadLoop(r.Context())
	sess.DetachHost()
	logger.Info("host shim detached", "session", id, "err", err)
}
