// Package dispatch routes panel intents to handlers that drive the
// connected editor. The dispatcher is stateless: every intent is handled
// on its own against the live document, with no memory of earlier ones.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/host"
	"github.com/linkdock/linkdock/intent"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/metrics"
)

const defaultMaxResults = 3

// Reply delivers finder results back to the surface that sent the
// intent. A nil Reply drops results.
type Reply func(ctx context.Context, results []finder.Result) error

// Dispatcher handles one intent at a time against an injected editor
// surface. A nil finder turns user messages into a logged no-op, keeping
// search an optional extension point.
type Dispatcher struct {
	host       host.Host
	finder     finder.Finder
	maxResults int
}

// New creates a dispatcher. finder may be nil.
func New(h host.Host, f finder.Finder, maxResults int) *Dispatcher {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Dispatcher{host: h, finder: f, maxResults: maxResults}
}

// Dispatch handles a single intent. It never returns an error: handler
// failures surface as editor toasts and the dispatcher is immediately
// ready for the next message. The returned label reports how the intent
// ended, one of "ok", "error" or "ignored".
func (d *Dispatcher) Dispatch(ctx context.Context, msg intent.Message, reply Reply) string {
	switch m := msg.(type) {
	case *intent.UserMessage:
		outcome := d.guard(ctx, "searching links", func() error {
			return d.search(ctx, m, reply)
		})
		metrics.IntentDispatched(string(intent.TypeUserMessage), "", outcome)
		return outcome

	case *intent.PreviewAction:
		return d.dispatchPreview(ctx, m)

	case *intent.Unknown:
		logger.Warn("ignoring message with unrecognized type", "type", string(m.Type))
		metrics.IntentDispatched(string(m.Type), "", metrics.OutcomeIgnored)
		return metrics.OutcomeIgnored

	default:
		logger.Warn("ignoring unhandled intent", "intent", fmt.Sprintf("%T", msg))
		metrics.IntentDispatched("unhandled", "", metrics.OutcomeIgnored)
		return metrics.OutcomeIgnored
	}
}

func (d *Dispatcher) dispatchPreview(ctx context.Context, m *intent.PreviewAction) string {
	var outcome string
	switch m.Action {
	case intent.ActionCopy:
		outcome = d.guard(ctx, "copying component", func() error {
			return d.copySelection(ctx, m)
		})
	case intent.ActionInsert:
		outcome = d.guard(ctx, "inserting component", func() error {
			return d.insertPlaceholder(ctx, m)
		})
	case intent.ActionGoto:
		outcome = d.guard(ctx, "opening link", func() error {
			return d.openLink(ctx, m)
		})
	default:
		// Panels newer than the daemon may send actions we do not know.
		logger.Warn("ignoring preview action with unrecognized action",
			"action", string(m.Action), "url", m.URL)
		outcome = metrics.OutcomeIgnored
	}
	metrics.IntentDispatched(string(intent.TypePreviewAction), string(m.Action), outcome)
	return outcome
}

func (d *Dispatcher) search(ctx context.Context, m *intent.UserMessage, reply Reply) error {
	if d.finder == nil {
		logger.Info("user message received, no finder configured", "text", truncate(m.Text, 50))
		return nil
	}

	results, err := d.finder.Find(ctx, m.Text, d.maxResults)
	if err != nil {
		return err
	}
	logger.Debug("search finished", "query", truncate(m.Text, 50), "results", len(results))

	if reply == nil {
		return nil
	}
	return reply(ctx, results)
}

// guard runs fn, converting any failure, panics included, into a single
// error toast in the editor. Whatever a handler does, the dispatcher is
// ready for the next message when guard returns.
func (d *Dispatcher) guard(ctx context.Context, doing string, fn func() error) (outcome string) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panic", "doing", doing, "panic", r)
				err = fmt.Errorf("%v", r)
			}
		}()
		err = fn()
	}()

	if err == nil {
		return metrics.OutcomeOK
	}

	logger.Error("intent handler failed", "doing", doing, "err", err)
	if nerr := d.host.Notify(ctx, "Error "+doing+": "+errMessage(err)); nerr != nil {
		logger.Error("failed to show error notification", "doing", doing, "err", nerr)
	}
	return metrics.OutcomeError
}

// errMessage renders err for an end-user toast. Errors carrying no
// message fall back to a generic one.
func errMessage(err error) string {
	if err == nil {
		return "Unknown error"
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Unknown error"
	}
	return msg
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
