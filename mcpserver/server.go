// Package mcpserver exposes link search and the document operations as
// MCP tools, so agents attached over stdio can drive the same dispatcher
// the panel uses.
package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/linkdock/linkdock/dispatch"
	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/intent"
	"github.com/linkdock/linkdock/session"
)

// FindLinksResult is the structured payload of the find_links tool.
type FindLinksResult struct {
	Results []finder.Result `json:"results" jsonschema_description:"Design links matching the query"`
}

// Server wraps the session table and finder behind an MCP tool surface.
type Server struct {
	finder     finder.Finder
	maxResults int
	sessions   *session.Manager
	mcpServer  *server.MCPServer
}

// NewServer registers the tool set. f may be nil, which turns find_links
// into an error result.
func NewServer(f finder.Finder, maxResults int, sessions *session.Manager, version string) *Server {
	s := &Server{
		finder:     f,
		maxResults: maxResults,
		sessions:   sessions,
		mcpServer:  server.NewMCPServer("linkdock", version),
	}
	s.registerTools()
	return s
}

// ServeStdio serves MCP on stdin/stdout and blocks until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	findTool := mcp.NewTool("find_links",
		mcp.WithDescription("Search for design file and component links matching a query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("What to search for")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (optional)")),
		mcp.WithOutputSchema[FindLinksResult](),
	)
	s.mcpServer.AddTool(findTool, mcp.NewStructuredToolHandler(s.handleFindLinks))

	copyTool := mcp.NewTool("copy_selection",
		mcp.WithDescription("Duplicate the layers currently selected in the design tool."),
		mcp.WithString("session", mcp.Description("Session ID (optional, defaults to the oldest connected session)")),
	)
	s.mcpServer.AddTool(copyTool, s.handleCopySelection)

	insertTool := mcp.NewTool("insert_placeholder",
		mcp.WithDescription("Insert a titled placeholder frame at the center of the viewport."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title shown on the placeholder")),
		mcp.WithString("url", mcp.Description("Link the placeholder stands in for (optional)")),
		mcp.WithString("session", mcp.Description("Session ID (optional)")),
	)
	s.mcpServer.AddTool(insertTool, s.handleInsertPlaceholder)

	openTool := mcp.NewTool("open_link",
		mcp.WithDescription("Open a link in the user's browser."),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL to open")),
		mcp.WithString("title", mcp.Description("Title for the confirmation notification (optional)")),
		mcp.WithString("session", mcp.Description("Session ID (optional)")),
	)
	s.mcpServer.AddTool(openTool, s.handleOpenLink)
}

func (s *Server) handleFindLinks(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FindLinksResult, error) {
	if s.finder == nil {
		return FindLinksResult{}, errors.New("no search backend configured")
	}

	query, _ := args["query"].(string)
	if query == "" {
		return FindLinksResult{}, errors.New("query is required")
	}
	limit := s.maxResults
	if n, ok := args["limit"].(float64); ok && n > 0 {
		limit = int(n)
	}

	results, err := s.finder.Find(ctx, query, limit)
	if err != nil {
		return FindLinksResult{}, fmt.Errorf("search failed: %w", err)
	}
	return FindLinksResult{Results: results}, nil
}

func (s *Server) handleCopySelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session"].(string)

	d, err := s.resolveDispatcher(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := intent.NewPreviewAction(intent.ActionCopy, "", "")
	return toolResult(d.Dispatch(ctx, msg, nil), "selection duplicated"), nil
}

func (s *Server) handleInsertPlaceholder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	title, _ := args["title"].(string)
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	url, _ := args["url"].(string)
	sessionID, _ := args["session"].(string)

	d, err := s.resolveDispatcher(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := intent.NewPreviewAction(intent.ActionInsert, url, title)
	return toolResult(d.Dispatch(ctx, msg, nil), "placeholder inserted"), nil
}

func (s *Server) handleOpenLink(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	url, _ := args["url"].(string)
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}
	title, _ := args["title"].(string)
	sessionID, _ := args["session"].(string)

	d, err := s.resolveDispatcher(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := intent.NewPreviewAction(intent.ActionGoto, url, title)
	return toolResult(d.Dispatch(ctx, msg, nil), "link opened"), nil
}

// resolveDispatcher finds the dispatcher for the named session, or for
// the oldest session with a design tool attached when id is empty.
func (s *Server) resolveDispatcher(id string) (*dispatch.Dispatcher, error) {
	var sess *session.Session
	var ok bool
	if id != "" {
		sess, ok = s.sessions.Get(id)
		if !ok {
			return nil, fmt.Errorf("no session %q", id)
		}
	} else {
		sess, ok = s.sessions.First()
		if !ok {
			return nil, errors.New("no session with a design tool attached")
		}
	}

	d, ok := sess.Dispatcher()
	if !ok {
		return nil, errors.New("no design tool attached to this session")
	}
	sess.Touch()
	return d, nil
}

// toolResult maps a dispatch outcome to a tool result. Failures already
// surfaced as an editor notification; the tool reports that they did.
func toolResult(outcome, done string) *mcp.CallToolResult {
	switch outcome {
	case "ok":
		return mcp.NewToolResultText(done)
	case "ignored":
		return mcp.NewToolResultError("action not recognized by this daemon")
	default:
		return mcp.NewToolResultError("the action failed; the editor shows the error notification")
	}
}
