// Package host defines the document surface a connected design editor
// exposes to the daemon. The production implementation bridges calls over
// a websocket to the plugin shim running inside the editor; tests use an
// in-memory fake.
package host

import "context"

// Host is the set of editor operations the daemon drives. Every call may
// fail: the editor can reject an operation, the shim can disconnect, or a
// call can time out. Implementations return plain errors and never panic.
type Host interface {
	// Selection returns the currently selected nodes in selection order.
	Selection(ctx context.Context) ([]Node, error)
	// SetSelection replaces the selection with the given node IDs.
	SetSelection(ctx context.Context, ids []string) error

	// CloneNode duplicates a node. The clone is inserted under the same
	// parent as the source and its initial position equals the source's.
	CloneNode(ctx context.Context, id string) (Node, error)
	// CreateFrame creates a detached frame node with editor defaults.
	CreateFrame(ctx context.Context) (Node, error)
	// CreateText creates a detached text node with editor defaults.
	CreateText(ctx context.Context) (Node, error)

	SetNodeName(ctx context.Context, id, name string) error
	MoveNode(ctx context.Context, id string, x, y float64) error
	ResizeNode(ctx context.Context, id string, width, height float64) error
	SetFills(ctx context.Context, id string, fills []Paint) error

	// LoadFont asks the editor to load a font. Text characters cannot be
	// set before the font is available; the call suspends until the editor
	// reports completion and may fail for unknown fonts.
	LoadFont(ctx context.Context, font Font) error
	SetCharacters(ctx context.Context, id, text string) error

	// AppendChild moves a node into a container.
	AppendChild(ctx context.Context, parentID, childID string) error
	// AppendToPage appends a node to the current page.
	AppendToPage(ctx context.Context, id string) error

	// ViewportCenter reports the canvas point at the center of the user's
	// viewport.
	ViewportCenter(ctx context.Context) (Point, error)
	// ScrollAndZoomIntoView scrolls and zooms the viewport to frame the
	// given nodes.
	ScrollAndZoomIntoView(ctx context.Context, ids []string) error

	// Notify shows a transient, non-blocking toast in the editor.
	Notify(ctx context.Context, message string) error
	// OpenURL opens a URL in the user's default browser, outside the
	// editor. The editor offers no in-document deep-link navigation.
	OpenURL(ctx context.Context, url string) error
}
