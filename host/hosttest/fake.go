// Package hosttest provides an in-memory Host implementation for tests
// and for running the daemon without an editor attached.
package hosttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/linkdock/linkdock/host"
)

// PageID is the container ID of the fake's current page.
const PageID = "0:1"

// Fake is an in-memory editor document. The zero value is not usable;
// construct with New. All methods are safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	nextID    int
	nodes     map[string]*host.Node
	children  map[string][]string
	selection []string
	center    host.Point

	fills       map[string][]host.Paint
	chars       map[string]string
	loadedFonts []host.Font

	notifications []string
	openedURLs    []string
	zoomedTo      [][]string
	mutations     int

	failures map[string]error
}

// New returns an empty fake document with the viewport centered at the
// origin.
func New() *Fake {
	return &Fake{
		nodes:    make(map[string]*host.Node),
		children: make(map[string][]string),
		fills:    make(map[string][]host.Paint),
		chars:    make(map[string]string),
		failures: make(map[string]error),
	}
}

// FailNext makes the next call to the named Host method return err.
// The failure fires once and clears.
func (f *Fake) FailNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = err
}

func (f *Fake) takeFailure(op string) error {
	if err, ok := f.failures[op]; ok {
		delete(f.failures, op)
		return err
	}
	return nil
}

// AddNode seeds a node onto the current page and returns it.
func (f *Fake) AddNode(name string, x, y, w, h float64) host.Node {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.newNode(name, x, y, w, h)
	n.Parent = PageID
	f.children[PageID] = append(f.children[PageID], n.ID)
	return *n
}

func (f *Fake) newNode(name string, x, y, w, h float64) *host.Node {
	f.nextID++
	n := &host.Node{
		ID:     fmt.Sprintf("1:%d", f.nextID),
		Name:   name,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
	}
	f.nodes[n.ID] = n
	return n
}

// Select seeds the selection.
func (f *Fake) Select(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selection = append([]string(nil), ids...)
}

// SetViewportCenter seeds the viewport center.
func (f *Fake) SetViewportCenter(x, y float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.center = host.Point{X: x, Y: y}
}

// Node returns a node by ID for assertions.
func (f *Fake) Node(id string) (host.Node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.nodes[id]
	if !ok {
		return host.Node{}, false
	}
	return *n, true
}

// PageNodes returns the IDs of nodes on the current page, in order.
func (f *Fake) PageNodes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.children[PageID]...)
}

// ChildrenOf returns the child IDs of a container, in order.
func (f *Fake) ChildrenOf(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.children[id]...)
}

// SelectedIDs returns the current selection IDs.
func (f *Fake) SelectedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.selection...)
}

// CharactersOf returns the text content of a text node.
func (f *Fake) CharactersOf(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chars[id]
}

// FillsOf returns the fills applied to a node.
func (f *Fake) FillsOf(id string) []host.Paint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]host.Paint(nil), f.fills[id]...)
}

// FontsLoaded returns every font load request, in order.
func (f *Fake) FontsLoaded() []host.Font {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]host.Font(nil), f.loadedFonts...)
}

// Notifications returns every toast shown, in order.
func (f *Fake) Notifications() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.notifications...)
}

// OpenedURLs returns every external URL opened, in order.
func (f *Fake) OpenedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.openedURLs...)
}

// ZoomedTo returns the node sets the viewport was framed onto, in order.
func (f *Fake) ZoomedTo() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.zoomedTo))
	for i, ids := range f.zoomedTo {
		out[i] = append([]string(nil), ids...)
	}
	return out
}

// Mutations returns how many document-mutating calls have been made.
func (f *Fake) Mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

// Selection implements host.Host.
func (f *Fake) Selection(ctx context.Context) ([]host.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("Selection"); err != nil {
		return nil, err
	}
	out := make([]host.Node, 0, len(f.selection))
	for _, id := range f.selection {
		if n, ok := f.nodes[id]; ok {
			out = append(out, *n)
		}
	}
	return out, nil
}

// SetSelection implements host.Host.
func (f *Fake) SetSelection(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("SetSelection"); err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := f.nodes[id]; !ok {
			return fmt.Errorf("node %s does not exist", id)
		}
	}
	f.selection = append([]string(nil), ids...)
	f.mutations++
	return nil
}

// CloneNode implements host.Host.
func (f *Fake) CloneNode(ctx context.Context, id string) (host.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CloneNode"); err != nil {
		return host.Node{}, err
	}
	src, ok := f.nodes[id]
	if !ok {
		return host.Node{}, fmt.Errorf("node %s does not exist", id)
	}

	f.nextID++
	clone := *src
	clone.ID = fmt.Sprintf("1:%d", f.nextID)
	f.nodes[clone.ID] = &clone
	if clone.Parent != "" {
		f.children[clone.Parent] = append(f.children[clone.Parent], clone.ID)
	}
	f.mutations++
	return clone, nil
}

// CreateFrame implements host.Host. The frame starts detached with the
// editor's defaults.
func (f *Fake) CreateFrame(ctx context.Context) (host.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateFrame"); err != nil {
		return host.Node{}, err
	}
	n := f.newNode("Frame", 0, 0, 100, 100)
	f.mutations++
	return *n, nil
}

// CreateText implements host.Host. The text node starts detached and
// empty.
func (f *Fake) CreateText(ctx context.Context) (host.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateText"); err != nil {
		return host.Node{}, err
	}
	n := f.newNode("Text", 0, 0, 0, 0)
	f.mutations++
	return *n, nil
}

// SetNodeName implements host.Host.
func (f *Fake) SetNodeName(ctx context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("SetNodeName"); err != nil {
		return err
	}
	n, ok := f.nodes[id]
	if !ok {
		return fmt.Errorf("node %s does not exist", id)
	}
	n.Name = name
	f.mutations++
	return nil
}

// MoveNode implements host.Host.
func (f *Fake) MoveNode(ctx context.Context, id string, x, y float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("MoveNode"); err != nil {
		return err
	}
	n, ok := f.nodes[id]
	if !ok {
		return fmt.Errorf("node %s does not exist", id)
	}
	n.X, n.Y = x, y
	f.mutations++
	return nil
}

// ResizeNode implements host.Host.
func (f *Fake) ResizeNode(ctx context.Context, id string, width, height float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("ResizeNode"); err != nil {
		return err
	}
	n, ok := f.nodes[id]
	if !ok {
		return fmt.Errorf("node %s does not exist", id)
	}
	n.Width, n.Height = width, height
	f.mutations++
	return nil
}

// SetFills implements host.Host.
func (f *Fake) SetFills(ctx context.Context, id string, fills []host.Paint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("SetFills"); err != nil {
		return err
	}
	if _, ok := f.nodes[id]; !ok {
		return fmt.Errorf("node %s does not exist", id)
	}
	f.fills[id] = append([]host.Paint(nil), fills...)
	f.mutations++
	return nil
}

// LoadFont implements host.Host.
func (f *Fake) LoadFont(ctx context.Context, font host.Font) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("LoadFont"); err != nil {
		return err
	}
	f.loadedFonts = append(f.loadedFonts, font)
	return nil
}

// SetCharacters implements host.Host. Fails unless a font has been
// loaded first, mirroring the editor's requirement.
func (f *Fake) SetCharacters(ctx context.Context, id, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("SetCharacters"); err != nil {
		return err
	}
	if _, ok := f.nodes[id]; !ok {
		return fmt.Errorf("node %s does not exist", id)
	}
	if len(f.loadedFonts) == 0 {
		return fmt.Errorf("cannot set characters before loading a font")
	}
	f.chars[id] = text
	f.mutations++
	return nil
}

// AppendChild implements host.Host.
func (f *Fake) AppendChild(ctx context.Context, parentID, childID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("AppendChild"); err != nil {
		return err
	}
	if parentID != PageID {
		if _, ok := f.nodes[parentID]; !ok {
			return fmt.Errorf("node %s does not exist", parentID)
		}
	}
	return f.reparentLocked(parentID, childID)
}

// AppendToPage implements host.Host.
func (f *Fake) AppendToPage(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("AppendToPage"); err != nil {
		return err
	}
	return f.reparentLocked(PageID, id)
}

// reparentLocked detaches childID from its current parent and appends it
// to parentID's children. Must be called with mu held.
func (f *Fake) reparentLocked(parentID, childID string) error {
	child, ok := f.nodes[childID]
	if !ok {
		return fmt.Errorf("node %s does not exist", childID)
	}
	if child.Parent != "" {
		old := f.children[child.Parent]
		for i, id := range old {
			if id == childID {
				f.children[child.Parent] = append(old[:i:i], old[i+1:]...)
				break
			}
		}
	}
	child.Parent = parentID
	f.children[parentID] = append(f.children[parentID], childID)
	f.mutations++
	return nil
}

// ViewportCenter implements host.Host.
func (f *Fake) ViewportCenter(ctx context.Context) (host.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("ViewportCenter"); err != nil {
		return host.Point{}, err
	}
	return f.center, nil
}

// ScrollAndZoomIntoView implements host.Host.
func (f *Fake) ScrollAndZoomIntoView(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("ScrollAndZoomIntoView"); err != nil {
		return err
	}
	f.zoomedTo = append(f.zoomedTo, append([]string(nil), ids...))
	return nil
}

// Notify implements host.Host.
func (f *Fake) Notify(ctx context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("Notify"); err != nil {
		return err
	}
	f.notifications = append(f.notifications, message)
	return nil
}

// OpenURL implements host.Host.
func (f *Fake) OpenURL(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("OpenURL"); err != nil {
		return err
	}
	f.openedURLs = append(f.openedURLs, url)
	return nil
}
