package hostbridge

import (
	"encoding/json"

	"github.com/linkdock/linkdock/host"
)

// Shim protocol operations. Names match the plugin-side command table.
const (
	opSelection             = "selection"
	opSetSelection          = "setSelection"
	opCloneNode             = "cloneNode"
	opCreateFrame           = "createFrame"
	opCreateText            = "createText"
	opSetNodeName           = "setNodeName"
	opMoveNode              = "moveNode"
	opResizeNode            = "resizeNode"
	opSetFills              = "setFills"
	opLoadFont              = "loadFont"
	opSetCharacters         = "setCharacters"
	opAppendChild           = "appendChild"
	opAppendToPage          = "appendToPage"
	opViewportCenter        = "viewportCenter"
	opScrollAndZoomIntoView = "scrollAndZoomIntoView"
	opNotify                = "notify"
	opOpenURL               = "openUrl"
)

// request is a daemon-to-shim command envelope.
type request struct {
	ID     int64  `json:"id"`
	Op     string `json:"op"`
	Params any    `json:"params,omitempty"`
}

// response is a shim-to-daemon reply envelope. Error carries the shim's
// failure message when OK is false and may be empty.
type response struct {
	ID     int64           `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type nodeIDParams struct {
	ID string `json:"id"`
}

type nodeIDsParams struct {
	IDs []string `json:"ids"`
}

type setNodeNameParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type moveNodeParams struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type resizeNodeParams struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type setFillsParams struct {
	ID    string       `json:"id"`
	Fills []host.Paint `json:"fills"`
}

type loadFontParams struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

type setCharactersParams struct {
	ID         string `json:"id"`
	Characters string `json:"characters"`
}

type appendChildParams struct {
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId"`
}

type notifyParams struct {
	Message string `json:"message"`
}

type openURLParams struct {
	URL string `json:"url"`
}

type nodeResult struct {
	Node host.Node `json:"node"`
}

type nodesResult struct {
	Nodes []host.Node `json:"nodes"`
}

type pointResult struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
