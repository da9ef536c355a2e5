package host

// Node describes a document node as reported by the design tool.
// Coordinates are in the parent's space; the shim reports whatever the
// editor holds, including negative and fractional values.
type Node struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Parent string  `json:"parent,omitempty"`
}

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Font identifies a font the editor must load before text can be set.
type Font struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// PaintType discriminates fill kinds. Values follow the editor's paint
// style names so the shim can pass them through unchanged.
type PaintType string

const (
	PaintSolid          PaintType = "SOLID"
	PaintGradientLinear PaintType = "GRADIENT_LINEAR"
)

// ColorStop is a gradient stop at Position in [0, 1].
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Paint is a single fill. Solid paints set Color; linear gradients set
// Stops ordered by position.
type Paint struct {
	Type  PaintType   `json:"type"`
	Color *Color      `json:"color,omitempty"`
	Stops []ColorStop `json:"gradientStops,omitempty"`
}

// Solid builds a solid paint.
func Solid(c Color) Paint {
	return Paint{Type: PaintSolid, Color: &c}
}

// LinearGradient builds a linear gradient paint from the given stops.
func LinearGradient(stops ...ColorStop) Paint {
	return Paint{Type: PaintGradientLinear, Stops: stops}
}
