// Package tile provides the renderable payload of a single layer cell.
package tile

// Color is an RGBA tint with every channel in the [0, 1] range.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

var (
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Transparent = Color{}
)

// RGBA returns the color as the 4-wide array consumed by renderers.
func (c Color) RGBA() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// FromRGBA is the inverse of Color.RGBA.
func FromRGBA(v [4]float32) Color {
	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// Tile is implemented by any cell payload a layer can store.
//
// Visibility is a function of color only: a tile is hidden when its alpha is
// exactly zero. Hide returns a hidden copy and leaves the receiver untouched.
type Tile[T any] interface {
	// Index returns the sprite-sheet index of the tile.
	Index() int
	Color() Color
	Hidden() bool
	Hide() T
}

// Raw is the default tile: a sprite index and a tint.
type Raw struct {
	Sprite int
	Tint   Color
}

// Default returns the tile with sprite 0 and an opaque white tint.
func Default() Raw {
	return Raw{Sprite: 0, Tint: White}
}

func (t Raw) Index() int   { return t.Sprite }
func (t Raw) Color() Color { return t.Tint }
func (t Raw) Hidden() bool { return t.Tint.A == 0 }

func (t Raw) Hide() Raw {
	t.Tint.A = 0
	return t
}

// ToRaw copies the plain data of any tile into a Raw.
func ToRaw[T Tile[T]](t T) Raw {
	return Raw{Sprite: t.Index(), Tint: t.Color()}
}
