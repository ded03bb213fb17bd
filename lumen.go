package lumen

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black, the default clear color.
var ColorBlack = Color{0, 0, 0, 1}

// Gray returns an opaque gray with all color channels set to v.
func Gray(v float64) Color {
	return Color{v, v, v, 1}
}

// ColorFromHex converts a 0xRRGGBB value to an opaque Color.
func ColorFromHex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// ColorFromHSV converts hue (degrees), saturation and value to an opaque Color.
func ColorFromHSV(hue, saturation, value float64) Color {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	sector := h / 60
	i := math.Floor(sector)
	f := sector - i
	p := value * (1 - saturation)
	q := value * (1 - saturation*f)
	t := value * (1 - saturation*(1-f))

	switch int(i) {
	case 0:
		return Color{value, t, p, 1}
	case 1:
		return Color{q, value, p, 1}
	case 2:
		return Color{p, value, t, 1}
	case 3:
		return Color{p, q, value, 1}
	case 4:
		return Color{t, p, value, 1}
	default:
		return Color{value, p, q, 1}
	}
}

// premultiplied returns the color components multiplied by alpha, as float32
// values ready for vertex attributes and shader uniforms.
func (c Color) premultiplied() [4]float32 {
	a := clamp01(c.A)
	return [4]float32{
		float32(clamp01(c.R) * a),
		float32(clamp01(c.G) * a),
		float32(clamp01(c.B) * a),
		float32(a),
	}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	p := c.premultiplied()
	return color.RGBA{
		R: uint8(p[0] * 255),
		G: uint8(p[1] * 255),
		B: uint8(p[2] * 255),
		A: uint8(p[3] * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in model units. X/Y is the minimum corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Max returns the maximum corner of the rectangle.
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.Width, r.Y + r.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other. An empty
// r (zero size at the origin) is treated as absent.
func (r Rect) Union(other Rect) Rect {
	if r == (Rect{}) {
		return other
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // premultiplied source-over (One, OneMinusSourceAlpha)
	BlendAdd                     // additive / lighter
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// MouseButton identifies a mouse button or a discrete wheel step.
type MouseButton uint8

const (
	MouseButtonLeft      MouseButton = iota // primary (left) mouse button
	MouseButtonRight                        // secondary (right) mouse button
	MouseButtonMiddle                       // middle mouse button (scroll wheel click)
	MouseButtonWheelUp                      // one wheel notch away from the user
	MouseButtonWheelDown                    // one wheel notch towards the user
)

// String returns the button name used in logs and test scripts.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonWheelUp:
		return "wheel-up"
	case MouseButtonWheelDown:
		return "wheel-down"
	default:
		return "unknown"
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// MouseEvent is a single pointer press delivered to an App. Wheel movement is
// delivered as presses of MouseButtonWheelUp / MouseButtonWheelDown, one per
// notch.
type MouseEvent struct {
	Button    MouseButton
	X, Y      float64 // window pixels
	Modifiers KeyModifiers

	accepted bool
}

// SetAccepted marks the event as handled.
func (e *MouseEvent) SetAccepted() {
	e.accepted = true
}

// Accepted reports whether a handler consumed the event.
func (e *MouseEvent) Accepted() bool {
	return e.accepted
}

// Alignment anchors laid-out text relative to the origin. The low nibble is
// the horizontal part, the high nibble the vertical part.
type Alignment uint8

const (
	alignLeft   Alignment = 0x01
	alignCenter Alignment = 0x02
	alignRight  Alignment = 0x03
	alignHMask  Alignment = 0x0f

	alignLine   Alignment = 0x10 // first baseline at the origin
	alignMiddle Alignment = 0x20
	alignTop    Alignment = 0x30
	alignVMask  Alignment = 0xf0
)

const (
	AlignLineLeft     = alignLine | alignLeft
	AlignLineCenter   = alignLine | alignCenter
	AlignLineRight    = alignLine | alignRight
	AlignMiddleLeft   = alignMiddle | alignLeft
	AlignMiddleCenter = alignMiddle | alignCenter
	AlignMiddleRight  = alignMiddle | alignRight
	AlignTopLeft      = alignTop | alignLeft
	AlignTopCenter    = alignTop | alignCenter
	AlignTopRight     = alignTop | alignRight
)
