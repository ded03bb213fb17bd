package lumen

import (
	"strconv"
	"strings"
)

const (
	scrollStepDegrees = 1
	scrollStepScale   = 1.1
)

// LabelController owns the rotation/scale of the greeting text and the
// status string describing it. Wheel-up zooms in and rotates
// counter-clockwise, wheel-down undoes one such step. Zoom is unbounded.
type LabelController struct {
	transform Transformation
	dirty     bool

	// OnChange, if set, is called synchronously with the new status text after
	// every transformation change.
	OnChange func(status string)
}

// NewLabelController creates a controller starting at the given
// transformation.
func NewLabelController(initial Transformation) *LabelController {
	return &LabelController{transform: initial, dirty: true}
}

// OnScrollUp rotates by +1° and scales by 1.1, applied on top of the current
// transformation.
func (c *LabelController) OnScrollUp() {
	c.apply(scrollStepDegrees, scrollStepScale)
}

// OnScrollDown rotates by -1° and scales by 1/1.1, the inverse of OnScrollUp.
func (c *LabelController) OnScrollDown() {
	c.apply(-scrollStepDegrees, 1/scrollStepScale)
}

func (c *LabelController) apply(deg int, scale float64) {
	c.transform = c.transform.PreMultiply(deg, scale)
	c.dirty = true
	if c.OnChange != nil {
		c.OnChange(c.StatusText())
	}
}

// HandleMouse dispatches wheel events to OnScrollUp/OnScrollDown and marks
// them accepted. Every other button is ignored. Reports whether the event
// changed the transformation.
func (c *LabelController) HandleMouse(e *MouseEvent) bool {
	switch e.Button {
	case MouseButtonWheelUp:
		c.OnScrollUp()
	case MouseButtonWheelDown:
		c.OnScrollDown()
	default:
		return false
	}
	e.SetAccepted()
	return true
}

// StatusText formats the current rotation and scale with two significant
// digits, e.g. "Rotation: -10°\nScale: 1".
func (c *LabelController) StatusText() string {
	var b strings.Builder
	b.WriteString("Rotation: ")
	b.WriteString(formatSignificant(float64(c.transform.Angle())))
	b.WriteString("°\nScale: ")
	b.WriteString(formatSignificant(c.transform.Scale))
	return b.String()
}

// formatSignificant renders v with two significant digits, switching to
// exponent notation for large or small magnitudes.
func formatSignificant(v float64) string {
	return strconv.FormatFloat(v, 'g', 2, 64)
}

// Transformation returns the current transformation.
func (c *LabelController) Transformation() Transformation {
	return c.transform
}

// Matrix returns the current transformation as a matrix.
func (c *LabelController) Matrix() Matrix3 {
	return c.transform.Matrix()
}

// Dirty reports whether the transformation changed since the last
// ClearDirty. A new controller starts dirty.
func (c *LabelController) Dirty() bool {
	return c.dirty
}

// ClearDirty resets the dirty flag.
func (c *LabelController) ClearDirty() {
	c.dirty = false
}
