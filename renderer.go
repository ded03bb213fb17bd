package lumen

// Default styles of the text demo.
var (
	// DefaultGreetingStyle draws blue text with a light outline.
	DefaultGreetingStyle = DistanceFieldVector{
		Color:        ColorFromHSV(216, 0.85, 1),
		OutlineColor: Gray(0.95),
		OutlineStart: 0.45,
		OutlineEnd:   0.35,
		Smoothness:   0.025,
	}
	// DefaultLabelStyle adds opaque white onto the framebuffer. No outline.
	DefaultLabelStyle = DistanceFieldVector{
		Color:        ColorWhite,
		OutlineStart: 0.5,
		OutlineEnd:   1.0,
		Smoothness:   0.075,
		Blend:        BlendAdd,
	}
)

// FrameConfig wires a FrameRenderer to the objects it draws.
type FrameConfig struct {
	Controller *LabelController
	Greeting   *Mesh
	Label      *DynamicLabel
	Cache      *GlyphCache
	ClearColor Color
	// Width and Height are the initial viewport size.
	Width, Height int
}

// FrameRenderer draws the rotating greeting and the status label in its
// upper right corner.
type FrameRenderer struct {
	controller *LabelController
	greeting   *Mesh
	label      *DynamicLabel
	projection Matrix3

	ClearColor Color
	// GreetingStyle and LabelStyle are the materials of the two meshes. The
	// greeting's Smoothness is divided by the current scale at draw time.
	GreetingStyle DistanceFieldVector
	LabelStyle    DistanceFieldVector
}

// NewFrameRenderer creates a renderer with the default styles.
func NewFrameRenderer(cfg FrameConfig) *FrameRenderer {
	r := &FrameRenderer{
		controller:    cfg.Controller,
		greeting:      cfg.Greeting,
		label:         cfg.Label,
		projection:    Identity(),
		ClearColor:    cfg.ClearColor,
		GreetingStyle: DefaultGreetingStyle,
		LabelStyle:    DefaultLabelStyle,
	}
	r.GreetingStyle.Cache = cfg.Cache
	r.LabelStyle.Cache = cfg.Cache
	if cfg.Width > 0 && cfg.Height > 0 {
		r.OnViewportResize(cfg.Width, cfg.Height)
	}
	return r
}

// OnViewportResize sets the projection to a Y scale equal to the aspect ratio
// width/height, so model units are square on screen. height must not be 0.
func (r *FrameRenderer) OnViewportResize(width, height int) {
	r.projection = Scaling(1, float64(width)/float64(height))
}

// Projection returns the current projection matrix.
func (r *FrameRenderer) Projection() Matrix3 {
	return r.projection
}

// labelMatrix keeps the label upright and unscaled, anchored at the upper
// right corner of the viewport.
func (r *FrameRenderer) labelMatrix() Matrix3 {
	d := r.projection.RotationScaling().Diagonal()
	return r.projection.Mul(Translation(1/d.X, 1/d.Y))
}

// RenderFrame clears s and draws the greeting and the status label.
func (r *FrameRenderer) RenderFrame(s Surface) {
	s.Clear(r.ClearColor)

	t := r.controller.Transformation()
	greeting := r.GreetingStyle
	greeting.Smoothness = r.GreetingStyle.Smoothness / t.Scale
	s.Draw(r.greeting, r.projection.Mul(t.Matrix()), &greeting)

	if r.label != nil {
		s.Draw(r.label.Mesh(), r.labelMatrix(), &r.LabelStyle)
	}
}
