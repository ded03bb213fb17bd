package lumen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// StyleTween animates up to 4 float64 fields of a material simultaneously.
// Create one via the convenience constructors (TweenFill, TweenSmoothness,
// TweenColor) and call Update(dt) each frame.
//
// There is no global animation manager; callers call Update themselves.
type StyleTween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *StyleTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *StyleTween) add(field *float64, from, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[g.count] = field
	*field = from
	g.count++
}

// TweenFill animates style.OutlineStart, the fill edge, from one intensity to
// another. Lower values make glyphs bolder.
func TweenFill(style *DistanceFieldVector, from, to float64, duration float32, fn ease.TweenFunc) *StyleTween {
	g := &StyleTween{}
	g.add(&style.OutlineStart, from, to, duration, fn)
	return g
}

// TweenSmoothness animates style.Smoothness.
func TweenSmoothness(style *DistanceFieldVector, from, to float64, duration float32, fn ease.TweenFunc) *StyleTween {
	g := &StyleTween{}
	g.add(&style.Smoothness, from, to, duration, fn)
	return g
}

// TweenColor animates all four components of c to the target color.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *StyleTween {
	g := &StyleTween{}
	g.add(&c.R, c.R, to.R, duration, fn)
	g.add(&c.G, c.G, to.G, duration, fn)
	g.add(&c.B, c.B, to.B, duration, fn)
	g.add(&c.A, c.A, to.A, duration, fn)
	return g
}
