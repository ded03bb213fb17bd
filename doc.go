// Package lumen runs small interactive graphics demos on [Ebitengine]:
// distance-field text rendered from a glyph cache, and plain and textured
// triangles.
//
// # Quick start
//
// Implement [App] and hand it to [Run], which creates the window and event
// loop:
//
//	type demo struct{ mesh *lumen.Mesh }
//
//	func (d *demo) ViewportEvent(w, h int)              {}
//	func (d *demo) MousePressEvent(e *lumen.MouseEvent) {}
//	func (d *demo) DrawEvent(s lumen.Surface) {
//		s.Clear(lumen.ColorBlack)
//		s.Draw(d.mesh, lumen.Identity(), lumen.VertexColor{})
//	}
//
//	err := lumen.Run(&demo{mesh: m}, lumen.RunConfig{Title: "Triangle"})
//
// Drawing happens in normalized device coordinates: both axes span [-1, 1]
// and Y points up.
//
// # Fonts and text
//
// Fonts are plugins owned by a [PluginManager]. [NewFontManager] registers
// "TrueTypeFont" and "BitmapFont":
//
//	fonts := lumen.NewFontManager()
//	font, err := fonts.LoadAndInstantiate("TrueTypeFont")
//	err = font.OpenData([]lumen.FileData{{Name: "Go.ttf", Data: ttf}}, 32)
//	cache, err := font.CreateGlyphCache()
//	mesh, bounds, err := lumen.RenderText(font, cache, 0.12, "Hello", lumen.AlignMiddleCenter)
//
// Text meshes are drawn with a [DistanceFieldVector] material referencing
// the same cache. [DynamicLabel] re-lays out its mesh on every SetText.
//
// # Interactive label
//
// [LabelController] holds a rotation and uniform scale driven by wheel
// events and formats them as a status line. [FrameRenderer] draws the
// transformed greeting and the upright status label.
//
// [Ebitengine]: https://ebitengine.org
package lumen
