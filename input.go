package lumen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// buttonMap pairs ebiten mouse buttons with lumen buttons.
var buttonMap = [...]struct {
	ebiten ebiten.MouseButton
	button MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// inputState turns polled ebiten input into MouseEvents.
type inputState struct {
	// wheel accumulates fractional wheel deltas (trackpads) until a whole
	// notch has been scrolled.
	wheel    float64
	touchBuf []ebiten.TouchID
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// poll appends this tick's presses and wheel notches to events.
func (in *inputState) poll(events []MouseEvent) []MouseEvent {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	mods := readModifiers()

	for _, b := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			events = append(events, MouseEvent{Button: b.button, X: x, Y: y, Modifiers: mods})
		}
	}

	// Touches act as left clicks.
	in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
	for _, id := range in.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		events = append(events, MouseEvent{Button: MouseButtonLeft, X: float64(tx), Y: float64(ty), Modifiers: mods})
	}

	_, dy := ebiten.Wheel()
	return in.wheelEvents(dy, x, y, mods, events)
}

// wheelEvents adds dy to the wheel accumulator and appends one event per
// whole notch: positive dy scrolls up.
func (in *inputState) wheelEvents(dy, x, y float64, mods KeyModifiers, events []MouseEvent) []MouseEvent {
	in.wheel += dy
	for in.wheel >= 1 {
		in.wheel--
		events = append(events, MouseEvent{Button: MouseButtonWheelUp, X: x, Y: y, Modifiers: mods})
	}
	for in.wheel <= -1 {
		in.wheel++
		events = append(events, MouseEvent{Button: MouseButtonWheelDown, X: x, Y: y, Modifiers: mods})
	}
	return events
}
