package lumen

import "testing"

func TestEventQueueFIFO(t *testing.T) {
	var q EventQueue
	q.InjectClick(1, 2)
	q.InjectPress(MouseButtonRight, 3, 4)
	if q.Len() != 2 {
		t.Fatalf("Len = %d, want 2", q.Len())
	}

	e, ok := q.next()
	if !ok || e.Button != MouseButtonLeft || e.X != 1 || e.Y != 2 {
		t.Errorf("first = %+v, %v; want left click at (1, 2)", e, ok)
	}
	e, ok = q.next()
	if !ok || e.Button != MouseButtonRight || e.X != 3 || e.Y != 4 {
		t.Errorf("second = %+v, %v; want right press at (3, 4)", e, ok)
	}
	if _, ok := q.next(); ok {
		t.Error("expected empty queue")
	}
}

func TestEventQueueInjectWheel(t *testing.T) {
	tests := []struct {
		steps  int
		button MouseButton
		count  int
	}{
		{3, MouseButtonWheelUp, 3},
		{-2, MouseButtonWheelDown, 2},
		{0, MouseButtonWheelUp, 0},
	}
	for _, tt := range tests {
		var q EventQueue
		q.InjectWheel(tt.steps)
		if q.Len() != tt.count {
			t.Errorf("InjectWheel(%d): Len = %d, want %d", tt.steps, q.Len(), tt.count)
			continue
		}
		for q.Len() > 0 {
			if e, _ := q.next(); e.Button != tt.button {
				t.Errorf("InjectWheel(%d): button = %v, want %v", tt.steps, e.Button, tt.button)
			}
		}
	}
}

func TestInjectedWheelDrivesController(t *testing.T) {
	var q EventQueue
	c := NewLabelController(NewTransformation(-10))
	q.InjectWheel(4)
	q.InjectWheel(-4)
	for q.Len() > 0 {
		e, _ := q.next()
		c.HandleMouse(&e)
	}
	if got := c.StatusText(); got != "Rotation: -10°\nScale: 1" {
		t.Errorf("status = %q", got)
	}
}
