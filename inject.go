package lumen

// EventQueue holds synthetic mouse events. Run drains one event per tick;
// while the queue is not empty, real input is ignored.
type EventQueue struct {
	events []MouseEvent
}

// InjectPress queues a press of button at the given window coordinates.
func (q *EventQueue) InjectPress(button MouseButton, x, y float64) {
	q.events = append(q.events, MouseEvent{Button: button, X: x, Y: y})
}

// InjectClick queues a left-button press at the given window coordinates.
func (q *EventQueue) InjectClick(x, y float64) {
	q.InjectPress(MouseButtonLeft, x, y)
}

// InjectWheel queues |steps| wheel notches, up for positive steps and down
// for negative ones. Consumes one tick per notch.
func (q *EventQueue) InjectWheel(steps int) {
	button := MouseButtonWheelUp
	if steps < 0 {
		button = MouseButtonWheelDown
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		q.InjectPress(button, 0, 0)
	}
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// next pops the oldest pending event.
func (q *EventQueue) next() (MouseEvent, bool) {
	if len(q.events) == 0 {
		return MouseEvent{}, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return e, true
}
