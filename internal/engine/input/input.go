// Package input defines backend-neutral input events and key bindings.
package input

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Key is a physical key the viewer reacts to. Backends translate their own
// key codes and drop keys outside this set.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyLeftShift
	KeyL
	KeyK
	KeyF
	KeyG
	KeyF12
	KeyEscape
)

var keyNames = map[Key]string{
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeySpace:     "Space",
	KeyLeftShift: "LeftShift",
	KeyL:         "L",
	KeyK:         "K",
	KeyF:         "F",
	KeyG:         "G",
	KeyF12:       "F12",
	KeyEscape:    "Escape",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	// Relative mouse motion. Positive DY is downward on screen.
	DX, DY float32
}

// Queue collects events for one poll.
type Queue struct {
	events []Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Reset clears previous events.
func (q *Queue) Reset() { q.events = q.events[:0] }

// Push appends an event. Unknown keys are dropped.
func (q *Queue) Push(e Event) {
	if (e.Type == EventKeyDown || e.Type == EventKeyUp) && e.Key == KeyUnknown {
		return
	}
	q.events = append(q.events, e)
}

// Events returns the events since the last Reset.
func (q *Queue) Events() []Event { return q.events }

