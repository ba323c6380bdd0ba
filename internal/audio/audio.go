// Package audio delivers fire-and-forget sound events.
package audio

import "io"

// Event names a discrete game sound.
type Event int

// Game sound events.
const (
	EventCorrect Event = iota
	EventError
	EventWordComplete
	EventGameStart
	EventVictory
	EventGameOver
	EventBackspace
	EventClick
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventCorrect:
		return "correct"
	case EventError:
		return "error"
	case EventWordComplete:
		return "wordComplete"
	case EventGameStart:
		return "gameStart"
	case EventVictory:
		return "victory"
	case EventGameOver:
		return "gameOver"
	case EventBackspace:
		return "backspace"
	case EventClick:
		return "click"
	default:
		return "unknown"
	}
}

// Notifier receives sound events. Implementations must never block
// and must never surface failures to the caller.
type Notifier interface {
	Notify(Event)
}

// Nop discards all events.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(Event) {}

// Bell maps a subset of events to the terminal bell. Per-keystroke events
// stay silent so the terminal is not flooded with beeps.
type Bell struct {
	w io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Notify implements Notifier. Write errors are swallowed.
func (b *Bell) Notify(e Event) {
	if b == nil || b.w == nil {
		return
	}
	switch e {
	case EventError, EventVictory, EventGameOver:
		if _, err := b.w.Write([]byte{'\a'}); err != nil {
			// Sound is cosmetic; a broken writer must not abort gameplay.
			_ = err
		}
	default:
	}
}
