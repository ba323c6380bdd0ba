package race

import (
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/typerally/typerally/internal/audio"
	"github.com/typerally/typerally/internal/particles"
	"github.com/typerally/typerally/internal/words"
)

// State is the session state tag.
type State int

// Session states.
const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// progressPerWord is the fixed track fraction awarded per completed word,
// regardless of word length or difficulty. Seven words finish a race.
const progressPerWord = 0.15

// Stats holds the derived counters shown in the HUD. All fields are
// recomputed from the raw counters; nothing here is mutated directly.
type Stats struct {
	WPM            int
	Accuracy       int
	Score          int
	Combo          int
	WordsCompleted int
	TimeRemaining  float64
}

// Snapshot is the observable session state for the presentation layer.
type Snapshot struct {
	State      State
	Difficulty Difficulty
	Word       string
	Typed      string
	Progress   float64
	Stats      Stats
	Won        bool
}

// Session owns one race: the state machine, the current word, the raw
// counters, and the timer bookkeeping. It is mutated only by keystroke
// and tick events delivered from a single goroutine.
type Session struct {
	sounds  audio.Notifier
	effects particles.Notifier

	state      State
	difficulty Difficulty
	settings   Settings
	provider   *words.Provider
	vocab      []string // optional override for every difficulty

	word  []rune
	typed []rune

	progress       float64
	score          int
	combo          int
	wordsCompleted int
	charsTyped     int
	charsCorrect   int

	wpm           int
	accuracy      int
	timeRemaining float64

	startedAt time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	elapsed   time.Duration

	won   bool
	epoch int
}

// NewSession builds a session in the menu state. Nil notifiers are
// replaced with no-ops so notification calls are always safe.
func NewSession(sounds audio.Notifier, effects particles.Notifier) *Session {
	if sounds == nil {
		sounds = audio.Nop{}
	}
	if effects == nil {
		effects = particles.Nop{}
	}
	return &Session{
		sounds:  sounds,
		effects: effects,
		state:   StateMenu,
	}
}

// SetVocabulary overrides the built-in vocabulary for every difficulty.
// An empty list is a configuration error.
func (s *Session) SetVocabulary(vocab []string) error {
	if len(vocab) == 0 {
		return fmt.Errorf("vocabulary is empty")
	}
	s.vocab = vocab
	return nil
}

// Start begins a race from the menu or finished state. All counters are
// reset, an initial word is drawn, and the countdown starts at the
// difficulty's time limit. An empty vocabulary refuses to start.
func (s *Session) Start(d Difficulty, now time.Time) error {
	if s.state == StatePlaying || s.state == StatePaused {
		return fmt.Errorf("session already active")
	}
	settings := SettingsFor(d)
	if len(s.vocab) > 0 {
		settings.Vocabulary = s.vocab
	}
	provider, err := words.NewProvider(settings.Vocabulary)
	if err != nil {
		return fmt.Errorf("difficulty %s: %w", d, err)
	}

	s.difficulty = d
	s.settings = settings
	s.provider = provider

	s.word = []rune(provider.Next())
	s.typed = nil
	s.progress = 0
	s.score = 0
	s.combo = 0
	s.wordsCompleted = 0
	s.charsTyped = 0
	s.charsCorrect = 0
	s.wpm = 0
	s.accuracy = 100
	s.timeRemaining = settings.TimeLimit.Seconds()
	s.startedAt = now
	s.pausedAt = time.Time{}
	s.pausedFor = 0
	s.elapsed = 0
	s.won = false

	s.setState(StatePlaying)
	s.sounds.Notify(audio.EventGameStart)
	return nil
}

// Restart begins a new race with the same difficulty.
func (s *Session) Restart(now time.Time) error {
	if s.state != StateFinished {
		return fmt.Errorf("can only restart a finished session")
	}
	s.state = StateMenu
	return s.Start(s.difficulty, now)
}

// Pause freezes the race. Elapsed time stops advancing until Resume.
func (s *Session) Pause(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.pausedAt = now
	s.setState(StatePaused)
	s.sounds.Notify(audio.EventClick)
}

// Resume continues a paused race; the countdown picks up where it left off.
func (s *Session) Resume(now time.Time) {
	if s.state != StatePaused {
		return
	}
	s.pausedFor += now.Sub(s.pausedAt)
	s.pausedAt = time.Time{}
	s.setState(StatePlaying)
	s.sounds.Notify(audio.EventClick)
}

// Abandon discards a paused race and returns to the menu.
func (s *Session) Abandon() {
	if s.state != StatePaused {
		return
	}
	s.setState(StateMenu)
	s.sounds.Notify(audio.EventClick)
}

// ToMenu leaves the results screen.
func (s *Session) ToMenu() {
	if s.state != StateFinished {
		return
	}
	s.setState(StateMenu)
	s.sounds.Notify(audio.EventClick)
}

// KeyPress processes one printable character while playing. The character
// is compared case-insensitively against the next target character; a
// mismatch counts against accuracy but never enters the buffer.
func (s *Session) KeyPress(r rune, now time.Time) {
	if s.state != StatePlaying || !unicode.IsPrint(r) {
		return
	}
	s.charsTyped++
	target := s.word[len(s.typed)]
	if unicode.ToLower(r) == unicode.ToLower(target) {
		s.charsCorrect++
		s.typed = append(s.typed, r)
		s.sounds.Notify(audio.EventCorrect)
		if len(s.typed) == len(s.word) {
			s.completeWord(now)
		}
		return
	}
	s.sounds.Notify(audio.EventError)
	s.effects.Request(particles.KindError, s.progress, 0, 4)
}

// Backspace removes the last buffered character. Counters are never
// decremented: characters once counted remain counted.
func (s *Session) Backspace() {
	if s.state != StatePlaying || len(s.typed) == 0 {
		return
	}
	s.typed = s.typed[:len(s.typed)-1]
	s.sounds.Notify(audio.EventBackspace)
}

// Tick recomputes derived stats and checks the countdown. It does nothing
// outside the playing state, so a tick raced against a pause or finish is
// harmless.
func (s *Session) Tick(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.recompute(now)
	if s.timeRemaining <= 0 {
		s.finish(false)
		s.sounds.Notify(audio.EventGameOver)
	}
}

func (s *Session) completeWord(now time.Time) {
	s.recompute(now)

	base := len(s.word) * 10
	timeBonus := int(math.Floor(s.timeRemaining / 5))
	accuracyBonus := int(math.Floor(s.rawAccuracy()))
	s.score += base + timeBonus + accuracyBonus
	s.wordsCompleted++
	s.combo++

	s.progress = math.Min(s.progress+progressPerWord, 1)
	if s.progress >= 1 {
		// Win takes precedence over a timeout in the same step.
		s.finish(true)
		s.sounds.Notify(audio.EventVictory)
		s.effects.Request(particles.KindVictory, 1, 0, 20)
		return
	}

	s.word = []rune(s.provider.Next())
	s.typed = nil
	s.sounds.Notify(audio.EventWordComplete)
	s.effects.Request(particles.KindCelebration, s.progress, 0, 8)
}

func (s *Session) finish(won bool) {
	s.won = won
	s.setState(StateFinished)
}

// setState switches the state tag and bumps the epoch so that tick
// messages scheduled for the previous state are dropped.
func (s *Session) setState(state State) {
	s.state = state
	s.epoch++
}

func (s *Session) recompute(now time.Time) {
	s.elapsed = now.Sub(s.startedAt) - s.pausedFor
	s.timeRemaining = math.Max(s.settings.TimeLimit.Seconds()-s.elapsed.Seconds(), 0)

	s.wpm = 0
	if s.charsTyped > 0 {
		minutes := s.elapsed.Minutes()
		if minutes > 0 {
			s.wpm = int(math.Round((float64(s.charsCorrect) / 5) / minutes))
		}
	}
	s.accuracy = int(math.Round(s.rawAccuracy()))
}

// rawAccuracy is the unrounded hit percentage; 100 before any keystroke.
func (s *Session) rawAccuracy() float64 {
	if s.charsTyped == 0 {
		return 100
	}
	return float64(s.charsCorrect) / float64(s.charsTyped) * 100
}

// State returns the current state tag.
func (s *Session) State() State {
	return s.state
}

// Epoch identifies the current run of the periodic tick. It changes on
// every state transition; schedulers must drop ticks from older epochs.
func (s *Session) Epoch() int {
	return s.epoch
}

// Difficulty returns the difficulty of the current or last race.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// Settings returns the active difficulty configuration.
func (s *Session) Settings() Settings {
	return s.settings
}

// Won reports the outcome of a finished race.
func (s *Session) Won() bool {
	return s.won
}

// Elapsed returns the playing time excluding pauses, as of the last
// recompute.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// CharsTyped returns the total keystrokes counted against the target.
func (s *Session) CharsTyped() int {
	return s.charsTyped
}

// CharsCorrect returns the keystrokes that matched the target.
func (s *Session) CharsCorrect() int {
	return s.charsCorrect
}

// Snapshot returns the observable state for rendering.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:      s.state,
		Difficulty: s.difficulty,
		Word:       string(s.word),
		Typed:      string(s.typed),
		Progress:   s.progress,
		Stats: Stats{
			WPM:            s.wpm,
			Accuracy:       s.accuracy,
			Score:          s.score,
			Combo:          s.combo,
			WordsCompleted: s.wordsCompleted,
			TimeRemaining:  s.timeRemaining,
		},
		Won: s.won,
	}
}
