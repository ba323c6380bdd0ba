package race

import (
	"testing"
	"time"

	"github.com/typerally/typerally/internal/audio"
	"github.com/typerally/typerally/internal/particles"
)

type soundSpy struct {
	events []audio.Event
}

func (s *soundSpy) Notify(e audio.Event) {
	s.events = append(s.events, e)
}

func (s *soundSpy) has(e audio.Event) bool {
	for _, got := range s.events {
		if got == e {
			return true
		}
	}
	return false
}

type effectSpy struct {
	kinds []particles.Kind
}

func (s *effectSpy) Request(kind particles.Kind, _, _ float64, _ int) {
	s.kinds = append(s.kinds, kind)
}

func newTestSession(t *testing.T, vocab []string) *Session {
	t.Helper()
	s := NewSession(nil, nil)
	if err := s.SetVocabulary(vocab); err != nil {
		t.Fatalf("set vocabulary: %v", err)
	}
	return s
}

func typeWord(t *testing.T, s *Session, word string, now time.Time) {
	t.Helper()
	for _, r := range word {
		s.KeyPress(r, now)
	}
}

func TestStartResetsState(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("expected playing, got %v", snap.State)
	}
	if snap.Word != "cat" {
		t.Fatalf("unexpected word: %q", snap.Word)
	}
	if snap.Stats.Accuracy != 100 {
		t.Fatalf("expected initial accuracy 100, got %d", snap.Stats.Accuracy)
	}
	if snap.Stats.TimeRemaining != 45 {
		t.Fatalf("expected 45s remaining, got %v", snap.Stats.TimeRemaining)
	}
	if snap.Stats.Score != 0 || snap.Progress != 0 {
		t.Fatalf("expected zeroed score and progress, got %+v", snap)
	}
}

func TestStartRefusesActiveSession(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(Easy, t0); err == nil {
		t.Fatalf("expected error starting an active session")
	}
	s.Pause(t0)
	if err := s.Start(Easy, t0); err == nil {
		t.Fatalf("expected error starting a paused session")
	}
}

func TestSetVocabularyRejectsEmpty(t *testing.T) {
	s := NewSession(nil, nil)
	if err := s.SetVocabulary(nil); err == nil {
		t.Fatalf("expected error for empty vocabulary")
	}
}

func TestWordCompletionScoring(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	typeWord(t, s, "cat", t0.Add(2*time.Second))

	snap := s.Snapshot()
	// base 3*10, time bonus floor(43/5)=8, accuracy bonus 100.
	if snap.Stats.Score != 138 {
		t.Fatalf("expected score 138, got %d", snap.Stats.Score)
	}
	if snap.Stats.WordsCompleted != 1 || snap.Stats.Combo != 1 {
		t.Fatalf("unexpected counters: %+v", snap.Stats)
	}
	if snap.Progress != 0.15 {
		t.Fatalf("expected progress 0.15, got %v", snap.Progress)
	}
	if snap.Typed != "" {
		t.Fatalf("expected empty buffer after completion, got %q", snap.Typed)
	}
}

func TestMismatchNeverEntersBuffer(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.KeyPress('x', t0)
	snap := s.Snapshot()
	if snap.Typed != "" {
		t.Fatalf("expected empty buffer, got %q", snap.Typed)
	}
	if s.CharsTyped() != 1 || s.CharsCorrect() != 0 {
		t.Fatalf("unexpected counters: typed=%d correct=%d", s.CharsTyped(), s.CharsCorrect())
	}
}

func TestMismatchAccountingThroughWord(t *testing.T) {
	s := newTestSession(t, []string{"dog"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	now := t0.Add(time.Second)
	s.KeyPress('d', now)
	s.KeyPress('x', now)
	s.KeyPress('o', now)
	s.KeyPress('g', now)

	if s.CharsTyped() != 4 || s.CharsCorrect() != 3 {
		t.Fatalf("unexpected counters: typed=%d correct=%d", s.CharsTyped(), s.CharsCorrect())
	}
	snap := s.Snapshot()
	if snap.Stats.Accuracy != 75 {
		t.Fatalf("expected accuracy 75, got %d", snap.Stats.Accuracy)
	}
	if snap.Stats.WordsCompleted != 1 {
		t.Fatalf("expected completed word, got %+v", snap.Stats)
	}
}

func TestCaseInsensitiveMatch(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.KeyPress('C', t0)
	snap := s.Snapshot()
	if snap.Typed != "C" {
		t.Fatalf("expected %q in buffer, got %q", "C", snap.Typed)
	}
	if s.CharsCorrect() != 1 {
		t.Fatalf("expected match, got correct=%d", s.CharsCorrect())
	}
}

func TestBackspaceNeverDecrementsCounters(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.KeyPress('c', t0)
	s.Backspace()
	s.KeyPress('c', t0)

	if s.CharsTyped() != 2 || s.CharsCorrect() != 2 {
		t.Fatalf("unexpected counters: typed=%d correct=%d", s.CharsTyped(), s.CharsCorrect())
	}
	if got := s.Snapshot().Typed; got != "c" {
		t.Fatalf("expected buffer %q, got %q", "c", got)
	}
	// Backspace on an empty buffer is a no-op.
	s.Backspace()
	s.Backspace()
	if got := s.Snapshot().Typed; got != "" {
		t.Fatalf("expected empty buffer, got %q", got)
	}
	if s.CharsTyped() != 2 {
		t.Fatalf("empty-buffer backspace changed counters: %d", s.CharsTyped())
	}
}

func TestSevenWordsWinTheRace(t *testing.T) {
	sounds := &soundSpy{}
	effects := &effectSpy{}
	s := NewSession(sounds, effects)
	if err := s.SetVocabulary([]string{"go"}); err != nil {
		t.Fatalf("set vocabulary: %v", err)
	}
	t0 := time.Unix(0, 0)
	if err := s.Start(Normal, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 7; i++ {
		if s.State() != StatePlaying {
			t.Fatalf("race ended early at word %d", i)
		}
		typeWord(t, s, "go", t0.Add(time.Duration(i+1)*time.Second))
	}
	snap := s.Snapshot()
	if snap.State != StateFinished || !snap.Won {
		t.Fatalf("expected a won race, got state=%v won=%v", snap.State, snap.Won)
	}
	if snap.Progress != 1 {
		t.Fatalf("expected progress capped at 1, got %v", snap.Progress)
	}
	if !sounds.has(audio.EventVictory) {
		t.Fatalf("expected victory notification, got %v", sounds.events)
	}
	victorySeen := false
	for _, k := range effects.kinds {
		if k == particles.KindVictory {
			victorySeen = true
		}
	}
	if !victorySeen {
		t.Fatalf("expected victory effect, got %v", effects.kinds)
	}
}

func TestWinTakesPrecedenceOverTimeout(t *testing.T) {
	s := newTestSession(t, []string{"go"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 6; i++ {
		typeWord(t, s, "go", t0.Add(time.Second))
	}
	// The final word lands exactly when the countdown hits zero.
	typeWord(t, s, "go", t0.Add(45*time.Second))
	snap := s.Snapshot()
	if !snap.Won {
		t.Fatalf("expected win at the buzzer, got %+v", snap)
	}
}

func TestTimeoutLosesTheRace(t *testing.T) {
	sounds := &soundSpy{}
	s := NewSession(sounds, nil)
	if err := s.SetVocabulary([]string{"cat"}); err != nil {
		t.Fatalf("set vocabulary: %v", err)
	}
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Tick(t0.Add(44 * time.Second))
	if s.State() != StatePlaying {
		t.Fatalf("race ended before the time limit")
	}
	s.Tick(t0.Add(46 * time.Second))
	snap := s.Snapshot()
	if snap.State != StateFinished || snap.Won {
		t.Fatalf("expected a lost race, got state=%v won=%v", snap.State, snap.Won)
	}
	if snap.Stats.TimeRemaining != 0 {
		t.Fatalf("expected zero time remaining, got %v", snap.Stats.TimeRemaining)
	}
	if !sounds.has(audio.EventGameOver) {
		t.Fatalf("expected game-over notification, got %v", sounds.events)
	}
}

func TestPauseFreezesTheClock(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Pause(t0.Add(10 * time.Second))
	if s.State() != StatePaused {
		t.Fatalf("expected paused, got %v", s.State())
	}
	// Input during a pause is ignored.
	s.KeyPress('c', t0.Add(12*time.Second))
	if s.CharsTyped() != 0 {
		t.Fatalf("keypress while paused was counted")
	}
	s.Resume(t0.Add(30 * time.Second))
	s.Tick(t0.Add(35 * time.Second))

	snap := s.Snapshot()
	if snap.Stats.TimeRemaining != 30 {
		t.Fatalf("expected 30s remaining after 15s of play, got %v", snap.Stats.TimeRemaining)
	}
	if s.Elapsed() != 15*time.Second {
		t.Fatalf("expected 15s elapsed, got %v", s.Elapsed())
	}
}

func TestAbandonReturnsToMenu(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Abandon() // no-op while playing
	if s.State() != StatePlaying {
		t.Fatalf("abandon should only act on a paused session")
	}
	s.Pause(t0.Add(time.Second))
	s.Abandon()
	if s.State() != StateMenu {
		t.Fatalf("expected menu after abandon, got %v", s.State())
	}
}

func TestRestartResetsWithSameDifficulty(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Hard, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Restart(t0); err == nil {
		t.Fatalf("expected restart to refuse an active session")
	}
	s.Tick(t0.Add(80 * time.Second))
	if s.State() != StateFinished {
		t.Fatalf("expected finished, got %v", s.State())
	}
	t1 := t0.Add(90 * time.Second)
	if err := s.Restart(t1); err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != StatePlaying || snap.Difficulty != Hard {
		t.Fatalf("unexpected restart state: %+v", snap)
	}
	if snap.Stats.Score != 0 || snap.Stats.WordsCompleted != 0 || snap.Won {
		t.Fatalf("restart did not reset counters: %+v", snap)
	}
	if snap.Stats.TimeRemaining != 75 {
		t.Fatalf("expected full hard countdown, got %v", snap.Stats.TimeRemaining)
	}
}

func TestInputIgnoredOutsidePlaying(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	s.KeyPress('c', t0)
	s.Backspace()
	s.Tick(t0)
	if s.CharsTyped() != 0 {
		t.Fatalf("menu keypress was counted")
	}
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Tick(t0.Add(50 * time.Second))
	s.KeyPress('c', t0.Add(51*time.Second))
	if s.CharsTyped() != 0 {
		t.Fatalf("finished-state keypress was counted")
	}
}

func TestNonPrintableRunesIgnored(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.KeyPress('\n', t0)
	s.KeyPress('\t', t0)
	if s.CharsTyped() != 0 {
		t.Fatalf("control runes were counted")
	}
}

func TestWPMComputation(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Tick(t0.Add(10 * time.Second))
	if got := s.Snapshot().Stats.WPM; got != 0 {
		t.Fatalf("expected WPM 0 before any keystroke, got %d", got)
	}
	typeWord(t, s, "cat", t0.Add(30*time.Second))
	// 3 correct chars in 0.5 min: (3/5)/0.5 rounds to 1.
	if got := s.Snapshot().Stats.WPM; got != 1 {
		t.Fatalf("expected WPM 1, got %d", got)
	}
}

func TestEpochBumpsOnEveryTransition(t *testing.T) {
	s := newTestSession(t, []string{"cat"})
	t0 := time.Unix(0, 0)
	epoch := s.Epoch()
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Epoch() == epoch {
		t.Fatalf("start did not bump the epoch")
	}
	epoch = s.Epoch()
	s.Pause(t0.Add(time.Second))
	if s.Epoch() == epoch {
		t.Fatalf("pause did not bump the epoch")
	}
	epoch = s.Epoch()
	s.Resume(t0.Add(2 * time.Second))
	if s.Epoch() == epoch {
		t.Fatalf("resume did not bump the epoch")
	}
	epoch = s.Epoch()
	s.Tick(t0.Add(50 * time.Second))
	if s.Epoch() == epoch {
		t.Fatalf("finish did not bump the epoch")
	}
}

func TestErrorEffectEmittedOnMismatch(t *testing.T) {
	sounds := &soundSpy{}
	effects := &effectSpy{}
	s := NewSession(sounds, effects)
	if err := s.SetVocabulary([]string{"cat"}); err != nil {
		t.Fatalf("set vocabulary: %v", err)
	}
	t0 := time.Unix(0, 0)
	if err := s.Start(Easy, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.KeyPress('x', t0)
	if !sounds.has(audio.EventError) {
		t.Fatalf("expected error sound, got %v", sounds.events)
	}
	if len(effects.kinds) != 1 || effects.kinds[0] != particles.KindError {
		t.Fatalf("expected one error effect, got %v", effects.kinds)
	}
}
