package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/typerally/typerally/internal/audio"
	"github.com/typerally/typerally/internal/model"
	"github.com/typerally/typerally/internal/particles"
	"github.com/typerally/typerally/internal/race"
	"github.com/typerally/typerally/internal/store"
)

const defaultTickMs = 100

// Model implements the Bubble Tea game UI around a race session.
type Model struct {
	session *race.Session
	fx      *particles.System
	sounds  audio.Notifier
	store   *store.Store // nil disables persistence
	cfg     model.Config

	width  int
	height int

	tick      time.Duration
	menuIndex int
	errMsg    string

	// displayProgress eases toward the real progress so the car glides
	// instead of jumping a fixed step per word.
	displayProgress float64
	flashTicks      int
	lastWords       int

	nameMode  bool
	nameInput textinput.Model
	recorded  bool
	saveErr   string
}

var difficulties = []race.Difficulty{race.Easy, race.Normal, race.Hard}

// NewModel constructs the game UI model.
func NewModel(session *race.Session, fx *particles.System, sounds audio.Notifier, st *store.Store, cfg model.Config) *Model {
	if sounds == nil {
		sounds = audio.Nop{}
	}
	tick := time.Duration(cfg.TickMs) * time.Millisecond
	if cfg.TickMs <= 0 {
		tick = defaultTickMs * time.Millisecond
	}
	input := textinput.New()
	input.Prompt = "Name: "
	input.CharLimit = 24
	input.Cursor.SetMode(cursor.CursorBlink)
	input.SetValue(cfg.Player)

	m := &Model{
		session:   session,
		fx:        fx,
		sounds:    sounds,
		store:     st,
		cfg:       cfg,
		tick:      tick,
		nameInput: input,
		menuIndex: 1, // normal preselected
	}
	for i, d := range difficulties {
		if d.String() == cfg.Difficulty {
			m.menuIndex = i
		}
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case TickMsg:
		return m.updateTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.session.State() {
		case race.StateMenu:
			return m.updateMenu(msg)
		case race.StatePlaying:
			return m.updatePlaying(msg)
		case race.StatePaused:
			return m.updatePaused(msg)
		case race.StateFinished:
			return m.updateFinished(msg)
		}
	}
	return m, nil
}

func (m *Model) updateTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Epoch != m.session.Epoch() {
		// A tick scheduled for a session run that already ended.
		return m, nil
	}
	m.session.Tick(time.Now())
	m.fx.Advance()
	m.easeCar()
	if m.flashTicks > 0 {
		m.flashTicks--
	}
	if m.session.State() != race.StatePlaying {
		return m, m.onFinished()
	}
	return m, tickCmd(m.tick, m.session.Epoch())
}

func (m *Model) easeCar() {
	target := m.session.Snapshot().Progress
	rate := 0.2 * m.session.Settings().CarSpeedFactor
	if rate <= 0 || rate > 1 {
		rate = 1
	}
	m.displayProgress += (target - m.displayProgress) * rate
	if math.Abs(target-m.displayProgress) < 0.005 {
		m.displayProgress = target
	}
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.menuIndex = (m.menuIndex + len(difficulties) - 1) % len(difficulties)
		m.sounds.Notify(audio.EventClick)
		return m, nil
	case "down", "j":
		m.menuIndex = (m.menuIndex + 1) % len(difficulties)
		m.sounds.Notify(audio.EventClick)
		return m, nil
	case "1", "2", "3":
		m.menuIndex = int(msg.String()[0] - '1')
		return m, m.startRace()
	case "enter", " ":
		return m, m.startRace()
	}
	return m, nil
}

func (m *Model) startRace() tea.Cmd {
	if err := m.session.Start(difficulties[m.menuIndex], time.Now()); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.fx.Clear()
	m.displayProgress = 0
	m.flashTicks = 0
	m.lastWords = 0
	m.recorded = false
	m.nameMode = false
	m.saveErr = ""
	return tickCmd(m.tick, m.session.Epoch())
}

func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch msg.Type {
	case tea.KeyEsc:
		m.session.Pause(now)
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.session.Backspace()
		return m, nil
	case tea.KeySpace:
		m.session.KeyPress(' ', now)
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.session.KeyPress(r, now)
			if m.session.State() != race.StatePlaying {
				break
			}
		}
	default:
		return m, nil
	}

	snap := m.session.Snapshot()
	if snap.Stats.WordsCompleted > m.lastWords {
		m.lastWords = snap.Stats.WordsCompleted
		m.flashTicks = m.wordDelayTicks()
	}
	if m.session.State() == race.StateFinished {
		return m, m.onFinished()
	}
	return m, nil
}

// wordDelayTicks converts the difficulty's word delay into a number of
// ticks for the completion flash.
func (m *Model) wordDelayTicks() int {
	ticks := int(m.session.Settings().WordDelay / m.tick)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (m *Model) updatePaused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		m.session.Resume(time.Now())
		return m, tickCmd(m.tick, m.session.Epoch())
	case "esc", "q":
		m.session.Abandon()
		return m, nil
	}
	return m, nil
}

func (m *Model) updateFinished(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.nameMode {
		return m.updateNameEntry(msg)
	}
	switch msg.String() {
	case "r":
		if err := m.session.Restart(time.Now()); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.fx.Clear()
		m.displayProgress = 0
		m.flashTicks = 0
		m.lastWords = 0
		m.recorded = false
		m.nameMode = false
		m.saveErr = ""
		return m, tickCmd(m.tick, m.session.Epoch())
	case "m", "esc":
		m.session.ToMenu()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateNameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.nameMode = false
		m.recordRace(m.nameInput.Value())
		return m, nil
	case tea.KeyEsc:
		// Skip the leaderboard entry for this race.
		m.nameMode = false
		m.recorded = true
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// onFinished runs once when a race ends: snap the car to its final
// position and either record the result or ask for a name.
func (m *Model) onFinished() tea.Cmd {
	m.displayProgress = m.session.Snapshot().Progress
	if m.recorded {
		return nil
	}
	if m.cfg.Player != "" {
		m.recordRace(m.cfg.Player)
		return nil
	}
	if m.session.Snapshot().Stats.Score == 0 {
		// A zero-score race goes into history without a leaderboard prompt.
		m.recordRace("")
		return nil
	}
	m.nameMode = true
	return m.nameInput.Focus()
}

func (m *Model) recordRace(player string) {
	m.recorded = true
	if m.store == nil {
		return
	}
	snap := m.session.Snapshot()
	rec := model.RaceRecord{
		FinishedAt:     time.Now(),
		Player:         player,
		Difficulty:     snap.Difficulty.String(),
		Won:            snap.Won,
		Score:          snap.Stats.Score,
		WPM:            snap.Stats.WPM,
		Accuracy:       snap.Stats.Accuracy,
		WordsCompleted: snap.Stats.WordsCompleted,
		CharsTyped:     m.session.CharsTyped(),
		CharsCorrect:   m.session.CharsCorrect(),
		DurationMs:     m.session.Elapsed().Milliseconds(),
	}
	if _, err := m.store.InsertRace(context.Background(), rec); err != nil {
		m.saveErr = fmt.Sprintf("failed to save race: %v", err)
		logErrf("%s\n", m.saveErr)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
