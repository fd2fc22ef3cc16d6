package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/registry"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

// AutoPlayer is a game that can pick its own input. Demo sessions use it in
// place of the keyboard.
type AutoPlayer interface {
	AutoInput() core.InputFrame
}

// tickCounter is a game that reports how many ticks the current run lasted.
type tickCounter interface {
	Ticks() int
}

// GameModel runs one game inside a Bubble Tea program. Keys pressed between
// two ticks are collected into one input frame.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	player  string
	demo    bool
	keys    *KeyMapper
	pending core.InputFrame
	state   core.GameState

	saved      bool // the finished run was recorded
	quitting   bool
	backToMenu bool
	quitOnBack bool // no menu to go back to
}

// NewGameModel wraps game for player. A demo model lets an AutoPlayer steer
// and never records scores. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, demo bool) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		player: player,
		demo:   demo,
		keys:   NewKeyMapper(),
	}
}

// Init resets the game and schedules the first tick.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.tick()
	case tea.KeyMsg:
		return m.key(msg)
	case tea.WindowSizeMsg:
		// Rendering rescales the matrix, so the run carries on.
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// stopped reports whether leaving for the menu is allowed right now.
func (m GameModel) stopped() bool {
	return m.state.GameOver || m.state.Paused || m.demo
}

func (m GameModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		m.pending.Set(action)
	case core.ActionJump, core.ActionDuck:
		if !m.demo {
			m.pending.Set(action)
		}
	case core.ActionRestart:
		if m.state.GameOver {
			m.pending.Set(action)
		}
	case core.ActionBack:
		if !m.stopped() {
			break
		}
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) tick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	next := tickCmd(m.config.TickRate)

	if m.state.GameOver {
		if m.demo || m.pending.Has(core.ActionRestart) {
			m.restart()
		}
		m.pending.Clear()
		return m, next
	}

	in := m.pending
	if auto, ok := m.game.(AutoPlayer); ok && m.demo {
		in = auto.AutoInput()
		if m.pending.Has(core.ActionPause) {
			in.Set(core.ActionPause)
		}
	}
	m.pending.Clear()

	m.state = m.game.Step(in).State
	if m.state.GameOver && !m.saved {
		m.record()
		m.saved = true
	}
	return m, next
}

// restart begins a new run with a fresh seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.saved = false
}

// record stores a finished player run. Demo runs and zero scores are not kept.
func (m GameModel) record() {
	if m.store == nil || m.demo || m.state.Score == 0 {
		return
	}
	ticks := 0
	if tc, ok := m.game.(tickCounter); ok {
		ticks = tc.Ticks()
	}
	//nolint:errcheck // a lost score must not stop the game
	m.store.SaveScore(m.game.ID(), m.player, m.state.Score, ticks)
}

// saveScreenshot writes the screen as text to ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best effort
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View implements tea.Model.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State is the state reported by the last step.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting reports whether the user asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked for the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits or backs out.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, demo bool) error {
	m := NewGameModel(game, store, cfg, player, demo)
	m.quitOnBack = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at rate ticks per second. A
// non-positive rate falls back to the default.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
