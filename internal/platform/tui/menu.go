package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/registry"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

// MenuItem is one line of the game picker.
type MenuItem struct {
	GameID string
	Title  string
	Demo   bool // the game plays itself
	Best   int  // table high score
	Mine   int  // the current player's best
}

// label is the text shown for the item.
func (it MenuItem) label() string {
	switch {
	case it.Demo:
		return it.Title + " (autopilot)"
	case it.Best == 0:
		return it.Title
	case it.Mine > 0 && it.Mine < it.Best:
		return fmt.Sprintf("%s  [best %d, yours %d]", it.Title, it.Best, it.Mine)
	default:
		return fmt.Sprintf("%s  [best %d]", it.Title, it.Best)
	}
}

// menuItems lists a play entry for every registered game, followed by a
// demo entry when the game can drive itself.
func menuItems(store *storage.Store, player string) []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, 2*len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			item.Best, _ = store.HighScore(g.ID)
			if player != "" {
				item.Mine, _ = store.PlayerBest(g.ID, player)
			}
		}
		items = append(items, item)

		if game, err := registry.Create(g.ID); err == nil {
			if _, ok := game.(AutoPlayer); ok {
				items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Demo: true})
			}
		}
	}
	return items
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the game picker.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	chosen     *MenuItem
	scoreboard bool
	quitting   bool
}

// NewMenuModel builds the picker for player. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, player string) MenuModel {
	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:  menuItems(store, player),
		config: cfg,
		keys:   NewKeyMapper(),
		help:   h,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.chosen = &item
			return m, tea.Quit
		case MenuActionScoreboard:
			m.scoreboard = true
			return m, tea.Quit
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render("  F L A P P Y   H O M A G E  "),
		"",
		"Select a game",
		"",
	}
	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+item.label()))
		} else {
			lines = append(lines, "  "+item.label())
		}
	}
	lines = append(lines, "", menuDimStyle.Render(m.help.View(m.keys.Menu())))

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.chosen
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the runtime config, updated by any resize.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it in width cells. Styled text
// is measured by its printable width.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult is what the menu decided.
type MenuResult struct {
	GameID          string
	Demo            bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final model into a MenuResult.
func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.config}
	switch {
	case m.scoreboard:
		r.WantsScoreboard = true
	case m.chosen == nil:
		r.Quit = true
	default:
		r.GameID, r.Demo = m.chosen.GameID, m.chosen.Demo
	}
	return r
}

// RunMenu shows the picker in the local terminal.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, player string) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, player), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
