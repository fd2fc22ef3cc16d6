package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-homage/internal/core"
)

// palette holds one style per core.Color, indexed by its value.
var palette = func() []lipgloss.Style {
	ansi := map[core.Color]string{
		core.ColorRed:          "1",
		core.ColorGreen:        "2",
		core.ColorYellow:       "3",
		core.ColorCyan:         "6",
		core.ColorBrightRed:    "9",
		core.ColorBrightYellow: "11",
		core.ColorGray:         "245",
	}
	styles := make([]lipgloss.Style, core.ColorGray+1)
	for i := range styles {
		styles[i] = lipgloss.NewStyle()
		if code, ok := ansi[core.Color(i)]; ok {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns a screen buffer into terminal output, styling each run
// of same-colored cells once.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		var line, run strings.Builder
		color := s.GetCell(0, y).Color
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Color != color {
				line.WriteString(styleFor(color).Render(run.String()))
				run.Reset()
				color = c.Color
			}
			run.WriteRune(c.Rune)
		}
		line.WriteString(styleFor(color).Render(run.String()))
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
