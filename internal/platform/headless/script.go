package headless

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/flappy-homage/internal/games/flappy"
)

// ParseScript reads one direction per character: 'u' or '^' flaps, 'd' or
// 'v' dives, '.' or '-' glides. Whitespace is ignored so long scripts can be
// wrapped.
func ParseScript(s string) ([]flappy.Direction, error) {
	dirs := make([]flappy.Direction, 0, len(s))
	for i, r := range s {
		switch r {
		case 'u', 'U', '^':
			dirs = append(dirs, flappy.Up)
		case 'd', 'D', 'v':
			dirs = append(dirs, flappy.Down)
		case '.', '-':
			dirs = append(dirs, flappy.Straight)
		default:
			if strings.TrimSpace(string(r)) == "" {
				continue
			}
			return nil, fmt.Errorf("headless: bad script character %q at offset %d", r, i)
		}
	}
	return dirs, nil
}
