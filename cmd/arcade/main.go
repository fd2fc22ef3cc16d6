// arcade runs Flappy Homage, a Flappy Bird homage played on an 8x8 matrix,
// in the terminal, over SSH, or headless against a display driver.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade drive             - Run headless and stream frames to stdout
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.arcade/flappy.db)
//	--config <path>        - Custom flappy config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//
// Flags not given on the command line fall back to ARCADE_* variables,
// read from the environment or a .env file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-homage/internal/config"
	"github.com/vovakirdan/flappy-homage/internal/games/flappy"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Flappy Homage - an 8x8 Flappy Bird in your terminal",
	Long: `Flappy Homage is a Flappy Bird homage built for an 8x8 LED matrix.
Play it in the terminal, serve it over SSH, or drive a matrix headless.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  drive    - Stream frames to a display driver

Examples:
  arcade play flappy
  arcade play flappy --difficulty hard
  arcade drive --format matrix --ticks 300
  arcade serve --ssh :2222
  arcade scores flappy`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		return applyEnv(cmd)
	},
}

// envFlags maps flag names to the variables that provide their defaults.
var envFlags = map[string]string{
	"fps":        "ARCADE_FPS",
	"db":         "ARCADE_DB",
	"config":     "ARCADE_CONFIG",
	"difficulty": "ARCADE_DIFFICULTY",
	"player":     "ARCADE_PLAYER",
	"ssh":        "ARCADE_SSH_ADDR",
	"host-key":   "ARCADE_HOST_KEY",
	"http":       "ARCADE_HTTP_ADDR",
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, env := range envFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flappy.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom flappy config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name recorded with your scores")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(driveCmd)
}

// applyGameFlags checks --config and --difficulty and hands them to the game
// package, so a bad file fails here rather than silently using defaults.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if _, err := config.LoadFlappy(flagConfig); err != nil {
		return err
	}

	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(string(preset))
	return nil
}

// newLogger returns the stderr logger used by non-interactive commands.
func newLogger(prefix string) *log.Logger {
	return newLoggerTo(os.Stderr, prefix)
}

func newLoggerTo(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: prefix})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func defaultPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
