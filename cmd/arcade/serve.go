package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/flappy-homage/internal/platform/tui"
	"github.com/vovakirdan/flappy-homage/internal/platform/web"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the arcade over SSH",
	Long: `Accept SSH connections and give each one its own menu, games and
scoreboard. Runs are recorded under the SSH user name in one shared
database, so every visitor sees the same leaderboard.

The host key is read from --host-key, or generated at ~/.arcade/host_key
on first start.

--http adds a read-only JSON leaderboard on the same database:
  GET /health
  GET /games
  GET /games/{id}/scores?limit=N
  GET /games/{id}/recent?limit=N
  GET /games/{id}/stats

Examples:
  arcade serve
  arcade serve --ssh :2222 --host-key ./host_key
  arcade serve --http :8080 --idle-timeout 10m

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address")
	f.StringVar(&flagHostKey, "host-key", "", "Host key file (generated when missing)")
	f.DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Drop sessions idle for this long")
	f.StringVar(&flagHTTPAddr, "http", "", "Leaderboard HTTP address, empty to disable")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}
	logger := newLogger("flappy-ssh")

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if flagHTTPAddr != "" {
		store := server.Store()
		hl := logger.WithPrefix("flappy-http")
		g.Go(func() error { return serveLeaderboard(ctx, flagHTTPAddr, store, hl) })
	}
	g.Go(func() error { return server.ListenAndServe(ctx) })
	return g.Wait()
}

// serveLeaderboard runs the JSON API until ctx is done.
func serveLeaderboard(ctx context.Context, addr string, store *storage.Store, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.New(store, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	failed := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		failed <- srv.ListenAndServe()
	}()

	select {
	case err := <-failed:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
