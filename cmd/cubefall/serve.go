package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubefall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each connection gets its own session: the game and difficulty picker, the
game itself and the scoreboard. All users share one leaderboard. The global
--difficulty flag sets the preset the menu starts on.

Without --host-key a key is generated at ~/.cubefall/host_key.

Examples:
  cubefall serve
  cubefall serve --ssh :2222 --idle-timeout 10m
  cubefall serve --host-key ./host_key --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file (generated when missing)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = flagIdleTimeout
	cfg.TickRate = flagFPS
	cfg.Logger = logger
	if flagDifficulty != "" {
		cfg.Preset = flagDifficulty
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	port := "23234"
	if _, p, err := net.SplitHostPort(server.Addr()); err == nil {
		port = p
	}
	fmt.Printf("cubefall SSH server listening on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
