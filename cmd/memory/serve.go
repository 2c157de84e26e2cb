package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetrics     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the memory SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own board. Results are stored per-server
(all users share the same best time and history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.memory/host_key

Examples:
  memory serve                           # Listen on :23234 with auto-generated key
  memory serve --ssh :2222               # Listen on port 2222
  memory serve --host-key ./my_host_key  # Use specific host key
  memory serve --db ./memory.db          # Use specific database
  memory serve --metrics :9090           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetrics, "metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	serveCmd.Flags().IntVar(&flagCards, "cards", 0, "Number of tiles on each board (even; 0 = from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagCards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		DBPath:         flagDBPath,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		Game:           gameCfg,
		MetricsAddress: flagMetrics,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting memory SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
