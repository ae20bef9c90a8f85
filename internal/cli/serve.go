package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/policygate/internal/config"
	"github.com/ppiankov/policygate/internal/server"
)

var (
	servePort        int
	serveConfig      string
	serveAuditLog    string
	serveMetricsAddr string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "gRPC listen port (default from config, 50052)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to config YAML (default ~/.policygate/config.yaml)")
	serveCmd.Flags().StringVar(&serveAuditLog, "audit-log", "", "Path to audit log JSONL file")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "Prometheus /metrics listen address (e.g. :9090)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start gRPC policy server",
	Long:  "Runs policygate as a central server over gRPC.\nMultiple agents connect as clients for remote checks.\nSupports hot-reload of the jurisdiction from the config file.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(server.Config{
		Port:         servePort,
		ConfigPath:   serveConfig,
		AuditLogPath: serveAuditLog,
		MetricsAddr:  serveMetricsAddr,
		Logger:       slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	watchPath := serveConfig
	if watchPath == "" {
		watchPath = config.DefaultPath()
	}
	reloader, err := server.NewReloader(srv, watchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down policy server...")
		cancel()
		srv.GracefulStop()
	}()

	fmt.Fprintf(os.Stderr, "policygate server listening on :%d\n", srv.Port())
	fmt.Fprintf(os.Stderr, "Jurisdiction: %s\n", srv.Gate().Jurisdiction())
	if reloader != nil {
		fmt.Fprintf(os.Stderr, "Config: %s (hot-reload enabled)\n", watchPath)
	}
	fmt.Fprintln(os.Stderr)

	return srv.Serve()
}
