package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	gatemcp "github.com/ppiankov/policygate/internal/mcp"
)

var (
	mcpConfig       string
	mcpJurisdiction string
	mcpAuditLog     string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpConfig, "config", "", "Path to config YAML (default ~/.policygate/config.yaml)")
	mcpCmd.Flags().StringVar(&mcpJurisdiction, "jurisdiction", "", "Jurisdiction label (overrides config and LOCAL_JURISDICTION)")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to audit log JSONL file")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs policygate as an MCP (Model Context Protocol) server over stdio.\nExposes tools: policygate_check, policygate_prompt, policygate_rules.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := gatemcp.New(gatemcp.Config{
		ConfigPath:   mcpConfig,
		Jurisdiction: mcpJurisdiction,
		AuditLogPath: mcpAuditLog,
		Logger:       slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "policygate MCP server running on stdio")
	return srv.Run(ctx)
}
