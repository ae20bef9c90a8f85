// Package mcp exposes the constitution gate as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/policygate/internal/config"
	"github.com/ppiankov/policygate/internal/gate"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath   string
	Jurisdiction string
	AuditLogPath string
	Logger       *slog.Logger
}

// Server wraps the MCP SDK server with the constitution gate.
type Server struct {
	mcpServer *mcpsdk.Server
	gate      *gate.Gate
}

// New creates an MCP server with loaded configuration and tools.
// Explicit Jurisdiction and AuditLogPath win over the config file.
func New(cfg Config) (*Server, error) {
	settings, hash, err := config.LoadWithHash(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	jurisdiction := cfg.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = settings.Jurisdiction
	}
	auditPath := cfg.AuditLogPath
	if auditPath == "" {
		auditPath = settings.AuditLog
	}

	g, err := gate.New(gate.Config{
		Jurisdiction: jurisdiction,
		ConfigHash:   hash,
		AuditLogPath: auditPath,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gate: %w", err)
	}

	s := &Server{gate: g}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "policygate",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	return s.gate.Close()
}

// registerTools adds all policygate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "policygate_check",
		Description: "Check a proposed task or command against the constitution before executing it. Returns compliant=false with violation tags when a hard boundary is crossed.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "policygate_prompt",
		Description: "Return the constitution fragment to prepend to an agent system prompt.",
	}, s.handlePrompt)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "policygate_rules",
		Description: "List constitution rules for one tier (hard, pentest, soft, override) or all tiers.",
	}, s.handleRules)
}
