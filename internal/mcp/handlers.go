package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/policygate/internal/constitution"
)

// --- Input/Output types ---

// CheckInput defines parameters for the policygate_check tool.
type CheckInput struct {
	Task         string `json:"task" jsonschema:"task description or command to be executed"`
	Jurisdiction string `json:"jurisdiction,omitempty" jsonschema:"jurisdiction label, defaults to the configured one"`
}

// CheckOutput contains the compliance result.
type CheckOutput struct {
	CheckID      string   `json:"check_id"`
	Compliant    bool     `json:"compliant"`
	Violations   []string `json:"violations"`
	Jurisdiction string   `json:"jurisdiction"`
	Sensitive    []string `json:"sensitive,omitempty"`
}

// PromptInput is empty, no parameters needed.
type PromptInput struct{}

// PromptOutput carries the prompt fragment.
type PromptOutput struct {
	Block string `json:"block"`
}

// RulesInput selects a tier.
type RulesInput struct {
	Tier string `json:"tier,omitempty" jsonschema:"tier label (hard/pentest/soft/override), empty for all"`
}

// RulesOutput maps tier label to rules.
type RulesOutput struct {
	Tiers map[string][]string `json:"tiers"`
}

// --- Handlers ---

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	d := s.gate.Check(ctx, input.Task, input.Jurisdiction)
	out := CheckOutput{
		CheckID:      d.ID,
		Compliant:    d.Compliant,
		Violations:   d.Violations,
		Jurisdiction: d.Jurisdiction,
		Sensitive:    d.Sensitive,
	}
	if !d.Compliant {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handlePrompt(ctx context.Context, req *mcpsdk.CallToolRequest, input PromptInput) (*mcpsdk.CallToolResult, PromptOutput, error) {
	return nil, PromptOutput{Block: constitution.PromptBlock()}, nil
}

func (s *Server) handleRules(ctx context.Context, req *mcpsdk.CallToolRequest, input RulesInput) (*mcpsdk.CallToolResult, RulesOutput, error) {
	tiers, err := constitution.RulesByLabel(input.Tier)
	if err != nil {
		return nil, RulesOutput{}, fmt.Errorf("policygate_rules: %w", err)
	}
	return nil, RulesOutput{Tiers: tiers}, nil
}
