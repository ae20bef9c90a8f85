// Package gate runs constitution checks with auditing, metrics and logging.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ppiankov/policygate/internal/audit"
	"github.com/ppiankov/policygate/internal/constitution"
	"github.com/ppiankov/policygate/internal/metrics"
)

// Config holds gate configuration.
type Config struct {
	Jurisdiction string
	ConfigHash   string
	AuditLogPath string
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Decision is one audited check.
type Decision struct {
	ID string `json:"check_id"`
	constitution.Result
	Sensitive []string `json:"sensitive,omitempty"`
}

// Gate is safe for concurrent use. The jurisdiction and config hash can be
// swapped at runtime by a config reload.
type Gate struct {
	mu           sync.RWMutex
	jurisdiction string
	configHash   string

	auditLog *audit.Log
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a gate, opening the audit log when a path is configured.
func New(cfg Config) (*Gate, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gate{
		metrics: cfg.Metrics,
		logger:  logger,
	}
	g.SetJurisdiction(cfg.Jurisdiction, cfg.ConfigHash)

	if cfg.AuditLogPath != "" {
		l, err := audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		g.auditLog = l
	}

	return g, nil
}

// Jurisdiction returns the jurisdiction applied when a check names none.
func (g *Gate) Jurisdiction() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.jurisdiction
}

// SetJurisdiction replaces the default jurisdiction and the config hash
// recorded in audit entries.
func (g *Gate) SetJurisdiction(jurisdiction, configHash string) {
	if jurisdiction == "" {
		jurisdiction = constitution.DefaultJurisdiction
	}
	g.mu.Lock()
	g.jurisdiction = jurisdiction
	g.configHash = configHash
	g.mu.Unlock()
}

// Check evaluates taskText. An empty jurisdiction uses the gate's own.
func (g *Gate) Check(ctx context.Context, taskText, jurisdiction string) Decision {
	g.mu.RLock()
	if jurisdiction == "" {
		jurisdiction = g.jurisdiction
	}
	configHash := g.configHash
	g.mu.RUnlock()

	d := Decision{
		ID:        "c-" + uuid.NewString(),
		Result:    constitution.Evaluate(taskText, jurisdiction),
		Sensitive: constitution.SensitiveTerms(taskText),
	}

	tags := d.Tags()
	g.metrics.RecordCheck(d.Compliant, tags, len(d.RuleHits()))

	if d.Compliant {
		g.logger.DebugContext(ctx, "task compliant",
			"check_id", d.ID, "jurisdiction", d.Jurisdiction, "rule_hits", len(d.RuleHits()))
	} else {
		g.logger.WarnContext(ctx, "task violates constitution",
			"check_id", d.ID, "jurisdiction", d.Jurisdiction, "tags", tags)
	}

	if g.auditLog != nil {
		err := g.auditLog.Record(audit.Entry{
			CheckID:      d.ID,
			Task:         audit.NewTask(taskText),
			Jurisdiction: d.Jurisdiction,
			Compliant:    d.Compliant,
			Violations:   d.Violations,
			Sensitive:    d.Sensitive,
			ConfigHash:   configHash,
		})
		if err != nil {
			g.logger.ErrorContext(ctx, "audit record failed", "check_id", d.ID, "error", err)
		}
	}

	return d
}

// Close closes the audit log if configured.
func (g *Gate) Close() error {
	if g.auditLog != nil {
		return g.auditLog.Close()
	}
	return nil
}
