package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/policygate/internal/client"
	"github.com/ppiankov/policygate/internal/config"
	"github.com/ppiankov/policygate/internal/constitution"
	"github.com/ppiankov/policygate/internal/gate"
)

var (
	checkConfig       string
	checkJurisdiction string
	checkFormat       string
	checkRemote       string
	checkAuditLog     string
	checkStrict       bool
)

// errNotCompliant makes --strict exit non-zero.
var errNotCompliant = errors.New("task is not compliant")

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkConfig, "config", "", "Path to config YAML (default ~/.policygate/config.yaml)")
	checkCmd.Flags().StringVar(&checkJurisdiction, "jurisdiction", "", "Jurisdiction label (overrides config and LOCAL_JURISDICTION)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	checkCmd.Flags().StringVar(&checkRemote, "remote", "", "Evaluate on a remote policygate server (host:port)")
	checkCmd.Flags().StringVar(&checkAuditLog, "audit-log", "", "Path to audit log JSONL file")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit 1 when the task is not compliant")
}

var checkCmd = &cobra.Command{
	Use:   "check [task...]",
	Short: "Check a task description or command against the constitution",
	Long: "Runs the structural checks (destructive commands, out-of-scope assets,\n" +
		"unencrypted exfiltration) and the hard-rule keyword heuristic.\n\n" +
		"The task is taken from the arguments, or from stdin when no arguments\n" +
		"are given or the only argument is \"-\".\n" +
		"Hard-rule keyword hits are informational and never make a task non-compliant.",
	SilenceUsage: true,
	RunE:         runCheck,
}

// checkOutput is the JSON shape printed by check.
type checkOutput struct {
	CheckID      string   `json:"check_id,omitempty"`
	Compliant    bool     `json:"compliant"`
	Violations   []string `json:"violations"`
	Jurisdiction string   `json:"jurisdiction"`
	Sensitive    []string `json:"sensitive,omitempty"`
	Remote       string   `json:"remote,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	task, err := readTask(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, hash, err := config.LoadWithHash(checkConfig)
	if err != nil {
		return err
	}

	jurisdiction := checkJurisdiction
	if jurisdiction == "" {
		jurisdiction = cfg.Jurisdiction
	}
	remote := checkRemote
	if remote == "" {
		remote = cfg.Remote
	}
	auditPath := checkAuditLog
	if auditPath == "" {
		auditPath = cfg.AuditLog
	}

	var out checkOutput
	if remote != "" {
		out, err = checkRemoteTask(cmd.Context(), remote, task, jurisdiction)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	} else {
		g, err := gate.New(gate.Config{
			Jurisdiction: jurisdiction,
			ConfigHash:   hash,
			AuditLogPath: auditPath,
		})
		if err != nil {
			return err
		}
		defer g.Close()

		d := g.Check(contextOrBackground(cmd.Context()), task, "")
		out = checkOutput{
			CheckID:      d.ID,
			Compliant:    d.Compliant,
			Violations:   d.Violations,
			Jurisdiction: d.Jurisdiction,
			Sensitive:    d.Sensitive,
		}
	}

	w := cmd.OutOrStdout()
	switch checkFormat {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	default:
		fmt.Fprint(w, formatCheckText(out))
	}

	if checkStrict && !out.Compliant {
		return errNotCompliant
	}
	return nil
}

func checkRemoteTask(ctx context.Context, addr, task, jurisdiction string) (checkOutput, error) {
	c, err := client.New(addr)
	if err != nil {
		return checkOutput{
			Violations:   []string{client.TagGateUnreachable},
			Jurisdiction: jurisdiction,
			Remote:       addr,
		}, err
	}
	defer c.Close()

	resp, err := c.Check(contextOrBackground(ctx), task, jurisdiction)
	return checkOutput{
		CheckID:      resp.CheckID,
		Compliant:    resp.Compliant,
		Violations:   resp.Violations,
		Jurisdiction: resp.Jurisdiction,
		Sensitive:    resp.Sensitive,
		Remote:       addr,
	}, err
}

func readTask(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read task from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func formatCheckText(out checkOutput) string {
	var b strings.Builder
	status := "COMPLIANT"
	if !out.Compliant {
		status = "NOT COMPLIANT"
	}
	fmt.Fprintf(&b, "%s (jurisdiction: %s)\n", status, out.Jurisdiction)

	r := constitution.Result{Violations: out.Violations}
	for _, tag := range r.Tags() {
		fmt.Fprintf(&b, "  violation: %s\n", tag)
	}
	for _, hit := range r.RuleHits() {
		fmt.Fprintf(&b, "  note: %s\n", hit)
	}
	if len(out.Sensitive) > 0 {
		fmt.Fprintf(&b, "  sensitive: %s\n", strings.Join(out.Sensitive, ", "))
	}
	return b.String()
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
