package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/policygate/internal/audit"
)

var (
	tailLines int
	tailJSON  bool
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditTailCmd)
	auditTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent entries to show")
	auditTailCmd.Flags().BoolVar(&tailJSON, "json", false, "Print entries as indented JSON")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit log operations",
	Long:  "Commands for verifying and inspecting the hash-chained audit log of checks.",
}

var auditVerifyCmd = &cobra.Command{
	Use:          "verify <path>",
	Short:        "Verify hash chain integrity of an audit log",
	Long:         "Walks the JSONL audit log and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runAuditVerify,
}

var auditTailCmd = &cobra.Command{
	Use:   "tail <path>",
	Short: "Show recent audit log entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditTail,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(args[0])
	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d entries verified\n", result.Lines)
		return nil
	}
	return fmt.Errorf("FAILED at line %d: %s", result.ErrorLine, result.Error)
}

func runAuditTail(cmd *cobra.Command, args []string) error {
	entries, err := audit.Tail(args[0], tailLines)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !tailJSON {
		fmt.Fprint(w, audit.FormatEntries(entries))
		return nil
	}
	for _, e := range entries {
		out, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
	}
	return nil
}
