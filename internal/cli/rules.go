package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/policygate/internal/constitution"
)

var (
	rulesTier   string
	rulesFormat string
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesTier, "tier", "all", "Tier to list (hard|pentest|soft|override|all)")
	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "text", "Output format (text|json|yaml)")
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List constitution rules by tier",
	Long: "Prints the rule tiers in precedence order:\n" +
		"  hard      absolute constraints, cannot be overridden\n" +
		"  pentest   engagement-scope and professional ethics\n" +
		"  soft      best-practice preferences\n" +
		"  override  when a compliant human may supersede pentest and soft rules",
	SilenceUsage: true,
	RunE:         runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	rules, err := constitution.RulesByLabel(rulesTier)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch rulesFormat {
	case "json":
		data, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orderedRules(rules)); err != nil {
			return fmt.Errorf("encode rules: %w", err)
		}
		return enc.Close()
	case "text":
		writeRulesText(w, rules)
	default:
		return fmt.Errorf("unknown format %q", rulesFormat)
	}
	return nil
}

// orderedRules builds a mapping node so YAML keeps precedence order.
func orderedRules(rules map[string][]string) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range constitution.Tiers() {
		list, ok := rules[t.Label()]
		if !ok {
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range list {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: r})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.Label()},
			seq,
		)
	}
	return root
}

func writeRulesText(w io.Writer, rules map[string][]string) {
	first := true
	for _, t := range constitution.Tiers() {
		list, ok := rules[t.Label()]
		if !ok {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s:\n", t.Title())
		for _, r := range list {
			fmt.Fprintf(w, "- %s\n", r)
		}
	}
}
