package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/policygate/internal/client"
	"github.com/ppiankov/policygate/internal/constitution"
)

var promptRemote string

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVar(&promptRemote, "remote", "", "Fetch the block from a remote policygate server (host:port)")
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the constitution block to prepend to agent system prompts",
	Long:  "Renders today's (UTC) extract of the hard rules and pentest ethics rules,\nfollowed by a compliance reminder.",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func runPrompt(cmd *cobra.Command, args []string) error {
	block := constitution.PromptBlock()
	if promptRemote != "" {
		c, err := client.New(promptRemote)
		if err != nil {
			return err
		}
		defer c.Close()

		block, err = c.PromptBlock(contextOrBackground(cmd.Context()))
		if err != nil {
			return fmt.Errorf("fetch prompt block: %w", err)
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), block)
	return nil
}
