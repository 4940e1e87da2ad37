package cmd

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/cli"
)

//go:embed llms.md
var llmsGuide string

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help topics for palettepro",
	Long:  "Help about any command, or 'palettepro help llms' for the AI assistant usage guide.",
	// Resolve against rootCmd so "palettepro help serve mcp" works.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
			return target.Help()
		}
		return rootCmd.Help()
	},
}

var helpLlmsCmd = &cobra.Command{
	Use:   "llms",
	Short: "Usage guide for LLMs and AI assistants",
	Long: `Print a guide for LLMs on using palettepro through the CLI, MCP and the
REST API. Output is raw markdown unless stdout is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if plainOutput || !isTTY() {
			fmt.Fprint(w, llmsGuide)
			return nil
		}
		out, err := cli.RenderMarkdown(llmsGuide, terminalWidth(100), false)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	},
}
