package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/meysamhadeli/dirsnap/constants/lipgloss"
	"github.com/meysamhadeli/dirsnap/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the root once and print the snapshot JSON",
	Long: `The 'scan' command runs the same scan as the HTTP endpoint and writes the
resulting JSON document to stdout. Output is syntax highlighted when stdout is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		theme, _ := cmd.Flags().GetString("theme")

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = rootDependencies.Logger.Sync() }()

		return handleScanCommand(rootDependencies, raw, theme)
	},
}

func init() {
	scanCmd.Flags().Bool("raw", false, "Print compact JSON without indentation or colors")
	scanCmd.Flags().String("theme", "dracula", "Chroma theme used to highlight terminal output")

	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(rootDependencies *RootDependencies, raw bool, theme string) error {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).
		WithWriter(os.Stderr)

	spinnerInstance, _ := spinner.Start(fmt.Sprintf("Scanning %s...", rootDependencies.Scanner.Root()))

	result, err := rootDependencies.Scanner.Scan()
	_ = spinnerInstance.Stop()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if raw {
		fmt.Println(string(body))
	} else if err := utils.RenderJSON(os.Stdout, body, theme, utils.IsTerminal(os.Stdout)); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d files captured, %d skipped in %s",
		result.Stats.Captured, result.Stats.TotalSkipped(), result.Stats.Duration.Round(time.Millisecond))
	fmt.Fprintln(os.Stderr, lipgloss.Green.Render("✓ "+summary))

	return nil
}
