package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/meysamhadeli/dirsnap/config"
	"github.com/meysamhadeli/dirsnap/constants/lipgloss"
	"github.com/meysamhadeli/dirsnap/diagnostics"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch the snapshot endpoint once and look for a known file name",
	Long: `The 'check' command is a manual verification tool. It sends one GET request,
buffers the whole body and reports whether the expected file name appears in it.
When it does not, the beginning of the body is printed for inspection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := currentDir()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfigs(cmd.Root(), cwd)
		if err != nil {
			return err
		}

		if url, _ := cmd.Flags().GetString("url"); url != "" {
			cfg.Check.URL = url
		}
		if needle, _ := cmd.Flags().GetString("needle"); needle != "" {
			cfg.Check.Needle = needle
		}

		return handleCheckCommand(cmd.Context(), cfg.Check)
	},
}

func init() {
	checkCmd.Flags().String("url", "", "URL of the snapshot endpoint (defaults to check.url)")
	checkCmd.Flags().String("needle", "", "Substring expected in the response body (defaults to check.needle)")

	rootCmd.AddCommand(checkCmd)
}

func handleCheckCommand(ctx context.Context, checkConfig *config.CheckConfig) error {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start(fmt.Sprintf("GET %s", checkConfig.URL))

	result, err := diagnostics.NewProber(nil, checkConfig.PrefixLength).Probe(ctx, checkConfig.URL, checkConfig.Needle)
	_ = spinnerInstance.Stop()
	if err != nil {
		return err
	}

	fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("Status: %d, body: %d bytes, %s",
		result.StatusCode, result.BodyLength, result.Elapsed.Round(time.Millisecond))))

	if result.Found {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Response contains %q", result.Needle)))
		return nil
	}

	fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ Response does not contain %q", result.Needle)))
	fmt.Println(lipgloss.BoxStyle.Render(result.BodyPrefix))
	return fmt.Errorf("check failed: %q not found in response from %s", result.Needle, result.URL)
}
