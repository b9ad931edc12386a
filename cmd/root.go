package cmd

import (
	"fmt"
	"os"

	"github.com/meysamhadeli/dirsnap/config"
	"github.com/meysamhadeli/dirsnap/constants/lipgloss"
	"github.com/meysamhadeli/dirsnap/snapshot"
	"github.com/meysamhadeli/dirsnap/snapshot/contracts"
	"github.com/meysamhadeli/dirsnap/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootDependencies holds the dependencies shared by every subcommand
type RootDependencies struct {
	Cwd     string
	Config  *config.Config
	Logger  *zap.Logger
	Scanner contracts.IScanner
}

var rootCmd = &cobra.Command{
	Use:   "dirsnap",
	Short: "Serve a directory tree as a JSON snapshot for the in-browser file viewer",
	Long: `dirsnap walks a project directory, keeps text files under the size cutoff whose
extension is on the allow-list, and returns them as a single JSON document.

Dependency caches, build output and version control metadata are never scanned.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(lipgloss.Info.Render(fmt.Sprintf("dirsnap version %s", config.DefaultConfig.Version)))
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

// handleRootCommand loads configuration and builds the shared dependencies.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := currentDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Cwd:     cwd,
		Config:  cfg,
		Logger:  logger,
		Scanner: snapshot.NewScanner(cfg.ScannerOptions(cwd), logger),
	}, nil
}

func currentDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return cwd, nil
}
