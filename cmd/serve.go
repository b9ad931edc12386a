package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/meysamhadeli/dirsnap/constants/lipgloss"
	"github.com/meysamhadeli/dirsnap/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server that returns directory snapshots",
	Long: `The 'serve' command exposes the snapshot over HTTP.

  GET <route>    full snapshot as {"files":[{"path","content","timestamp"}]}
  GET /healthz   liveness
  GET /metrics   Prometheus metrics

Every request runs a fresh scan. Nothing is cached between requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = rootDependencies.Logger.Sync() }()

		return handleServeCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func handleServeCommand(rootDependencies *RootDependencies) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if rootDependencies.Config.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.NewServer(*rootDependencies.Config.Server, rootDependencies.Scanner, rootDependencies.Logger)

	serverInfo := fmt.Sprintf("Serving %s\non http://localhost%s%s",
		rootDependencies.Scanner.Root(),
		rootDependencies.Config.Server.Addr,
		rootDependencies.Config.Server.Route)
	fmt.Println(lipgloss.BoxStyle.Render(serverInfo))

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	fmt.Println(lipgloss.Yellow.Render("Server stopped."))
	return nil
}
